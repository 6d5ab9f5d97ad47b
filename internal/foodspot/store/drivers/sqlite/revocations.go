package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
)

type revocationsRepo struct {
	db dbtx
}

func (r *revocationsRepo) RevokeSessions(ctx context.Context, rev domain.SessionRevocation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_revocations (account_id, revoked_at, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT (account_id) DO UPDATE
		    SET revoked_at = excluded.revoked_at,
		        expires_at = excluded.expires_at`,
		rev.AccountID, rev.RevokedAt.UTC(), rev.ExpiresAt.UTC(),
	)
	return mapWriteError(err)
}

func (r *revocationsRepo) GetRevocation(ctx context.Context, accountID string) (domain.SessionRevocation, error) {
	var rev domain.SessionRevocation
	err := r.db.QueryRowContext(ctx,
		`SELECT account_id, revoked_at, expires_at FROM session_revocations WHERE account_id = ?`,
		accountID,
	).Scan(&rev.AccountID, &rev.RevokedAt, &rev.ExpiresAt)
	if err != nil {
		return domain.SessionRevocation{}, mapNotFound(err)
	}
	return rev, nil
}

func (r *revocationsRepo) DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM session_revocations WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
