package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
)

type emailRegistryRepo struct {
	db dbtx
}

func (r *emailRegistryRepo) ReserveEmail(ctx context.Context, email, accountID string, role domain.Role, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO email_registry (email, account_id, account_role, created_at) VALUES (?, ?, ?, ?)`,
		email, accountID, role.String(), at.UTC(),
	)
	return mapWriteError(err)
}

func (r *emailRegistryRepo) ReleaseEmail(ctx context.Context, email, accountID string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM email_registry WHERE email = ? AND account_id = ?`,
		email, accountID,
	))
}
