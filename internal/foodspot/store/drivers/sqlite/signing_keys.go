package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
)

type signingKeysRepo struct {
	db dbtx
}

func (r *signingKeysRepo) CreateSigningKey(ctx context.Context, k domain.SigningKey) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO signing_keys (kid, algorithm, private_key_sealed, created_at, retired_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		k.Kid, k.Algorithm, k.PrivateKeySealed, k.CreatedAt.UTC(),
		mapOptionalTime(k.RetiredAt), mapOptionalTime(k.ExpiresAt),
	)
	return mapWriteError(err)
}

func (r *signingKeysRepo) ListSigningKeys(ctx context.Context) ([]domain.SigningKey, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kid, algorithm, private_key_sealed, created_at, retired_at, expires_at
		   FROM signing_keys
		  ORDER BY created_at DESC, kid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SigningKey
	for rows.Next() {
		var (
			k                  domain.SigningKey
			retired, expiresAt sql.NullTime
		)
		if err := rows.Scan(&k.Kid, &k.Algorithm, &k.PrivateKeySealed, &k.CreatedAt, &retired, &expiresAt); err != nil {
			return nil, err
		}
		k.RetiredAt = mapNullTimePtr(retired)
		k.ExpiresAt = mapNullTimePtr(expiresAt)
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *signingKeysRepo) RetireSigningKey(ctx context.Context, kid string, retiredAt, expiresAt time.Time) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE signing_keys SET retired_at = ?, expires_at = ? WHERE kid = ?`,
		retiredAt.UTC(), expiresAt.UTC(), kid,
	))
}

func (r *signingKeysRepo) DeleteSigningKey(ctx context.Context, kid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM signing_keys WHERE kid = ?`, kid)
	return err
}
