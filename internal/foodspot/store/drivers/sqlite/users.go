package sqlite

import (
	"context"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, name, email, password_hash, image, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.UserAccount, error) {
	var u domain.UserAccount
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Image, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.UserAccount, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return domain.UserAccount{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.UserAccount, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err != nil {
		return domain.UserAccount{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.UserAccount) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Image, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapWriteError(err)
}

func (r *usersRepo) UpdateUserProfile(ctx context.Context, u domain.UserAccount) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, image = ?, updated_at = ? WHERE id = ?`,
		u.Name, u.Email, u.Image, u.UpdatedAt.UTC(), u.ID,
	))
}
