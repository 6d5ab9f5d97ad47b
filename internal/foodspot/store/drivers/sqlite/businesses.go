package sqlite

import (
	"context"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
)

type businessesRepo struct {
	db dbtx
}

const businessColumns = `id, name, email, password_hash, description, address, image, created_at, updated_at`

func scanBusiness(row interface{ Scan(...any) error }) (domain.BusinessAccount, error) {
	var b domain.BusinessAccount
	err := row.Scan(&b.ID, &b.Name, &b.Email, &b.PasswordHash, &b.Description, &b.Address, &b.Image,
		&b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *businessesRepo) GetBusinessByID(ctx context.Context, id string) (domain.BusinessAccount, error) {
	b, err := scanBusiness(r.db.QueryRowContext(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE id = ?`, id))
	if err != nil {
		return domain.BusinessAccount{}, mapNotFound(err)
	}
	return b, nil
}

func (r *businessesRepo) GetBusinessByEmail(ctx context.Context, email string) (domain.BusinessAccount, error) {
	b, err := scanBusiness(r.db.QueryRowContext(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE email = ?`, email))
	if err != nil {
		return domain.BusinessAccount{}, mapNotFound(err)
	}
	return b, nil
}

func (r *businessesRepo) CreateBusiness(ctx context.Context, b domain.BusinessAccount) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO businesses (`+businessColumns+`, address_fold) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Email, b.PasswordHash, b.Description, b.Address, b.Image,
		b.CreatedAt.UTC(), b.UpdatedAt.UTC(), fold(b.Address),
	)
	return mapWriteError(err)
}

func (r *businessesRepo) UpdateBusinessProfile(ctx context.Context, b domain.BusinessAccount) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE businesses
		    SET name = ?, description = ?, address = ?, address_fold = ?, image = ?, updated_at = ?
		  WHERE id = ?`,
		b.Name, b.Description, b.Address, fold(b.Address), b.Image, b.UpdatedAt.UTC(), b.ID,
	))
}

func (r *businessesRepo) ListBusinesses(ctx context.Context, city string) ([]domain.BusinessAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+businessColumns+` FROM businesses
		  WHERE ? = '' OR instr(address_fold, ?) > 0
		  ORDER BY name, id`,
		fold(city), fold(city),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BusinessAccount
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
