package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ApplyMigrations runs every pending embedded migration.
func (s *Store) ApplyMigrations() error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return s.backfillFolds(context.Background())
}

// backfillFolds fills search columns left empty by rows written before they
// existed.
func (s *Store) backfillFolds(ctx context.Context) error {
	if err := s.refold(ctx,
		`SELECT id, name FROM foods WHERE name_fold = '' AND name <> ''`,
		`UPDATE foods SET name_fold = ? WHERE id = ?`,
	); err != nil {
		return fmt.Errorf("backfill foods.name_fold: %w", err)
	}
	if err := s.refold(ctx,
		`SELECT id, address FROM businesses WHERE address_fold = '' AND address <> ''`,
		`UPDATE businesses SET address_fold = ? WHERE id = ?`,
	); err != nil {
		return fmt.Errorf("backfill businesses.address_fold: %w", err)
	}
	return nil
}

func (s *Store) refold(ctx context.Context, selectQuery, updateQuery string) error {
	rows, err := s.db.QueryContext(ctx, selectQuery)
	if err != nil {
		return err
	}

	pending := map[string]string{}
	for rows.Next() {
		var id, value string
		if err := rows.Scan(&id, &value); err != nil {
			_ = rows.Close()
			return err
		}
		pending[id] = fold(value)
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for id, folded := range pending {
		if _, err := s.db.ExecContext(ctx, updateQuery, folded, id); err != nil {
			return err
		}
	}
	return nil
}
