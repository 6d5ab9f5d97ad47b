package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so repositories run
// unchanged inside and outside transactions.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

// NewStore opens the database at dsn. Foreign keys, a busy timeout and
// immediate write transactions are enabled unless the DSN already sets them.
// An in-memory database is pinned to a single connection so every query sees
// the same data.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withDefaults(dsn))
	if err != nil {
		return nil, err
	}

	if isMemory(dsn) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func withDefaults(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "foreign_keys") {
		params = append(params, "_pragma=foreign_keys(1)")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		params = append(params, "_pragma=busy_timeout(5000)")
	}
	if !strings.Contains(dsn, "_txlock") {
		params = append(params, "_txlock=immediate")
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users                 { return &usersRepo{db: s.db} }
func (s *Store) Businesses() store.Businesses       { return &businessesRepo{db: s.db} }
func (s *Store) EmailRegistry() store.EmailRegistry { return &emailRegistryRepo{db: s.db} }
func (s *Store) Foods() store.Foods                 { return &foodsRepo{db: s.db} }
func (s *Store) Likes() store.Likes                 { return &likesRepo{db: s.db} }
func (s *Store) Comments() store.Comments           { return &commentsRepo{db: s.db} }
func (s *Store) Reviews() store.Reviews             { return &reviewsRepo{db: s.db} }
func (s *Store) Revocations() store.Revocations     { return &revocationsRepo{db: s.db} }
func (s *Store) SigningKeys() store.SigningKeys     { return &signingKeysRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapWriteError translates constraint violations into store sentinels.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var se *moderncsqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %v", store.ErrNotFound, err)
		case sqlite3.SQLITE_CONSTRAINT:
			// Extended codes disabled; fall back to the message.
			msg := se.Error()
			switch {
			case strings.Contains(msg, "UNIQUE constraint failed"):
				return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
			case strings.Contains(msg, "FOREIGN KEY constraint failed"):
				return fmt.Errorf("%w: %v", store.ErrNotFound, err)
			}
		}
	}
	return err
}

// requireAffected returns ErrNotFound when res touched no rows.
func requireAffected(res sql.Result, err error) error {
	if err != nil {
		return mapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		t := nt.Time.UTC()
		return &t
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// fold lower-cases s for the *_fold search columns. strings.ToLower handles
// the non-ASCII letters that SQLite's lower() leaves alone.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
