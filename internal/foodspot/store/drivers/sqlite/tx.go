package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer Store owns the connection.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(context.Context, func(tx store.Tx) error) error { return sql.ErrTxDone }

func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.tx} }
func (t *txStore) Businesses() store.Businesses       { return &businessesRepo{db: t.tx} }
func (t *txStore) EmailRegistry() store.EmailRegistry { return &emailRegistryRepo{db: t.tx} }
func (t *txStore) Foods() store.Foods                 { return &foodsRepo{db: t.tx} }
func (t *txStore) Likes() store.Likes                 { return &likesRepo{db: t.tx} }
func (t *txStore) Comments() store.Comments           { return &commentsRepo{db: t.tx} }
func (t *txStore) Reviews() store.Reviews             { return &reviewsRepo{db: t.tx} }
func (t *txStore) Revocations() store.Revocations     { return &revocationsRepo{db: t.tx} }
func (t *txStore) SigningKeys() store.SigningKeys     { return &signingKeysRepo{db: t.tx} }
