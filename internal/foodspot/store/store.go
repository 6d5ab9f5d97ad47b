package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the drivers. Work
// that must be atomic goes through WithTx, whose Tx exposes the same
// repositories bound to the transaction.
type Store interface {
	Users() Users
	Businesses() Businesses
	EmailRegistry() EmailRegistry
	Foods() Foods
	Likes() Likes
	Comments() Comments
	Reviews() Reviews
	Revocations() Revocations
	SigningKeys() SigningKeys

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a Store bound to a transaction.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.UserAccount, error)
	GetUserByEmail(ctx context.Context, email string) (domain.UserAccount, error)

	// CreateUser inserts the row only. Registration must reserve the email in
	// the EmailRegistry within the same transaction.
	CreateUser(ctx context.Context, u domain.UserAccount) error

	// UpdateUserProfile writes name, email, image and updated_at.
	UpdateUserProfile(ctx context.Context, u domain.UserAccount) error
}

type Businesses interface {
	GetBusinessByID(ctx context.Context, id string) (domain.BusinessAccount, error)
	GetBusinessByEmail(ctx context.Context, email string) (domain.BusinessAccount, error)
	CreateBusiness(ctx context.Context, b domain.BusinessAccount) error

	// UpdateBusinessProfile writes name, description, address, image and
	// updated_at.
	UpdateBusinessProfile(ctx context.Context, b domain.BusinessAccount) error

	// ListBusinesses returns businesses ordered by name. A non-empty city
	// keeps those whose address contains it, ignoring case.
	ListBusinesses(ctx context.Context, city string) ([]domain.BusinessAccount, error)
}

// EmailRegistry owns the shared email namespace of both account kinds.
type EmailRegistry interface {
	// ReserveEmail claims email for an account. It returns ErrAlreadyExists
	// when any account already owns it.
	ReserveEmail(ctx context.Context, email, accountID string, role domain.Role, at time.Time) error

	// ReleaseEmail frees email if it is owned by accountID.
	ReleaseEmail(ctx context.Context, email, accountID string) error
}

type Foods interface {
	CreateFood(ctx context.Context, f domain.Food) error
	GetFood(ctx context.Context, id string) (domain.FoodSummary, error)

	// UpdateFood replaces the editable fields and categories of f.
	UpdateFood(ctx context.Context, f domain.Food) error
	DeleteFood(ctx context.Context, id string) error

	ListFoods(ctx context.Context, filter domain.FoodFilter) ([]domain.FoodSummary, error)
}

type Likes interface {
	// Like is idempotent.
	Like(ctx context.Context, userID, foodID string, at time.Time) error

	// Unlike is idempotent.
	Unlike(ctx context.Context, userID, foodID string) error

	ListLikedFoods(ctx context.Context, userID string) ([]domain.FoodSummary, error)
}

type Comments interface {
	CreateComment(ctx context.Context, c domain.Comment) error
	GetComment(ctx context.Context, id string) (domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	ListCommentsByFood(ctx context.Context, foodID string) ([]domain.Comment, error)
}

type Reviews interface {
	// UpsertReview creates the review or replaces the rating and body of the
	// user's existing review of the same food.
	UpsertReview(ctx context.Context, r domain.Review) error
	ListReviewsByFood(ctx context.Context, foodID string) ([]domain.Review, error)
}

type Revocations interface {
	// RevokeSessions records or advances the revocation for an account.
	RevokeSessions(ctx context.Context, rev domain.SessionRevocation) error
	GetRevocation(ctx context.Context, accountID string) (domain.SessionRevocation, error)

	// DeleteExpiredRevocations removes entries whose expiry is not after now.
	DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error)
}

type SigningKeys interface {
	CreateSigningKey(ctx context.Context, key domain.SigningKey) error

	// ListSigningKeys returns every stored key, newest first.
	ListSigningKeys(ctx context.Context) ([]domain.SigningKey, error)
	RetireSigningKey(ctx context.Context, kid string, retiredAt, expiresAt time.Time) error
	DeleteSigningKey(ctx context.Context, kid string) error
}
