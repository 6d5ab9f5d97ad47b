package foodsdk

import "time"

// ============================================================================
// Identity & Sessions
// ============================================================================

// Role values carried in Identity.Role.
const (
	RoleUser     = "user"
	RoleBusiness = "business"
)

// Identity is the signed-in account as the server reports it. It never holds
// credential material.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
	Role  string `json:"role" enums:"user,business"`
}

// SessionResponse is returned by POST /api/auth/login and GET /api/auth/session.
type SessionResponse struct {
	Identity

	// ExpiresAt is the absolute end of the login, preserved across refreshes.
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`

	// AccountKind is the login form the user came from. It is a hint for
	// logging only; the server decides the role from the account it finds.
	AccountKind string `json:"accountKind,omitempty" validate:"omitempty,oneof=user business"`
}

// LogoutResponse is returned by POST /api/auth/logout.
type LogoutResponse struct {
	LoggedOut bool `json:"loggedOut"`
}

// RevokeResponse is returned by POST /api/auth/revoke.
type RevokeResponse struct {
	Revoked bool `json:"revoked"`
	// Enforced is false when the server does not check revocations, so other
	// sessions stay valid until they expire.
	Enforced bool `json:"enforced"`
}

// ============================================================================
// Accounts
// ============================================================================

// RegisterUserRequest is the body of POST /api/register.
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
	Image    string `json:"image,omitempty" validate:"omitempty,max=2048"`
}

// RegisterBusinessRequest is the body of POST /api/businesses.
type RegisterBusinessRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,max=128"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Address     string `json:"address,omitempty" validate:"max=500"`
	Image       string `json:"image,omitempty" validate:"omitempty,max=2048"`
}

// User is the public view of a consumer account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Business is the public view of a business account.
type Business struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BusinessDetail is a business with its menu.
type BusinessDetail struct {
	Business
	Foods []Food `json:"foods"`
}

// UserProfile is returned by GET /api/users/me.
type UserProfile struct {
	User
	LikedFoods []Food `json:"likedFoods"`
}

// UpdateUserRequest is the body of PUT /api/users/me. Omitted fields are
// left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Image *string `json:"image,omitempty" validate:"omitempty,max=2048"`
}

// UpdateBusinessRequest is the body of PUT /api/businesses/me.
type UpdateBusinessRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Image       *string `json:"image,omitempty" validate:"omitempty,max=2048"`
}

// ============================================================================
// Foods
// ============================================================================

// Food is a menu item with its owner and engagement counters.
type Food struct {
	ID            string    `json:"id"`
	BusinessID    string    `json:"businessId"`
	BusinessName  string    `json:"businessName"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         int64     `json:"price"` // cents
	Image         string    `json:"image,omitempty"`
	Categories    []string  `json:"categories"`
	City          string    `json:"city,omitempty"` // owning business's address
	LikeCount     int       `json:"likeCount"`
	CommentCount  int       `json:"commentCount"`
	ReviewCount   int       `json:"reviewCount"`
	AverageRating float64   `json:"averageRating"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FoodDetail is returned by GET /api/foods/{id}.
type FoodDetail struct {
	Food
	Comments []Comment `json:"comments"`
	Reviews  []Review  `json:"reviews"`
}

// FoodRequest is the body of POST /api/foods and PUT /api/foods/{id}.
type FoodRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description,omitempty" validate:"max=2000"`
	Price       int64    `json:"price" validate:"gte=0"`
	Image       string   `json:"image,omitempty" validate:"omitempty,max=2048"`
	Categories  []string `json:"categories,omitempty" validate:"max=20,dive,required,max=50"`
}

// FoodFilter selects foods in ListFoods. Empty fields match everything.
type FoodFilter struct {
	Categories []string
	City       string
	Query      string
}

// ============================================================================
// Engagement
// ============================================================================

// LikeRequest is the body of POST and DELETE /api/likes.
type LikeRequest struct {
	FoodID string `json:"foodId" validate:"required"`
}

// LikeResponse reports the like state after the call.
type LikeResponse struct {
	FoodID string `json:"foodId"`
	Liked  bool   `json:"liked"`
}

// CommentRequest is the body of POST /api/foods/{id}/comments.
type CommentRequest struct {
	Body string `json:"body" validate:"required,max=1000"`
}

// Comment is a comment on a food.
type Comment struct {
	ID        string    `json:"id"`
	FoodID    string    `json:"foodId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewRequest is the body of POST /api/foods/{id}/reviews.
type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Body   string `json:"body,omitempty" validate:"max=1000"`
}

// Review is a user's rating of a food.
type Review struct {
	ID        string    `json:"id"`
	FoodID    string    `json:"foodId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ============================================================================
// Uploads
// ============================================================================

// UploadResponse is returned by POST /api/upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is the time since the service started
	Uptime string `json:"uptime,omitempty"`

	// Version is the build version
	Version string `json:"version,omitempty"`

	// Checks contains the per dependency results, readiness only
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks contains the per dependency readiness results.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
