package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/budget-tracker/internal"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore is the persistence contract for identity records.
type UserStore interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// Tokens is the triple returned on login: an identity token carrying
// profile claims, a short-lived access token and a longer-lived refresh
// token, plus the access token expiry in seconds.
type Tokens struct {
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Claims are the JWT claims this service issues and validates.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates the token triple.
type TokenGenerator interface {
	GenerateIDToken(userID, email string) (string, error)
	GenerateAccessToken(userID, email string) (string, error)
	GenerateRefreshToken(userID, email string) (string, error)
	ValidateAccessToken(token string) (*Claims, error)
	ValidateRefreshToken(token string) (*Claims, error)
	AccessTTL() time.Duration
}

var (
	ErrInvalidCredentials = internal.NewUnauthorizedError("invalid email or password", internal.ErrCodeInvalidCredentials)
	ErrEmailTaken         = internal.NewConflictError("user with this email already exists", internal.ErrCodeEmailTaken)
	ErrUserNotFound       = internal.NewNotFoundError("user not found", internal.ErrCodeInvalidCredentials)
	ErrInvalidToken       = internal.NewUnauthorizedError("invalid token", internal.ErrCodeInvalidToken)
	ErrTokenExpired       = internal.NewUnauthorizedError("token has expired", internal.ErrCodeTokenExpired)
	ErrTokenRevoked       = internal.NewUnauthorizedError("token has been revoked", internal.ErrCodeTokenRevoked)
)

type ctxKey string

const userContextKey ctxKey = "auth.user"

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}
