package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/budget-tracker/internal"
)

type Service struct {
	users      UserStore
	tokens     TokenGenerator
	bcryptCost int
	logger     *slog.Logger

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewService(users UserStore, tokens TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
		revoked:    make(map[string]time.Time),
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        dto.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues the token triple.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*Tokens, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	user, err := s.users.GetByEmail(ctx, dto.Email)
	if err != nil {
		if internal.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user.ID, user.Email)
}

// RefreshTokens exchanges a valid refresh token for a fresh triple.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*Tokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if s.isRevoked(refreshToken) {
		return nil, ErrTokenRevoked
	}
	return s.issueTokens(claims.UserID, claims.Email)
}

// Logout invalidates a token until its natural expiry.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Drop entries for tokens that have expired on their own.
	now := time.Now()
	for token, expiry := range s.revoked {
		if expiry.Before(now) {
			delete(s.revoked, token)
		}
	}
	s.revoked[accessToken] = claims.ExpiresAt.Time

	s.logger.Info("user logged out", "user_id", claims.UserID)
	return nil
}

// ValidateAccessToken checks signature, expiry and the revocation list.
func (s *Service) ValidateAccessToken(ctx context.Context, accessToken string) (*Claims, error) {
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	if s.isRevoked(accessToken) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

func (s *Service) issueTokens(userID, email string) (*Tokens, error) {
	idToken, err := s.tokens.GenerateIDToken(userID, email)
	if err != nil {
		return nil, internal.NewInternalError("failed to generate id token", err)
	}
	accessToken, err := s.tokens.GenerateAccessToken(userID, email)
	if err != nil {
		return nil, internal.NewInternalError("failed to generate access token", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(userID, email)
	if err != nil {
		return nil, internal.NewInternalError("failed to generate refresh token", err)
	}

	return &Tokens{
		IDToken:      idToken,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

func (s *Service) isRevoked(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.revoked[token]
	return ok && expiry.After(time.Now())
}
