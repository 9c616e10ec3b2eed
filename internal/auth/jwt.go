package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTTokenGenerator issues HS256 tokens. The identity token shares the
// access secret; refresh tokens are signed with their own secret so a
// leaked refresh token cannot be replayed as an access token.
type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

func (j *JWTTokenGenerator) AccessTTL() time.Duration {
	return j.AccessTokenTTL
}

func (j *JWTTokenGenerator) GenerateIDToken(userID, email string) (string, error) {
	return j.sign(userID, email, j.AccessTokenSecret, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID, email string) (string, error) {
	return j.sign(userID, email, j.AccessTokenSecret, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID, email string) (string, error) {
	return j.sign(userID, email, j.RefreshTokenSecret, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) ValidateAccessToken(token string) (*Claims, error) {
	return j.validate(token, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) ValidateRefreshToken(token string) (*Claims, error) {
	return j.validate(token, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (j *JWTTokenGenerator) validate(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
