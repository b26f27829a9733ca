package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"funlife/internal/config"
)

// AuthService issues and validates HMAC-signed access tokens. Viewer
// resolution at the HTTP boundary accepts these tokens (or a plain
// X-User-ID header) and degrades silently to "no viewer" on failure.
type AuthService struct {
	secret []byte
	maxAge int
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		secret: []byte(cfg.JWTSecret),
		maxAge: cfg.AccessTokenMaxAge,
	}
}

// GenerateAccessToken issues a signed token carrying the user id.
func (s *AuthService) GenerateAccessToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.maxAge) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates a token and returns the embedded user id.
func (s *AuthService) ParseAccessToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse access token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return int64(userIDFloat), nil
}

// ExpiresIn returns the access token lifetime in seconds.
func (s *AuthService) ExpiresIn() int {
	return s.maxAge
}
