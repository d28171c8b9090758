package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wavegram/wavegram/internal/models"
	"github.com/wavegram/wavegram/pkg/config"
)

// Token types carried in the "type" claim. Access and refresh tokens are
// signed with distinct secrets; verification also checks the type claim so
// a token of one kind can never pass for the other.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrTokenExpired indicates the token's expiry has passed
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid indicates a malformed token, a bad signature or a
	// wrong token type
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the payload signed into access and refresh tokens
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies access and refresh tokens
type TokenService struct {
	cfg config.AuthConfig
}

// NewTokenService creates a token service from auth configuration
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// IssueAccessToken signs a short-lived access token for the user
func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	return s.issue(user, TokenTypeAccess, s.cfg.AccessSecret, s.cfg.AccessExpiry)
}

// IssueRefreshToken signs a long-lived refresh token for the user
func (s *TokenService) IssueRefreshToken(user *models.User) (string, error) {
	return s.issue(user, TokenTypeRefresh, s.cfg.RefreshSecret, s.cfg.RefreshExpiry)
}

func (s *TokenService) issue(user *models.User, tokenType, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// VerifyAccessToken verifies an access token and returns its claims
func (s *TokenService) VerifyAccessToken(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeAccess, s.cfg.AccessSecret)
}

// VerifyRefreshToken verifies a refresh token and returns its claims
func (s *TokenService) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeRefresh, s.cfg.RefreshSecret)
}

func (s *TokenService) verify(tokenString, wantType, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	// Type confusion protection: a refresh token must never be accepted
	// where an access token is expected, and vice versa.
	if claims.Type != wantType {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
