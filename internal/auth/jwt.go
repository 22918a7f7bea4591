package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "taskboard-backend/internal/errors"
)

// Token types carried in the custom "type" claim. Access tokens authenticate
// API calls; refresh tokens are only accepted by the refresh endpoint.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents the JWT payload for both token types
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a user ID
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidToken
	}
	return uint(id), nil
}

// TokenService issues and verifies HMAC-signed JWTs
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// CreateAccessToken issues a short-lived access token for the user
func (s *TokenService) CreateAccessToken(userID uint) (string, error) {
	return s.createToken(userID, TokenTypeAccess, s.accessTTL)
}

// CreateRefreshToken issues a long-lived refresh token for the user
func (s *TokenService) CreateRefreshToken(userID uint) (string, error) {
	return s.createToken(userID, TokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) createToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// DecodeToken validates the signature and expiry and returns the claims.
// Expired tokens are reported distinctly so clients know to refresh.
func (s *TokenService) DecodeToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
