package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stanislausjustin/user-service/config"
	"github.com/stanislausjustin/user-service/models"
)

var (
	// ErrTokenExpired means the token verified but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers bad signatures and malformed tokens.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims carried by both token kinds. Roles is only set on access tokens
// so the admin gate needs no directory lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID string        `json:"uid"`
	Roles  []models.Role `json:"roles,omitempty"`
}

// TokenManager signs and verifies access and refresh tokens. The two kinds
// use distinct secrets, so one can never pass for the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     15 * time.Minute,
		refreshTTL:    24 * time.Hour,
	}
}

// RefreshTTL is the refresh token lifetime; the cookie max-age matches it.
func (tm *TokenManager) RefreshTTL() time.Duration {
	return tm.refreshTTL
}

// CreateAccessToken issues a short-lived token carrying the user id and
// role set.
func (tm *TokenManager) CreateAccessToken(userID string, roles []models.Role) (string, error) {
	return tm.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.accessTTL)),
		},
		UserID: userID,
		Roles:  roles,
	}, tm.accessSecret)
}

// CreateRefreshToken issues a 1-day token bound to the user id only.
func (tm *TokenManager) CreateRefreshToken(userID string) (string, error) {
	return tm.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.refreshTTL)),
		},
		UserID: userID,
	}, tm.refreshSecret)
}

func (tm *TokenManager) VerifyAccessToken(token string) (*Claims, error) {
	return tm.parse(token, tm.accessSecret)
}

func (tm *TokenManager) VerifyRefreshToken(token string) (*Claims, error) {
	return tm.parse(token, tm.refreshSecret)
}

func (tm *TokenManager) sign(claims Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (tm *TokenManager) parse(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// enforce HMAC signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
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
	return claims, nil
}
