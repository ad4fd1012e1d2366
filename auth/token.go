// Package auth issues and verifies the bearer tokens that guard the admin
// mode, and manages the admin accounts behind them.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
)

// ErrNotConfigured is returned by a TokenIssuer without a signing secret.
// Nothing is issued or accepted in that state.
var ErrNotConfigured = errors.New("token signing secret is not configured")

const issuer = "portfolio-backend"

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Info rebuilds the public user view carried by the token
func (c *Claims) Info() models.UserInfo {
	id, _ := uuid.Parse(c.Subject)
	return models.UserInfo{ID: id, Email: c.Email, Name: c.Name, Role: c.Role}
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *TokenIssuer) Configured() bool {
	return len(i.secret) > 0
}

// Issue signs an HS256 token for user
func (i *TokenIssuer) Issue(user models.UserInfo) (string, error) {
	if !i.Configured() {
		return "", ErrNotConfigured
	}

	now := i.now()
	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and checks its signature, issuer and expiry. Only HS256
// is accepted.
func (i *TokenIssuer) Verify(token string) (*Claims, error) {
	if !i.Configured() {
		return nil, ErrNotConfigured
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}
	return claims, nil
}
