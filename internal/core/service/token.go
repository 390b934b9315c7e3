package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

var errTokenInvalid = errors.New("session token invalid")

// SessionClaims is the signed payload of a session token. ID carries the
// session id; Subject the user id.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
}

func NewTokenIssuer(secret, issuer string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), issuer: issuer}
}

// Issue signs a token referencing s.
func (t *TokenIssuer) Issue(s *domain.Session) (string, error) {
	claims := SessionClaims{
		Role: string(s.Identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   s.Identity.UserID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the claims.
func (t *TokenIssuer) Parse(token string) (*SessionClaims, error) {
	return t.parse(token, jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
	))
}

// ParseUnverifiedExpiry verifies the signature only. Logout uses it so an
// expired token can still clear its record.
func (t *TokenIssuer) ParseUnverifiedExpiry(token string) (*SessionClaims, error) {
	return t.parse(token, jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	))
}

func (t *TokenIssuer) parse(token string, parser *jwt.Parser) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tkn, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errTokenInvalid, err)
	}
	if !tkn.Valid || claims.ID == "" {
		return nil, errTokenInvalid
	}
	return claims, nil
}
