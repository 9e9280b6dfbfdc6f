package utils // package utils provides helper functions for token creation

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// OperatorToken represents a signed JWT granting access to the
// provisioning and maintenance endpoints.  The Token field contains
// the JWT string; Exp stores the expiration timestamp.  Operator
// tokens are issued out of band with cmd/optoken and sent in the
// Authorization header.
type OperatorToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewOperatorToken builds and signs an HS256 JWT carrying the
// OPERATOR role.  It takes the signing secret, a subject naming the
// operator (for request logs) and the token lifetime.  The JWT
// includes standard claims: subject (sub), role, expiration (exp)
// and issued at (iat).
func NewOperatorToken(secret, subject string, ttl time.Duration) (OperatorToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": "OPERATOR",
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return OperatorToken{}, err
	}
	return OperatorToken{Token: signed, Exp: exp}, nil
}
