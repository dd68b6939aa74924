package security

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token is a signed JWT together with the claims a caller needs to track
// it: the jti for revocation and the expiry for cookie lifetimes.
type Token struct {
	Signed    string
	JTI       string
	ExpiresAt time.Time
}

// MintToken signs an HS256 token for the user with a fresh unique jti,
// issued-at and expiry claims.
func MintToken(secret string, userID int, ttl time.Duration) (Token, error) {
	now := time.Now()
	exp := now.Add(ttl)
	jti := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return Token{}, err
	}

	return Token{Signed: signed, JTI: jti, ExpiresAt: exp}, nil
}

// ParseToken validates the signature and expiry of a token and returns
// its claims. Tokens without a subject or jti are rejected.
func ParseToken(secret, tokenStr string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
