// Package token issues and verifies the signed bearer credentials used across
// requests. A token is stateless: it is reconstructible from its signature
// alone, there is no server-side session table.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub/user-directory/internal/core/domain"
	"github.com/userhub/user-directory/internal/core/ports"
)

const defaultTTL = 24 * time.Hour

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTIssuer implements ports.TokenIssuer over HS256. The algorithm is fixed
// and the secret is taken once at construction, never from ambient state.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTIssuer fails with domain.ErrMissingSecret when the secret is empty;
// callers treat that as fatal at startup, not per-request.
func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, domain.ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}, nil
}

func (j *JWTIssuer) Issue(user *domain.User) (string, error) {
	now := time.Now()
	c := claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secret)
}

func (j *JWTIssuer) Verify(tokenString string) (*ports.Claims, error) {
	var c claims
	tkn, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		// Reject anything but the single fixed algorithm so alg/key confusion
		// is structurally impossible.
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return j.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return &ports.Claims{UserID: c.Subject, Username: c.Username}, nil
}
