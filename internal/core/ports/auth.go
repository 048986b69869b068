package ports

import "github.com/userhub/user-directory/internal/core/domain"

// PasswordHasher produces and verifies salted one-way password digests.
// Verify must delegate to a vetted constant-time primitive.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// Claims are the identity fields embedded in a token.
type Claims struct {
	UserID   string
	Username string
}

// TokenIssuer creates and verifies signed, time-bounded bearer tokens.
//
// There is no revocation: a token stays valid for its full ttl regardless of
// later account changes. Stronger guarantees are layered on externally (see
// the redis denylist).
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	// Verify returns the embedded claims, domain.ErrTokenExpired when the
	// token is past its expiry, or domain.ErrTokenInvalid for any other
	// failure (bad signature, wrong algorithm, malformed token).
	Verify(token string) (*Claims, error)
}
