package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-directory/internal/api/metrics"
	"github.com/userhub/user-directory/internal/core/domain"
	"github.com/userhub/user-directory/internal/core/ports"
)

// identityKey is the echo context key holding the *domain.Identity.
const identityKey = "identity"

// TokenDenylist abstracts the optional revocation store. A nil denylist means
// tokens are honored for their full ttl.
type TokenDenylist interface {
	IsDenied(ctx context.Context, userID string) (bool, error)
}

// Identity resolves the optional bearer token into a request identity.
//
// No Authorization header means the request proceeds anonymously; every
// operation is reachable without credentials and the field gate handles what
// an anonymous caller may see. A header that is present but malformed,
// unverifiable or expired is rejected with 401.
func Identity(issuer ports.TokenIssuer, denylist TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := issuer.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if denylist != nil {
				denied, err := denylist.IsDenied(c.Request().Context(), claims.UserID)
				if err == nil && denied {
					metrics.TokenVerificationsTotal.WithLabelValues("denied").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
				// A denylist lookup failure falls through: availability over
				// revocation strictness.
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(identityKey, &domain.Identity{
				UserID:   claims.UserID,
				Username: claims.Username,
			})
			return next(c)
		}
	}
}

// IdentityFrom returns the caller identity set by the Identity middleware,
// or nil when the request is anonymous.
func IdentityFrom(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}
