package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avargas/rentals-api/internal/session"
	"github.com/avargas/rentals-api/pkg/errors"
	"github.com/avargas/rentals-api/pkg/httputil"
)

const (
	// HeaderSessionToken carries the opaque session token when the client
	// does not use the Authorization header.
	HeaderSessionToken = "X-Session-Token"

	contextPrincipal = "principal"
)

type AuthMiddleware struct {
	sessions session.Store
}

func NewAuthMiddleware(sessions session.Store) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireAuth resolves the session token and sets the principal in the
// request context. Missing or unknown tokens abort with 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			httputil.RespondWithError(c, errors.Unauthenticated("missing session token"))
			c.Abort()
			return
		}

		principal, err := m.sessions.Get(c.Request.Context(), token)
		if err != nil {
			if err == session.ErrNoSession {
				httputil.RespondWithError(c, errors.Unauthenticated("invalid or expired session"))
			} else {
				httputil.RespondWithError(c, errors.Internal(err))
			}
			c.Abort()
			return
		}

		c.Set(contextPrincipal, principal)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated principal carries
// the administrative flag. Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		if principal == nil {
			httputil.RespondWithError(c, errors.Unauthenticated("missing session token"))
			c.Abort()
			return
		}
		if !principal.Admin {
			httputil.RespondWithError(c, errors.PermissionDenied("administrator access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the authenticated principal, or nil outside an
// authenticated request.
func PrincipalFrom(c *gin.Context) *session.Principal {
	v, ok := c.Get(contextPrincipal)
	if !ok {
		return nil
	}
	principal, ok := v.(*session.Principal)
	if !ok {
		return nil
	}
	return principal
}

// SessionTokenFrom extracts the opaque token from the request.
func SessionTokenFrom(c *gin.Context) string {
	return tokenFrom(c)
}

func tokenFrom(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return c.GetHeader(HeaderSessionToken)
}
