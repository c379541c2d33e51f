package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/models"
	"grocerystore/internal/response"
)

const userKey = "user"

// Authenticator resolves a bearer token to the signed-in user.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (models.User, error)
}

// AuthGuard loads the caller from the Authorization header. When required
// is false a missing header is allowed through; a present but invalid one
// is still rejected.
func AuthGuard(auth Authenticator, required bool, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			if !required {
				c.Next()
				return
			}
			abort(c, response.New(response.Unauthorized, unauthorizedMessage(allowedRoles)))
			return
		}

		parts := strings.Fields(raw)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, response.New(response.Unauthorized, "Authorization header must use the Bearer scheme."))
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			abort(c, err)
			return
		}

		if len(allowedRoles) > 0 && !hasRole(user, allowedRoles) {
			abort(c, response.New(response.Forbidden, "Only user with Administrator rights can perform this action."))
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// AdminAuth admits Administrator accounts only.
func AdminAuth(auth Authenticator) gin.HandlerFunc {
	return AuthGuard(auth, true, models.UserTypeAdministrator)
}

// OptionalAuth attaches the caller when a token is sent.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return AuthGuard(auth, false)
}

// CurrentUser returns the user attached by one of the guards.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

func hasRole(user models.User, roles []string) bool {
	for _, r := range roles {
		if user.Type == r {
			return true
		}
	}
	return false
}

func unauthorizedMessage(roles []string) string {
	if len(roles) > 0 {
		return "Administrator authentication required to perform this action."
	}
	return "User login required."
}

func abort(c *gin.Context, err error) {
	response.Fail(c, err)
}
