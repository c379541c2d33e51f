package middleware

import "github.com/gin-gonic/gin"

// UserAuth requires a signed-in user of any type.
func UserAuth(auth Authenticator) gin.HandlerFunc {
	return AuthGuard(auth, true)
}
