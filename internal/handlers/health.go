package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/repository"
	"grocerystore/internal/response"
)

const healthTimeout = 2 * time.Second

// Health pings the store.
func Health(store repository.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.Build(http.StatusServiceUnavailable, "Database unavailable.", nil))
			return
		}
		response.OK(c, http.StatusOK, "Service healthy.", nil)
	}
}
