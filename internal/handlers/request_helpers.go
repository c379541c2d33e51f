package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grocerystore/internal/middleware"
	"grocerystore/internal/models"
	"grocerystore/internal/response"
)

const maxBodyBytes = 1 << 20

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		zap.L().Error("panic recovered", zap.String("route", route), zap.Any("panic", r))
		response.Fail(c, fmt.Errorf("panic in %s: %v", route, r))
	}
}

// readBody returns the raw request body, capped at maxBodyBytes.
func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		return nil, response.New(response.InputError, "Request body could not be read.")
	}
	return body, nil
}

// requireUser returns the caller attached by the auth middleware. The
// middleware normally rejects anonymous calls first.
func requireUser(c *gin.Context, message string) (models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, response.New(response.Unauthorized, message))
		return models.User{}, false
	}
	return user, true
}
