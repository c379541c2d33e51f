package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const genericServerError = "Unexpected server-side error."

var statusDescription = map[int]string{
	http.StatusOK:                  "OK",
	http.StatusCreated:             "Created",
	http.StatusBadRequest:          "Bad Request.",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found.",
	http.StatusConflict:            "Conflict",
	http.StatusInternalServerError: "Internal Server Error",
	http.StatusServiceUnavailable:  "Service Unavailable",
}

// ErrorBody is the error member of the envelope.
type ErrorBody struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Envelope is the uniform response payload.
type Envelope struct {
	Status     string      `json:"status,omitempty"`
	StatusCode int         `json:"statusCode"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// Build assembles an envelope for statusCode.
func Build(statusCode int, message string, data interface{}) Envelope {
	return Envelope{
		Status:     statusDescription[statusCode],
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}
}

// ErrorEnvelope renders err, hiding the message of server-side failures.
func ErrorEnvelope(err error) Envelope {
	status := StatusCode(err)
	title := string(KindOf(err))
	message := err.Error()
	var appErr *Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if title == "" {
		title = "Error"
	}
	if status == http.StatusInternalServerError {
		message = genericServerError
	}

	env := Build(status, "", nil)
	env.Error = &ErrorBody{Title: title, Message: message}
	return env
}

// OK sends a success envelope.
func OK(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Build(statusCode, message, data))
}

// Fail sends err as an error envelope and aborts the chain. Server-side
// failures are logged with the original error.
func Fail(c *gin.Context, err error) {
	env := ErrorEnvelope(err)
	if env.StatusCode == http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
	}
	c.AbortWithStatusJSON(env.StatusCode, env)
}
