package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/auth"
	"grocerystore/internal/middleware"
	"grocerystore/internal/models"
	"grocerystore/internal/response"
)

type session struct {
	User models.User `json:"user"`
	auth.Tokens
}

// rejectSignedIn stops register and login for a caller that already holds
// a valid access token.
func rejectSignedIn(c *gin.Context) bool {
	if user, ok := middleware.CurrentUser(c); ok {
		response.Fail(c, response.Errorf(response.Conflict, "Email %s is currently logged in. Please log out to proceed.", user.Email))
		return true
	}
	return false
}

func Register(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "POST /user/register")

		if rejectSignedIn(c) {
			return
		}
		body, err := readBody(c)
		if err != nil {
			response.Fail(c, err)
			return
		}
		user, tokens, err := svc.Register(c.Request.Context(), body)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusCreated, fmt.Sprintf("User %s successfully registered.", user.Email), session{User: user, Tokens: tokens})
	}
}

func Login(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "POST /user/login")

		if rejectSignedIn(c) {
			return
		}
		body, err := readBody(c)
		if err != nil {
			response.Fail(c, err)
			return
		}
		user, tokens, err := svc.Login(c.Request.Context(), body)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, "User successfully logged in.", session{User: user, Tokens: tokens})
	}
}

func Refresh(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "POST /user/refresh")

		body, err := readBody(c)
		if err != nil {
			response.Fail(c, err)
			return
		}
		user, tokens, err := svc.Refresh(c.Request.Context(), body)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, "", session{User: user, Tokens: tokens})
	}
}

func Logout(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "POST /user/logout")

		body, err := readBody(c)
		if err != nil {
			response.Fail(c, err)
			return
		}
		email, err := svc.Logout(c.Request.Context(), body)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, fmt.Sprintf("User %s has been logged out.", email), nil)
	}
}
