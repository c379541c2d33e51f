package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/response"
	"grocerystore/internal/users"
)

// GetMe returns the signed-in user.
func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c, "User login required.")
		if !ok {
			return
		}
		response.OK(c, http.StatusOK, "", user)
	}
}

func GetUser(svc *users.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "GET /user/:_id")

		viewer, ok := requireUser(c, "User login required.")
		if !ok {
			return
		}
		user, err := svc.Get(c.Request.Context(), viewer, c.Param("_id"))
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, "", user)
	}
}

func UpdateUser(svc *users.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "PUT /user/:_id")

		viewer, ok := requireUser(c, "User login required.")
		if !ok {
			return
		}
		body, err := readBody(c)
		if err != nil {
			response.Fail(c, err)
			return
		}
		user, err := svc.Update(c.Request.Context(), viewer, c.Param("_id"), body)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, "User successfully updated.", user)
	}
}

func DeleteUser(svc *users.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "DELETE /user/:_id")

		viewer, ok := requireUser(c, "User login required.")
		if !ok {
			return
		}
		user, err := svc.Delete(c.Request.Context(), viewer, c.Param("_id"))
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, fmt.Sprintf("User %s has been successfully removed.", user.Email), nil)
	}
}
