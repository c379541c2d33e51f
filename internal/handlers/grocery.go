package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/catalog"
	"grocerystore/internal/response"
)

func GetGroceries(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /grocery"
		defer handlePanic(c, route)

		groceries, err := svc.Search(c.Request.Context(), c.Request.URL.Query())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, "", groceries)
	}
}

func CreateGrocery(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /grocery"
		defer handlePanic(c, route)

		body, err := readBody(c)
		if err != nil {
			response.Fail(c, err)
			return
		}
		grocery, err := svc.Create(c.Request.Context(), body)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusCreated, "Grocery item successfully created.", grocery)
	}
}

func UpdateGrocery(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /grocery/:_id"
		defer handlePanic(c, route)

		body, err := readBody(c)
		if err != nil {
			response.Fail(c, err)
			return
		}
		grocery, err := svc.Update(c.Request.Context(), c.Param("_id"), body)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, "Grocery item successfully updated.", grocery)
	}
}

func GetCategories(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "GET /category")

		categories, err := svc.Categories(c.Request.Context())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, "", categories)
	}
}
