package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/cart"
	"grocerystore/internal/orders"
	"grocerystore/internal/response"
)

func CreateOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /order"
		defer handlePanic(c, route)

		user, ok := requireUser(c, "User login required.")
		if !ok {
			return
		}
		body, err := readBody(c)
		if err != nil {
			response.Fail(c, err)
			return
		}
		ids, err := cart.ValidateOrderRequest(body)
		if err != nil {
			response.Fail(c, err)
			return
		}

		order, err := svc.PlaceOrder(c.Request.Context(), user.ID, ids)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusCreated, "", order)
	}
}

func GetOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "GET /order")

		user, ok := requireUser(c, "User login required.")
		if !ok {
			return
		}
		list, err := svc.ListOrders(c.Request.Context(), user.ID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, "", list)
	}
}

func GetOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "GET /order/:_id")

		user, ok := requireUser(c, "User login required.")
		if !ok {
			return
		}
		detail, err := svc.GetOrder(c.Request.Context(), c.Param("_id"), user)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, "", detail)
	}
}

func CancelOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "DELETE /order/:_id")

		order, err := svc.CancelOrder(c.Request.Context(), c.Param("_id"))
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, fmt.Sprintf("Order %s has been successfully cancelled.", order.ID.Hex()), nil)
	}
}

func GetSavedCart(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "GET /saved-cart")

		user, ok := requireUser(c, "User login required.")
		if !ok {
			return
		}
		groceries, err := svc.GetCart(c.Request.Context(), user.ID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, "", groceries)
	}
}

func SaveCart(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "POST /saved-cart")

		user, ok := requireUser(c, "User login required.")
		if !ok {
			return
		}
		body, err := readBody(c)
		if err != nil {
			response.Fail(c, err)
			return
		}
		ids, err := cart.ValidateCartRequest(body)
		if err != nil {
			response.Fail(c, err)
			return
		}
		if err := svc.SaveCart(c.Request.Context(), user.ID, ids); err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, "Cart saved.", nil)
	}
}
