package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"grocerystore/internal/auth"
	"grocerystore/internal/cart"
	"grocerystore/internal/catalog"
	"grocerystore/internal/metrics"
	"grocerystore/internal/middleware"
	"grocerystore/internal/orders"
	"grocerystore/internal/repository"
	"grocerystore/internal/users"
)

// Deps are the services the routes call into.
type Deps struct {
	Catalog *catalog.Service
	Carts   *cart.Service
	Orders  *orders.Service
	Auth    *auth.Service
	Users   *users.Service
	Health  repository.Pinger
	Log     *zap.Logger
}

// NewRouter wires every route onto a fresh engine.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(d.Log), metrics.Middleware())

	optional := middleware.OptionalAuth(d.Auth)
	signedIn := middleware.UserAuth(d.Auth)
	admin := middleware.AdminAuth(d.Auth)

	r.GET("/health", Health(d.Health))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/grocery", GetGroceries(d.Catalog))
	r.POST("/grocery", admin, CreateGrocery(d.Catalog))
	r.PUT("/grocery/:_id", admin, UpdateGrocery(d.Catalog))
	r.GET("/category", GetCategories(d.Catalog))

	r.POST("/order", signedIn, CreateOrder(d.Orders))
	r.GET("/order", signedIn, GetOrders(d.Orders))
	r.GET("/order/:_id", signedIn, GetOrder(d.Orders))
	r.DELETE("/order/:_id", admin, CancelOrder(d.Orders))

	r.GET("/saved-cart", signedIn, GetSavedCart(d.Carts))
	r.POST("/saved-cart", signedIn, SaveCart(d.Carts))

	user := r.Group("/user")
	{
		user.POST("/register", optional, Register(d.Auth))
		user.POST("/login", optional, Login(d.Auth))
		user.POST("/refresh", Refresh(d.Auth))
		user.POST("/logout", Logout(d.Auth))

		user.GET("/me", signedIn, GetMe())
		user.GET("/:_id", signedIn, GetUser(d.Users))
		user.PUT("/:_id", signedIn, UpdateUser(d.Users))
		user.DELETE("/:_id", signedIn, DeleteUser(d.Users))
	}

	return r
}
