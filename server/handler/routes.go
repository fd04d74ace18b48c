package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/secureapi/authz"
	"github.com/skillsenselab/secureapi/server/middleware"
)

// RouteDeps carries everything route registration needs.
type RouteDeps struct {
	Auth     *AuthHandler
	Products *ProductHandler

	// Gate is the request authentication middleware for the /api/v1 group.
	Gate gin.HandlerFunc

	// Checker answers permission checks for the product routes.
	Checker middleware.Checker

	// LoginLimiter throttles the login endpoint; nil disables throttling.
	LoginLimiter gin.HandlerFunc
}

// RegisterRoutes mounts the API routes on the engine.
//
// Every /api/v1 request passes through the authentication gate first. The
// gate only establishes identity; each route group then states its own
// requirement, so an endpoint without an explicit requirement is public.
func RegisterRoutes(engine *gin.Engine, deps RouteDeps) {
	api := engine.Group("/api/v1")
	api.Use(deps.Gate)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", deps.Auth.Register)
	if deps.LoginLimiter != nil {
		authGroup.POST("/login", deps.LoginLimiter, deps.Auth.Login)
	} else {
		authGroup.POST("/login", deps.Auth.Login)
	}

	products := api.Group("/products")
	products.GET("", middleware.RequirePermission(deps.Checker, authz.PermProductRead), deps.Products.List)
	products.POST("", middleware.RequirePermission(deps.Checker, authz.PermProductCreate), deps.Products.Create)
	products.DELETE("/:id", middleware.RequirePermission(deps.Checker, authz.PermProductDelete), deps.Products.Delete)
}
