// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"gatehouse/internal/delivery/http/middleware"
	"gatehouse/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	ProtectedHandler *handler.ProtectedHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	protectedHandler *handler.ProtectedHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		protectedHandler: params.ProtectedHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Credential routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.POST("/signin", r.authHandler.SignIn)
	}

	// Routes behind the access gate
	protectedGroup := e.Group("/protected")
	protectedGroup.Use(r.authMiddleware.Authenticate)
	{
		protectedGroup.GET("/welcome", r.protectedHandler.Welcome)
		protectedGroup.GET("/me", r.protectedHandler.Me)
	}
}
