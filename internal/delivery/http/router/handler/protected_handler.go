package handler

import (
	"net/http"

	"gatehouse/internal/delivery/http/middleware"
	"gatehouse/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// welcomeMessage greets any caller that clears the access gate.
const welcomeMessage = "Welcome to the application"

// ProtectedHandler serves routes behind the access gate.
type ProtectedHandler struct{}

// NewProtectedHandler creates a new ProtectedHandler instance
func NewProtectedHandler() *ProtectedHandler {
	return &ProtectedHandler{}
}

// Welcome greets the authenticated caller.
func (h *ProtectedHandler) Welcome(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or missing credentials")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"message": welcomeMessage,
		"user":    identity,
	}, "Welcome")
}

// Me returns the authenticated caller's public profile.
func (h *ProtectedHandler) Me(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or missing credentials")
	}

	return response.Success(c, http.StatusOK, identity, "Profile retrieved successfully")
}
