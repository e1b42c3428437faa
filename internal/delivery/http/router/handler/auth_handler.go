// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"gatehouse/internal/delivery/http/response"
	"gatehouse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandler holds dependencies for the credential endpoints.
type AuthHandler struct {
	uc     usecase.CredentialUsecase
	logger *slog.Logger
}

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Credentials usecase.CredentialUsecase
	Logger      *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		uc:     params.Credentials,
		logger: params.Logger,
	}
}

// SignUp handles account registration.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var input *usecase.SignUpInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.SignUp(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	// The password hash never leaves the usecase layer.
	return response.Success(c, http.StatusCreated, output, "Account registered successfully")
}

// SignIn handles credential verification and token issuance.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var input *usecase.SignInInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signin input")
	}

	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.SignIn(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Signed in successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
