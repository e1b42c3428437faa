// Package middleware contains the HTTP middleware chain: the access gate,
// request identification, request logging and central error handling.
package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "gatehouse/internal/delivery/context"
	"gatehouse/internal/delivery/http/response"
	"gatehouse/internal/domain/service"
	"gatehouse/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ContextKeyIdentity is the echo context key carrying the authenticated
// identity for the duration of one request. Nothing beyond the request's
// lifetime ever references it.
const ContextKeyIdentity = "identity"

const bearerScheme = "Bearer "

// AuthMiddleware is the access gate protecting routes that require a valid
// bearer credential. Every rejection collapses to the same generic 401:
// a client cannot tell a missing header from a tampered or expired token,
// nor from a token whose account has vanished.
type AuthMiddleware struct {
	tokenService service.TokenService
	credentials  usecase.CredentialUsecase
	logger       *slog.Logger
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	Credentials  usecase.CredentialUsecase
	Logger       *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: params.TokenService,
		credentials:  params.Credentials,
		logger:       params.Logger,
	}
}

// Authenticate validates the bearer token and resolves it to a live account.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return m.reject(c, "missing authorization header")
		}

		tokenString := strings.TrimPrefix(header, bearerScheme)
		if tokenString == header || tokenString == "" {
			return m.reject(c, "authorization scheme is not bearer")
		}

		claims, err := m.tokenService.Verify(tokenString)
		if err != nil {
			// Deliberately no distinction between tampered and expired.
			return m.reject(c, "token verification failed")
		}

		// Re-confirm the subject still exists; a token must not outlive its
		// account.
		identity, err := m.credentials.ValidateIdentity(c.Request().Context(), claims.Subject)
		if err != nil {
			return m.reject(c, "token subject not resolvable")
		}

		c.Set(ContextKeyIdentity, identity)

		return next(c)
	}
}

// reject logs the internal reason and answers with the generic unauthorized
// envelope. The reason never reaches the client.
func (m *AuthMiddleware) reject(c echo.Context, reason string) error {
	m.log(c).Debug("Request rejected by access gate",
		slog.String("reason", reason),
		slog.String("path", c.Request().URL.Path),
	)

	return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or missing credentials")
}

func (m *AuthMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}

// IdentityFrom extracts the authenticated identity attached by Authenticate.
func IdentityFrom(c echo.Context) (*usecase.PublicAccount, bool) {
	identity, ok := c.Get(ContextKeyIdentity).(*usecase.PublicAccount)

	return identity, ok
}
