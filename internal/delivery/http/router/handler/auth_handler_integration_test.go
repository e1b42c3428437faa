package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"gatehouse/config"
	"gatehouse/internal/delivery/http/middleware"
	"gatehouse/internal/delivery/http/router"
	"gatehouse/internal/delivery/http/router/handler"
	"gatehouse/internal/delivery/http/validator"
	"gatehouse/internal/domain/entity"
	domainerrors "gatehouse/internal/domain/errors"
	"gatehouse/internal/domain/repository"
	"gatehouse/internal/infra/auth"
	"gatehouse/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryAccountRepository mimics the accounts table including its unique
// index on email, which is all the flow tests need from persistence.
type memoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func newMemoryAccountRepository() *memoryAccountRepository {
	return &memoryAccountRepository{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *memoryAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return domainerrors.ErrDuplicateAccount
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := *account
	r.accounts[account.ID] = &stored

	return nil
}

func (r *memoryAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email {
			found := *account

			return &found, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *memoryAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	found := *account

	return &found, nil
}

func (r *memoryAccountRepository) delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.accounts, id)
}

func newTestServer(t *testing.T) (*echo.Echo, *memoryAccountRepository) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth.SigningSecret = "flow-test-secret"
	cfg.Auth.TokenTTL = time.Hour
	// Minimum cost keeps the bcrypt work factor test-friendly.
	cfg.Auth.BcryptCost = 4

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hasher, err := auth.NewBcryptHasher(cfg)
	require.NoError(t, err)
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	repo := newMemoryAccountRepository()
	credentials := impl.NewCredentialService(impl.CredentialServiceParams{
		AccountRepo:  repo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthMiddlewareParams{
		TokenService: tokenService,
		Credentials:  credentials,
		Logger:       logger,
	})
	errorMiddleware := middleware.NewErrorMiddleware(middleware.ErrorMiddlewareParams{Logger: logger})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = errorMiddleware.HandleHTTPError

	r := router.NewRouter(router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			Credentials: credentials,
			Logger:      logger,
		}),
		ProtectedHandler: handler.NewProtectedHandler(),
		AuthMiddleware:   authMiddleware,
	})
	r.RegisterRoutes(e)

	return e, repo
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Success bool           `json:"success"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

func TestCredentialFlow(t *testing.T) {
	e, repo := newTestServer(t)

	// Signup issues an immediately usable token.
	rec := doJSON(e, http.MethodPost, "/auth/signup",
		`{"email":"a@x.com","name":"Ann Lee","password":"Password1!"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	signupEnv := decode(t, rec)
	assert.True(t, signupEnv.Success)
	user, ok := signupEnv.Data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "Ann Lee", user["name"])
	assert.NotEmpty(t, user["id"])
	signupToken, ok := signupEnv.Data["accessToken"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, signupToken)
	assert.NotContains(t, rec.Body.String(), "Password1!")

	// Same email again, even with different casing, conflicts.
	rec = doJSON(e, http.MethodPost, "/auth/signup",
		`{"email":"A@X.com","name":"Ann Lee","password":"Password1!"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	dupEnv := decode(t, rec)
	require.NotNil(t, dupEnv.Error)
	assert.Equal(t, "DUPLICATE_ACCOUNT", dupEnv.Error.Code)

	// Signin with the right password succeeds.
	rec = doJSON(e, http.MethodPost, "/auth/signin",
		`{"email":"a@x.com","password":"Password1!"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	signinEnv := decode(t, rec)
	signinToken, ok := signinEnv.Data["accessToken"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, signinToken)

	// The issued token opens the gate.
	rec = doJSON(e, http.MethodGet, "/protected/welcome", "", signinToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	welcomeEnv := decode(t, rec)
	assert.Equal(t, "Welcome to the application", welcomeEnv.Data["message"])
	welcomeUser, ok := welcomeEnv.Data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", welcomeUser["email"])

	// Without a token the same route stays shut.
	rec = doJSON(e, http.MethodGet, "/protected/welcome", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The profile route reflects the token's identity.
	rec = doJSON(e, http.MethodGet, "/protected/me", "", signupToken)
	require.Equal(t, http.StatusOK, rec.Code)
	meEnv := decode(t, rec)
	assert.Equal(t, "a@x.com", meEnv.Data["email"])
	assert.Equal(t, "Ann Lee", meEnv.Data["name"])

	// A token whose account has vanished is rejected like any other bad token.
	accountID, err := uuid.Parse(user["id"].(string))
	require.NoError(t, err)
	repo.delete(accountID)
	rec = doJSON(e, http.MethodGet, "/protected/welcome", "", signinToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	vanishedEnv := decode(t, rec)
	require.NotNil(t, vanishedEnv.Error)
	assert.Equal(t, "UNAUTHORIZED", vanishedEnv.Error.Code)
}

func TestSignIn_FailuresAreIndistinguishable(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/signup",
		`{"email":"a@x.com","name":"Ann Lee","password":"Password1!"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := doJSON(e, http.MethodPost, "/auth/signin",
		`{"email":"a@x.com","password":"WrongPass1!"}`, "")
	unknownEmail := doJSON(e, http.MethodPost, "/auth/signin",
		`{"email":"nobody@x.com","password":"Password1!"}`, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)

	wrongEnv := decode(t, wrongPassword)
	unknownEnv := decode(t, unknownEmail)
	require.NotNil(t, wrongEnv.Error)
	require.NotNil(t, unknownEnv.Error)
	assert.Equal(t, wrongEnv.Error.Code, unknownEnv.Error.Code)
	assert.Equal(t, wrongEnv.Message, unknownEnv.Message)
}

func TestSignUp_RejectsInvalidInput(t *testing.T) {
	e, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed email", body: `{"email":"not-an-email","name":"Ann Lee","password":"Password1!"}`},
		{name: "short name", body: `{"email":"a@x.com","name":"Al","password":"Password1!"}`},
		{name: "weak password", body: `{"email":"a@x.com","name":"Ann Lee","password":"password"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/auth/signup", tt.body, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		})
	}
}

func TestSignUp_RejectsMalformedBody(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/signup", `{"email":`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestHealthCheck(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "ok", env.Data["status"])
}
