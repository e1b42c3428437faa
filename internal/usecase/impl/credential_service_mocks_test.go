package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"gatehouse/internal/domain/entity"
	"gatehouse/internal/domain/service"
	"gatehouse/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Hand-written testify mocks for the credential service's collaborators.

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if account, ok := args.Get(0).(*entity.Account); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if account, ok := args.Get(0).(*entity.Account); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(accountID uuid.UUID, email string) (string, error) {
	args := m.Called(accountID, email)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Verify(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTokenService) AccessTokenTTL() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// credentialServiceFixtures holds all test dependencies for credential service tests.
type credentialServiceFixtures struct {
	service      usecase.CredentialUsecase
	accountRepo  *mockAccountRepository
	hasher       *mockPasswordHasher
	tokenService *mockTokenService
}

func createTestCredentialService() credentialServiceFixtures {
	accountRepo := &mockAccountRepository{}
	hasher := &mockPasswordHasher{}
	tokenService := &mockTokenService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewCredentialService(CredentialServiceParams{
		AccountRepo:  accountRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	return credentialServiceFixtures{
		service:      service,
		accountRepo:  accountRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}
