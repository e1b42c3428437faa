// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "gatehouse/internal/delivery/context"
	"gatehouse/internal/domain/entity"
	domainerrors "gatehouse/internal/domain/errors"
	"gatehouse/internal/domain/repository"
	"gatehouse/internal/domain/service"
	"gatehouse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// credentialService implements the CredentialUsecase interface. It is the
// only component with business rules: it orchestrates hashing, persistence
// and token issuance but owns no cross-request mutable state.
type credentialService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// CredentialServiceParams holds dependencies for credentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewCredentialService is the constructor for credentialService. It receives all dependencies as interfaces.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	return &credentialService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp orchestrates the complete registration process: normalize, reject
// duplicates, hash, persist, issue the first token.
func (srv *credentialService) SignUp(ctx context.Context, input *usecase.SignUpInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting signup", slog.String("email", email))

	// The unique index remains the source of truth for races; this lookup
	// only gives the common case a friendly early exit.
	_, err := srv.accountRepo.FindByEmail(ctx, email)
	if err == nil {
		srv.log(ctx).Warn("Signup attempt with existing email", slog.String("email", email))

		return nil, domainerrors.ErrDuplicateAccount.WrapMessage("email already registered")
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	account := &entity.Account{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: passwordHash,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		// A concurrent signup may have won the race; the repository already
		// mapped the unique violation to the duplicate-account error.
		return nil, errors.Wrap(err, "failed to create account during signup")
	}

	output, err := srv.issueFor(account)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during signup", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Account created", slog.Any("accountID", account.ID), slog.String("email", email))

	return output, nil
}

// SignIn verifies credentials and issues a fresh access token.
func (srv *credentialService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting signin", slog.String("email", email))

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// Same error as a wrong password: account existence must not leak.
			srv.log(ctx).Warn("Signin attempt with unknown email", slog.String("email", email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("signin failed")
		}

		return nil, errors.Wrap(err, "failed to load account for signin")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Signin attempt with invalid password", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("signin failed")
	}

	output, err := srv.issueFor(account)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during signin", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Account signed in", slog.Any("accountID", account.ID))

	return output, nil
}

// ValidateIdentity resolves a token subject to a live account. Used by the
// access gate after signature verification: a token must stop working the
// moment its account no longer exists.
func (srv *credentialService) ValidateIdentity(ctx context.Context, accountID string) (*usecase.PublicAccount, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		// A malformed id collapses into the same outcome as a missing
		// account; the caller learns nothing about why.
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("account not found")
	}

	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("account not found")
		}

		return nil, errors.Wrap(err, "failed to resolve account identity")
	}

	return toPublicAccount(account), nil
}

func (srv *credentialService) issueFor(account *entity.Account) (*usecase.AuthOutput, error) {
	accessToken, err := srv.tokenService.Issue(account.ID, account.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &usecase.AuthOutput{
		User:        toPublicAccount(account),
		AccessToken: accessToken,
	}, nil
}

func toPublicAccount(account *entity.Account) *usecase.PublicAccount {
	return &usecase.PublicAccount{
		ID:    account.ID.String(),
		Email: account.Email,
		Name:  account.Name,
	}
}

// normalizeEmail canonicalizes an email before uniqueness checks and lookups.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
