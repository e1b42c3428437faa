// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account. The
// validate tags are enforced at the delivery boundary before the core runs;
// the password rule requires at least 8 characters with a letter, a digit
// and a symbol.
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=3"`
	Password string `json:"password" validate:"required,password"`
}

// SignInInput defines the data required to sign in. Only presence is
// validated here; wrong shape and wrong credentials must be indistinguishable
// beyond the generic unauthorized outcome.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// PublicAccount is the projection of an account that may leave the service.
// The password hash never appears here.
type PublicAccount struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthOutput is the shared result shape of signup and signin.
type AuthOutput struct {
	User        *PublicAccount `json:"user"`
	AccessToken string         `json:"accessToken"`
}

// CredentialUsecase defines the interface for the credential issuance and
// validation pipeline. This is the contract the delivery layer depends on.
type CredentialUsecase interface {
	// SignUp registers a new account and issues its first access token.
	// Fails with the domain's duplicate-account error when the normalized
	// email is already registered.
	SignUp(ctx context.Context, input *SignUpInput) (*AuthOutput, error)

	// SignIn verifies credentials and issues a fresh access token. Unknown
	// email and wrong password produce the same invalid-credentials error.
	SignIn(ctx context.Context, input *SignInInput) (*AuthOutput, error)

	// ValidateIdentity resolves a token subject to a live account. Malformed
	// ids and missing accounts both collapse to invalid credentials, so a
	// token never acts as an existence oracle.
	ValidateIdentity(ctx context.Context, accountID string) (*PublicAccount, error)
}
