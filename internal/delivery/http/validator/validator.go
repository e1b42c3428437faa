// Package validator adapts go-playground/validator to echo's Validator
// interface and registers the project's custom rules.
package validator

import (
	"strings"
	"unicode"

	domainerrors "gatehouse/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// passwordSymbols is the set of characters accepted as the required symbol.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

const minPasswordLength = 8

type echoValidator struct {
	validate *validator.Validate
}

// New builds the request validator used by the HTTP boundary.
func New() *echoValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for a blank tag or nil func.
	_ = validate.RegisterValidation("password", validPassword)

	return &echoValidator{validate: validate}
}

// Validate implements echo.Validator. Failures surface as the domain's
// validation error so the central error handler maps them to 400.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}

// validPassword enforces the signup password policy: at least 8 characters
// containing a letter, a digit and a symbol.
func validPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < minPasswordLength {
		return false
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	return hasLetter && hasDigit && hasSymbol
}
