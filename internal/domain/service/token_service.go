package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by an access token. The account id
// travels in the registered "sub" claim; the email is the only custom claim.
// Tokens are signed, not encrypted, so nothing beyond what is already known
// to the bearer may be embedded here.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AccountID parses the subject claim back into an account id.
func (c *Claims) AccountID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService defines the interface for issuing and verifying stateless
// bearer tokens. A token has exactly three states: issued, valid until its
// expiry, expired. There is no revocation.
type TokenService interface {
	// Issue creates a signed access token for the given account.
	Issue(accountID uuid.UUID, email string) (string, error)

	// Verify checks signature and expiry and returns the embedded claims.
	// Malformed, tampered and expired tokens all fail with the same error.
	Verify(tokenString string) (*Claims, error)

	// AccessTokenTTL returns the configured token lifetime.
	AccessTokenTTL() time.Duration
}
