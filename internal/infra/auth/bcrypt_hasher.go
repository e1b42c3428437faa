// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"gatehouse/config"
	domainerrors "gatehouse/internal/domain/errors"
	"gatehouse/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher. The configured cost is
// validated up front: a cost below bcrypt's floor of 4 means a misconfigured
// deployment, and the service must refuse to start instead of silently
// hashing with weak parameters.
func NewBcryptHasher(cfg *config.Config) (service.PasswordHasher, error) {
	return newBcryptHasherWithCost(cfg.Auth.BcryptCost)
}

func newBcryptHasherWithCost(cost int) (service.PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, domainerrors.ErrConfiguration.WrapMessage(
			"bcrypt cost must be between 4 and 31")
	}

	return &bcryptHasher{cost: cost}, nil
}

// Hash generates a salted digest from a plaintext password using bcrypt.
// bcrypt handles salt generation and embeds algorithm, cost and salt in the
// digest itself.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt digest. The comparison
// inside bcrypt is constant-time; any failure, including a malformed digest,
// reports false.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}
