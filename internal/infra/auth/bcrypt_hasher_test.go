package auth

import (
	"testing"

	"gatehouse/config"
	domainerrors "gatehouse/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasherConfig(cost int) *config.Config {
	cfg := &config.Config{}
	cfg.Auth.BcryptCost = cost

	return cfg
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher, err := NewBcryptHasher(newTestHasherConfig(bcrypt.MinCost))
	require.NoError(t, err)

	password := "Password1!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Correct password
	assert.True(t, hasher.Check(password, hash))

	// Wrong password
	assert.False(t, hasher.Check("WrongPassword1!", hash))

	// Empty password
	assert.False(t, hasher.Check("", hash))

	// Malformed digest never panics or errors, it only reports false
	assert.False(t, hasher.Check(password, "not-a-bcrypt-digest"))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	customCost := 6 // Low cost keeps the test fast
	hasher, err := NewBcryptHasher(newTestHasherConfig(customCost))
	require.NoError(t, err)

	hash, err := hasher.Hash("Password1!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_RejectsCostBelowFloor(t *testing.T) {
	for _, cost := range []int{1, 2, 3, -1} {
		_, err := NewBcryptHasher(newTestHasherConfig(cost))
		assert.Error(t, err, "cost %d must be rejected", cost)
		assert.True(t, errors.Is(err, domainerrors.ErrConfiguration))
	}
}

func TestBcryptHasher_RejectsCostAboveCeiling(t *testing.T) {
	_, err := NewBcryptHasher(newTestHasherConfig(bcrypt.MaxCost + 1))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrConfiguration))
}

func TestBcryptHasher_DistinctSaltsPerHash(t *testing.T) {
	hasher, err := NewBcryptHasher(newTestHasherConfig(bcrypt.MinCost))
	require.NoError(t, err)

	first, err := hasher.Hash("Password1!")
	require.NoError(t, err)
	second, err := hasher.Hash("Password1!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("Password1!", first))
	assert.True(t, hasher.Check("Password1!", second))
}
