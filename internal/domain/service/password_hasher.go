// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying adaptive hash algorithm (bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password. The digest is
	// self-describing: it encodes the algorithm, cost factor and salt.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a digest in constant time.
	// It never errors on mismatch, it only reports false.
	Check(password, hash string) bool
}
