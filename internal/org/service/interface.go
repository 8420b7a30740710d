// Package service provides supporting services for the org module.
package service

// TokenService manages API bearer token generation and hashing.
// Only the SHA-256 hash of a token is stored; the plain token is shown
// once at generation time and cannot be recovered.
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token.
	// Returns the plain token and its SHA-256 hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain text token using SHA-256.
	HashToken(plainToken string) string
}
