// Package seal turns a secret and a sentence into a portable token and back.
//
// A token is the URL-safe base64 encoding of
//
//	salt(16) || nonce(12) || ciphertext(len(plaintext)) || tag(16)
//
// where the key is PBKDF2-HMAC-SHA256(secret, salt, Iterations) and the
// cipher is AES-256-GCM without associated data.
package seal

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/atinyakov/sentcrypt/internal/secure"
)

const (
	// SaltSize is the length of the per-token KDF salt.
	SaltSize = 16
	// KeySize is the length of the derived AES-256 key.
	KeySize = 32
	// Iterations is the PBKDF2 work factor. It keeps a single guess in the
	// hundreds of milliseconds on a laptop.
	Iterations = 200_000
)

// DeriveKey stretches secret and salt into a KeySize key. Identical inputs
// always yield the identical key. The caller owns the result and should
// wipe it with secure.Wipe once the cipher call returns.
func DeriveKey(secret, salt []byte, iterations int) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d: %w", SaltSize, len(salt), secure.ErrInvalidArgument)
	}
	if iterations < 1 {
		return nil, fmt.Errorf("iterations must be positive, got %d: %w", iterations, secure.ErrInvalidArgument)
	}
	return pbkdf2.Key(secret, salt, iterations, KeySize, sha256.New), nil
}
