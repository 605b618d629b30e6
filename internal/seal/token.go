package seal

import (
	"fmt"

	"github.com/atinyakov/sentcrypt/internal/secure"
)

// Sealer runs the full pipeline: fresh salt and nonce, key derivation,
// AES-GCM and token packing. It keeps no state between calls.
type Sealer struct {
	rand       secure.Random
	iterations int
}

// Option customises a Sealer.
type Option func(*Sealer)

// WithIterations overrides the PBKDF2 work factor. Tokens made with a
// non-default value only open with a Sealer using the same value.
func WithIterations(n int) Option {
	return func(s *Sealer) { s.iterations = n }
}

// NewSealer returns a Sealer drawing salts and nonces from r.
func NewSealer(r secure.Random, opts ...Option) *Sealer {
	s := &Sealer{rand: r, iterations: Iterations}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Encrypt seals plaintext under secret and returns the token text.
func (s *Sealer) Encrypt(secret *secure.Secret, plaintext []byte) (string, error) {
	salt, err := secure.Bytes(s.rand, SaltSize)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	nonce, err := secure.Bytes(s.rand, NonceSize)
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	if secure.IsZero(salt) {
		return "", fmt.Errorf("refusing all-zero salt: %w", secure.ErrPlatformCrypto)
	}

	key, err := DeriveKey(secret.Bytes(), salt, s.iterations)
	if err != nil {
		return "", err
	}
	defer secure.Wipe(key)

	ciphertext, tag, err := Seal(key, nonce, plaintext)
	if err != nil {
		return "", err
	}
	return Pack(Parts{Salt: salt, Nonce: nonce, Ciphertext: ciphertext, Tag: tag}), nil
}

// Decrypt unpacks token, re-derives the key from its salt and opens it.
// A wrong secret and a tampered token both yield secure.ErrAuthentication.
func (s *Sealer) Decrypt(secret *secure.Secret, token string) ([]byte, error) {
	parts, err := Unpack(token)
	if err != nil {
		return nil, err
	}

	key, err := DeriveKey(secret.Bytes(), parts.Salt, s.iterations)
	if err != nil {
		return nil, err
	}
	defer secure.Wipe(key)

	return Open(key, parts.Nonce, parts.Ciphertext, parts.Tag)
}
