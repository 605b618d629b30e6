package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/atinyakov/sentcrypt/internal/secure"
)

const (
	// NonceSize is the AES-GCM nonce length.
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag length.
	TagSize = 16
)

// newAEAD builds AES-256-GCM for key.
func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d: %w", KeySize, len(key), secure.ErrInvalidArgument)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", secure.ErrPlatformCrypto)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create AEAD: %w", secure.ErrPlatformCrypto)
	}
	return aead, nil
}

func checkNonce(nonce []byte) error {
	if len(nonce) != NonceSize {
		return fmt.Errorf("nonce must be %d bytes, got %d: %w", NonceSize, len(nonce), secure.ErrInvalidArgument)
	}
	return nil
}

// Seal encrypts plaintext under key and nonce and returns the ciphertext and
// its tag separately. The nonce must never have been used with key before;
// an all-zero nonce can only come from a broken source and is refused.
func Seal(key, nonce, plaintext []byte) (ciphertext, tag []byte, err error) {
	if err := checkNonce(nonce); err != nil {
		return nil, nil, err
	}
	if secure.IsZero(nonce) {
		return nil, nil, fmt.Errorf("refusing all-zero nonce: %w", secure.ErrPlatformCrypto)
	}
	aead, err := newAEAD(key)
	if err != nil {
		return nil, nil, err
	}
	out := aead.Seal(nil, nonce, plaintext, nil)
	split := len(out) - TagSize
	return out[:split:split], out[split:], nil
}

// Open verifies tag and only then returns the plaintext. Any mismatch
// yields secure.ErrAuthentication and no plaintext bytes.
func Open(key, nonce, ciphertext, tag []byte) ([]byte, error) {
	if err := checkNonce(nonce); err != nil {
		return nil, err
	}
	if len(tag) != TagSize {
		return nil, fmt.Errorf("tag must be %d bytes, got %d: %w", TagSize, len(tag), secure.ErrInvalidArgument)
	}
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, secure.ErrAuthentication
	}
	return plain, nil
}
