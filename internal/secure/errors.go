// Package secure holds the pieces shared by the sealing pipeline and the
// passphrase generator: the error taxonomy, the injected randomness
// capability and the owned buffer that carries a secret through one
// operation.
package secure

import "errors"

var (
	// ErrAuthentication is returned when tag verification fails: the secret
	// is wrong or the token was corrupted. No plaintext accompanies it.
	ErrAuthentication = errors.New("authentication failed")
	// ErrMalformedToken is returned when token text cannot be decoded or is
	// shorter than the fixed overhead.
	ErrMalformedToken = errors.New("malformed token")
	// ErrInvalidArgument reports a violated precondition such as an empty
	// wordlist, a non-positive word count or a wrongly sized key.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPlatformCrypto reports that the secure random source or a crypto
	// primitive is unusable. Callers must abort the operation.
	ErrPlatformCrypto = errors.New("platform crypto unavailable")
)
