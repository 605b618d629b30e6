package secure

import (
	"github.com/awnumar/memguard"
)

// Secret owns a password or passphrase for the duration of one
// derive-and-encrypt or derive-and-decrypt call. The bytes live in locked
// memory and are wiped by Destroy.
type Secret struct {
	buf *memguard.LockedBuffer
}

// NewSecret moves b into a locked buffer. The caller's slice is wiped.
func NewSecret(b []byte) *Secret {
	return &Secret{buf: memguard.NewBufferFromBytes(b)}
}

// NewSecretString copies s into a locked buffer. The string itself cannot
// be wiped, so prefer NewSecret when the input is already a byte slice.
func NewSecretString(s string) *Secret {
	return NewSecret([]byte(s))
}

// Bytes exposes the secret. The slice is only valid until Destroy.
func (s *Secret) Bytes() []byte {
	if s == nil || s.buf == nil {
		return nil
	}
	return s.buf.Bytes()
}

// Len returns the secret length in bytes.
func (s *Secret) Len() int {
	return len(s.Bytes())
}

// Destroy wipes and releases the secret. It is safe to call more than once.
func (s *Secret) Destroy() {
	if s == nil || s.buf == nil {
		return
	}
	s.buf.Destroy()
}

// WithSecret hands b to fn as a Secret and destroys it when fn returns.
func WithSecret(b []byte, fn func(*Secret) error) error {
	s := NewSecret(b)
	defer s.Destroy()
	return fn(s)
}

// Wipe zeroes sensitive scratch buffers such as derived keys.
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		memguard.WipeBytes(b)
	}
}
