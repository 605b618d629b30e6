// Package securetest provides random sources for tests that need
// reproducible salts, nonces and passphrases.
package securetest

import (
	"encoding/binary"
	"errors"
	"math/rand/v2"

	"github.com/atinyakov/sentcrypt/internal/secure"
)

// Seeded is a deterministic secure.Random. Two sources built from the same
// seed produce the same byte stream. Never use it outside tests.
type Seeded struct {
	cc *rand.ChaCha8
}

// NewSeeded returns a ChaCha8 stream keyed by seed.
func NewSeeded(seed uint64) *Seeded {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return &Seeded{cc: rand.NewChaCha8(key)}
}

// Fill implements secure.Random.
func (s *Seeded) Fill(b []byte) error {
	_, err := s.cc.Read(b)
	return err
}

// Zero fills every buffer with zeros, the way a broken source would.
type Zero struct{}

// Fill implements secure.Random.
func (Zero) Fill(b []byte) error {
	clear(b)
	return nil
}

// ErrBroken is what Failing returns from Fill.
var ErrBroken = errors.New("entropy source offline")

// Failing always fails.
type Failing struct{}

// Fill implements secure.Random.
func (Failing) Fill([]byte) error {
	return errors.Join(ErrBroken, secure.ErrPlatformCrypto)
}

// Script replays a fixed byte sequence and fails once it runs out.
type Script struct {
	Data []byte
}

// Fill implements secure.Random.
func (s *Script) Fill(b []byte) error {
	if len(s.Data) < len(b) {
		return secure.ErrPlatformCrypto
	}
	n := copy(b, s.Data)
	s.Data = s.Data[n:]
	return nil
}
