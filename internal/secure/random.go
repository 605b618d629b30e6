package secure

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Random fills buffers with unpredictable bytes.
type Random interface {
	Fill(b []byte) error
}

// SystemRandom is the production source backed by crypto/rand.
type SystemRandom struct{}

// Fill reads len(b) bytes from the operating system CSPRNG.
func (SystemRandom) Fill(b []byte) error {
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return fmt.Errorf("read system random: %w", ErrPlatformCrypto)
	}
	return nil
}

// Bytes returns n fresh bytes drawn from r.
func Bytes(r Random, n int) ([]byte, error) {
	b := make([]byte, n)
	if err := r.Fill(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Reader adapts r to io.Reader so it can feed crypto/rand helpers such as
// rand.Int.
func Reader(r Random) io.Reader {
	return randomReader{r}
}

type randomReader struct {
	r Random
}

func (rr randomReader) Read(p []byte) (int, error) {
	if err := rr.r.Fill(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// IsZero reports whether every byte of b is zero. A freshly drawn salt or
// nonce that is all zeros means the source is broken.
func IsZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
