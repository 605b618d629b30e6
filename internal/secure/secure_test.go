package secure

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRandom struct {
	next byte
}

func (c *countingRandom) Fill(b []byte) error {
	for i := range b {
		c.next++
		b[i] = c.next
	}
	return nil
}

type brokenRandom struct{}

func (brokenRandom) Fill([]byte) error { return ErrPlatformCrypto }

func TestSystemRandom(t *testing.T) {
	a, err := Bytes(SystemRandom{}, 32)
	require.NoError(t, err)
	b, err := Bytes(SystemRandom{}, 32)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b, "two draws of system randomness should differ")
	assert.False(t, IsZero(a))
}

func TestBytes_PropagatesFailure(t *testing.T) {
	_, err := Bytes(brokenRandom{}, 8)
	assert.True(t, errors.Is(err, ErrPlatformCrypto))
}

func TestReader(t *testing.T) {
	r := Reader(&countingRandom{})
	buf := make([]byte, 4)
	n, err := io.ReadFull(r, buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)

	_, err = Reader(brokenRandom{}).Read(buf)
	assert.ErrorIs(t, err, ErrPlatformCrypto)
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(nil))
	assert.True(t, IsZero(make([]byte, 12)))
	assert.False(t, IsZero([]byte{0, 0, 1}))
}

func TestSecret_WipesSource(t *testing.T) {
	src := []byte("hunter2")
	s := NewSecret(src)
	defer s.Destroy()

	assert.Equal(t, []byte("hunter2"), s.Bytes())
	assert.Equal(t, 7, s.Len())
	assert.True(t, IsZero(src), "source slice must be wiped once moved into the secret")
}

func TestSecret_Empty(t *testing.T) {
	s := NewSecret(nil)
	assert.Equal(t, 0, s.Len())
	s.Destroy()
	s.Destroy()
}

func TestSecret_NilSafe(t *testing.T) {
	var s *Secret
	assert.Nil(t, s.Bytes())
	s.Destroy()
}

func TestWithSecret(t *testing.T) {
	var held *Secret
	wantErr := errors.New("boom")

	err := WithSecret([]byte("passphrase"), func(s *Secret) error {
		held = s
		assert.Equal(t, "passphrase", string(s.Bytes()))
		return wantErr
	})

	assert.Same(t, wantErr, err)
	assert.Empty(t, held.Bytes(), "secret must be destroyed after the scope ends")
}

func TestWipe(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{4, 5}
	Wipe(a, b)
	assert.True(t, IsZero(a))
	assert.True(t, IsZero(b))
}
