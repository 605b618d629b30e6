package seal

import (
	"bytes"
	"encoding/hex"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/sentcrypt/internal/secure"
)

const testIterations = 1000

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x5a}, SaltSize)

	k1, err := DeriveKey([]byte("correct horse battery staple"), salt, testIterations)
	require.NoError(t, err)
	k2, err := DeriveKey([]byte("correct horse battery staple"), salt, testIterations)
	require.NoError(t, err)

	assert.Len(t, k1, KeySize)
	assert.Equal(t, k1, k2)
}

func TestDeriveKey_KnownAnswer(t *testing.T) {
	key, err := DeriveKey([]byte("correct horse battery staple"), []byte("0123456789abcdef"), Iterations)
	require.NoError(t, err)
	assert.Equal(t, "7f2c954f85f5934bde900ac77e9dfba6f55a39244eb24496bbac967f5ef3a251", hex.EncodeToString(key))
}

func TestDeriveKey_SaltAvalanche(t *testing.T) {
	salt := make([]byte, SaltSize)
	for i := range salt {
		salt[i] = byte(i)
	}
	base, err := DeriveKey([]byte("pw"), salt, testIterations)
	require.NoError(t, err)

	for bit := 0; bit < SaltSize*8; bit += 13 {
		flipped := bytes.Clone(salt)
		flipped[bit/8] ^= 1 << (bit % 8)

		other, err := DeriveKey([]byte("pw"), flipped, testIterations)
		require.NoError(t, err)

		diff := 0
		for i := range base {
			diff += bits.OnesCount8(base[i] ^ other[i])
		}
		// 256 output bits; an unrelated key differs in ~128 of them.
		assert.Greater(t, diff, 64, "salt bit %d changed too few key bits", bit)
		assert.Less(t, diff, 192, "salt bit %d changed too many key bits", bit)
	}
}

func TestDeriveKey_SecretSensitivity(t *testing.T) {
	salt := bytes.Repeat([]byte{1}, SaltSize)
	a, err := DeriveKey([]byte("password1"), salt, testIterations)
	require.NoError(t, err)
	b, err := DeriveKey([]byte("password2"), salt, testIterations)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDeriveKey_EmptySecret(t *testing.T) {
	key, err := DeriveKey(nil, bytes.Repeat([]byte{7}, SaltSize), testIterations)
	require.NoError(t, err)
	assert.Len(t, key, KeySize)
}

func TestDeriveKey_InvalidArguments(t *testing.T) {
	tests := []struct {
		name       string
		salt       []byte
		iterations int
	}{
		{"short salt", make([]byte, SaltSize-1), testIterations},
		{"long salt", make([]byte, SaltSize+1), testIterations},
		{"zero iterations", make([]byte, SaltSize), 0},
		{"negative iterations", make([]byte, SaltSize), -5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DeriveKey([]byte("pw"), tc.salt, tc.iterations)
			assert.ErrorIs(t, err, secure.ErrInvalidArgument)
		})
	}
}
