package seal

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/atinyakov/sentcrypt/internal/secure"
)

// Overhead is the fixed number of non-ciphertext bytes in a token.
const Overhead = SaltSize + NonceSize + TagSize

// tokenEncoding matches tokens written by earlier releases of the tool.
var tokenEncoding = base64.URLEncoding

// Parts is a decoded token.
type Parts struct {
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// Pack lays out salt || nonce || ciphertext || tag and encodes it as text.
func Pack(p Parts) string {
	blob := make([]byte, 0, Overhead+len(p.Ciphertext))
	blob = append(blob, p.Salt...)
	blob = append(blob, p.Nonce...)
	blob = append(blob, p.Ciphertext...)
	blob = append(blob, p.Tag...)
	return tokenEncoding.EncodeToString(blob)
}

// Unpack decodes token text back into its fixed-offset parts. The parts
// share the decoded blob with clipped capacities, so appending to one never
// overwrites the next. Line breaks are rejected rather than skipped.
func Unpack(token string) (Parts, error) {
	if strings.ContainsAny(token, "\r\n") {
		return Parts{}, fmt.Errorf("token contains a line break: %w", secure.ErrMalformedToken)
	}
	blob, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return Parts{}, fmt.Errorf("decode token: %w", secure.ErrMalformedToken)
	}
	if len(blob) < Overhead {
		return Parts{}, fmt.Errorf("token is %d bytes, need at least %d: %w", len(blob), Overhead, secure.ErrMalformedToken)
	}
	end := len(blob) - TagSize
	return Parts{
		Salt:       blob[:SaltSize:SaltSize],
		Nonce:      blob[SaltSize : SaltSize+NonceSize : SaltSize+NonceSize],
		Ciphertext: blob[SaltSize+NonceSize : end : end],
		Tag:        blob[end:],
	}, nil
}
