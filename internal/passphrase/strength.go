package passphrase

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/atinyakov/sentcrypt/internal/secure"
)

// Method tells how an estimate was computed.
type Method string

const (
	// MethodPassphrase is word count times log2 of the wordlist size.
	MethodPassphrase Method = "passphrase"
	// MethodPassword is length times log2 of the character pool in use.
	MethodPassword Method = "password"
)

// Character pool sizes credited when a class appears in a password.
const (
	lowerPool  = 26
	upperPool  = 26
	digitPool  = 10
	symbolPool = 32
)

const (
	passphraseNote = "estimate assumes every word was drawn uniformly at random"
	passwordNote   = "rough estimate from length and character classes; human-chosen passwords are far less random than this assumes"
)

// Rating maps an entropy range onto a label and a 0-100 display score.
type Rating struct {
	// Below is the exclusive upper bound in bits.
	Below float64
	Label string
	Score int
}

// Ratings is the fixed threshold table, ordered by Below.
var Ratings = []Rating{
	{Below: 30, Label: "VERY WEAK", Score: 10},
	{Below: 40, Label: "Weak", Score: 25},
	{Below: 60, Label: "Okay", Score: 40},
	{Below: 80, Label: "Moderate", Score: 60},
	{Below: 100, Label: "Strong", Score: 80},
	{Below: math.Inf(1), Label: "VERY STRONG", Score: 95},
}

// Estimate is an approximate strength measurement. It is guidance, not a
// security guarantee.
type Estimate struct {
	Bits   float64
	Label  string
	Score  int
	Method Method
	Note   string
}

// String renders the estimate the way the menu prints it.
func (e Estimate) String() string {
	return fmt.Sprintf("%s (~%.1f bits, score %d/100)", e.Label, e.Bits, e.Score)
}

// Rate looks bits up in Ratings.
func Rate(bits float64) Rating {
	for _, r := range Ratings {
		if bits < r.Below {
			return r
		}
	}
	return Ratings[len(Ratings)-1]
}

func newEstimate(bits float64, m Method, note string) Estimate {
	r := Rate(bits)
	return Estimate{Bits: bits, Label: r.Label, Score: r.Score, Method: m, Note: note}
}

// EstimatePassphrase returns wordCount * log2(listSize) bits.
func EstimatePassphrase(wordCount, listSize int) (Estimate, error) {
	if wordCount < 1 {
		return Estimate{}, fmt.Errorf("word count must be positive, got %d: %w", wordCount, secure.ErrInvalidArgument)
	}
	if listSize < 1 {
		return Estimate{}, fmt.Errorf("wordlist size must be positive, got %d: %w", listSize, secure.ErrInvalidArgument)
	}
	bits := float64(wordCount) * math.Log2(float64(listSize))
	return newEstimate(bits, MethodPassphrase, passphraseNote), nil
}

// EstimatePassword credits length * log2(pool) bits where pool sums the
// sizes of the character classes present. It never fails; an empty password
// scores zero.
func EstimatePassword(password string) Estimate {
	return EstimatePasswordBytes([]byte(password))
}

// EstimatePasswordBytes is EstimatePassword for a secret that lives in a
// byte buffer, so the caller does not have to copy it into a string.
func EstimatePasswordBytes(password []byte) Estimate {
	var lower, upper, digit, symbol bool
	length := 0
	for i := 0; i < len(password); {
		r, size := utf8.DecodeRune(password[i:])
		i += size
		length++
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsNumber(r):
			symbol = true
		}
	}

	pool := 0
	if lower {
		pool += lowerPool
	}
	if upper {
		pool += upperPool
	}
	if digit {
		pool += digitPool
	}
	if symbol {
		pool += symbolPool
	}

	var bits float64
	if pool > 0 {
		bits = float64(length) * math.Log2(float64(pool))
	}
	return newEstimate(bits, MethodPassword, passwordNote)
}
