// Package passphrase generates multi-word passphrases and estimates the
// strength of passphrases and typed passwords.
package passphrase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/atinyakov/sentcrypt/internal/secure"
)

// Separator joins generated words.
const Separator = "-"

// Wordlist is the read-only view the generator needs.
type Wordlist interface {
	Size() int
	Word(i int) string
}

// Passphrase is a generated secret together with its strength.
type Passphrase struct {
	Text     string
	Words    []string
	Estimate Estimate
}

// Generator draws words with a cryptographically secure source.
type Generator struct {
	rand secure.Random
}

// NewGenerator returns a Generator drawing from r.
func NewGenerator(r secure.Random) *Generator {
	return &Generator{rand: r}
}

// Generate draws wordCount independent, uniform indices into list, with
// replacement, and joins the words with Separator.
func (g *Generator) Generate(list Wordlist, wordCount int) (Passphrase, error) {
	if list == nil || list.Size() < 1 {
		return Passphrase{}, fmt.Errorf("wordlist is empty: %w", secure.ErrInvalidArgument)
	}
	if wordCount < 1 {
		return Passphrase{}, fmt.Errorf("word count must be positive, got %d: %w", wordCount, secure.ErrInvalidArgument)
	}

	size := big.NewInt(int64(list.Size()))
	src := secure.Reader(g.rand)
	words := make([]string, wordCount)
	for i := range words {
		idx, err := rand.Int(src, size)
		if err != nil {
			return Passphrase{}, fmt.Errorf("draw word %d: %w", i, err)
		}
		words[i] = list.Word(int(idx.Int64()))
	}

	est, err := EstimatePassphrase(wordCount, list.Size())
	if err != nil {
		return Passphrase{}, err
	}
	return Passphrase{
		Text:     strings.Join(words, Separator),
		Words:    words,
		Estimate: est,
	}, nil
}

// WordCountPolicy bounds how many words a user may ask for.
type WordCountPolicy struct {
	Default int
	Min     int
	Max     int
}

// DefaultPolicy mirrors the recommended 6 words within 4..20.
var DefaultPolicy = WordCountPolicy{Default: 6, Min: 4, Max: 20}

// Resolve turns raw user input into a word count. Unparsable or too small
// values fall back to Default, too large values are capped at Max. The
// returned notice is empty when raw was accepted as is.
func (p WordCountPolicy) Resolve(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return p.Default, ""
	}
	n, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		return p.Default, fmt.Sprintf("Invalid number, using %d words by default.", p.Default)
	case n < p.Min:
		return p.Default, fmt.Sprintf("Too short, using %d words for better security.", p.Default)
	case n > p.Max:
		return p.Max, fmt.Sprintf("That's quite long. Limiting to %d words.", p.Max)
	}
	return n, ""
}

// Validate checks that the bounds are usable.
func (p WordCountPolicy) Validate() error {
	if p.Min < 1 {
		return fmt.Errorf("minimum word count must be positive, got %d: %w", p.Min, secure.ErrInvalidArgument)
	}
	if p.Max < p.Min {
		return fmt.Errorf("maximum word count %d below minimum %d: %w", p.Max, p.Min, secure.ErrInvalidArgument)
	}
	if p.Default < p.Min || p.Default > p.Max {
		return fmt.Errorf("default word count %d outside %d..%d: %w", p.Default, p.Min, p.Max, secure.ErrInvalidArgument)
	}
	return nil
}
