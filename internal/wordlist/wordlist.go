// Package wordlist loads the ordered word sequence that passphrases are
// drawn from.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atinyakov/sentcrypt/internal/secure"
)

//go:embed words.txt
var defaultWords string

// List is an immutable ordered wordlist.
type List struct {
	words []string
}

// New builds a List from words, keeping their order.
func New(words ...string) List {
	return List{words: append([]string(nil), words...)}
}

// Size returns the number of words.
func (l List) Size() int {
	return len(l.words)
}

// Word returns the word at index i.
func (l List) Word(i int) string {
	return l.words[i]
}

// Parse reads one word per line. Surrounding whitespace is trimmed, blank
// lines and lines starting with '#' are skipped and repeated words are kept
// only once so every entry carries full weight in entropy estimates.
func Parse(r io.Reader) (List, error) {
	var words []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return List{}, fmt.Errorf("read wordlist: %w", err)
	}
	if len(words) == 0 {
		return List{}, fmt.Errorf("wordlist is empty: %w", secure.ErrInvalidArgument)
	}
	return List{words: words}, nil
}

// Load parses the wordlist file at path.
func Load(path string) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return List{}, fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return List{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Default returns the wordlist embedded in the binary.
func Default() List {
	l, err := Parse(strings.NewReader(defaultWords))
	if err != nil {
		panic("embedded wordlist is unusable: " + err.Error())
	}
	return l
}

// Resolve loads path, or the embedded list when path is empty.
func Resolve(path string) (List, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
