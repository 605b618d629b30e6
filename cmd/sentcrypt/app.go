package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/sentcrypt/internal/config"
	"github.com/atinyakov/sentcrypt/internal/journal"
	"github.com/atinyakov/sentcrypt/internal/menu"
	"github.com/atinyakov/sentcrypt/internal/passphrase"
	"github.com/atinyakov/sentcrypt/internal/seal"
	"github.com/atinyakov/sentcrypt/internal/secure"
	"github.com/atinyakov/sentcrypt/internal/wordlist"
)

// app carries what every subcommand needs.
type app struct {
	opts   *config.Options
	log    *zap.Logger
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	// secrets returns a reader that prints its prompts to the given writer.
	secrets func(prompts io.Writer) menu.SecretReader
	rand    secure.Random
	// iterations overrides the KDF work factor when non-zero.
	iterations int
}

func (a *app) sealer() *seal.Sealer {
	if a.iterations > 0 {
		return seal.NewSealer(a.rand, seal.WithIterations(a.iterations))
	}
	return seal.NewSealer(a.rand)
}

func (a *app) wordlist() (wordlist.List, error) {
	return wordlist.Resolve(a.opts.WordlistPath)
}

// journal opens the configured journal, or returns nil when none is set.
func (a *app) journal() (*journal.Journal, error) {
	if a.opts.JournalPath == "" {
		return nil, nil
	}
	return journal.Open(a.opts.JournalPath)
}

// readLine prompts on errOut so stdout stays clean for tokens.
func (a *app) readLine(prompt string) (string, error) {
	fmt.Fprint(a.errOut, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// wordCountAllowed reports whether n is within the configured bounds and
// tells the user the range when it is not.
func (a *app) wordCountAllowed(n int) bool {
	policy := a.opts.Policy()
	if n < policy.Min || n > policy.Max {
		fmt.Fprintf(a.errOut, "Word count must be between %d and %d.\n", policy.Min, policy.Max)
		return false
	}
	return true
}

func (a *app) printStrength(w io.Writer, e passphrase.Estimate) {
	fmt.Fprintf(w, "Estimated strength: %s\n", e)
	fmt.Fprintf(w, "Note: %s.\n", e.Note)
}

// record appends token to the journal if one is configured.
func (a *app) record(token string, method passphrase.Method, note string) error {
	j, err := a.journal()
	if err != nil || j == nil {
		return err
	}
	e := j.Add(token, string(method), note)
	if err := j.Save(); err != nil {
		return err
	}
	a.log.Debug("token recorded", zap.String("entry_id", e.ID))
	fmt.Fprintf(a.errOut, "Recorded in journal as %s\n", e.ID)
	return nil
}
