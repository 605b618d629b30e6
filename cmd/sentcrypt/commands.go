package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/atinyakov/sentcrypt/internal/journal"
	"github.com/atinyakov/sentcrypt/internal/menu"
	"github.com/atinyakov/sentcrypt/internal/passphrase"
	"github.com/atinyakov/sentcrypt/internal/secure"
)

// menuCmd runs the interactive menu. It is also the default command.
type menuCmd struct {
	app *app
}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "interactive encrypt/decrypt menu (default)" }
func (*menuCmd) Usage() string {
	return `Usage: sentcrypt [global flags] menu

Starts the interactive menu:
  1) encrypt with a typed password
  2) encrypt with a generated passphrase
  3) decrypt with a typed password
  4) decrypt with a typed passphrase
  5) exit
`
}
func (*menuCmd) SetFlags(_ *flag.FlagSet) {}

func (m *menuCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a := m.app
	words, err := a.wordlist()
	if err != nil {
		a.log.Error("failed to load wordlist", zap.Error(err))
		return subcommands.ExitFailure
	}
	j, err := a.journal()
	if err != nil {
		a.log.Error("failed to open journal", zap.Error(err))
		return subcommands.ExitFailure
	}

	shell := menu.New(menu.Config{
		In:        a.in,
		Out:       a.out,
		Secrets:   a.secrets(a.out),
		Sealer:    a.sealer(),
		Generator: passphrase.NewGenerator(a.rand),
		Wordlist:  words,
		Policy:    a.opts.Policy(),
		Journal:   j,
		Logger:    a.log,
	})
	if err := shell.Run(); err != nil {
		a.log.Error("menu stopped", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// encryptCmd seals one sentence and prints the token on stdout.
type encryptCmd struct {
	app      *app
	generate bool
	words    int
	note     string
}

func (*encryptCmd) Name() string     { return "encrypt" }
func (*encryptCmd) Synopsis() string { return "encrypts a sentence into a token" }
func (*encryptCmd) Usage() string {
	return `Usage: sentcrypt encrypt [-generate] [-words=N] [-note=text] [sentence...]

Encrypts the sentence given as arguments, or the first line of stdin, and
prints the token on stdout. Prompts and strength reports go to stderr.

Examples:
  Encrypt with a typed password:
    $ sentcrypt encrypt meet at dawn

  Encrypt with a generated 8-word passphrase:
    $ sentcrypt encrypt -words=8 meet at dawn

Flags:
`
}

func (e *encryptCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&e.generate, "generate", false, "generate a passphrase instead of prompting for a password")
	f.IntVar(&e.words, "words", 0, "number of passphrase words (implies -generate)")
	f.StringVar(&e.note, "note", "", "label stored with the token in the journal")
}

func (e *encryptCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a := e.app

	plaintext := strings.TrimSpace(strings.Join(f.Args(), " "))
	if f.NArg() == 0 {
		line, err := a.readLine("Enter the sentence you want to ENCRYPT:\n> ")
		if err != nil {
			a.log.Error("failed to read sentence", zap.Error(err))
			return subcommands.ExitFailure
		}
		plaintext = line
	}
	if plaintext == "" {
		fmt.Fprintln(a.errOut, "Nothing to encrypt (empty input).")
		return subcommands.ExitUsageError
	}

	var (
		secret *secure.Secret
		method passphrase.Method
	)
	if e.generate || e.words != 0 {
		p, status := e.generatePassphrase()
		if status != subcommands.ExitSuccess {
			return status
		}
		secret = secure.NewSecretString(p.Text)
		method = passphrase.MethodPassphrase
	} else {
		pw, err := a.secrets(a.errOut)("Enter your password:\n> ")
		if err != nil {
			a.log.Error("failed to read password", zap.Error(err))
			return subcommands.ExitFailure
		}
		secret = secure.NewSecret(pw)
		method = passphrase.MethodPassword
		a.printStrength(a.errOut, passphrase.EstimatePasswordBytes(secret.Bytes()))
	}
	defer secret.Destroy()

	token, err := a.sealer().Encrypt(secret, []byte(plaintext))
	if err != nil {
		a.log.Error("encryption failed", zap.String("method", string(method)), zap.Error(err))
		return subcommands.ExitFailure
	}
	a.log.Info("sentence encrypted", zap.String("method", string(method)), zap.Int("token_len", len(token)))
	fmt.Fprintln(a.out, token)

	if err := a.record(token, method, e.note); err != nil {
		a.log.Warn("failed to record token", zap.Error(err))
	}
	return subcommands.ExitSuccess
}

func (e *encryptCmd) generatePassphrase() (passphrase.Passphrase, subcommands.ExitStatus) {
	a := e.app
	count := a.opts.WordCount
	if e.words != 0 {
		count = e.words
	}
	if !a.wordCountAllowed(count) {
		return passphrase.Passphrase{}, subcommands.ExitUsageError
	}

	words, err := a.wordlist()
	if err != nil {
		a.log.Error("failed to load wordlist", zap.Error(err))
		return passphrase.Passphrase{}, subcommands.ExitFailure
	}
	p, err := passphrase.NewGenerator(a.rand).Generate(words, count)
	if err != nil {
		a.log.Error("passphrase generation failed", zap.Error(err))
		return passphrase.Passphrase{}, subcommands.ExitFailure
	}

	fmt.Fprintln(a.errOut, "=== GENERATED PASSPHRASE ===")
	fmt.Fprintln(a.errOut, p.Text)
	a.printStrength(a.errOut, p.Estimate)
	fmt.Fprintln(a.errOut, "!! IMPORTANT: Save this passphrase. You need it to decrypt later. !!")
	return p, subcommands.ExitSuccess
}

// decryptCmd opens a token and prints the sentence on stdout.
type decryptCmd struct {
	app *app
}

func (*decryptCmd) Name() string     { return "decrypt" }
func (*decryptCmd) Synopsis() string { return "decrypts a token back into its sentence" }
func (*decryptCmd) Usage() string {
	return `Usage: sentcrypt decrypt [token]

Decrypts the token given as argument, or the first line of stdin, after
prompting for the password or passphrase.
`
}
func (*decryptCmd) SetFlags(_ *flag.FlagSet) {}

func (d *decryptCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a := d.app

	token := strings.TrimSpace(f.Arg(0))
	if f.NArg() == 0 {
		line, err := a.readLine("Enter the encrypted token:\n> ")
		if err != nil {
			a.log.Error("failed to read token", zap.Error(err))
			return subcommands.ExitFailure
		}
		token = line
	}
	if token == "" {
		fmt.Fprintln(a.errOut, "No token provided.")
		return subcommands.ExitUsageError
	}

	pw, err := a.secrets(a.errOut)("Enter the password or passphrase used for encryption:\n> ")
	if err != nil {
		a.log.Error("failed to read secret", zap.Error(err))
		return subcommands.ExitFailure
	}

	var plain []byte
	err = secure.WithSecret(pw, func(s *secure.Secret) error {
		var err error
		plain, err = a.sealer().Decrypt(s, token)
		return err
	})
	if err != nil {
		a.log.Debug("decryption failed")
		fmt.Fprintln(a.errOut, "Decryption failed: wrong password or passphrase, or a corrupted token.")
		return subcommands.ExitFailure
	}
	defer secure.Wipe(plain)

	fmt.Fprintln(a.out, string(plain))
	return subcommands.ExitSuccess
}

// generateCmd prints a fresh passphrase without encrypting anything.
type generateCmd struct {
	app   *app
	words int
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "prints a random passphrase and its strength" }
func (*generateCmd) Usage() string {
	return `Usage: sentcrypt generate [-words=N]

Flags:
`
}

func (g *generateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&g.words, "words", 0, "number of words (default from configuration)")
}

func (g *generateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a := g.app
	count := a.opts.WordCount
	if g.words != 0 {
		count = g.words
	}
	if !a.wordCountAllowed(count) {
		return subcommands.ExitUsageError
	}

	words, err := a.wordlist()
	if err != nil {
		a.log.Error("failed to load wordlist", zap.Error(err))
		return subcommands.ExitFailure
	}
	p, err := passphrase.NewGenerator(a.rand).Generate(words, count)
	if err != nil {
		a.log.Error("passphrase generation failed", zap.Error(err))
		return subcommands.ExitFailure
	}

	fmt.Fprintln(a.out, p.Text)
	a.printStrength(a.out, p.Estimate)
	return subcommands.ExitSuccess
}

// estimateCmd reports the strength of a typed password or of a passphrase
// shape.
type estimateCmd struct {
	app   *app
	words int
}

func (*estimateCmd) Name() string     { return "estimate" }
func (*estimateCmd) Synopsis() string { return "estimates password or passphrase strength" }
func (*estimateCmd) Usage() string {
	return `Usage: sentcrypt estimate [-words=N]

Without flags, prompts for a password and estimates it from its length and
character classes. With -words, estimates an N-word passphrase drawn from the
configured wordlist.

Flags:
`
}

func (c *estimateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.words, "words", 0, "estimate a passphrase of this many words instead")
}

func (c *estimateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a := c.app

	if c.words != 0 {
		words, err := a.wordlist()
		if err != nil {
			a.log.Error("failed to load wordlist", zap.Error(err))
			return subcommands.ExitFailure
		}
		est, err := passphrase.EstimatePassphrase(c.words, words.Size())
		if err != nil {
			fmt.Fprintln(a.errOut, err)
			return subcommands.ExitUsageError
		}
		a.printStrength(a.out, est)
		return subcommands.ExitSuccess
	}

	pw, err := a.secrets(a.errOut)("Enter the password to estimate:\n> ")
	if err != nil {
		a.log.Error("failed to read password", zap.Error(err))
		return subcommands.ExitFailure
	}
	defer secure.Wipe(pw)
	a.printStrength(a.out, passphrase.EstimatePasswordBytes(pw))
	return subcommands.ExitSuccess
}

// historyCmd lists or prunes the token journal.
type historyCmd struct {
	app    *app
	delete string
	show   string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "lists tokens recorded in the journal" }
func (*historyCmd) Usage() string {
	return `Usage: sentcrypt -journal=<file> history [-show=<id> | -delete=<id>]

Flags:
`
}

func (h *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&h.delete, "delete", "", "remove the entry with this ID")
	f.StringVar(&h.show, "show", "", "print only the entry with this ID")
}

func (h *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a := h.app
	j, err := a.journal()
	if err != nil {
		a.log.Error("failed to open journal", zap.Error(err))
		return subcommands.ExitFailure
	}
	if j == nil {
		fmt.Fprintln(a.errOut, "No journal configured (use -journal or SENTCRYPT_JOURNAL).")
		return subcommands.ExitUsageError
	}

	if h.delete != "" {
		if !j.Delete(h.delete) {
			fmt.Fprintln(a.errOut, "Entry not found")
			return subcommands.ExitFailure
		}
		if err := j.Save(); err != nil {
			a.log.Error("failed to save journal", zap.Error(err))
			return subcommands.ExitFailure
		}
		fmt.Fprintln(a.out, "Entry deleted")
		return subcommands.ExitSuccess
	}

	if h.show != "" {
		e := j.Get(h.show)
		if e == nil {
			fmt.Fprintln(a.errOut, "Entry not found")
			return subcommands.ExitFailure
		}
		printEntry(a.out, *e)
		return subcommands.ExitSuccess
	}

	entries := j.List()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No tokens recorded.")
		return subcommands.ExitSuccess
	}
	for _, e := range entries {
		printEntry(a.out, e)
	}
	return subcommands.ExitSuccess
}

func printEntry(w io.Writer, e journal.Entry) {
	fmt.Fprintf(w, "ID: %s\nCreated: %s\nMethod: %s\n",
		e.ID, time.Unix(e.Created, 0).UTC().Format(time.RFC3339), e.Method)
	if e.Note != "" {
		fmt.Fprintf(w, "Note: %s\n", e.Note)
	}
	fmt.Fprintf(w, "Token: %s\n---\n", e.Token)
}
