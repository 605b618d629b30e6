// Package menu implements the interactive sentence encryption menu on top
// of the seal and passphrase packages.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/sentcrypt/internal/journal"
	"github.com/atinyakov/sentcrypt/internal/passphrase"
	"github.com/atinyakov/sentcrypt/internal/seal"
	"github.com/atinyakov/sentcrypt/internal/secure"
)

// Config wires a Menu to its collaborators.
type Config struct {
	In  io.Reader
	Out io.Writer
	// Secrets reads passwords. Nil reads plain lines from In.
	Secrets SecretReader

	Sealer    *seal.Sealer
	Generator *passphrase.Generator
	Wordlist  passphrase.Wordlist
	Policy    passphrase.WordCountPolicy
	// Journal records produced tokens when non-nil.
	Journal *journal.Journal
	Logger  *zap.Logger
}

// Menu is the interactive shell.
type Menu struct {
	in      *bufio.Reader
	out     io.Writer
	secrets SecretReader

	sealer  *seal.Sealer
	gen     *passphrase.Generator
	words   passphrase.Wordlist
	policy  passphrase.WordCountPolicy
	journal *journal.Journal
	log     *zap.Logger
}

// New builds a Menu from cfg.
func New(cfg Config) *Menu {
	in := bufio.NewReader(cfg.In)
	m := &Menu{
		in:      in,
		out:     cfg.Out,
		secrets: cfg.Secrets,
		sealer:  cfg.Sealer,
		gen:     cfg.Generator,
		words:   cfg.Wordlist,
		policy:  cfg.Policy,
		journal: cfg.Journal,
		log:     cfg.Logger,
	}
	if m.secrets == nil {
		m.secrets = LineSecretReader(in, cfg.Out)
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	return m
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out, "=== AES-GCM Sentence Encryption Tool ===")
	fmt.Fprintln(m.out, "  1) Encrypt with a password")
	fmt.Fprintln(m.out, "  2) Encrypt with a generated passphrase")
	fmt.Fprintln(m.out, "  3) Decrypt with a password")
	fmt.Fprintln(m.out, "  4) Decrypt with a passphrase")
	fmt.Fprintln(m.out, "  5) Exit")
}

// Run loops until the user exits or input ends. Errors from individual
// actions are reported to the user and the loop continues; only input
// failures end it with an error.
func (m *Menu) Run() error {
	for {
		m.printMenu()
		choice, err := m.readLine("Enter your choice (1-5): ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out, "\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = m.encryptWithPassword()
		case "2":
			err = m.encryptWithPassphrase()
		case "3":
			err = m.decrypt("Enter the password used for encryption:\n> ")
		case "4":
			err = m.decrypt("Enter the passphrase used for encryption:\n> ")
		case "5":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please enter a number from 1 to 5.")
			fmt.Fprintln(m.out)
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out, "\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// readLine prints prompt and returns the next trimmed line.
func (m *Menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) readSentence() (string, bool, error) {
	plaintext, err := m.readLine("\nEnter the sentence you want to ENCRYPT:\n> ")
	if err != nil {
		return "", false, err
	}
	if plaintext == "" {
		fmt.Fprintln(m.out, "Nothing to encrypt (empty input).")
		return "", false, nil
	}
	return plaintext, true, nil
}

func (m *Menu) encryptWithPassword() error {
	plaintext, ok, err := m.readSentence()
	if err != nil || !ok {
		return err
	}

	pw, err := m.secrets("Enter your password:\n> ")
	if err != nil {
		return err
	}
	secret := secure.NewSecret(pw)
	defer secret.Destroy()

	est := passphrase.EstimatePasswordBytes(secret.Bytes())
	fmt.Fprintln(m.out)
	m.printStrength(est)

	return m.seal(secret, plaintext, passphrase.MethodPassword)
}

func (m *Menu) encryptWithPassphrase() error {
	plaintext, ok, err := m.readSentence()
	if err != nil || !ok {
		return err
	}

	raw, err := m.readLine(fmt.Sprintf("How many words in the passphrase? (recommended: %d-%d, default %d): ",
		m.policy.Min, m.policy.Max, m.policy.Default))
	if err != nil {
		return err
	}
	count, notice := m.policy.Resolve(raw)
	if notice != "" {
		fmt.Fprintln(m.out, notice)
	}

	p, err := m.gen.Generate(m.words, count)
	if err != nil {
		m.log.Error("passphrase generation failed", zap.Error(err))
		fmt.Fprintf(m.out, "\n!! Could not generate a passphrase: %v\n\n", err)
		return nil
	}
	m.log.Info("passphrase generated", zap.Int("words", count), zap.Float64("bits", p.Estimate.Bits))

	fmt.Fprintln(m.out, "\n=== GENERATED PASSPHRASE ===")
	fmt.Fprintln(m.out, p.Text)
	m.printStrength(p.Estimate)
	fmt.Fprintln(m.out, "!! IMPORTANT: Save this passphrase. You need it to decrypt later. !!")
	fmt.Fprintln(m.out)

	secret := secure.NewSecretString(p.Text)
	defer secret.Destroy()
	return m.seal(secret, plaintext, passphrase.MethodPassphrase)
}

func (m *Menu) seal(secret *secure.Secret, plaintext string, method passphrase.Method) error {
	token, err := m.sealer.Encrypt(secret, []byte(plaintext))
	if err != nil {
		m.log.Error("encryption failed", zap.String("method", string(method)), zap.Error(err))
		fmt.Fprintf(m.out, "\n!! Encryption failed: %v\n\n", err)
		return nil
	}
	m.log.Info("sentence encrypted", zap.String("method", string(method)), zap.Int("token_len", len(token)))

	fmt.Fprintln(m.out, "\n--- ENCRYPTION RESULT ---")
	fmt.Fprintln(m.out, "Encrypted token (save this somewhere safe):")
	fmt.Fprintln(m.out, token)
	m.record(token, method)
	fmt.Fprintln(m.out)
	return nil
}

func (m *Menu) record(token string, method passphrase.Method) {
	if m.journal == nil {
		return
	}
	e := m.journal.Add(token, string(method), "")
	if err := m.journal.Save(); err != nil {
		m.log.Warn("journal save failed", zap.String("path", m.journal.Path()), zap.Error(err))
		fmt.Fprintf(m.out, "(could not record token in journal: %v)\n", err)
		return
	}
	m.log.Debug("token recorded", zap.String("entry_id", e.ID))
	fmt.Fprintf(m.out, "Recorded in journal as %s\n", e.ID)
}

func (m *Menu) decrypt(secretPrompt string) error {
	token, err := m.readLine("\nEnter the encrypted token:\n> ")
	if err != nil {
		return err
	}
	if token == "" {
		fmt.Fprintln(m.out, "No token provided.")
		return nil
	}

	pw, err := m.secrets(secretPrompt)
	if err != nil {
		return err
	}
	secret := secure.NewSecret(pw)
	defer secret.Destroy()

	plain, err := m.sealer.Decrypt(secret, token)
	if err != nil {
		m.log.Debug("decryption failed")
		m.printDecryptFailure()
		return nil
	}
	defer secure.Wipe(plain)

	fmt.Fprintln(m.out, "\n--- DECRYPTION RESULT ---")
	fmt.Fprintln(m.out, "Decrypted sentence:")
	fmt.Fprintln(m.out, string(plain))
	fmt.Fprintln(m.out)
	return nil
}

// printDecryptFailure must not reveal which check failed.
func (m *Menu) printDecryptFailure() {
	fmt.Fprintln(m.out, "\n!! Decryption failed.")
	fmt.Fprintln(m.out, "Possible reasons:")
	fmt.Fprintln(m.out, "  - Wrong password or passphrase")
	fmt.Fprintln(m.out, "  - Corrupted or incomplete token")
	fmt.Fprintln(m.out, "  - Token was not created by this program")
	fmt.Fprintln(m.out)
}

func (m *Menu) printStrength(e passphrase.Estimate) {
	fmt.Fprintf(m.out, "Estimated strength: %s\n", e)
	fmt.Fprintf(m.out, "Note: %s.\n", e.Note)
}
