package menu

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"golang.org/x/term"
)

// SecretReader prompts for a password or passphrase and returns it with
// surrounding whitespace removed. The caller owns and wipes the result.
type SecretReader func(prompt string) ([]byte, error)

// TerminalSecretReader reads secrets from the terminal on fd without echo.
func TerminalSecretReader(fd int, out io.Writer) SecretReader {
	return func(prompt string) ([]byte, error) {
		fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return nil, fmt.Errorf("read secret: %w", err)
		}
		return trimSecret(b), nil
	}
}

// LineSecretReader reads secrets as plain lines from in, for piped input.
func LineSecretReader(in *bufio.Reader, out io.Writer) SecretReader {
	return func(prompt string) ([]byte, error) {
		fmt.Fprint(out, prompt)
		line, err := in.ReadBytes('\n')
		if err != nil && (err != io.EOF || len(line) == 0) {
			return nil, fmt.Errorf("read secret: %w", err)
		}
		return trimSecret(line), nil
	}
}

// trimSecret trims in place so no untrimmed copy is left behind.
func trimSecret(b []byte) []byte {
	t := bytes.TrimSpace(b)
	n := copy(b, t)
	clear(b[n:])
	return b[:n]
}
