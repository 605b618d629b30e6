// Command sentcrypt encrypts short sentences into portable tokens with a
// password or a generated passphrase, and decrypts them again.
package main

import (
	"bufio"
	"cmp"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/atinyakov/sentcrypt/internal/config"
	"github.com/atinyakov/sentcrypt/internal/logger"
	"github.com/atinyakov/sentcrypt/internal/menu"
	"github.com/atinyakov/sentcrypt/internal/secure"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options, err := config.Parse(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	defer func() { _ = log.Log.Sync() }()

	a := newApp(options, log.Log)

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&menuCmd{app: a}, "")
	subcommands.Register(&encryptCmd{app: a}, "")
	subcommands.Register(&decryptCmd{app: a}, "")
	subcommands.Register(&generateCmd{app: a}, "passphrases")
	subcommands.Register(&estimateCmd{app: a}, "passphrases")
	subcommands.Register(&historyCmd{app: a}, "journal")
	subcommands.Register(&versionCmd{}, "")

	ctx := context.Background()
	var status subcommands.ExitStatus
	if flag.CommandLine.NArg() == 0 {
		status = (&menuCmd{app: a}).Execute(ctx, flag.CommandLine)
	} else {
		status = subcommands.Execute(ctx)
	}

	_ = log.Log.Sync()
	os.Exit(int(status))
}

// newApp wires the process streams. Secrets are read without echo when
// stdin is a terminal and as plain lines otherwise.
func newApp(options *config.Options, log *zap.Logger) *app {
	in := bufio.NewReader(os.Stdin)
	fd := int(os.Stdin.Fd())
	tty := term.IsTerminal(fd)

	return &app{
		opts:   options,
		log:    log,
		in:     in,
		out:    os.Stdout,
		errOut: os.Stderr,
		secrets: func(prompts io.Writer) menu.SecretReader {
			if tty {
				return menu.TerminalSecretReader(fd, prompts)
			}
			return menu.LineSecretReader(in, prompts)
		},
		rand: secure.SystemRandom{},
	}
}

type versionCmd struct{}

func (*versionCmd) Name() string             { return "version" }
func (*versionCmd) Synopsis() string         { return "prints build version and date" }
func (*versionCmd) Usage() string            { return "Usage: sentcrypt version\n" }
func (*versionCmd) SetFlags(_ *flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Printf("sentcrypt\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
	return subcommands.ExitSuccess
}
