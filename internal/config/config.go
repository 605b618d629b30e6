// Package config provides functionality for managing configuration options
// for the application using command-line flags, a config file and
// environment variables.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"sigs.k8s.io/yaml"

	"github.com/atinyakov/sentcrypt/internal/passphrase"
)

// Environment variables consulted by Parse.
const (
	EnvConfig    = "SENTCRYPT_CONFIG"
	EnvWordlist  = "SENTCRYPT_WORDLIST"
	EnvWords     = "SENTCRYPT_WORDS"
	EnvJournal   = "SENTCRYPT_JOURNAL"
	EnvLogLevel  = "SENTCRYPT_LOG_LEVEL"
	defaultLevel = "warn"
)

// Options holds the configuration values for the application.
type Options struct {
	// WordlistPath is the passphrase wordlist file. Empty selects the
	// embedded list.
	WordlistPath string `json:"wordlist"`
	// WordCount is the default number of words in a generated passphrase.
	WordCount int `json:"word_count"`
	// MinWords and MaxWords bound user-requested word counts.
	MinWords int `json:"min_words"`
	MaxWords int `json:"max_words"`
	// JournalPath records produced tokens when set.
	JournalPath string `json:"journal"`
	// LogLevel is a zap level name.
	LogLevel string `json:"log_level"`
	// Config is the path to the config file (YAML or JSON).
	Config string `json:"-"`
}

// Defaults returns the built-in configuration.
func Defaults() *Options {
	return &Options{
		WordCount: passphrase.DefaultPolicy.Default,
		MinWords:  passphrase.DefaultPolicy.Min,
		MaxWords:  passphrase.DefaultPolicy.Max,
		LogLevel:  defaultLevel,
	}
}

// Policy returns the word count bounds as a passphrase policy.
func (o *Options) Policy() passphrase.WordCountPolicy {
	return passphrase.WordCountPolicy{Default: o.WordCount, Min: o.MinWords, Max: o.MaxWords}
}

// Parse registers the global flags on fs, parses args and layers the
// sources: defaults, then the config file, then environment variables, then
// flags that were set explicitly. getenv is usually os.Getenv.
func Parse(fs *flag.FlagSet, args []string, getenv func(string) string) (*Options, error) {
	cli := Defaults()
	fs.StringVar(&cli.Config, "config", "", "path to a YAML or JSON config file")
	fs.StringVar(&cli.Config, "c", "", "path to config file (shorthand)")
	fs.StringVar(&cli.WordlistPath, "wordlist", "", "wordlist file, one word per line (default: embedded list)")
	fs.IntVar(&cli.WordCount, "words", cli.WordCount, "default passphrase word count")
	fs.IntVar(&cli.MinWords, "min-words", cli.MinWords, "smallest accepted passphrase word count")
	fs.IntVar(&cli.MaxWords, "max-words", cli.MaxWords, "largest accepted passphrase word count")
	fs.StringVar(&cli.JournalPath, "journal", "", "record produced tokens in this JSON file")
	fs.StringVar(&cli.LogLevel, "log-level", cli.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	options := Defaults()

	options.Config = cli.Config
	if !set["config"] && !set["c"] {
		options.Config = getenv(EnvConfig)
	}
	if options.Config != "" {
		if err := options.loadFile(options.Config); err != nil {
			return nil, err
		}
	}

	if err := options.applyEnv(getenv); err != nil {
		return nil, err
	}

	if set["wordlist"] {
		options.WordlistPath = cli.WordlistPath
	}
	if set["words"] {
		options.WordCount = cli.WordCount
	}
	if set["min-words"] {
		options.MinWords = cli.MinWords
	}
	if set["max-words"] {
		options.MaxWords = cli.MaxWords
	}
	if set["journal"] {
		options.JournalPath = cli.JournalPath
	}
	if set["log-level"] {
		options.LogLevel = cli.LogLevel
	}

	if err := options.Policy().Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return options, nil
}

func (o *Options) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, o); err != nil {
		return fmt.Errorf("error while parsing config file %s: %w", path, err)
	}
	return nil
}

func (o *Options) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvWordlist); v != "" {
		o.WordlistPath = v
	}
	if v := getenv(EnvJournal); v != "" {
		o.JournalPath = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		o.LogLevel = v
	}
	if v := getenv(EnvWords); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q is not a number", EnvWords, v)
		}
		o.WordCount = n
	}
	return nil
}
