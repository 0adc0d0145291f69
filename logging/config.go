package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// Supported log outputs.
const (
	CONSOLE = "console"
	JOURNAL = "systemd-journald"
)

// Options define child loggers with their desired log level.
type Options map[string]zapcore.Level

// UnmarshalText implements encoding.TextUnmarshaler to allow Options to be parsed by env
// from a comma-separated list of name:level pairs, e.g. "loader:debug,cli:warn".
func (o *Options) UnmarshalText(text []byte) error {
	options := make(Options)

	for _, entry := range strings.Split(string(text), ",") {
		name, levelStr, found := strings.Cut(entry, ":")
		if !found {
			return fmt.Errorf("entry %q cannot be unmarshalled as an Option entry", entry)
		}

		level, err := zapcore.ParseLevel(levelStr)
		if err != nil {
			return fmt.Errorf("entry %q cannot be unmarshalled as level, %w", entry, err)
		}

		options[name] = level
	}

	*o = options
	return nil
}

// Config defines Logger configuration.
type Config struct {
	// zapcore.Level at 0 is for info level.
	Level  zapcore.Level `yaml:"level" env:"LEVEL" default:"0"`
	Output string        `yaml:"output" env:"OUTPUT"`

	Options `yaml:"options" env:"OPTIONS"`
}

// SetDefaults implements defaults.Setter to configure the log output if it is not set:
// systemd-journald is used when running as a systemd service, otherwise stderr.
func (c *Config) SetDefaults() {
	if defaults.CanUpdate(c.Output) {
		// systemd sets JOURNAL_STREAM if stderr is connected to the journal.
		if _, ok := os.LookupEnv("JOURNAL_STREAM"); ok {
			c.Output = JOURNAL
		} else {
			c.Output = CONSOLE
		}
	}
}

// Validate checks constraints in the configuration and returns an error if they are violated.
func (c *Config) Validate() error {
	if c.Level < zapcore.DebugLevel || c.Level > zapcore.FatalLevel {
		return errors.Errorf("invalid log level %s", c.Level)
	}

	return AssertOutput(c.Output)
}

// AssertOutput returns an error if output is not a valid logger output.
func AssertOutput(o string) error {
	if o == CONSOLE || o == JOURNAL {
		return nil
	}

	return fmt.Errorf("%s is not a valid logger output. Must be either %q or %q", o, CONSOLE, JOURNAL)
}
