// Command autoload-config validates autoload map configuration files and
// prints their normalized form with all defaults applied.
//
// Usage:
//
//	autoload-config [--format json|yaml] [--quiet] [FILE...]
//
// Without FILE arguments, hh_autoload.json in the working directory is validated.
// Logging is configured via the environment variables AUTOLOAD_LOG_LEVEL,
// AUTOLOAD_LOG_OUTPUT and AUTOLOAD_LOG_OPTIONS.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/autoloadmap/loader/config"
	"github.com/autoloadmap/loader/logging"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	ExitSuccess = 0
	ExitInvalid = 1
	ExitFailure = 2
)

// DefaultConfigPath is validated if no files are given.
const DefaultConfigPath = "hh_autoload.json"

// Flags defines the CLI flags.
type Flags struct {
	Format string `short:"f" long:"format" choice:"json" choice:"yaml" default:"json" description:"Output format of normalized configs"`
	Quiet  bool   `short:"q" long:"quiet" description:"Only validate, do not print normalized configs"`
}

func main() {
	var logs logging.Config
	if err := config.FromEnv(&logs, config.EnvOptions{Prefix: "AUTOLOAD_LOG_"}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "can't configure logging: %+v\n", err)
		os.Exit(ExitFailure)
	}

	l, err := logging.NewLogging("autoload-config", logs)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "can't configure logging: %+v\n", err)
		os.Exit(ExitFailure)
	}

	code := run(os.Args[1:], os.Stdout, l)
	_ = l.Sync()

	os.Exit(code)
}

// result is the outcome of validating one file.
type result struct {
	cfg config.Config
	err error
}

// run validates the files named in args and writes their normalized configs to w in argument order.
// It returns the process exit code.
func run(args []string, w io.Writer, l *logging.Logging) int {
	logger := l.GetChildLogger("cli")

	var flags Flags
	files, err := config.ParseFlags(&flags, args)
	if err != nil {
		logger.Error("Invalid arguments", logging.Error(err))
		return ExitFailure
	}

	if len(files) == 0 {
		files = []string{DefaultConfigPath}
	}

	results := validate(files, l.GetChildLogger("loader"))

	code := ExitSuccess
	for i, r := range results {
		if r.err != nil {
			code = ExitInvalid
			logger.Error("Invalid configuration", zap.String("source", files[i]), logging.Error(r.err))

			continue
		}

		if flags.Quiet {
			continue
		}

		if err := write(w, flags.Format, r.cfg); err != nil {
			logger.Error("Can't write normalized configuration", zap.String("source", files[i]), logging.Error(err))
			return ExitFailure
		}
	}

	return code
}

// validate loads all files concurrently. Results are in the order of files.
func validate(files []string, logger *zap.Logger) []result {
	results := make([]result, len(files))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, file := range files {
		g.Go(func() error {
			cfg, err := config.FromFile(file)
			if err == nil {
				logger.Debug("Loaded configuration",
					zap.String("source", file),
					zap.Strings("roots", cfg.Roots),
					zap.Stringer("parser", cfg.Parser))
			}

			results[i] = result{cfg: cfg, err: err}

			// Invalid files must not stop the validation of the others.
			return nil
		})
	}

	_ = g.Wait()

	return results
}

// write encodes cfg to w as a separate JSON or YAML document.
func write(w io.Writer, format string, cfg config.Config) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "can't encode YAML")
		}

		_, err = fmt.Fprintf(w, "---\n%s", data)
		return errors.WithStack(err)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return errors.Wrap(enc.Encode(cfg), "can't encode JSON")
	}
}
