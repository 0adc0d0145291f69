package config

import (
	"errors"
	"reflect"
	"testing"

	"github.com/autoloadmap/loader/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// workers is a minimal settings type requiring a positive worker count.
type workers struct {
	Count int `env:"WORKERS"`
}

func (w workers) Validate() error {
	if w.Count <= 0 {
		return errors.New("worker count must be positive")
	}

	return nil
}

type scalarSettings int

func (scalarSettings) Validate() error {
	return nil
}

type defaultedWorkers struct {
	Count int `env:"WORKERS" default:"4"`
}

func (defaultedWorkers) Validate() error {
	return nil
}

func TestFromEnv(t *testing.T) {
	subtests := []struct {
		name  string
		opts  EnvOptions
		io    Validator
		error bool
	}{
		{name: "nil", error: true},
		{name: "nonptr", io: workers{}, error: true},
		{name: "nilptr", io: (*workers)(nil), error: true},
		{name: "nonstruct", io: new(scalarSettings), error: true},
		{
			name:  "parse-error",
			opts:  EnvOptions{Environment: map[string]string{"WORKERS": "many"}},
			io:    &workers{},
			error: true,
		},
		{
			name:  "invalid",
			opts:  EnvOptions{Environment: map[string]string{"WORKERS": "0"}},
			io:    &workers{},
			error: true,
		},
		{name: "simple", opts: EnvOptions{Environment: map[string]string{"WORKERS": "2"}}, io: &workers{2}},
		{name: "default", io: &defaultedWorkers{4}},
		{name: "override", opts: EnvOptions{Environment: map[string]string{"WORKERS": "8"}}, io: &defaultedWorkers{8}},
		{
			name: "logging",
			opts: EnvOptions{
				Environment: map[string]string{
					"AUTOLOAD_LOG_LEVEL":   "debug",
					"AUTOLOAD_LOG_OUTPUT":  logging.JOURNAL,
					"AUTOLOAD_LOG_OPTIONS": "loader:warn",
				},
				Prefix: "AUTOLOAD_LOG_",
			},
			io: &logging.Config{
				Level:   zapcore.DebugLevel,
				Output:  logging.JOURNAL,
				Options: logging.Options{"loader": zapcore.WarnLevel},
			},
		},
		{
			name: "logging-unprefixed-ignored",
			opts: EnvOptions{
				Environment: map[string]string{"LEVEL": "debug", "AUTOLOAD_LOG_OUTPUT": logging.CONSOLE},
				Prefix:      "AUTOLOAD_LOG_",
			},
			io: &logging.Config{Level: zapcore.InfoLevel, Output: logging.CONSOLE},
		},
		{
			name: "logging-invalid-output",
			opts: EnvOptions{
				Environment: map[string]string{"AUTOLOAD_LOG_OUTPUT": "syslog"},
				Prefix:      "AUTOLOAD_LOG_",
			},
			io:    &logging.Config{},
			error: true,
		},
	}

	for _, st := range subtests {
		t.Run(st.name, func(t *testing.T) {
			var actual Validator
			if vActual := reflect.ValueOf(st.io); vActual != (reflect.Value{}) {
				if vActual.Kind() == reflect.Ptr && !vActual.IsNil() {
					vActual = reflect.New(vActual.Type().Elem())
				}

				actual = vActual.Interface().(Validator)
			}

			err := FromEnv(actual, st.opts)
			if st.error {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, st.io, actual)
		})
	}
}

type flagSet struct {
	Format string `short:"f" long:"format" default:"json"`
	Quiet  bool   `short:"q" long:"quiet"`
}

func TestParseFlags(t *testing.T) {
	t.Run("nonptr", func(t *testing.T) {
		_, err := ParseFlags(flagSet{}, nil)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("defaults", func(t *testing.T) {
		var f flagSet
		rest, err := ParseFlags(&f, []string{"a.json", "b.json"})
		require.NoError(t, err)
		require.Equal(t, flagSet{Format: "json"}, f)
		require.Equal(t, []string{"a.json", "b.json"}, rest)
	})

	t.Run("options", func(t *testing.T) {
		var f flagSet
		rest, err := ParseFlags(&f, []string{"--format", "yaml", "-q", "a.json"})
		require.NoError(t, err)
		require.Equal(t, flagSet{Format: "yaml", Quiet: true}, f)
		require.Equal(t, []string{"a.json"}, rest)
	})

	t.Run("unknown", func(t *testing.T) {
		var f flagSet
		_, err := ParseFlags(&f, []string{"--bogus"})
		require.ErrorContains(t, err, "can't parse CLI flags")
	})
}
