package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/autoloadmap/loader/config"
	"github.com/autoloadmap/loader/logging"
	"github.com/autoloadmap/loader/testutils"
	"github.com/stretchr/testify/require"
)

func newTestLogging(t *testing.T) *logging.Logging {
	l, err := logging.NewLogging("autoload-config", logging.Config{Output: logging.CONSOLE})
	require.NoError(t, err)

	return l
}

func TestRun(t *testing.T) {
	l := newTestLogging(t)

	testutils.WithFile(t, "*.json", `{"roots": ["src/"], "parser": "ext-factparse"}`, func(valid *os.File) {
		testutils.WithFile(t, "*.yml", "roots: [lib/, tests/]\nincludeVendor: false\n", func(yml *os.File) {
			t.Run("json", func(t *testing.T) {
				var out bytes.Buffer
				require.Equal(t, ExitSuccess, run([]string{valid.Name(), yml.Name()}, &out, l))

				dec := json.NewDecoder(&out)

				var first, second map[string]any
				require.NoError(t, dec.Decode(&first))
				require.NoError(t, dec.Decode(&second))

				require.Equal(t, "ext-factparse", first["parser"])
				require.Equal(t, []any{"src/"}, first["roots"])
				require.Equal(t, []any{}, first["extraFiles"])
				require.Equal(t, []any{"lib/", "tests/"}, second["roots"])
				require.Equal(t, false, second["includeVendor"])
				require.Equal(t, "scan", second["autoloadFilesBehavior"])
			})

			t.Run("yaml", func(t *testing.T) {
				var out bytes.Buffer
				require.Equal(t, ExitSuccess, run([]string{"--format", "yaml", yml.Name()}, &out, l))

				doc := strings.TrimPrefix(out.String(), "---\n")
				cfg, err := config.LoadFromYAML([]byte(doc), "output")
				require.NoError(t, err)
				require.Equal(t, []string{"lib/", "tests/"}, cfg.Roots)
				require.False(t, cfg.IncludeVendor)
			})

			t.Run("quiet", func(t *testing.T) {
				var out bytes.Buffer
				require.Equal(t, ExitSuccess, run([]string{"-q", valid.Name()}, &out, l))
				require.Empty(t, out.String())
			})
		})
	})

	t.Run("invalid", func(t *testing.T) {
		testutils.WithFile(t, "*.json", `{"roots": "src/"}`, func(invalid *os.File) {
			testutils.WithFile(t, "*.json", `{"roots": []}`, func(valid *os.File) {
				var out bytes.Buffer
				require.Equal(t, ExitInvalid, run([]string{invalid.Name(), valid.Name()}, &out, l))

				var cfg map[string]any
				require.NoError(t, json.Unmarshal(out.Bytes(), &cfg), "valid files are still printed")
				require.Equal(t, []any{}, cfg["roots"])
			})
		})
	})

	t.Run("missing", func(t *testing.T) {
		var out bytes.Buffer
		require.Equal(t, ExitInvalid, run([]string{"/nonexistent/hh_autoload.json"}, &out, l))
		require.Empty(t, out.String())
	})

	t.Run("bad-format", func(t *testing.T) {
		var out bytes.Buffer
		require.Equal(t, ExitFailure, run([]string{"--format", "xml"}, &out, l))
	})
}
