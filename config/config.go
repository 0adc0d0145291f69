// Package config validates and normalizes autoload map configuration documents.
//
// A document is a generic mapping as produced by a JSON or YAML decoder. The loaders in this package
// check it key by key and turn it into a fully populated [Config], or fail with one of the typed errors
// [DecodeError], [MissingKeyError], [TypeError], [ElementTypeError] and [InvalidEnumError],
// all of which embed the label of the source document and satisfy errors.Is(err, [ErrInvalidConfiguration]).
//
// Additionally, the package provides helpers for loading settings of the surrounding tooling
// from environment variables and command line flags.
package config

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is the error returned by [FromEnv] and [ParseFlags] if
// the parsing result cannot be stored in the value pointed to by the specified argument,
// which must be a non-nil struct pointer.
var ErrInvalidArgument = stderrors.New("invalid argument")

// ErrInvalidConfiguration is matched by every error returned from a loader because of the content of
// a configuration document, i.e. errors.Is() recognizes both ErrInvalidConfiguration and the typed error.
// Errors reading the document, e.g. a missing file, do not match.
var ErrInvalidConfiguration = stderrors.New("invalid configuration")

// Config is the validated configuration of the autoload map generator.
//
// A Config returned by one of the loaders has every field set and owns its slices.
// It must not be modified afterwards.
type Config struct {
	// Roots are the directories to scan, in the order given.
	// Earlier roots take precedence when de-duplicating definitions.
	Roots []string `json:"roots" yaml:"roots"`

	// ExtraFiles are individual files included in addition to the scanned roots.
	ExtraFiles []string `json:"extraFiles" yaml:"extraFiles"`

	AutoloadFilesBehavior AutoloadFilesBehavior `json:"autoloadFilesBehavior" yaml:"autoloadFilesBehavior"`

	// IncludeVendor specifies whether vendor directories are scanned.
	IncludeVendor bool `json:"includeVendor" yaml:"includeVendor"`

	Parser Parser `json:"parser" yaml:"parser"`
}

// Validate checks constraints in the configuration and returns an error if they are violated.
// Configs returned by the loaders always pass.
func (c *Config) Validate() error {
	if c.Roots == nil {
		return errors.New("roots must be set")
	}

	if c.ExtraFiles == nil {
		return errors.New("extra files must be set")
	}

	if c.AutoloadFilesBehavior >= autoloadFilesBehaviorMax {
		return errors.Errorf("invalid autoload files behavior %s", c.AutoloadFilesBehavior)
	}

	if c.Parser >= parserMax {
		return errors.Errorf("invalid parser %s", c.Parser)
	}

	return nil
}
