package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// Keys of a configuration document.
const (
	keyRoots                 = "roots"
	keyExtraFiles            = "extraFiles"
	keyAutoloadFilesBehavior = "autoloadFilesBehavior"
	keyIncludeVendor         = "includeVendor"
	keyParser                = "parser"
)

// FromFile reads the named file and loads its configuration. Files with a .yml or .yaml extension
// are decoded as YAML, all others as JSON. The file name is used as source label in errors.
func FromFile(name string) (Config, error) {
	// #nosec G304 -- Accept user-controlled input for config file.
	data, err := os.ReadFile(name)
	if err != nil {
		return Config{}, errors.Wrap(err, "can't read config file "+name)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml":
		return LoadFromYAML(data, name)
	default:
		return LoadFromText(data, name)
	}
}

// LoadFromText decodes text as a JSON object and validates it using [LoadFromDocument].
// If text is not valid JSON or its top-level value is not an object, a [DecodeError] is returned.
func LoadFromText(text []byte, source string) (Config, error) {
	var v any

	d := json.NewDecoder(bytes.NewReader(text))
	d.UseNumber()
	if err := d.Decode(&v); err != nil {
		return Config{}, errors.WithStack(&DecodeError{Source: source, Err: err})
	}

	if _, err := d.Token(); err != io.EOF {
		return Config{}, errors.WithStack(&DecodeError{Source: source, Err: errors.New("unexpected data after top-level value")})
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return Config{}, errors.WithStack(&DecodeError{Source: source, Err: errors.Errorf("top-level value is %s, not an object", describe(v))})
	}

	return LoadFromDocument(doc, source)
}

// LoadFromYAML decodes text as a YAML mapping and validates it using [LoadFromDocument].
// If text is not valid YAML or its top-level value is not a mapping, a [DecodeError] is returned.
func LoadFromYAML(text []byte, source string) (Config, error) {
	var v any

	if err := yaml.Unmarshal(text, &v); err != nil {
		// yaml.FormatError prints the offending source lines if err supports it.
		return Config{}, errors.WithStack(&DecodeError{Source: source, Err: errors.New(yaml.FormatError(err, false, true))})
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return Config{}, errors.WithStack(&DecodeError{Source: source, Err: errors.Errorf("top-level value is %s, not a mapping", describe(v))})
	}

	return LoadFromDocument(doc, source)
}

// LoadFromDocument validates doc and returns the resulting [Config].
// source identifies the document in error messages, usually its file path.
//
// The checks run in a fixed order and the first violation is returned:
// roots, extraFiles, autoloadFilesBehavior, includeVendor, parser.
// Only roots is required. Absent optional keys get their defaults,
// whereas present keys must hold a valid value, even if that is null.
// Unknown keys are ignored. doc is never modified.
func LoadFromDocument(doc map[string]any, source string) (Config, error) {
	rawRoots, ok := doc[keyRoots]
	if !ok {
		return Config{}, errors.WithStack(&MissingKeyError{Key: keyRoots, Source: source})
	}

	roots, err := stringList(keyRoots, rawRoots, source)
	if err != nil {
		return Config{}, err
	}

	extraFiles := []string{}
	if raw, ok := doc[keyExtraFiles]; ok {
		extraFiles, err = stringList(keyExtraFiles, raw, source)
		if err != nil {
			return Config{}, err
		}
	}

	behavior := FindDefinitions
	if raw, ok := doc[keyAutoloadFilesBehavior]; ok {
		behavior, err = coerce(keyAutoloadFilesBehavior, raw, ParseAutoloadFilesBehavior, AutoloadFilesBehaviorValues, source)
		if err != nil {
			return Config{}, err
		}
	}

	includeVendor := true
	if raw, ok := doc[keyIncludeVendor]; ok {
		b, isBool := raw.(bool)
		if !isBool {
			return Config{}, errors.WithStack(&TypeError{Key: keyIncludeVendor, Expected: "bool", Value: raw, Source: source})
		}

		includeVendor = b
	}

	parser := DefinitionFinder
	if raw, ok := doc[keyParser]; ok {
		parser, err = coerce(keyParser, raw, ParseParser, ParserValues, source)
		if err != nil {
			return Config{}, err
		}
	}

	return Config{
		Roots:                 roots,
		ExtraFiles:            extraFiles,
		AutoloadFilesBehavior: behavior,
		IncludeVendor:         includeVendor,
		Parser:                parser,
	}, nil
}

// stringList copies the array raw into a new slice, requiring every element to be a string.
func stringList(key string, raw any, source string) ([]string, error) {
	elements, ok := raw.([]any)
	if !ok {
		return nil, errors.WithStack(&TypeError{Key: key, Expected: "array", Value: raw, Source: source})
	}

	list := make([]string, 0, len(elements))
	for i, element := range elements {
		s, ok := element.(string)
		if !ok {
			return nil, errors.WithStack(&ElementTypeError{Key: key, Index: i, Value: element, Source: source})
		}

		list = append(list, s)
	}

	return list, nil
}

// coerce converts raw to an enum member using parse. Values other than strings never match.
func coerce[T any](key string, raw any, parse func(string) (T, error), values func() []string, source string) (T, error) {
	if s, ok := raw.(string); ok {
		if v, err := parse(s); err == nil {
			return v, nil
		}
	}

	var zero T
	return zero, errors.WithStack(&InvalidEnumError{Key: key, Value: raw, Valid: values(), Source: source})
}
