package config

import (
	"fmt"
	"strings"
)

// DecodeError is returned if the raw text of a configuration document cannot be decoded.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("can't decode config %q: %s", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is [ErrInvalidConfiguration].
func (e *DecodeError) Is(target error) bool { return target == ErrInvalidConfiguration }

// MissingKeyError is returned if a required key is absent from a configuration document.
type MissingKeyError struct {
	Key    string
	Source string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("config %q does not define %q", e.Source, e.Key)
}

// Is reports whether target is [ErrInvalidConfiguration].
func (e *MissingKeyError) Is(target error) bool { return target == ErrInvalidConfiguration }

// TypeError is returned if the value of a key does not have the expected shape,
// e.g. a scalar where an array is required.
type TypeError struct {
	Key      string
	Expected string
	Value    any
	Source   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("config %q has a %q key that is not of type %s, got %s", e.Source, e.Key, e.Expected, describe(e.Value))
}

// Is reports whether target is [ErrInvalidConfiguration].
func (e *TypeError) Is(target error) bool { return target == ErrInvalidConfiguration }

// ElementTypeError is returned if an array holds an element other than a string.
// Index is the zero-based position of the first offending element.
type ElementTypeError struct {
	Key    string
	Index  int
	Value  any
	Source string
}

func (e *ElementTypeError) Error() string {
	return fmt.Sprintf("config %q has a non-string element in %q at index %d: %s", e.Source, e.Key, e.Index, describe(e.Value))
}

// Is reports whether target is [ErrInvalidConfiguration].
func (e *ElementTypeError) Is(target error) bool { return target == ErrInvalidConfiguration }

// InvalidEnumError is returned if the value of an enum key matches none of its members.
type InvalidEnumError struct {
	Key    string
	Value  any
	Valid  []string
	Source string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf(
		"config %q has an invalid value of %q (%s); valid values are: %s",
		e.Source, e.Key, describe(e.Value), strings.Join(e.Valid, ", "),
	)
}

// Is reports whether target is [ErrInvalidConfiguration].
func (e *InvalidEnumError) Is(target error) bool { return target == ErrInvalidConfiguration }

// describe renders a decoded document value together with its type for error messages.
func describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", v)
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T %v", v, v)
	}
}
