package config

import (
	"fmt"
	"strings"
)

// AutoloadFilesBehavior controls how files that execute side effects,
// rather than only defining types and functions, are treated by the autoload map generator.
type AutoloadFilesBehavior uint8

const (
	// FindDefinitions scans such files for definitions like any other file.
	FindDefinitions AutoloadFilesBehavior = iota
	// ExecFiles requires such files to be executed when the autoloader is initialized.
	ExecFiles

	autoloadFilesBehaviorMax
)

var autoloadFilesBehaviorNames = [...]string{
	FindDefinitions: "FIND_DEFINITIONS",
	ExecFiles:       "EXEC_FILES",
}

var autoloadFilesBehaviorValues = [...]string{
	FindDefinitions: "scan",
	ExecFiles:       "exec",
}

// String returns the textual value of b as used in configuration documents.
func (b AutoloadFilesBehavior) String() string {
	if b >= autoloadFilesBehaviorMax {
		return fmt.Sprintf("AutoloadFilesBehavior(%d)", uint8(b))
	}

	return autoloadFilesBehaviorValues[b]
}

// Name returns the symbolic member name of b, e.g. FIND_DEFINITIONS.
func (b AutoloadFilesBehavior) Name() string {
	if b >= autoloadFilesBehaviorMax {
		return b.String()
	}

	return autoloadFilesBehaviorNames[b]
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (b AutoloadFilesBehavior) MarshalText() ([]byte, error) {
	if b >= autoloadFilesBehaviorMax {
		return nil, fmt.Errorf("unknown autoload files behavior %d", uint8(b))
	}

	return []byte(b.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (b *AutoloadFilesBehavior) UnmarshalText(text []byte) error {
	parsed, err := ParseAutoloadFilesBehavior(string(text))
	if err != nil {
		return err
	}

	*b = parsed
	return nil
}

// ParseAutoloadFilesBehavior returns the member whose textual value or name equals s, ignoring case.
func ParseAutoloadFilesBehavior(s string) (AutoloadFilesBehavior, error) {
	for b := range autoloadFilesBehaviorMax {
		if strings.EqualFold(s, b.String()) || strings.EqualFold(s, b.Name()) {
			return b, nil
		}
	}

	return FindDefinitions, fmt.Errorf("unknown autoload files behavior %q", s)
}

// AutoloadFilesBehaviorValues returns the textual values of all members in declaration order.
func AutoloadFilesBehaviorValues() []string {
	return append([]string(nil), autoloadFilesBehaviorValues[:]...)
}
