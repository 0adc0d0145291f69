package config

import (
	"fmt"
	"strings"
)

// Parser selects the strategy used to extract definitions from source files.
type Parser uint8

const (
	// DefinitionFinder parses files in-process with the definition finder library.
	DefinitionFinder Parser = iota
	// ExtFactparse delegates to the runtime's native fact parser extension.
	ExtFactparse

	parserMax
)

var parserNames = [...]string{
	DefinitionFinder: "DEFINITION_FINDER",
	ExtFactparse:     "EXT_FACTPARSE",
}

var parserValues = [...]string{
	DefinitionFinder: "definition-finder",
	ExtFactparse:     "ext-factparse",
}

func (p Parser) String() string {
	if p >= parserMax {
		return fmt.Sprintf("Parser(%d)", uint8(p))
	}

	return parserValues[p]
}

// Name returns the symbolic member name of p, e.g. DEFINITION_FINDER.
func (p Parser) Name() string {
	if p >= parserMax {
		return p.String()
	}

	return parserNames[p]
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (p Parser) MarshalText() ([]byte, error) {
	if p >= parserMax {
		return nil, fmt.Errorf("unknown parser %d", uint8(p))
	}

	return []byte(p.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (p *Parser) UnmarshalText(text []byte) error {
	parsed, err := ParseParser(string(text))
	if err != nil {
		return err
	}

	*p = parsed
	return nil
}

// ParseParser returns the member whose textual value or name equals s, ignoring case.
func ParseParser(s string) (Parser, error) {
	for p := range parserMax {
		if strings.EqualFold(s, p.String()) || strings.EqualFold(s, p.Name()) {
			return p, nil
		}
	}

	return DefinitionFinder, fmt.Errorf("unknown parser %q", s)
}

// ParserValues returns the textual values of all parsers in declaration order.
func ParserValues() []string {
	return append([]string(nil), parserValues[:]...)
}
