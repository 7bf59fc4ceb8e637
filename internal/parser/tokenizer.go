package parser

import (
	"errors"
	"strings"
)

// ErrMalformedLine is returned for lines that yield no fields at all.
var ErrMalformedLine = errors.New("malformed line")

// Line is one tokenized SPED line. SPED lines open and close with the
// field delimiter ("|C170|...|"), so after splitting, token 0 is the
// empty string before the leading delimiter and token 1 is the record
// type. Field positions throughout this package follow that raw layout,
// matching the position numbers in the EFD-Contribuições record guide.
type Line struct {
	RecordType string
	tokens     []string
}

// Tokenize splits a raw line on "|" and identifies its record type.
// Empty fields are preserved as empty strings. A line that lost its
// leading delimiter is realigned by prepending an empty token, so Field
// positions always match the standard layout; a line with an empty
// record type slot is malformed.
func Tokenize(raw string) (Line, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Line{}, ErrMalformedLine
	}

	tokens := strings.Split(trimmed, "|")
	if tokens[0] != "" {
		tokens = append([]string{""}, tokens...)
	}

	if len(tokens) < 2 || tokens[1] == "" {
		return Line{}, ErrMalformedLine
	}

	return Line{RecordType: tokens[1], tokens: tokens}, nil
}

// Field returns the token at the given position, or "" when the line is
// shorter than that. Missing trailing fields are empty, never an error.
// Surrounding whitespace is trimmed; interior whitespace is kept verbatim.
func (l Line) Field(pos int) string {
	if pos < 0 || pos >= len(l.tokens) {
		return ""
	}
	return strings.TrimSpace(l.tokens[pos])
}

// Len returns the number of tokens on the line.
func (l Line) Len() int {
	return len(l.tokens)
}
