// Package command turns command strings from the configuration into
// argument vectors.
//
// Splitting is deliberately naive: the string is cut on every occurrence of
// the delimiter, so consecutive delimiters produce empty arguments. Quotes,
// escapes and globs are passed through untouched because no shell is ever
// involved in running the result.
package command

import (
	"strings"

	"grimm.is/icewall/internal/errors"
)

// DefaultDelimiter separates arguments in configuration command strings.
const DefaultDelimiter = ' '

// ErrEmptyCommand is returned when there is no program to run.
var ErrEmptyCommand = errors.New(errors.KindInvalidInput, "empty command")

// Parsed is a program path and its argument vector. Argv[0] is always Path.
type Parsed struct {
	Path string
	Argv []string
}

// String joins the argument vector back with the default delimiter.
func (p Parsed) String() string {
	return strings.Join(p.Argv, string(DefaultDelimiter))
}

// Parse splits command on DefaultDelimiter.
func Parse(command string) (Parsed, error) {
	return ParseWith(command, DefaultDelimiter)
}

// ParseWith splits command on delim. Token 0 becomes Path and every token,
// including token 0, becomes Argv in source order.
func ParseWith(command string, delim rune) (Parsed, error) {
	if command == "" {
		return Parsed{}, ErrEmptyCommand
	}

	argv := strings.Split(command, string(delim))
	return Parsed{
		Path: argv[0],
		Argv: argv,
	}, nil
}
