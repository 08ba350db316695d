package console

import (
	"strings"
	"unicode"
)

// Line is a normalised console input line.
type Line struct {
	// Raw is the trimmed, lower-cased input.
	Raw string
	// Name is the first field.
	Name string
	// Args are the remaining fields.
	Args []string
	// Remainder is everything after the first run of whitespace in Raw.
	Remainder string
}

// Parse normalises input and splits it into a command name and arguments.
// It reports false for blank input.
func Parse(input string) (Line, bool) {
	raw := strings.ToLower(strings.TrimSpace(input))
	if raw == "" {
		return Line{}, false
	}
	fields := strings.Fields(raw)
	line := Line{Raw: raw, Name: fields[0], Args: fields[1:]}
	if i := strings.IndexFunc(raw, unicode.IsSpace); i >= 0 {
		line.Remainder = strings.TrimLeftFunc(raw[i:], unicode.IsSpace)
	}
	return line, true
}
