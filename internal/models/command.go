package models

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Command is an operator instruction for the servo. The variants are Manual, NamedMode and Sequence.
type Command interface {
	isCommand()
}

// Manual moves the servo to a fixed angle.
type Manual struct {
	Angle int
}

// NamedMode switches the device into a mode it knows by name (e.g. "sweep", "center").
type NamedMode struct {
	Mode string
}

// Sequence plays a list of angles. Build it with ParseSequence.
type Sequence struct {
	Angles []int
	Raw    string // trimmed operator text, sent to the device as-is
}

func (Manual) isCommand()    {}
func (NamedMode) isCommand() {}
func (Sequence) isCommand()  {}

var (
	ErrEmptySequence     = errors.New("empty sequence")
	ErrMalformedSequence = errors.New("sequence must contain only digits, whitespace and commas")
)

var sequencePattern = regexp.MustCompile(`^[\d\s,]+$`)

// ParseSequence trims raw and validates it. Empty input yields ErrEmptySequence.
func ParseSequence(raw string) (Sequence, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Sequence{}, ErrEmptySequence
	}
	if !sequencePattern.MatchString(text) {
		return Sequence{}, ErrMalformedSequence
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	angles := make([]int, 0, len(fields))
	for _, f := range fields {
		// out-of-range digit runs still pass; the device owns range checks
		if v, err := strconv.Atoi(f); err == nil {
			angles = append(angles, v)
		}
	}
	return Sequence{Angles: angles, Raw: text}, nil
}
