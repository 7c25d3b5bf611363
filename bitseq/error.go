package bitseq

import (
	"fmt"

	"github.com/juju/errors"
)

type Kind uint8

const (
	KindNone Kind = iota
	EmptyInput
	InvalidCharacter
	OddLength
	TooLong
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case EmptyInput:
		return "empty input"
	case InvalidCharacter:
		return "invalid character"
	case OddLength:
		return "odd length"
	case TooLong:
		return "too long"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

type DecodeError struct {
	Kind   Kind
	Format string
	// InvalidCharacter: first MaxInvalidReport offending characters
	Chars []rune
	// TooLong: bits; OddLength: hex digits
	Count int
	Max   int
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case EmptyInput:
		return fmt.Sprintf("%s input is empty", e.Format)
	case InvalidCharacter:
		allowed := "0 1 whitespace"
		if e.Format == "hex" {
			allowed = "0-9 A-F whitespace"
		}
		return fmt.Sprintf("%s input invalid characters '%s' (allowed: %s)", e.Format, string(e.Chars), allowed)
	case OddLength:
		return fmt.Sprintf("hex input odd number of digits=%d", e.Count)
	case TooLong:
		return fmt.Sprintf("%s input too long bits=%d max=%d", e.Format, e.Count, e.Max)
	}
	return fmt.Sprintf("%s input error kind=%s", e.Format, e.Kind.String())
}

// KindOf returns KindNone for nil and foreign errors.
// Works on errors wrapped with juju errors.Trace/Annotate.
func KindOf(err error) Kind {
	if e, ok := errors.Cause(err).(*DecodeError); ok {
		return e.Kind
	}
	return KindNone
}
