// Package bitseq decodes user text into CAN bit sequence.
// Two formats are accepted: binary ("0101 1100") and hex ("AA bb 01").
// Whitespace is ignored in both. Hex bytes expand MSB first.
package bitseq

import (
	"strings"
	"unicode"
)

const (
	MaxBytes         = 12
	MaxBits          = MaxBytes * 8
	MaxInvalidReport = 5
)

// Bits is validated bit sequence, 1..MaxBits long.
// Do not modify after parse.
type Bits []bool

func (b Bits) Len() int { return len(b) }

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// FromBytes expands bytes MSB first, no length check.
func FromBytes(bs []byte) Bits {
	bits := make(Bits, 0, len(bs)*8)
	for _, b := range bs {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1 == 1)
		}
	}
	return bits
}

// ParseBinary accepts '0', '1' and whitespace, 1..MaxBits digits.
func ParseBinary(text string) (Bits, error) {
	invalid := make([]rune, 0, MaxInvalidReport)
	n := 0
	for _, c := range text {
		switch {
		case c == '0' || c == '1':
			n++
		case unicode.IsSpace(c):
		default:
			invalid = appendInvalid(invalid, c)
		}
	}
	if len(invalid) != 0 {
		return nil, &DecodeError{Kind: InvalidCharacter, Chars: invalid, Format: "binary"}
	}
	if n == 0 {
		return nil, &DecodeError{Kind: EmptyInput, Format: "binary"}
	}
	if n > MaxBits {
		return nil, &DecodeError{Kind: TooLong, Format: "binary", Count: n, Max: MaxBits}
	}

	bits := make(Bits, 0, n)
	for _, c := range text {
		if c == '0' || c == '1' {
			bits = append(bits, c == '1')
		}
	}
	return bits, nil
}

// ParseHex accepts hex digits in any case and whitespace, 1..MaxBytes whole bytes.
func ParseHex(text string) (Bits, error) {
	text = strings.ToUpper(strings.TrimSpace(text))
	invalid := make([]rune, 0, MaxInvalidReport)
	digits := make([]byte, 0, len(text))
	for _, c := range text {
		switch {
		case '0' <= c && c <= '9' || 'A' <= c && c <= 'F':
			digits = append(digits, byte(c))
		case unicode.IsSpace(c):
		default:
			invalid = appendInvalid(invalid, c)
		}
	}
	if len(invalid) != 0 {
		return nil, &DecodeError{Kind: InvalidCharacter, Chars: invalid, Format: "hex"}
	}
	if len(digits) == 0 {
		return nil, &DecodeError{Kind: EmptyInput, Format: "hex"}
	}
	if len(digits)%2 != 0 {
		return nil, &DecodeError{Kind: OddLength, Format: "hex", Count: len(digits)}
	}
	if nbytes := len(digits) / 2; nbytes > MaxBytes {
		return nil, &DecodeError{Kind: TooLong, Format: "hex", Count: nbytes * 8, Max: MaxBits}
	}

	bs := make([]byte, len(digits)/2)
	for i := range bs {
		bs[i] = unhex(digits[2*i])<<4 | unhex(digits[2*i+1])
	}
	return FromBytes(bs), nil
}

func appendInvalid(list []rune, c rune) []rune {
	if len(list) < MaxInvalidReport {
		list = append(list, c)
	}
	return list
}

// c is upper case hex digit
func unhex(c byte) byte {
	if c <= '9' {
		return c - '0'
	}
	return c - 'A' + 10
}
