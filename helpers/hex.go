package helpers

import (
	"encoding/hex"
	"strings"
)

// MustHex decodes hex, whitespace ignored. For tests and constants.
func MustHex(s string) []byte {
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		panic(err)
	}
	return b
}
