package patterns

import (
	"fmt"
	"strings"

	"XRPVanity/internal/codec"
)

// NetworkTag is the first character of every account address.
const NetworkTag = 'r'

// InvalidCharError names the first prefix character outside the alphabet.
type InvalidCharError struct {
	Char  byte
	Index int
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("impossible pattern; character: '%c' at %d", e.Char, e.Index)
}

// Normalize prepends the network tag when the prefix does not start with it.
func Normalize(prefix string) string {
	if prefix == "" || prefix[0] != NetworkTag {
		return string(NetworkTag) + prefix
	}
	return prefix
}

// Validate reports the first character that can never appear in an address.
func Validate(prefix string) error {
	for i := 0; i < len(prefix); i++ {
		if !codec.IsAlphabet(prefix[i]) {
			return &InvalidCharError{Char: prefix[i], Index: i}
		}
	}
	return nil
}

// Match is an exact, case-sensitive prefix test. An address shorter than the
// prefix never matches.
func Match(address, prefix string) bool {
	return len(address) >= len(prefix) && strings.HasPrefix(address, prefix)
}
