package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseByteValue parses a CLI byte argument in decimal, 0x-hex, or $-hex
// form, rejecting values outside 0..=255. This is the general-purpose
// sibling of the MBC parser's numeric form (lib/mbc.Parse): both accept
// the same three numeral syntaxes, but this one is used for every plain
// byte-valued flag (--game-id bytes aside, which are ASCII text, not
// numerals).
func parseByteValue(s string) (byte, error) {
	if s == "" {
		return 0, fmt.Errorf("empty byte value")
	}

	upper := strings.ToUpper(s)
	var digits string
	var base int

	switch {
	case strings.HasPrefix(upper, "0X"):
		digits, base = upper[2:], 16
	case strings.HasPrefix(upper, "$"):
		digits, base = upper[1:], 16
	default:
		digits, base = upper, 10
	}

	if digits == "" {
		return 0, fmt.Errorf("invalid byte value %q", s)
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte value %q", s)
	}
	if v > 255 {
		return 0, fmt.Errorf("byte value %q out of range 0-255", s)
	}
	return byte(v), nil
}
