package gbrom

import "fmt"

// FixSpec is a bitset over the six logo/checksum mutation flags. Each pair
// (fix, trash) is mutually exclusive; ParseFixSpec resolves conflicts by
// letting the later character in the spec string win, emitting a warning.
type FixSpec uint8

const (
	FixLogo FixSpec = 1 << iota
	TrashLogo
	FixHeaderSum
	TrashHeaderSum
	FixGlobalSum
	TrashGlobalSum
)

// pairs lists the mutually exclusive (fix, trash) bit pairs, used to
// resolve conflicts during parsing.
var pairs = [3][2]FixSpec{
	{FixLogo, TrashLogo},
	{FixHeaderSum, TrashHeaderSum},
	{FixGlobalSum, TrashGlobalSum},
}

// charBits maps each fix-spec character to the bit it sets.
var charBits = map[byte]FixSpec{
	'l': FixLogo,
	'L': TrashLogo,
	'h': FixHeaderSum,
	'H': TrashHeaderSum,
	'g': FixGlobalSum,
	'G': TrashGlobalSum,
}

// ParseFixSpec parses a fix-spec character string such as "lhg" or "lL".
// Unrecognized characters are a user error. Within a spec, setting both
// halves of a mutually exclusive pair is not an error: the later
// character overrides the earlier one, and a warning is emitted.
func ParseFixSpec(spec string) (FixSpec, []Warning, error) {
	var fs FixSpec
	var warnings []Warning

	for i := 0; i < len(spec); i++ {
		bit, ok := charBits[spec[i]]
		if !ok {
			return 0, warnings, fmt.Errorf("unknown fix-spec character %q", spec[i])
		}
		for _, pair := range pairs {
			if bit != pair[0] && bit != pair[1] {
				continue
			}
			var other FixSpec
			if bit == pair[0] {
				other = pair[1]
			} else {
				other = pair[0]
			}
			if fs&other != 0 {
				fs &^= other
				warnings = append(warnings, Warning{
					Message: fmt.Sprintf("fix-spec character %q overrides earlier conflicting setting", spec[i]),
				})
			}
		}
		fs |= bit
	}

	return fs, warnings, nil
}

func (f FixSpec) has(bit FixSpec) bool { return f&bit != 0 }
