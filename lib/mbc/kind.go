// Package mbc implements the cartridge-type (MBC) lexicon and descriptor
// parser used to turn a human-written string like "MBC3+TIMER+RAM+BATTERY"
// into the single byte stored at header offset 0x147.
package mbc

import "fmt"

// tag discriminates a Kind between a real cartridge-type byte and one of the
// sentinel parse outcomes. Sentinels never carry a meaningful code and must
// never reach the header writer.
type tag uint8

const (
	tagUnspecified tag = iota
	tagReal
	tagBadSyntax
	tagIncompatibleFeatures
	tagOutOfRange
)

// Kind is a tagged cartridge-type value: either a real header byte, or one
// of the sentinel outcomes of a failed or absent parse. The zero Kind is
// Unspecified, matching the "no -m flag given" default.
type Kind struct {
	code byte
	tag  tag
}

// Sentinel values. None of these carries a usable byte; Code panics if
// called on one.
var (
	Unspecified          = Kind{tag: tagUnspecified}
	BadSyntax            = Kind{tag: tagBadSyntax}
	IncompatibleFeatures = Kind{tag: tagIncompatibleFeatures}
	OutOfRange           = Kind{tag: tagOutOfRange}
)

// Real wraps a concrete cartridge-type byte. Used both for named-family
// resolutions and for the numeric escape hatch, which accepts any byte
// 0x00-0xFF without feature validation.
func Real(code byte) Kind {
	return Kind{code: code, tag: tagReal}
}

// IsReal reports whether k carries a real header byte.
func (k Kind) IsReal() bool {
	return k.tag == tagReal
}

// IsSentinel reports whether k is one of Unspecified, BadSyntax,
// IncompatibleFeatures, or OutOfRange.
func (k Kind) IsSentinel() bool {
	return !k.IsReal()
}

// Code returns the header byte for a real Kind. It panics if called on a
// sentinel: callers must check IsReal first. A sentinel reaching here is a
// programmer error, not a data error - the parser guarantees sentinels never
// escape into the writer.
func (k Kind) Code() byte {
	if !k.IsReal() {
		panic(fmt.Sprintf("mbc: Code() called on sentinel Kind (tag=%d)", k.tag))
	}
	return k.code
}

// String renders k for diagnostics. Sentinels get a fixed label; real codes
// get their canonical lexicon name if known, else a hex fallback.
func (k Kind) String() string {
	switch k.tag {
	case tagUnspecified:
		return "<unspecified>"
	case tagBadSyntax:
		return "<bad syntax>"
	case tagIncompatibleFeatures:
		return "<incompatible features>"
	case tagOutOfRange:
		return "<out of range>"
	case tagReal:
		if name, ok := Name(k); ok {
			return name
		}
		return fmt.Sprintf("0x%02X", k.code)
	default:
		panic(fmt.Sprintf("mbc: unknown tag %d", k.tag))
	}
}

// lexiconEntry is the canonical name and RAM-exposure fact for one real
// cartridge-type byte.
type lexiconEntry struct {
	name   string
	hasRAM bool
}

// lexicon is the closed table of named cartridge-type byte values. Byte
// values reachable only through the numeric escape hatch and not present
// here are still real Kinds; they simply have no canonical name (Name
// reports ok=false) and are conservatively treated as not exposing RAM.
var lexicon = map[byte]lexiconEntry{
	0x00: {"ROM ONLY", false},
	0x01: {"MBC1", false},
	0x02: {"MBC1+RAM", true},
	0x03: {"MBC1+RAM+BATTERY", true},
	0x05: {"MBC2", false},
	0x06: {"MBC2+BATTERY", false},
	0x08: {"ROM+RAM", true},
	0x09: {"ROM+RAM+BATTERY", true},
	0x0B: {"MMM01", false},
	0x0C: {"MMM01+RAM", true},
	0x0D: {"MMM01+RAM+BATTERY", true},
	0x0F: {"MBC3+TIMER+BATTERY", false},
	0x10: {"MBC3+TIMER+RAM+BATTERY", true},
	0x11: {"MBC3", false},
	0x12: {"MBC3+RAM", true},
	0x13: {"MBC3+RAM+BATTERY", true},
	0x19: {"MBC5", false},
	0x1A: {"MBC5+RAM", true},
	0x1B: {"MBC5+RAM+BATTERY", true},
	0x1C: {"MBC5+RUMBLE", false},
	0x1D: {"MBC5+RUMBLE+RAM", true},
	0x1E: {"MBC5+RUMBLE+RAM+BATTERY", true},
	0x20: {"MBC6", false}, // hasRAM(MBC6) is advisory-only, see DESIGN.md
	0x22: {"MBC7+SENSOR+RUMBLE+RAM+BATTERY", true},
	0xFC: {"POCKET CAMERA", false},
	0xFD: {"BANDAI TAMA5", false}, // hasRAM(TAMA5) is advisory-only, see DESIGN.md
	0xFE: {"HUC3", false},
	0xFF: {"HUC1+RAM+BATTERY", true},
}

// Name returns the canonical printable name for a real cartridge-type Kind.
// Calling Name on a sentinel is a programming error and panics; the parser
// never hands a sentinel to this function in the writer path.
func Name(k Kind) (string, bool) {
	if !k.IsReal() {
		panic("mbc: Name() called on sentinel Kind")
	}
	e, ok := lexicon[k.code]
	if !ok {
		return "", false
	}
	return e.name, true
}

// HasRAM reports whether k's cartridge type exposes external RAM. This is
// advisory only: MBC6's on-cartridge flash and TAMA5's RTC-backed storage
// don't correspond to the conventional external-RAM-size byte convention,
// so both are flagged false pending a real answer, same as upstream docs.
func HasRAM(k Kind) bool {
	if !k.IsReal() {
		panic("mbc: HasRAM() called on sentinel Kind")
	}
	e, ok := lexicon[k.code]
	if !ok {
		return false
	}
	return e.hasRAM
}
