package mbc

import (
	"strconv"
	"strings"
)

// feature is a single optional capability a cartridge type may declare.
type feature uint8

const (
	featureRAM feature = 1 << iota
	featureBattery
	featureTimer
	featureRumble
	featureSensor
)

// featureSet is a bitset over the five recognized features.
type featureSet uint8

func (s featureSet) has(f feature) bool { return s&featureSet(f) != 0 }

var featureNames = map[string]feature{
	"RAM":     featureRAM,
	"BATTERY": featureBattery,
	"TIMER":   featureTimer,
	"RUMBLE":  featureRumble,
	"SENSOR":  featureSensor,
}

// Parse tokenizes a free-form cartridge-type descriptor and resolves it to
// a single MBC byte, or one of the sentinel Kinds on failure. Parse is pure:
// it never mutates any state and always terminates.
func Parse(descriptor string) Kind {
	norm := normalize(descriptor)
	if norm == "" {
		return BadSyntax
	}

	if k, ok := parseNumeric(norm); ok {
		return k
	}

	return parseNamed(norm)
}

// normalize folds underscores to spaces, uppercases, and trims leading and
// trailing whitespace. The grammar treats '_' and ' ' as equivalent and
// ignores surrounding whitespace everywhere.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ToUpper(s)
	return strings.TrimSpace(s)
}

// parseNumeric recognizes the `number` production: decimal, 0x-hex, or
// $-hex. ok is false when the descriptor is not in numeric form at all, in
// which case the caller falls through to the named-family grammar.
func parseNumeric(norm string) (Kind, bool) {
	var digits string
	var base int

	switch {
	case strings.HasPrefix(norm, "0X"):
		digits = norm[2:]
		base = 16
	case strings.HasPrefix(norm, "$"):
		digits = norm[1:]
		base = 16
	case norm[0] >= '0' && norm[0] <= '9':
		digits = norm
		base = 10
	default:
		return Kind{}, false
	}

	if digits == "" {
		return BadSyntax, true
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			// Well-formed, but too large even for 64 bits.
			return OutOfRange, true
		}
		// Looked numeric (recognized prefix/leading digit) but isn't a
		// valid number in that base: malformed, not a named family.
		return BadSyntax, true
	}
	if v > 255 {
		return OutOfRange, true
	}
	return Real(byte(v)), true
}

// familyResolution is one row of the cartridge-type resolution table: a
// base family and the single-RAM/BATTERY-shaped lookups it supports.
type familyResolution struct {
	// exact maps an exact feature set to its resulting code.
	exact map[featureSet]byte
}

func featureSetOf(fs ...feature) featureSet {
	var s featureSet
	for _, f := range fs {
		s |= featureSet(f)
	}
	return s
}

var familyTable = map[string]familyResolution{
	"ROM": {exact: map[featureSet]byte{
		featureSetOf():                           0x00,
		featureSetOf(featureRAM):                 0x08,
		featureSetOf(featureRAM, featureBattery): 0x09,
	}},
	"MBC1": {exact: map[featureSet]byte{
		featureSetOf():                           0x01,
		featureSetOf(featureRAM):                 0x02,
		featureSetOf(featureRAM, featureBattery): 0x03,
	}},
	"MBC2": {exact: map[featureSet]byte{
		featureSetOf():               0x05,
		featureSetOf(featureBattery): 0x06,
	}},
	"MMM01": {exact: map[featureSet]byte{
		featureSetOf():                           0x0B,
		featureSetOf(featureRAM):                 0x0C,
		featureSetOf(featureRAM, featureBattery): 0x0D,
	}},
	"MBC3": {exact: map[featureSet]byte{
		featureSetOf():                                         0x11,
		featureSetOf(featureRAM):                               0x12,
		featureSetOf(featureRAM, featureBattery):               0x13,
		featureSetOf(featureTimer, featureBattery):             0x0F,
		featureSetOf(featureTimer, featureRAM, featureBattery): 0x10,
	}},
	"MBC5": {exact: map[featureSet]byte{
		featureSetOf():                                          0x19,
		featureSetOf(featureRAM):                                0x1A,
		featureSetOf(featureRAM, featureBattery):                0x1B,
		featureSetOf(featureRumble):                             0x1C,
		featureSetOf(featureRumble, featureRAM):                 0x1D,
		featureSetOf(featureRumble, featureRAM, featureBattery): 0x1E,
	}},
	"MBC6": {exact: map[featureSet]byte{
		featureSetOf(): 0x20,
	}},
	"MBC7": {exact: map[featureSet]byte{
		featureSetOf(featureSensor, featureRumble, featureRAM, featureBattery): 0x22,
	}},
	"POCKET CAMERA": {exact: map[featureSet]byte{
		featureSetOf(): 0xFC,
	}},
	"TAMA5": {exact: map[featureSet]byte{
		featureSetOf(): 0xFD,
	}},
	"HUC3": {exact: map[featureSet]byte{
		featureSetOf(): 0xFE,
	}},
	"HUC1": {exact: map[featureSet]byte{
		featureSetOf(featureRAM, featureBattery): 0xFF,
	}},
}

// parseNamed recognizes `family features?`. The descriptor is already
// normalized (uppercased, underscores folded, trimmed).
func parseNamed(norm string) Kind {
	parts := strings.Split(norm, "+")
	familyToken := collapseSpaces(strings.TrimSpace(parts[0]))

	family, ok := matchFamily(familyToken)
	if !ok {
		return BadSyntax
	}

	var fs featureSet
	for _, tok := range parts[1:] {
		tok = strings.TrimSpace(tok)
		f, ok := featureNames[tok]
		if !ok {
			return BadSyntax
		}
		fs |= featureSet(f)
	}

	res, ok := familyTable[family]
	if !ok {
		// MBC4 and similar unhandled numbers never matched matchFamily.
		return BadSyntax
	}
	code, ok := res.exact[fs]
	if !ok {
		return IncompatibleFeatures
	}
	return Real(code)
}

// matchFamily recognizes the `family` production, including the "ROM ONLY"
// and "BANDAI TAMA5" synonyms, and returns the canonical family key used to
// index familyTable.
func matchFamily(token string) (string, bool) {
	switch token {
	case "ROM", "ROM ONLY":
		return "ROM", true
	case "MBC1", "MBC2", "MBC3", "MBC5", "MBC6", "MBC7":
		return token, true
	case "MMM01":
		return "MMM01", true
	case "POCKET CAMERA":
		return "POCKET CAMERA", true
	case "TAMA5", "BANDAI TAMA5":
		return "TAMA5", true
	case "HUC1":
		return "HUC1", true
	case "HUC3":
		return "HUC3", true
	default:
		return "", false
	}
}

// collapseSpaces reduces any run of internal whitespace to a single space,
// so "POCKET  CAMERA" and "POCKET CAMERA" match identically.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
