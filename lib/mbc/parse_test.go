package mbc

import "testing"

func TestParse_Numeric(t *testing.T) {
	cases := []struct {
		in   string
		want byte
	}{
		{"0", 0x00},
		{"27", 0x1B},
		{"255", 0xFF},
		{"0x1B", 0x1B},
		{"0X1b", 0x1B},
		{"$1b", 0x1B},
		{"$FF", 0xFF},
	}
	for _, c := range cases {
		got := Parse(c.in)
		if !got.IsReal() {
			t.Fatalf("Parse(%q): expected real code, got %v", c.in, got)
		}
		if got.Code() != c.want {
			t.Errorf("Parse(%q): expected 0x%02X, got 0x%02X", c.in, c.want, got.Code())
		}
	}
}

func TestParse_NumericOutOfRange(t *testing.T) {
	for _, in := range []string{"256", "300", "0x100", "$100", "99999999999999999999"} {
		if got := Parse(in); got != OutOfRange {
			t.Errorf("Parse(%q): expected OutOfRange, got %v", in, got)
		}
	}
}

func TestParse_NumericAllBytes(t *testing.T) {
	for v := 0; v <= 255; v++ {
		in := itoa(v)
		got := Parse(in)
		if !got.IsReal() || got.Code() != byte(v) {
			t.Fatalf("Parse(%q): expected real 0x%02X, got %v", in, v, got)
		}
	}
}

func itoa(v int) string {
	digits := "0123456789"
	if v == 0 {
		return "0"
	}
	var buf []byte
	for v > 0 {
		buf = append([]byte{digits[v%10]}, buf...)
		v /= 10
	}
	return string(buf)
}

func TestParse_EmptyIsBadSyntax(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		if got := Parse(in); got != BadSyntax {
			t.Errorf("Parse(%q): expected BadSyntax, got %v", in, got)
		}
	}
}

func TestParse_NamedFamilies(t *testing.T) {
	cases := []struct {
		in   string
		want byte
	}{
		{"ROM ONLY", 0x00},
		{"rom_only", 0x00},
		{"ROM+RAM", 0x08},
		{"ROM+RAM+BATTERY", 0x09},
		{"MBC1", 0x01},
		{"MBC1+RAM", 0x02},
		{"MBC1+RAM+BATTERY", 0x03},
		{"MBC2", 0x05},
		{"MBC2+BATTERY", 0x06},
		{"MMM01", 0x0B},
		{"MMM01+RAM", 0x0C},
		{"MMM01+RAM+BATTERY", 0x0D},
		{"MBC3", 0x11},
		{"MBC3+RAM", 0x12},
		{"MBC3+RAM+BATTERY", 0x13},
		{"MBC3+TIMER+BATTERY", 0x0F},
		{"MBC3+TIMER+RAM+BATTERY", 0x10},
		{"MBC5", 0x19},
		{"MBC5+RAM", 0x1A},
		{"MBC5+RAM+BATTERY", 0x1B},
		{"MBC5+RUMBLE", 0x1C},
		{"MBC5+RUMBLE+RAM", 0x1D},
		{"MBC5+RUMBLE+RAM+BATTERY", 0x1E},
		{"MBC6", 0x20},
		{"MBC7+SENSOR+RUMBLE+RAM+BATTERY", 0x22},
		{"mbc7+sensor+rumble+ram+battery", 0x22},
		{"POCKET CAMERA", 0xFC},
		{"TAMA5", 0xFD},
		{"BANDAI TAMA5", 0xFD},
		{"HUC3", 0xFE},
		{"HUC1+RAM+BATTERY", 0xFF},
		{" MBC3 + RAM + BATTERY ", 0x13},
		{"MBC3_+_RAM", 0x12},
	}
	for _, c := range cases {
		got := Parse(c.in)
		if !got.IsReal() {
			t.Fatalf("Parse(%q): expected real code, got %v", c.in, got)
		}
		if got.Code() != c.want {
			t.Errorf("Parse(%q): expected 0x%02X, got 0x%02X", c.in, c.want, got.Code())
		}
	}
}

func TestParse_IncompatibleFeatures(t *testing.T) {
	cases := []string{
		"ROM+BATTERY",
		"MBC1+BATTERY",
		"MBC2+RAM",
		"MBC3+TIMER",
		"MBC3+RUMBLE",
		"MBC5+SENSOR",
		"MBC6+RAM",
		"MBC7+RAM",
		"MBC7", // missing required features
		"HUC1",
		"HUC1+RAM",
	}
	for _, in := range cases {
		if got := Parse(in); got != IncompatibleFeatures {
			t.Errorf("Parse(%q): expected IncompatibleFeatures, got %v", in, got)
		}
	}
}

func TestParse_BadSyntax(t *testing.T) {
	cases := []string{
		"MBC4",
		"MBC9",
		"NOTACART",
		"MBC3+FOO",
		"MBC3+RAM+",
		"MBC3+RAM extra",
		"ROM ONLYX",
		"0xZZ",
		"0x",
		"$",
	}
	for _, in := range cases {
		if got := Parse(in); got != BadSyntax {
			t.Errorf("Parse(%q): expected BadSyntax, got %v", in, got)
		}
	}
}

func TestParse_TotalityAndTermination(t *testing.T) {
	// Every input must produce exactly one of: real code, or one of the
	// four sentinels. This is implied by the type system (Kind can only be
	// constructed as Real or one of the package-level sentinels) but we
	// exercise a wide variety of inputs to guard against panics.
	inputs := []string{
		"", "mbc3", "MBC3+RAM+BATTERY", "0xFF", "$ff", "999999", "-1",
		"tama5", "bandai_tama5", "pocket camera", "rom only", "huc1+ram+battery",
		"😀", "MBC3++RAM", "+RAM", "MBC3 RAM",
	}
	for _, in := range inputs {
		got := Parse(in)
		if got.IsReal() {
			continue
		}
		switch got {
		case Unspecified, BadSyntax, IncompatibleFeatures, OutOfRange:
		default:
			t.Errorf("Parse(%q): returned an unrecognized sentinel", in)
		}
	}
}
