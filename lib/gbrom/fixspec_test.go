package gbrom

import "testing"

func TestParseFixSpec_Basic(t *testing.T) {
	fs, warnings, err := ParseFixSpec("lhg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	want := FixLogo | FixHeaderSum | FixGlobalSum
	if fs != want {
		t.Errorf("expected %v, got %v", want, fs)
	}
}

func TestParseFixSpec_LaterCharacterWins(t *testing.T) {
	fs, warnings, err := ParseFixSpec("lL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fs != TrashLogo {
		t.Errorf("expected TrashLogo, got %v", fs)
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(warnings))
	}
}

func TestParseFixSpec_AllThreePairsOverride(t *testing.T) {
	fs, warnings, err := ParseFixSpec("lLhHgG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := TrashLogo | TrashHeaderSum | TrashGlobalSum
	if fs != want {
		t.Errorf("expected %v, got %v", want, fs)
	}
	if len(warnings) != 3 {
		t.Errorf("expected 3 warnings, got %d", len(warnings))
	}
}

func TestParseFixSpec_UnknownCharacter(t *testing.T) {
	if _, _, err := ParseFixSpec("x"); err == nil {
		t.Error("expected error for unknown fix-spec character")
	}
}

func TestParseFixSpec_Empty(t *testing.T) {
	fs, warnings, err := ParseFixSpec("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fs != 0 {
		t.Errorf("expected empty FixSpec, got %v", fs)
	}
	if len(warnings) != 0 {
		t.Error("expected no warnings")
	}
}
