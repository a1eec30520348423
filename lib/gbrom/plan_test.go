package gbrom

import (
	"strings"
	"testing"

	"github.com/sargunv/gbheaderfix/lib/mbc"
)

func hasWarningContaining(warnings []Warning, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w.Message, substr) {
			return true
		}
	}
	return false
}

func TestNewPlan_GameIDTruncatedTo4(t *testing.T) {
	plan, _ := NewPlan(PlanOptions{GameID: []byte("ABCDE")})
	if string(plan.GameID) != "ABCD" {
		t.Errorf("expected GameID truncated to ABCD, got %q", plan.GameID)
	}
}

func TestNewPlan_NewLicenseeTruncatedTo2(t *testing.T) {
	plan, _ := NewPlan(PlanOptions{NewLicensee: []byte("XYZ")})
	if string(plan.NewLicensee) != "XY" {
		t.Errorf("expected NewLicensee truncated to XY, got %q", plan.NewLicensee)
	}
}

func TestNewPlan_TitleDefaultMax16(t *testing.T) {
	title := strings.Repeat("A", 20)
	plan, warnings := NewPlan(PlanOptions{Model: ModelDMG, Title: []byte(title)})
	if len(plan.Title) != titleMaxLenDMG {
		t.Errorf("expected title truncated to %d, got %d", titleMaxLenDMG, len(plan.Title))
	}
	if !hasWarningContaining(warnings, "title truncated") {
		t.Error("expected a title-truncation warning")
	}
}

func TestNewPlan_TitleMax11WhenGameIDSet(t *testing.T) {
	title := strings.Repeat("A", 16)
	plan, warnings := NewPlan(PlanOptions{Model: ModelDMG, GameID: []byte("ABCD"), Title: []byte(title)})
	if len(plan.Title) != titleMaxLenWithGame {
		t.Errorf("expected title truncated to %d, got %d", titleMaxLenWithGame, len(plan.Title))
	}
	if !hasWarningContaining(warnings, "game ID") {
		t.Errorf("expected truncation reason to cite game ID, got %v", warnings)
	}
}

func TestNewPlan_TitleMax15WhenNonDMGModel(t *testing.T) {
	title := strings.Repeat("A", 16)
	plan, warnings := NewPlan(PlanOptions{Model: ModelBoth, Title: []byte(title)})
	if len(plan.Title) != titleMaxLenNonDMG {
		t.Errorf("expected title truncated to %d, got %d", titleMaxLenNonDMG, len(plan.Title))
	}
	if !hasWarningContaining(warnings, "CGB/BOTH model") {
		t.Errorf("expected truncation reason to cite model, got %v", warnings)
	}
}

func TestNewPlan_GameIDTruncationTakesPriorityInReason(t *testing.T) {
	title := strings.Repeat("A", 16)
	plan, warnings := NewPlan(PlanOptions{Model: ModelCGB, GameID: []byte("ABCD"), Title: []byte(title)})
	if len(plan.Title) != titleMaxLenWithGame {
		t.Errorf("expected title truncated to %d, got %d", titleMaxLenWithGame, len(plan.Title))
	}
	if !hasWarningContaining(warnings, "game ID") {
		t.Errorf("expected game ID to take priority in truncation reason, got %v", warnings)
	}
}

func TestNewPlan_NoWarningWhenTitleFits(t *testing.T) {
	_, warnings := NewPlan(PlanOptions{Model: ModelDMG, Title: []byte("SHORT")})
	if hasWarningContaining(warnings, "title truncated") {
		t.Errorf("did not expect a truncation warning, got %v", warnings)
	}
}

func TestCrossOptionWarnings_SGBWithoutOldLicenseeMatch(t *testing.T) {
	_, warnings := NewPlan(PlanOptions{
		SGB:           true,
		OldLicensee:   byteOf(0x01),
		CartridgeType: mbc.Parse("MBC5"),
	})
	if !hasWarningContaining(warnings, "old licensee code is not 0x33") {
		t.Errorf("expected SGB/old-licensee warning, got %v", warnings)
	}
}

func TestCrossOptionWarnings_SGBWithMatchingOldLicenseeIsSilent(t *testing.T) {
	_, warnings := NewPlan(PlanOptions{
		SGB:           true,
		OldLicensee:   byteOf(0x33),
		CartridgeType: mbc.Parse("MBC5"),
	})
	if hasWarningContaining(warnings, "old licensee code is not 0x33") {
		t.Errorf("did not expect SGB/old-licensee warning, got %v", warnings)
	}
}

func TestCrossOptionWarnings_UnderSpecifiedCartridgeType(t *testing.T) {
	_, warnings := NewPlan(PlanOptions{
		CartridgeType: mbc.Real(0x08),
	})
	if !hasWarningContaining(warnings, "under-specified") {
		t.Errorf("expected under-specified warning, got %v", warnings)
	}
	if !hasWarningContaining(warnings, "conventionally uses RAM size code 1") {
		t.Errorf("expected RAM-size-1 convention warning, got %v", warnings)
	}
}

func TestCrossOptionWarnings_UnderSpecifiedWithCorrectRAMSizeStillWarnsOnce(t *testing.T) {
	_, warnings := NewPlan(PlanOptions{
		CartridgeType: mbc.Real(0x09),
		RAMSize:       byteOf(1),
	})
	if !hasWarningContaining(warnings, "under-specified") {
		t.Errorf("expected under-specified warning, got %v", warnings)
	}
	if hasWarningContaining(warnings, "conventionally uses RAM size code 1") {
		t.Errorf("did not expect RAM-size convention warning when RAM size is already 1, got %v", warnings)
	}
}

func TestCrossOptionWarnings_RAMSizeWithoutRAMSupport(t *testing.T) {
	_, warnings := NewPlan(PlanOptions{
		CartridgeType: mbc.Parse("MBC2"),
		RAMSize:       byteOf(2),
	})
	if !hasWarningContaining(warnings, "does not expose external RAM") {
		t.Errorf("expected no-RAM warning, got %v", warnings)
	}
}

func TestCrossOptionWarnings_RAMSizeZeroWithoutRAMSupportIsSilent(t *testing.T) {
	_, warnings := NewPlan(PlanOptions{
		CartridgeType: mbc.Parse("MBC2"),
		RAMSize:       byteOf(0),
	})
	if hasWarningContaining(warnings, "does not expose external RAM") {
		t.Errorf("did not expect a no-RAM warning for RAM size 0, got %v", warnings)
	}
}

func TestCrossOptionWarnings_UnspecifiedCartridgeTypeSkipsChecks(t *testing.T) {
	_, warnings := NewPlan(PlanOptions{RAMSize: byteOf(7)})
	if len(warnings) != 0 {
		t.Errorf("expected no cross-option warnings without a cartridge type, got %v", warnings)
	}
}
