package gbrom

import (
	"fmt"

	"github.com/sargunv/gbheaderfix/lib/mbc"
)

// Warning is a non-fatal diagnostic produced while assembling a plan:
// truncations, overridden fix-spec characters, or incoherent RAM/MBC
// combinations. Warnings never fail a file.
type Warning struct {
	Message string
}

// PlanOptions carries the raw, CLI-shaped user intent before assembly.
// Every field is optional; nil/zero means "not specified," except Japanese,
// whose zero value (false) marks the ROM as non-Japanese.
type PlanOptions struct {
	Model         Model
	FixSpec       FixSpec
	GameID        []byte // up to 4 bytes
	Japanese      bool   // the CLI sets true unless --non-japanese is given; false writes 0x01 at 0x14A
	NewLicensee   []byte // up to 2 bytes
	OldLicensee   *byte
	CartridgeType mbc.Kind // default mbc.Unspecified
	ROMVersion    *byte
	PadValue      *byte
	RAMSize       *byte
	SGB           bool
	Title         []byte // up to 16 bytes, truncated during assembly
}

// HeaderPatchPlan is the fully resolved, read-only set of header edits.
// It is built once from PlanOptions and then threaded unchanged into
// ProcessSeekable or ProcessPipe for every ROM in the run.
type HeaderPatchPlan struct {
	Model         Model
	FixSpec       FixSpec
	GameID        []byte
	Japanese      bool
	NewLicensee   []byte
	OldLicensee   *byte
	CartridgeType mbc.Kind
	ROMVersion    *byte
	PadValue      *byte
	RAMSize       *byte
	SGB           bool
	Title         []byte
}

// NewPlan assembles a HeaderPatchPlan from PlanOptions, applying the
// title/gameID/licensee truncation rules and cross-option sanity checks.
// It never returns an error: every PlanOptions value, however
// contradictory, has a well-defined resolved plan; contradictions only
// produce warnings.
func NewPlan(opts PlanOptions) (*HeaderPatchPlan, []Warning) {
	var warnings []Warning

	gameID := opts.GameID
	if len(gameID) > gameIDLen {
		gameID = gameID[:gameIDLen]
	}

	newLicensee := opts.NewLicensee
	if len(newLicensee) > newLicenseeLen {
		newLicensee = newLicensee[:newLicenseeLen]
	}

	titleMax := titleMaxLenDMG
	if len(gameID) > 0 {
		titleMax = titleMaxLenWithGame
	} else if opts.Model != ModelDMG {
		titleMax = titleMaxLenNonDMG
	}

	title := opts.Title
	if len(title) > titleMax {
		reason := "title"
		switch {
		case len(opts.GameID) > 0:
			reason = "game ID"
		case opts.Model != ModelDMG:
			reason = "CGB/BOTH model"
		}
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("title truncated to %d bytes (%s forces a shorter title)", titleMax, reason),
		})
		title = title[:titleMax]
	}

	plan := &HeaderPatchPlan{
		Model:         opts.Model,
		FixSpec:       opts.FixSpec,
		GameID:        gameID,
		Japanese:      opts.Japanese,
		NewLicensee:   newLicensee,
		OldLicensee:   opts.OldLicensee,
		CartridgeType: opts.CartridgeType,
		ROMVersion:    opts.ROMVersion,
		PadValue:      opts.PadValue,
		RAMSize:       opts.RAMSize,
		SGB:           opts.SGB,
		Title:         title,
	}

	warnings = append(warnings, crossOptionWarnings(plan)...)
	return plan, warnings
}

// crossOptionWarnings implements the post-parse coherence checks:
// RAM/MBC coherence, SGB + old-licensee coherence, and the ROM+RAM
// under-specified-variant checks.
func crossOptionWarnings(plan *HeaderPatchPlan) []Warning {
	var warnings []Warning

	if plan.SGB && plan.OldLicensee != nil && *plan.OldLicensee != oldLicenseeUsesNew {
		warnings = append(warnings, Warning{
			Message: "SGB support requested but old licensee code is not 0x33",
		})
	}

	if plan.CartridgeType.IsReal() {
		kind := plan.CartridgeType
		code := kind.Code()

		if code == 0x08 || code == 0x09 {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("%s is an under-specified cartridge type", kind),
			})
			if plan.RAMSize == nil || *plan.RAMSize != 1 {
				warnings = append(warnings, Warning{
					Message: fmt.Sprintf("%s conventionally uses RAM size code 1, but a different value was given", kind),
				})
			}
		}

		if !mbc.HasRAM(kind) && plan.RAMSize != nil && *plan.RAMSize != 0 {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("RAM size specified but %s does not expose external RAM", kind),
			})
		}
	}

	return warnings
}
