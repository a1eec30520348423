// Package cli wires the command-line flags to a gbrom.HeaderPatchPlan
// and the file/stdio driver, in the same cobra/pflag idiom as
// rom-tools/internal/cli.
package cli

import (
	"fmt"
	"os"

	"github.com/sargunv/gbheaderfix/internal/driver"
	"github.com/sargunv/gbheaderfix/internal/reporter"
	"github.com/sargunv/gbheaderfix/lib/gbrom"
	"github.com/sargunv/gbheaderfix/lib/mbc"

	"github.com/spf13/cobra"
)

var (
	flagColorOnly       bool
	flagColorCompatible bool
	flagFixSpec         string
	flagGameID          string
	flagNonJapanese     bool
	flagNewLicensee     string
	flagOldLicensee     string
	flagMBCType         string
	flagROMVersion      string
	flagPadValue        string
	flagRAMSize         string
	flagSGB             bool
	flagTitle           string
	flagValidate        bool
)

var rootCmd = &cobra.Command{
	Use:     "gbheaderfix [files...]",
	Short:   "Patch Game Boy / Game Boy Color cartridge headers",
	Version: "0.1.0",
	Long: `gbheaderfix edits the 80-byte Game Boy cartridge header (0x100-0x14F)
of a freshly linked ROM image, optionally pads it to a power-of-two number
of 16 KiB banks, and recomputes the header and global checksums.

With no file arguments, or "-" in their place, gbheaderfix reads a ROM from
stdin and writes the patched ROM to stdout. Any other argument must name a
regular, seekable file, which is edited in place.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagColorOnly, "color-only", "C", false, "CGB only (writes 0xC0 at 0x143)")
	rootCmd.Flags().BoolVarP(&flagColorCompatible, "color-compatible", "c", false, "CGB-enhanced, still runs on DMG (writes 0x80 at 0x143)")
	rootCmd.Flags().StringVarP(&flagFixSpec, "fix-spec", "f", "", "fix-spec characters: l/L fix/trash logo, h/H fix/trash header checksum, g/G fix/trash global checksum")
	rootCmd.Flags().StringVarP(&flagGameID, "game-id", "i", "", "up to 4 byte game ID, written at 0x13F")
	rootCmd.Flags().BoolVarP(&flagNonJapanese, "non-japanese", "j", false, "mark the ROM as non-Japanese (writes 0x01 at 0x14A)")
	rootCmd.Flags().StringVarP(&flagNewLicensee, "new-licensee", "k", "", "2 ASCII byte new licensee code, written at 0x144")
	rootCmd.Flags().StringVarP(&flagOldLicensee, "old-licensee", "l", "", "old licensee code byte, written at 0x14B")
	rootCmd.Flags().StringVarP(&flagMBCType, "mbc-type", "m", "", "cartridge type descriptor, e.g. MBC3+TIMER+RAM+BATTERY or 0x1B")
	rootCmd.Flags().StringVarP(&flagROMVersion, "rom-version", "n", "", "ROM version byte, written at 0x14C")
	rootCmd.Flags().StringVarP(&flagPadValue, "pad-value", "p", "", "pad byte value; also rounds the ROM up to a power-of-two bank count")
	rootCmd.Flags().StringVarP(&flagRAMSize, "ram-size", "r", "", "RAM size code byte, written at 0x149")
	rootCmd.Flags().BoolVarP(&flagSGB, "sgb-compatible", "s", false, "mark the ROM as SGB-compatible (writes 0x03 at 0x146)")
	rootCmd.Flags().StringVarP(&flagTitle, "title", "t", "", "cartridge title, up to 11/15/16 bytes depending on model/game ID")
	rootCmd.Flags().BoolVarP(&flagValidate, "validate", "v", false, `shorthand for --fix-spec "lhg"`)

	rootCmd.MarkFlagsMutuallyExclusive("color-only", "color-compatible")
}

// Execute runs the root command; cmd/gbheaderfix/main.go is its only caller.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return exitCode
}

// exitCode is set by runRoot since cobra's RunE contract is "error or nil,"
// not an exit status; a run can fail (non-zero exit) without RunE itself
// returning an error, e.g. when an individual file fails to process.
var exitCode int

func runRoot(cmd *cobra.Command, args []string) error {
	exitCode = 0
	argRep := reporter.New(os.Stderr, "gbheaderfix")

	opts := gbrom.PlanOptions{
		Japanese: true,
		SGB:      flagSGB,
		Title:    []byte(flagTitle),
		GameID:   []byte(flagGameID),
	}

	switch {
	case flagColorOnly:
		opts.Model = gbrom.ModelCGB
	case flagColorCompatible:
		opts.Model = gbrom.ModelBoth
	}

	if flagNonJapanese {
		opts.Japanese = false
	}

	fixSpec := gbrom.FixSpec(0)
	if flagValidate {
		var err error
		fixSpec, _, err = gbrom.ParseFixSpec("lhg")
		if err != nil {
			panic("gbheaderfix: built-in validate fix-spec failed to parse: " + err.Error())
		}
	}
	if flagFixSpec != "" {
		parsed, warnings, err := gbrom.ParseFixSpec(flagFixSpec)
		if err != nil {
			argRep.Fatal("--fix-spec: %v", err)
		} else {
			fixSpec |= parsed
			for _, w := range warnings {
				argRep.Warn("%s", w.Message)
			}
		}
	}
	opts.FixSpec = fixSpec

	if flagNewLicensee != "" {
		opts.NewLicensee = []byte(flagNewLicensee)
	}

	if flagMBCType != "" {
		kind := mbc.Parse(flagMBCType)
		switch kind {
		case mbc.BadSyntax:
			argRep.Fatal("--mbc-type %q: bad syntax", flagMBCType)
		case mbc.IncompatibleFeatures:
			argRep.Fatal("--mbc-type %q: incompatible feature combination", flagMBCType)
		case mbc.OutOfRange:
			argRep.Fatal("--mbc-type %q: value out of range", flagMBCType)
		default:
			opts.CartridgeType = kind
		}
	}

	if b, ok := parseOptionalByteFlag("--old-licensee", flagOldLicensee, argRep); ok {
		opts.OldLicensee = &b
	}
	if b, ok := parseOptionalByteFlag("--rom-version", flagROMVersion, argRep); ok {
		opts.ROMVersion = &b
	}
	if b, ok := parseOptionalByteFlag("--pad-value", flagPadValue, argRep); ok {
		opts.PadValue = &b
	}
	if b, ok := parseOptionalByteFlag("--ram-size", flagRAMSize, argRep); ok {
		opts.RAMSize = &b
	}

	plan, warnings := gbrom.NewPlan(opts)
	for _, w := range warnings {
		argRep.Warn("%s", w.Message)
	}

	if argRep.Failed() {
		exitCode = 1
	}

	if !driver.Run(plan, args, os.Stderr) {
		exitCode = 1
	}

	return nil
}

// parseOptionalByteFlag parses a byte-valued flag that defaults to unset.
// A parse failure is reported through rep as a user error and processing
// continues with the option left unset.
func parseOptionalByteFlag(flagName, raw string, rep *reporter.Reporter) (byte, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := parseByteValue(raw)
	if err != nil {
		rep.Fatal("%s: %v", flagName, err)
		return 0, false
	}
	return v, true
}
