// Package gbrom implements the streaming/in-place Game Boy ROM header
// patcher: building a HeaderPatchPlan from user intent, then applying it to
// a ROM image while computing the header and global checksums.
package gbrom

// Header layout, all offsets relative to the start of the file (bank 0
// begins at 0x0000; the header proper begins at 0x100). Mirrors the layout
// table documented for GB/GBC cartridges.
const (
	BankSize = 16384 // 16 KiB, the fixed bank granularity.

	headerStart          = 0x100
	rom0Size             = 0x4000 // one bank, BankSize
	minROM0Read          = 0x150  // header must be fully present
	logoOffset           = 0x104
	logoLen              = 48
	titleOffset          = 0x134
	titleMaxLenDMG       = 16
	titleMaxLenNonDMG    = 15
	titleMaxLenWithGame  = 11
	gameIDOffset         = 0x13F
	gameIDLen            = 4
	cgbFlagOffset        = 0x143
	newLicenseeOffset    = 0x144
	newLicenseeLen       = 2
	sgbFlagOffset        = 0x146
	cartTypeOffset       = 0x147
	romSizeOffset        = 0x148
	ramSizeOffset        = 0x149
	destCodeOffset       = 0x14A
	oldLicenseeOffset    = 0x14B
	versionOffset        = 0x14C
	headerChecksumOffset = 0x14D
	globalChecksumOffset = 0x14E
)

// cgbFlagBoth and friends: the raw bytes written for each user-facing
// flag, kept next to the offsets they apply to.
const (
	cgbFlagBoth byte = 0x80
	cgbFlagOnly byte = 0xC0

	sgbFlagSupported byte = 0x03

	destCodeJapan    byte = 0x00
	destCodeOverseas byte = 0x01

	oldLicenseeUsesNew byte = 0x33
)

// nintendoLogo is the 48-byte constant every Game Boy boot ROM compares
// against before continuing to boot. "Fix" writes it verbatim; "trash"
// writes its bitwise complement, which exercises the boot ROM's reject
// path.
var nintendoLogo = [logoLen]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83,
	0x00, 0x0C, 0x00, 0x0D, 0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99, 0xBB, 0xBB, 0x67, 0x63,
	0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// trashedLogo is the bitwise complement of nintendoLogo, computed once.
var trashedLogo = func() [logoLen]byte {
	var t [logoLen]byte
	for i, b := range nintendoLogo {
		t[i] = ^b
	}
	return t
}()

// Model selects the CGB-compatibility byte written at 0x143.
type Model int

const (
	ModelDMG  Model = iota // leave 0x143 alone
	ModelBoth              // 0x80: CGB-enhanced, still runs on DMG
	ModelCGB               // 0xC0: CGB only
)

// romSizeCode returns the byte stored at 0x148 for a given (post-padding)
// bank count: log2(nbBanks) - 1, so 2 banks -> 0, 4 -> 1, ..., 512 -> 8.
func romSizeCode(nbBanks int) byte {
	code := 0
	for n := nbBanks; n > 2; n >>= 1 {
		code++
	}
	return byte(code)
}
