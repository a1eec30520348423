package gbrom

import (
	"fmt"
	"io"
	"os"
)

// maxBanks is the hard cap on bank count (a bank-count byte must fit the
// header's size-code scheme); exceeding it is fatal.
const maxBanks = 65536

// readROM0 reads up to one bank from r into a fixed BankSize buffer. It
// tolerates short reads and EOF (the caller checks rom0Len against the
// minimum header size); only a genuine I/O error is propagated.
func readROM0(r io.Reader) (rom0 []byte, rom0Len int, err error) {
	rom0 = make([]byte, BankSize)
	n, err := io.ReadFull(r, rom0)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return rom0, n, nil
		}
		return nil, 0, err
	}
	return rom0, n, nil
}

// applyHeaderMutations applies the fixed, ordered set of header edits, each
// conditional on the plan. rom0 must be at least minROM0Read bytes long.
func applyHeaderMutations(rom0 []byte, plan *HeaderPatchPlan) {
	switch {
	case plan.FixSpec.has(FixLogo):
		copy(rom0[logoOffset:logoOffset+logoLen], nintendoLogo[:])
	case plan.FixSpec.has(TrashLogo):
		copy(rom0[logoOffset:logoOffset+logoLen], trashedLogo[:])
	}

	if len(plan.Title) > 0 {
		copy(rom0[titleOffset:titleOffset+len(plan.Title)], plan.Title)
	}

	if len(plan.GameID) > 0 {
		copy(rom0[gameIDOffset:gameIDOffset+len(plan.GameID)], plan.GameID)
	}

	switch plan.Model {
	case ModelBoth:
		rom0[cgbFlagOffset] = cgbFlagBoth
	case ModelCGB:
		rom0[cgbFlagOffset] = cgbFlagOnly
	}

	if len(plan.NewLicensee) > 0 {
		copy(rom0[newLicenseeOffset:newLicenseeOffset+len(plan.NewLicensee)], plan.NewLicensee)
	}

	if plan.SGB {
		rom0[sgbFlagOffset] = sgbFlagSupported
	}

	if plan.CartridgeType.IsReal() {
		rom0[cartTypeOffset] = plan.CartridgeType.Code()
	}

	if plan.RAMSize != nil {
		rom0[ramSizeOffset] = *plan.RAMSize
	}

	if !plan.Japanese {
		rom0[destCodeOffset] = destCodeOverseas
	}

	if plan.OldLicensee != nil {
		rom0[oldLicenseeOffset] = *plan.OldLicensee
	}

	if plan.ROMVersion != nil {
		rom0[versionOffset] = *plan.ROMVersion
	}
}

// computeHeaderChecksum computes the header checksum: sum = -Σ(rom0[i]+1)
// for i in [0x134, 0x14D), in uint8 arithmetic. trash stores the bitwise
// complement instead, for exercising the boot ROM's reject path.
func computeHeaderChecksum(rom0 []byte, trash bool) byte {
	var sum byte
	for i := titleOffset; i < headerChecksumOffset; i++ {
		sum -= rom0[i] + 1
	}
	if trash {
		sum = ^sum
	}
	return sum
}

// storeGlobalChecksum writes the big-endian 16-bit global checksum,
// optionally complemented.
func storeGlobalChecksum(rom0 []byte, sum uint64, trash bool) {
	sum16 := uint16(sum)
	if trash {
		sum16 = ^sum16
	}
	rom0[globalChecksumOffset] = byte(sum16 >> 8)
	rom0[globalChecksumOffset+1] = byte(sum16)
}

// nextPow2 rounds n up to the next power of two; a value that is already a
// power of two is returned unchanged.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func writeAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}

// writePadding writes n bytes of value to w in fixed-size chunks.
func writePadding(w io.Writer, value byte, n int64) error {
	if n <= 0 {
		return nil
	}
	const chunkSize = 32 * 1024
	size := int64(chunkSize)
	if size > n {
		size = n
	}
	chunk := make([]byte, size)
	for i := range chunk {
		chunk[i] = value
	}
	for n > 0 {
		sz := int64(len(chunk))
		if sz > n {
			sz = n
			chunk = chunk[:sz]
		}
		if err := writeAll(w, chunk); err != nil {
			return err
		}
		n -= sz
	}
	return nil
}

// sumForward reads exactly n bytes forward from f's current position,
// summing them, without buffering more than one bank at a time. Used by
// the seekable path to fold ROMX into the global checksum without loading
// the whole ROM into memory.
func sumForward(f *os.File, n int64) (uint64, error) {
	var sum uint64
	buf := make([]byte, BankSize)
	for n > 0 {
		chunk := buf
		if int64(len(chunk)) > n {
			chunk = chunk[:n]
		}
		m, err := io.ReadFull(f, chunk)
		for _, b := range chunk[:m] {
			sum += uint64(b)
		}
		n -= int64(m)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return sum, err
		}
	}
	return sum, nil
}

// ProcessSeekable edits a ROM in place: f is a regular file opened for
// read-write, size is its authoritative length. Only the
// minimum necessary bytes are read and rewritten; the bulk of the ROM
// (ROMX) is swept forward on disk to fold into the global checksum,
// never buffered in memory.
func ProcessSeekable(plan *HeaderPatchPlan, f *os.File, size int64) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to start: %w", err)
	}
	rom0, rom0Len, err := readROM0(f)
	if err != nil {
		return fmt.Errorf("reading ROM0: %w", err)
	}
	if rom0Len < minROM0Read {
		return fmt.Errorf("file too short: %d bytes, need at least %#x", rom0Len, minROM0Read)
	}

	applyHeaderMutations(rom0, plan)

	if size >= int64(maxBanks)*BankSize {
		return fmt.Errorf("ROM has more than %d banks", maxBanks)
	}

	nbBanks := int((size + BankSize - 1) / BankSize)
	if nbBanks < 1 {
		nbBanks = 1
	}
	totalRomxLen := size - BankSize
	if totalRomxLen < 0 {
		totalRomxLen = 0
	}

	var padTailLen int64
	var globalSum uint64

	if plan.PadValue != nil {
		if nbBanks <= 1 {
			for i := rom0Len; i < BankSize; i++ {
				rom0[i] = *plan.PadValue
			}
			rom0Len = BankSize
			nbBanks = 2
		}
		nbBanks = nextPow2(nbBanks)
		rom0[romSizeOffset] = romSizeCode(nbBanks)
		padTailLen = int64(nbBanks-1)*BankSize - totalRomxLen
		globalSum += uint64(*plan.PadValue) * uint64(padTailLen)
	}

	if plan.FixSpec.has(FixHeaderSum) || plan.FixSpec.has(TrashHeaderSum) {
		rom0[headerChecksumOffset] = computeHeaderChecksum(rom0, plan.FixSpec.has(TrashHeaderSum))
	}

	if plan.FixSpec.has(FixGlobalSum) || plan.FixSpec.has(TrashGlobalSum) {
		rom0[globalChecksumOffset] = 0
		rom0[globalChecksumOffset+1] = 0
		for _, b := range rom0[:rom0Len] {
			globalSum += uint64(b)
		}
		romxSum, err := sumForward(f, totalRomxLen)
		if err != nil {
			return fmt.Errorf("summing ROMX: %w", err)
		}
		globalSum += romxSum
		storeGlobalChecksum(rom0, globalSum, plan.FixSpec.has(TrashGlobalSum))
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to start: %w", err)
	}

	writeLen := minROM0Read
	padding := plan.PadValue != nil
	if padding {
		writeLen = rom0Len
	}
	if err := writeAll(f, rom0[:writeLen]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if padding && padTailLen > 0 {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			return fmt.Errorf("seeking to end: %w", err)
		}
		if err := writePadding(f, *plan.PadValue, padTailLen); err != nil {
			return fmt.Errorf("writing padding: %w", err)
		}
	}

	return nil
}

// ProcessPipe streams a ROM from in to out: in and out are distinct
// streams (stdin/stdout), so the whole ROM must pass through, with ROMX
// buffered in memory to compute the global checksum before bank 0 (which
// holds the checksum bytes) can be written.
func ProcessPipe(plan *HeaderPatchPlan, in io.Reader, out io.Writer) error {
	rom0, rom0Len, err := readROM0(in)
	if err != nil {
		return fmt.Errorf("reading ROM0: %w", err)
	}
	if rom0Len < minROM0Read {
		return fmt.Errorf("file too short: %d bytes, need at least %#x", rom0Len, minROM0Read)
	}

	applyHeaderMutations(rom0, plan)

	var romx []byte
	var totalRomxLen int64
	var globalSum uint64
	nbBanks := 1

	if rom0Len == BankSize {
		buf := make([]byte, BankSize)
		for {
			n, err := io.ReadFull(in, buf)
			if n > 0 {
				romx = append(romx, buf[:n]...)
				for _, b := range buf[:n] {
					globalSum += uint64(b)
				}
				totalRomxLen += int64(n)
			}
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			if err != nil {
				return fmt.Errorf("reading ROMX: %w", err)
			}
			nbBanks = 1 + int((totalRomxLen+BankSize-1)/BankSize)
			if nbBanks > maxBanks {
				return fmt.Errorf("ROM has more than %d banks", maxBanks)
			}
		}
		nbBanks = 1 + int((totalRomxLen+BankSize-1)/BankSize)
	}

	var padTailLen int64

	if plan.PadValue != nil {
		if nbBanks <= 1 {
			for i := rom0Len; i < BankSize; i++ {
				rom0[i] = *plan.PadValue
			}
			rom0Len = BankSize
			nbBanks = 2
		}
		nbBanks = nextPow2(nbBanks)
		rom0[romSizeOffset] = romSizeCode(nbBanks)
		padTailLen = int64(nbBanks-1)*BankSize - totalRomxLen
		globalSum += uint64(*plan.PadValue) * uint64(padTailLen)
	}

	if plan.FixSpec.has(FixHeaderSum) || plan.FixSpec.has(TrashHeaderSum) {
		rom0[headerChecksumOffset] = computeHeaderChecksum(rom0, plan.FixSpec.has(TrashHeaderSum))
	}

	if plan.FixSpec.has(FixGlobalSum) || plan.FixSpec.has(TrashGlobalSum) {
		rom0[globalChecksumOffset] = 0
		rom0[globalChecksumOffset+1] = 0
		for _, b := range rom0[:rom0Len] {
			globalSum += uint64(b)
		}
		storeGlobalChecksum(rom0, globalSum, plan.FixSpec.has(TrashGlobalSum))
	}

	if err := writeAll(out, rom0[:rom0Len]); err != nil {
		return fmt.Errorf("writing ROM0: %w", err)
	}
	if err := writeAll(out, romx); err != nil {
		return fmt.Errorf("writing ROMX: %w", err)
	}
	if plan.PadValue != nil && padTailLen > 0 {
		if err := writePadding(out, *plan.PadValue, padTailLen); err != nil {
			return fmt.Errorf("writing padding: %w", err)
		}
	}

	return nil
}
