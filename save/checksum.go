package save

import (
	"hash/crc32"

	"github.com/savetools/savekit/internal/format"
	"github.com/savetools/savekit/layout"
)

// The checksum engine reproduces the game's own validator exactly; no
// cryptographic property is required. Recompute must be the last mutation
// before serialization because the covered range includes the field bytes.

const (
	// AlgAfterbirth is the table-driven CRC-32 variant used by
	// Afterbirth+ and Repentance save files.
	AlgAfterbirth = "abcrc32"
	// AlgCRC32 is the plain IEEE CRC-32.
	AlgCRC32 = "crc32"
	// AlgXOR32 is a DWORD XOR with all-ones/all-zeros remapping, as used
	// by some fixed-header formats.
	AlgXOR32 = "xor32"
)

const (
	checksumSize = 4

	abCrcInit = 0xFEDCBA76

	xorAllOnes             = 0xFFFFFFFF
	xorAllOnesReplacement  = 0xFFFFFFFE
	xorAllZeros            = 0x00000000
	xorAllZerosReplacement = 0x00000001
)

// Verify recomputes the checksum over the spec's covered range and compares
// it to the stored value. A mismatch is returned as a kind-Corrupt error;
// the caller decides whether to refuse the file or warn and proceed.
func Verify(b []byte, spec layout.ChecksumSpec) error {
	computed, loc, err := checksumAt(b, spec)
	if err != nil {
		return err
	}
	stored := format.ReadU32(b, loc)
	if stored != computed {
		return errf(ErrKindCorrupt, "save: checksum mismatch: stored=%#08x computed=%#08x", stored, computed)
	}
	return nil
}

// Recompute computes the checksum and writes it at the spec's location.
// Must be called immediately before any write-to-disk.
func Recompute(b []byte, spec layout.ChecksumSpec) error {
	computed, loc, err := checksumAt(b, spec)
	if err != nil {
		return err
	}
	format.PutU32(b, loc, computed)
	return nil
}

// Checksum returns the checksum of the covered range without touching b.
func Checksum(b []byte, spec layout.ChecksumSpec) (uint32, error) {
	computed, _, err := checksumAt(b, spec)
	return computed, err
}

// StoredChecksum returns the value currently stored at the spec's location.
func StoredChecksum(b []byte, spec layout.ChecksumSpec) (uint32, error) {
	_, loc, err := resolveSpec(spec, len(b))
	if err != nil {
		return 0, err
	}
	return format.ReadU32(b, loc), nil
}

func checksumAt(b []byte, spec layout.ChecksumSpec) (uint32, int, error) {
	covered, loc, err := resolveSpec(spec, len(b))
	if err != nil {
		return 0, 0, err
	}
	sum, err := compute(spec.Algorithm, b[spec.Start:covered])
	if err != nil {
		return 0, 0, err
	}
	return sum, loc, nil
}

// resolveSpec turns the spec into concrete offsets for a buffer of n bytes,
// rejecting geometry that does not fit.
func resolveSpec(spec layout.ChecksumSpec, n int) (coveredEnd, loc int, err error) {
	end := int64(n) - spec.TrimTrailer
	if spec.Start < 0 || end > int64(n) || spec.Start > end {
		return 0, 0, errf(ErrKindCorrupt, "save: checksum range [%#x, %d) impossible for %d-byte buffer", spec.Start, end, n)
	}
	location := spec.Location
	if location < 0 {
		location += int64(n)
	}
	if location < 0 || location+checksumSize > int64(n) {
		return 0, 0, errf(ErrKindCorrupt, "save: checksum location %d outside %d-byte buffer", spec.Location, n)
	}
	return int(end), int(location), nil
}

func compute(algorithm string, p []byte) (uint32, error) {
	switch algorithm {
	case AlgAfterbirth:
		return afterbirthCRC(p), nil
	case AlgCRC32:
		return crc32.ChecksumIEEE(p), nil
	case AlgXOR32:
		return xor32(p)
	default:
		return 0, errf(ErrKindConfig, "save: unknown checksum algorithm %q", algorithm)
	}
}

// afterbirthCRC runs the reflected CRC loop with the game's table and a
// seed of ^abCrcInit, complementing the result. An empty range therefore
// checksums to abCrcInit itself.
func afterbirthCRC(p []byte) uint32 {
	crc := ^uint32(abCrcInit)
	for _, b := range p {
		crc = abCrcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return ^crc
}

// xor32 folds the range as little-endian DWORDs, remapping the two
// degenerate results so a valid checksum is never all ones or all zeros.
func xor32(p []byte) (uint32, error) {
	if len(p)%4 != 0 {
		return 0, errf(ErrKindConfig, "save: xor32 range length %d not a multiple of 4", len(p))
	}
	var x uint32
	for off := 0; off < len(p); off += 4 {
		x ^= format.ReadU32(p, off)
	}
	switch x {
	case xorAllOnes:
		return xorAllOnesReplacement, nil
	case xorAllZeros:
		return xorAllZerosReplacement, nil
	default:
		return x, nil
	}
}
