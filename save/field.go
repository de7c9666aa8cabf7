package save

import (
	"github.com/savetools/savekit/internal/buf"
	"github.com/savetools/savekit/internal/format"
)

// Field accessors treat the descriptor's Offset as absolute within b.
// Document resolves section-relative descriptors before calling them.
// Every write touches the minimum bytes necessary so that bytes the tool
// has no descriptor for round-trip unchanged.

// ReadBit reports whether the addressed bit is set.
func ReadBit(b []byte, d Descriptor) (bool, error) {
	if !d.IsFlag() {
		return false, errf(ErrKindConfig, "save: %s is a %d-byte counter, not a flag", d.ID, d.Width)
	}
	if !buf.Has(b, int(d.Offset), 1) {
		return false, errf(ErrKindOutOfBounds, "save: %s: offset %#x outside buffer (%d bytes)", d.ID, d.Offset, len(b))
	}
	return b[d.Offset]&(1<<d.Bit) != 0, nil
}

// WriteBit sets or clears exactly the addressed bit, read-modify-write.
func WriteBit(b []byte, d Descriptor, v bool) error {
	if !d.IsFlag() {
		return errf(ErrKindConfig, "save: %s is a %d-byte counter, not a flag", d.ID, d.Width)
	}
	if !buf.Has(b, int(d.Offset), 1) {
		return errf(ErrKindOutOfBounds, "save: %s: offset %#x outside buffer (%d bytes)", d.ID, d.Offset, len(b))
	}
	if v {
		b[d.Offset] |= 1 << d.Bit
	} else {
		b[d.Offset] &^= 1 << d.Bit
	}
	return nil
}

// ReadInt reads the descriptor's integer using its declared width,
// endianness and signedness.
func ReadInt(b []byte, d Descriptor) (int64, error) {
	if d.IsFlag() {
		return 0, errf(ErrKindConfig, "save: %s is a flag, not a counter", d.ID)
	}
	if !buf.Has(b, int(d.Offset), d.Width) {
		return 0, errf(ErrKindOutOfBounds, "save: %s: offset %#x+%d outside buffer (%d bytes)", d.ID, d.Offset, d.Width, len(b))
	}
	u := format.ReadUint(b, int(d.Offset), d.Width, d.BigEndian)
	if d.Signed {
		return signExtend(u, d.Width), nil
	}
	return int64(u), nil
}

// WriteInt overwrites exactly Width bytes with v. Values that do not fit
// the declared width are rejected and the buffer is left untouched.
func WriteInt(b []byte, d Descriptor, v int64) error {
	if d.IsFlag() {
		return errf(ErrKindConfig, "save: %s is a flag, not a counter", d.ID)
	}
	if !buf.Has(b, int(d.Offset), d.Width) {
		return errf(ErrKindOutOfBounds, "save: %s: offset %#x+%d outside buffer (%d bytes)", d.ID, d.Offset, d.Width, len(b))
	}
	if !fits(v, d.Width, d.Signed) {
		return errf(ErrKindRange, "save: %s: value %d does not fit %d-byte %s field",
			d.ID, v, d.Width, signedness(d.Signed))
	}
	format.PutUint(b, int(d.Offset), d.Width, uint64(v), d.BigEndian)
	return nil
}

// signExtend interprets the low width bytes of u as two's complement.
func signExtend(u uint64, width int) int64 {
	shift := uint(64 - 8*width)
	return int64(u<<shift) >> shift
}

// fits reports whether v is representable in width bytes.
func fits(v int64, width int, signed bool) bool {
	if width >= 8 {
		return signed || v >= 0
	}
	bits := uint(8 * width)
	if signed {
		min := -(int64(1) << (bits - 1))
		max := int64(1)<<(bits-1) - 1
		return v >= min && v <= max
	}
	return v >= 0 && v <= int64(1)<<bits-1
}

func signedness(signed bool) string {
	if signed {
		return "signed"
	}
	return "unsigned"
}
