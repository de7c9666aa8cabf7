package format

import "encoding/binary"

// Binary encoding utilities for the save-file format.
//
// Persistent game data is little-endian throughout; big-endian variants
// exist because descriptor tables may declare them for other editions.
// The standard library implementation is already optimal here: the
// compiler inlines binary.LittleEndian calls, so there is nothing to
// gain from hand-rolled shifts.

// PutU16 writes a little-endian uint16 at off.
func PutU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes a little-endian uint32 at off.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutU64 writes a little-endian uint64 at off.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU16 reads a little-endian uint16 at off.
func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a little-endian uint32 at off.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadU64 reads a little-endian uint64 at off.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// ReadUint reads an n-byte unsigned integer at off, n in 1..8.
// The caller is responsible for bounds; out-of-range n panics.
func ReadUint(b []byte, off, n int, bigEndian bool) uint64 {
	if n < 1 || n > 8 {
		panic("format: integer width out of range")
	}
	var v uint64
	if bigEndian {
		for i := 0; i < n; i++ {
			v = v<<8 | uint64(b[off+i])
		}
		return v
	}
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[off+i])
	}
	return v
}

// PutUint writes the low n bytes of v at off, n in 1..8.
func PutUint(b []byte, off, n int, v uint64, bigEndian bool) {
	if n < 1 || n > 8 {
		panic("format: integer width out of range")
	}
	if bigEndian {
		for i := n - 1; i >= 0; i-- {
			b[off+i] = byte(v)
			v >>= 8
		}
		return
	}
	for i := 0; i < n; i++ {
		b[off+i] = byte(v)
		v >>= 8
	}
}
