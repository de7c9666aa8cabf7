// Package save implements the binary codec for persistent game save files:
// descriptor-addressed bit and integer fields inside a raw byte buffer, an
// integrity checksum engine, and a Document type that binds a buffer to a
// flag registry and commits it back to disk atomically.
//
// The package knows where fields live and how they are encoded, never what
// they mean to the game. Layout facts (checksum algorithm, section
// geometry) come from package layout; flag tables come from package
// catalog or any other []Descriptor source.
package save
