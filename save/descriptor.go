package save

import (
	"github.com/savetools/savekit/layout"
)

// AbsoluteSection marks a descriptor whose Offset is an absolute byte
// position rather than relative to a section's payload.
const AbsoluteSection = -1

// maxIntWidth is the widest integer field a descriptor may declare.
const maxIntWidth = 8

// Descriptor is the declarative record of where and how one flag or
// counter is encoded. Immutable once loaded into a Registry.
type Descriptor struct {
	ID    string
	Label string
	Group string

	// Section indexes the edition's section directory; the descriptor's
	// Offset is then relative to that section's payload. AbsoluteSection
	// means Offset is absolute within the file.
	Section int

	Offset int64

	// Bit addresses a single bit (0..7) when Width is zero.
	Bit uint8

	// Width is the integer byte width, 1..8. Zero means the descriptor is
	// a single-bit flag.
	Width int

	BigEndian bool
	Signed    bool
}

// IsFlag reports whether the descriptor addresses a single bit.
func (d Descriptor) IsFlag() bool { return d.Width == 0 }

// span is the number of bytes the descriptor touches.
func (d Descriptor) span() int {
	if d.Width == 0 {
		return 1
	}
	return d.Width
}

// validate checks a descriptor against an edition layout. It covers
// everything knowable without a concrete buffer; section-relative offsets
// get their final bounds check when a document resolves them.
func (d Descriptor) validate(lay *layout.Layout) error {
	if d.ID == "" {
		return errf(ErrKindConfig, "save: descriptor with empty id (label %q)", d.Label)
	}
	if d.Width < 0 || d.Width > maxIntWidth {
		return errf(ErrKindConfig, "save: %s: width %d out of range 0..%d", d.ID, d.Width, maxIntWidth)
	}
	if d.IsFlag() && d.Bit > 7 {
		return errf(ErrKindConfig, "save: %s: bit index %d out of range 0..7", d.ID, d.Bit)
	}
	if !d.IsFlag() && d.Bit != 0 {
		return errf(ErrKindConfig, "save: %s: bit index set on %d-byte counter", d.ID, d.Width)
	}
	if d.Offset < 0 {
		return errf(ErrKindConfig, "save: %s: negative offset %d", d.ID, d.Offset)
	}
	if lay == nil {
		return nil
	}
	if d.Group != "" && !lay.KnowsGroup(d.Group) {
		return errf(ErrKindConfig, "save: %s: unknown group %q", d.ID, d.Group)
	}
	if d.Section == AbsoluteSection {
		if lay.MinFileSize > 0 && d.Offset+int64(d.span()) > lay.MinFileSize {
			return errf(ErrKindConfig, "save: %s: offset %#x+%d beyond edition file size %#x",
				d.ID, d.Offset, d.span(), lay.MinFileSize)
		}
		return nil
	}
	if !lay.HasSections() {
		return errf(ErrKindConfig, "save: %s: section %d but edition %q has no section directory",
			d.ID, d.Section, lay.Edition)
	}
	if d.Section < 0 || d.Section >= len(lay.EntryLengths) {
		return errf(ErrKindConfig, "save: %s: section %d outside directory (0..%d)",
			d.ID, d.Section, len(lay.EntryLengths)-1)
	}
	return nil
}
