package save

import (
	"os"

	"github.com/savetools/savekit/internal/format"
	"github.com/savetools/savekit/internal/writer"
	"github.com/savetools/savekit/layout"
)

// Document binds one raw save buffer to a shared registry and layout.
//
// Lifecycle: Open → mutate via Get/Set → Commit → Close. The buffer length
// never changes; only byte values do. Every mutation is visible to
// subsequent reads immediately, and nothing reaches disk before Commit.
//
// A document is single-threaded. The registry and layout it references are
// read-only and may back any number of documents concurrently.
type Document struct {
	reg *Registry
	lay *layout.Layout

	buf      []byte
	sections []format.Section // nil when unresolved or edition has none

	path    string
	dirty   bool
	corrupt bool
	warning error
	closed  bool
}

// CommitOptions controls Commit behavior.
type CommitOptions struct {
	// CreateBackup copies an existing target to <path>.bak before
	// replacing it.
	CreateBackup bool
}

// Writer consumes a fully serialized save buffer. Implemented by the
// package's file and memory sinks.
type Writer interface {
	WriteSave([]byte) error
}

// NewFileWriter returns the atomic temp-file-then-rename sink Commit uses.
func NewFileWriter(path string, backup bool) Writer {
	return &writer.FileWriter{Path: path, Backup: backup}
}

// Open reads the save file at path into memory and verifies its checksum.
//
// A checksum mismatch does not fail the open: users legitimately load
// files across game-version quirks. The document is flagged corrupt and
// the mismatch is available from Warning; Commit recomputes regardless.
func Open(path string, reg *Registry, lay *layout.Layout) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapf(ErrKindIO, err, "save: open %s", path)
	}
	d, err := newDocument(data, reg, lay)
	if err != nil {
		return nil, err
	}
	d.path = path
	return d, nil
}

// OpenBytes builds a document from a copy of b.
func OpenBytes(b []byte, reg *Registry, lay *layout.Layout) (*Document, error) {
	data := make([]byte, len(b))
	copy(data, b)
	return newDocument(data, reg, lay)
}

func newDocument(data []byte, reg *Registry, lay *layout.Layout) (*Document, error) {
	if len(data) == 0 {
		return nil, errf(ErrKindIO, "save: empty save file")
	}
	if lay == nil {
		return nil, errf(ErrKindConfig, "save: nil layout")
	}
	d := &Document{reg: reg, lay: lay, buf: data}

	if err := Verify(data, lay.Checksum); err != nil {
		d.corrupt = true
		d.warning = err
	}
	if lay.HasSections() {
		sections, err := format.SectionOffsets(data, lay.SectionDirOffset, lay.EntryLengths)
		if err != nil {
			// Section-relative fields will fail individually; the
			// document itself stays usable for absolute fields.
			d.corrupt = true
			if d.warning == nil {
				d.warning = wrapf(ErrKindCorrupt, err, "save: section directory")
			}
		} else {
			d.sections = sections
		}
	}
	return d, nil
}

// Path returns the file the document was opened from, if any.
func (d *Document) Path() string { return d.path }

// Len reports the fixed buffer length.
func (d *Document) Len() int { return len(d.buf) }

// Bytes exposes the live buffer. Callers must not hold the slice across
// Close and must not resize it.
func (d *Document) Bytes() []byte { return d.buf }

// Dirty reports whether the document has uncommitted mutations.
func (d *Document) Dirty() bool { return d.dirty }

// Corrupt reports whether open-time validation found a mismatch.
func (d *Document) Corrupt() bool { return d.corrupt }

// Warning returns the open-time validation error, if any.
func (d *Document) Warning() error { return d.warning }

// Registry returns the field registry the document was opened with.
func (d *Document) Registry() *Registry { return d.reg }

// Sections returns the resolved section directory, nil when absent.
func (d *Document) Sections() []format.Section {
	return d.sections
}

// resolve turns a section-relative descriptor into an absolute one against
// this document's buffer. Absolute descriptors pass through so the field
// accessors can do their own defensive bounds check.
func (d *Document) resolve(desc Descriptor) (Descriptor, error) {
	if desc.Section == AbsoluteSection {
		return desc, nil
	}
	if d.sections == nil {
		return Descriptor{}, errf(ErrKindOutOfBounds, "save: %s: section %d unresolved in this file", desc.ID, desc.Section)
	}
	if desc.Section < 0 || desc.Section >= len(d.sections) {
		return Descriptor{}, errf(ErrKindOutOfBounds, "save: %s: section %d outside directory", desc.ID, desc.Section)
	}
	sec := d.sections[desc.Section]
	abs := sec.Data + desc.Offset
	if abs+int64(desc.span()) > sec.End {
		return Descriptor{}, errf(ErrKindOutOfBounds, "save: %s: offset %#x+%d beyond section %d end %#x",
			desc.ID, desc.Offset, desc.span(), desc.Section, sec.End)
	}
	desc.Section = AbsoluteSection
	desc.Offset = abs
	return desc, nil
}

func (d *Document) lookup(id string) (Descriptor, error) {
	if d.closed {
		return Descriptor{}, ErrClosed
	}
	desc, err := d.reg.Lookup(id)
	if err != nil {
		return Descriptor{}, err
	}
	return d.resolve(desc)
}

// GetFlag reads the named bit.
func (d *Document) GetFlag(id string) (bool, error) {
	desc, err := d.lookup(id)
	if err != nil {
		return false, err
	}
	return ReadBit(d.buf, desc)
}

// SetFlag writes the named bit and marks the document dirty.
func (d *Document) SetFlag(id string, v bool) error {
	desc, err := d.lookup(id)
	if err != nil {
		return err
	}
	if err := WriteBit(d.buf, desc, v); err != nil {
		return err
	}
	d.dirty = true
	return nil
}

// GetCounter reads the named integer field.
func (d *Document) GetCounter(id string) (int64, error) {
	desc, err := d.lookup(id)
	if err != nil {
		return 0, err
	}
	return ReadInt(d.buf, desc)
}

// SetCounter writes the named integer field and marks the document dirty.
// Out-of-range values are rejected without touching the buffer.
func (d *Document) SetCounter(id string, v int64) error {
	desc, err := d.lookup(id)
	if err != nil {
		return err
	}
	if err := WriteInt(d.buf, desc, v); err != nil {
		return err
	}
	d.dirty = true
	return nil
}

// SetGroup applies SetFlag(v) to every flag descriptor of the group.
// Application is not all-or-nothing: fields that fail are skipped and every
// failure is reported, never silently dropped.
func (d *Document) SetGroup(group string, v bool) []error {
	if d.closed {
		return []error{ErrClosed}
	}
	var errs []error
	for _, desc := range d.reg.Group(group) {
		if !desc.IsFlag() {
			errs = append(errs, errf(ErrKindConfig, "save: %s: counter in group %q skipped by flag bulk set", desc.ID, group))
			continue
		}
		resolved, err := d.resolve(desc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := WriteBit(d.buf, resolved, v); err != nil {
			errs = append(errs, err)
			continue
		}
		d.dirty = true
	}
	return errs
}

// Commit recomputes the checksum and atomically persists the buffer to
// path (the opened path when empty). On success the document is clean; on
// failure it stays dirty and the previous on-disk content is untouched.
//
// Committing while the game process holds the file is the caller's
// workflow to prevent: the game rewrites saves on certain menu
// transitions, and this codec cannot detect that beyond package watch.
func (d *Document) Commit(path string, opts CommitOptions) error {
	if path == "" {
		path = d.path
	}
	if path == "" {
		return errf(ErrKindState, "save: commit without a target path")
	}
	return d.commit(NewFileWriter(path, opts.CreateBackup))
}

// CommitTo recomputes the checksum and serializes into w.
func (d *Document) CommitTo(w Writer) error {
	return d.commit(w)
}

func (d *Document) commit(w Writer) error {
	if d.closed {
		return ErrClosed
	}
	// Checksum last: it covers the bytes the mutations changed.
	if err := Recompute(d.buf, d.lay.Checksum); err != nil {
		return err
	}
	if err := w.WriteSave(d.buf); err != nil {
		return wrapf(ErrKindIO, err, "save: commit")
	}
	d.dirty = false
	d.corrupt = false
	d.warning = nil
	return nil
}

// Close discards the document. Uncommitted mutations are lost; closing a
// dirty document is legal.
func (d *Document) Close() error {
	d.buf = nil
	d.sections = nil
	d.closed = true
	return nil
}
