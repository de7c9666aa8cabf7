// Package layout describes save-file editions as data: where the checksum
// lives, how it is computed, and how the section directory is shaped.
// Offsets and algorithms vary between game editions, so nothing here is
// hardcoded at call sites; callers load an edition file or start from the
// built-in Repentance layout.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// ChecksumSpec describes where the integrity checksum is stored and which
// byte range it protects.
//
// The covered range is [Start, len(buf)-TrimTrailer). Location is the byte
// offset of the stored 4-byte little-endian checksum; a negative Location
// counts back from the end of the buffer.
type ChecksumSpec struct {
	Algorithm   string
	Start       int64
	TrimTrailer int64
	Location    int64
}

// Layout is one edition's file geometry.
type Layout struct {
	Edition string

	// MinFileSize is the smallest plausible file for this edition. Absolute
	// descriptor offsets are validated against it at registry load.
	MinFileSize int64

	// SectionDirOffset is where the section directory begins. Negative
	// means the edition has no section directory and all descriptor
	// offsets are absolute.
	SectionDirOffset int64

	// EntryLengths holds the fixed per-entry size of each section, in
	// directory order.
	EntryLengths []int

	Checksum ChecksumSpec

	// Groups is the closed set of descriptor groups this edition knows.
	// Empty means any group name is accepted.
	Groups []string
}

// HasSections reports whether descriptors may use section-relative offsets.
func (l *Layout) HasSections() bool {
	return l.SectionDirOffset >= 0 && len(l.EntryLengths) > 0
}

// KnowsGroup reports whether name is part of the edition's group set.
func (l *Layout) KnowsGroup(name string) bool {
	if len(l.Groups) == 0 {
		return true
	}
	for _, g := range l.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// Validate checks internal consistency of a loaded layout.
func (l *Layout) Validate() error {
	if l.Checksum.Algorithm == "" {
		return fmt.Errorf("layout %q: checksum algorithm missing", l.Edition)
	}
	if l.Checksum.Start < 0 {
		return fmt.Errorf("layout %q: negative checksum start %d", l.Edition, l.Checksum.Start)
	}
	if l.Checksum.TrimTrailer < 0 {
		return fmt.Errorf("layout %q: negative checksum trailer trim %d", l.Edition, l.Checksum.TrimTrailer)
	}
	for i, n := range l.EntryLengths {
		if n <= 0 {
			return fmt.Errorf("layout %q: section %d entry length %d", l.Edition, i, n)
		}
	}
	return nil
}

// LoadFile reads an edition layout from an INI file.
//
// Schema:
//
//	[edition]
//	name          = repentance
//	min_file_size = 0x10
//	groups        = secrets, items, challenges
//
//	[checksum]
//	algorithm    = abcrc32
//	start        = 0x10
//	trim_trailer = 4
//	location     = -4
//
//	[sections]
//	dir_offset    = 0x14
//	entry_lengths = 1, 4, 4, 1, 1, 1, 1, 4, 4, 1, 546
func LoadFile(path string) (*Layout, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("layout: load %s: %w", path, err)
	}
	return fromINI(cfg)
}

// LoadBytes parses an edition layout from INI source.
func LoadBytes(src []byte) (*Layout, error) {
	cfg, err := ini.Load(src)
	if err != nil {
		return nil, fmt.Errorf("layout: parse: %w", err)
	}
	return fromINI(cfg)
}

func fromINI(cfg *ini.File) (*Layout, error) {
	l := &Layout{SectionDirOffset: -1}

	ed := cfg.Section("edition")
	l.Edition = ed.Key("name").MustString("")
	if l.Edition == "" {
		return nil, fmt.Errorf("layout: [edition] name missing")
	}
	var err error
	if l.MinFileSize, err = intKey(ed, "min_file_size", 0); err != nil {
		return nil, err
	}
	if raw := ed.Key("groups").MustString(""); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			l.Groups = append(l.Groups, strings.TrimSpace(g))
		}
	}

	cs := cfg.Section("checksum")
	l.Checksum.Algorithm = cs.Key("algorithm").MustString("")
	if l.Checksum.Start, err = intKey(cs, "start", 0); err != nil {
		return nil, err
	}
	if l.Checksum.TrimTrailer, err = intKey(cs, "trim_trailer", 0); err != nil {
		return nil, err
	}
	if l.Checksum.Location, err = intKey(cs, "location", 0); err != nil {
		return nil, err
	}

	if cfg.HasSection("sections") {
		sec := cfg.Section("sections")
		if l.SectionDirOffset, err = intKey(sec, "dir_offset", -1); err != nil {
			return nil, err
		}
		if raw := sec.Key("entry_lengths").MustString(""); raw != "" {
			for _, field := range strings.Split(raw, ",") {
				n, perr := strconv.Atoi(strings.TrimSpace(field))
				if perr != nil {
					return nil, fmt.Errorf("layout: entry_lengths: %w", perr)
				}
				l.EntryLengths = append(l.EntryLengths, n)
			}
		}
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// intKey parses a possibly hex-prefixed integer key. The ini package's own
// Int() rejects 0x literals, which edition files use for offsets.
func intKey(sec *ini.Section, name string, def int64) (int64, error) {
	raw := strings.TrimSpace(sec.Key(name).MustString(""))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("layout: [%s] %s = %q: %w", sec.Name(), name, raw, err)
	}
	return v, nil
}
