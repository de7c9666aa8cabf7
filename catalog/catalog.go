// Package catalog loads flag/label tables from CSV. Tables are external
// data: one row per flag or counter, naming where in the save file it
// lives. Malformed rows are rejected individually so the rest of the table
// stays usable.
//
// The upstream tables are exported from spreadsheets with a UTF-8 BOM;
// the loader strips it transparently.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/savetools/savekit/save"
)

// Header columns. id, label, group and offset are required; the rest
// default to a bit-flag at bit 0 with an absolute offset.
const (
	colID      = "id"
	colLabel   = "label"
	colGroup   = "group"
	colSection = "section"
	colOffset  = "offset"
	colBit     = "bit"
	colWidth   = "width"
	colEndian  = "endian"
	colSigned  = "signed"
)

// LoadFile reads a descriptor table from path. The error return is for
// file-level failures only; per-row rejections come back in the slice.
func LoadFile(path string) ([]save.Descriptor, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	descs, rowErrs, err := Load(f)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return descs, rowErrs, nil
}

// Load reads a descriptor table from r.
func Load(r io.Reader) ([]save.Descriptor, []error, error) {
	// BOMOverride keeps plain UTF-8 as-is and strips a leading BOM.
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colID, colLabel, colGroup, colOffset} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("catalog: header missing %q column", required)
		}
	}

	var (
		descs   []save.Descriptor
		rowErrs []error
		line    = 1
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, rowErr(line, err))
			continue
		}
		d, err := parseRow(record, cols)
		if err != nil {
			rowErrs = append(rowErrs, rowErr(line, err))
			continue
		}
		descs = append(descs, d)
	}
	return descs, rowErrs, nil
}

func rowErr(line int, err error) error {
	return &save.Error{
		Kind: save.ErrKindConfig,
		Msg:  fmt.Sprintf("catalog: row %d", line),
		Err:  err,
	}
}

func parseRow(record []string, cols map[string]int) (save.Descriptor, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	d := save.Descriptor{
		ID:      field(colID),
		Label:   field(colLabel),
		Group:   field(colGroup),
		Section: save.AbsoluteSection,
	}
	if d.ID == "" {
		return save.Descriptor{}, fmt.Errorf("empty id")
	}

	var err error
	if d.Offset, err = parseInt(field(colOffset), colOffset); err != nil {
		return save.Descriptor{}, err
	}
	if raw := field(colSection); raw != "" {
		sec, err := parseInt(raw, colSection)
		if err != nil {
			return save.Descriptor{}, err
		}
		d.Section = int(sec)
	}
	if raw := field(colBit); raw != "" {
		bit, err := parseInt(raw, colBit)
		if err != nil {
			return save.Descriptor{}, err
		}
		if bit < 0 || bit > 7 {
			return save.Descriptor{}, fmt.Errorf("bit %d out of range 0..7", bit)
		}
		d.Bit = uint8(bit)
	}
	if raw := field(colWidth); raw != "" {
		width, err := parseInt(raw, colWidth)
		if err != nil {
			return save.Descriptor{}, err
		}
		d.Width = int(width)
	}
	switch endian := strings.ToLower(field(colEndian)); endian {
	case "", "le", "little":
	case "be", "big":
		d.BigEndian = true
	default:
		return save.Descriptor{}, fmt.Errorf("endian %q (want le or be)", endian)
	}
	switch signed := strings.ToLower(field(colSigned)); signed {
	case "", "0", "false", "no":
	case "1", "true", "yes":
		d.Signed = true
	default:
		return save.Descriptor{}, fmt.Errorf("signed %q (want true or false)", signed)
	}
	return d, nil
}

// parseInt accepts decimal and 0x-prefixed hex, the way the upstream
// tables mix both.
func parseInt(raw, col string) (int64, error) {
	v, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", col, raw, err)
	}
	return v, nil
}
