package save

import (
	"github.com/savetools/savekit/internal/mmfile"
	"github.com/savetools/savekit/layout"
)

// Info summarizes a save file without building an editable document.
type Info struct {
	Path       string
	Size       int64
	ChecksumOK bool
	Stored     uint32
	Computed   uint32
}

// Inspect maps the file read-only and checks its checksum. Cheaper than
// Open for status displays, and it never mutates anything.
func Inspect(path string, lay *layout.Layout) (Info, error) {
	if lay == nil {
		return Info{}, errf(ErrKindConfig, "save: nil layout")
	}
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return Info{}, wrapf(ErrKindIO, err, "save: inspect %s", path)
	}
	defer cleanup() //nolint:errcheck // read-only mapping

	info := Info{Path: path, Size: int64(len(data))}
	info.Computed, err = Checksum(data, lay.Checksum)
	if err != nil {
		return info, err
	}
	info.Stored, err = StoredChecksum(data, lay.Checksum)
	if err != nil {
		return info, err
	}
	info.ChecksumOK = info.Stored == info.Computed
	return info, nil
}
