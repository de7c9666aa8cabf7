package format

import (
	"fmt"

	"github.com/savetools/savekit/internal/buf"
)

// The save file stores its variable-length sections back to back after a
// directory that starts at a fixed offset. Each section opens with a
// 12-byte header: three u16 words at 4-byte stride, the third being the
// entry count. Entry sizes are fixed per section and supplied by the
// edition layout, so the only way to locate section N is to walk every
// section before it.

// sectionHeaderSize is the length of the three-word section header.
const sectionHeaderSize = 12

// Section locates one section's payload inside a save buffer.
type Section struct {
	Index int   // position in the directory
	Head  int64 // absolute offset of the section header
	Data  int64 // absolute offset of the first entry
	Count int   // entry count from the header
	End   int64 // absolute offset one past the last entry
}

// SectionOffsets walks the section directory at dirOffset and returns one
// Section per entry length. It fails when a header or payload would run
// past the end of the buffer.
func SectionOffsets(b []byte, dirOffset int64, entryLengths []int) ([]Section, error) {
	if dirOffset < 0 || dirOffset > int64(len(b)) {
		return nil, fmt.Errorf("%w: directory offset %d outside buffer (%d bytes)", ErrBadDirectory, dirOffset, len(b))
	}
	sections := make([]Section, 0, len(entryLengths))
	ofs := int(dirOffset)
	for i, entryLen := range entryLengths {
		if !buf.Has(b, ofs, sectionHeaderSize) {
			return nil, fmt.Errorf("%w: section %d header at %#x", ErrTruncated, i, ofs)
		}
		count := int(ReadU16(b, ofs+8))
		data := ofs + sectionHeaderSize
		end, err := buf.CheckRange(len(b), data, count, entryLen)
		if err != nil {
			return nil, fmt.Errorf("%w: section %d payload: %v", ErrTruncated, i, err)
		}
		sections = append(sections, Section{
			Index: i,
			Head:  int64(ofs),
			Data:  int64(data),
			Count: count,
			End:   int64(end),
		})
		ofs = end
	}
	return sections, nil
}
