package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const repentanceINI = `
[edition]
name          = repentance
min_file_size = 0x14
groups        = secrets, items, challenges, completion-marks, counters

[checksum]
algorithm    = abcrc32
start        = 0x10
trim_trailer = 4
location     = -4

[sections]
dir_offset    = 0x14
entry_lengths = 1, 4, 4, 1, 1, 1, 1, 4, 4, 1, 546
`

func TestLoadBytesMatchesBuiltin(t *testing.T) {
	l, err := LoadBytes([]byte(repentanceINI))
	require.NoError(t, err)
	require.Equal(t, Repentance(), l, "the shipped INI must reproduce the built-in layout")
}

func TestLoadBytesHexAndDefaults(t *testing.T) {
	l, err := LoadBytes([]byte("[edition]\nname = flat\n[checksum]\nalgorithm = crc32\nstart = 0x100\n"))
	require.NoError(t, err)
	require.Equal(t, "flat", l.Edition)
	require.Equal(t, int64(0x100), l.Checksum.Start)
	require.Equal(t, int64(0), l.Checksum.TrimTrailer)
	require.Equal(t, int64(0), l.Checksum.Location)
	require.Equal(t, int64(-1), l.SectionDirOffset)
	require.False(t, l.HasSections())
	require.True(t, l.KnowsGroup("anything"), "no declared groups means an open set")
}

func TestLoadBytesErrors(t *testing.T) {
	cases := map[string]string{
		"missing name":      "[checksum]\nalgorithm = crc32\n",
		"missing algorithm": "[edition]\nname = x\n",
		"bad int":           "[edition]\nname = x\nmin_file_size = tiny\n[checksum]\nalgorithm = crc32\n",
		"bad entry length":  "[edition]\nname = x\n[checksum]\nalgorithm = crc32\n[sections]\ndir_offset = 0\nentry_lengths = 1, zero\n",
		"zero entry length": "[edition]\nname = x\n[checksum]\nalgorithm = crc32\n[sections]\ndir_offset = 0\nentry_lengths = 1, 0\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadBytes([]byte(src))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repentance.ini")
	require.NoError(t, os.WriteFile(path, []byte(repentanceINI), 0o644))

	l, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "repentance", l.Edition)

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.ini"))
	require.Error(t, err)
}

func TestRepentanceLayout(t *testing.T) {
	l := Repentance()
	require.NoError(t, l.Validate())
	require.True(t, l.HasSections())
	require.Len(t, l.EntryLengths, 11)
	require.Equal(t, 546, l.EntryLengths[10])
	require.Equal(t, int64(0x14), l.SectionDirOffset)
	require.Equal(t, ChecksumSpec{
		Algorithm:   "abcrc32",
		Start:       0x10,
		TrimTrailer: 4,
		Location:    -4,
	}, l.Checksum)
	require.True(t, l.KnowsGroup(GroupSecrets))
	require.False(t, l.KnowsGroup("no-such-group"))
}

func TestValidate(t *testing.T) {
	l := Repentance()
	l.Checksum.Start = -1
	require.Error(t, l.Validate())

	l = Repentance()
	l.Checksum.TrimTrailer = -2
	require.Error(t, l.Validate())

	l = Repentance()
	l.Checksum.Algorithm = ""
	require.Error(t, l.Validate())
}
