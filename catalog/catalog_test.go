package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/savetools/savekit/save"
)

func TestLoadFullTable(t *testing.T) {
	table := strings.Join([]string{
		"id,label,group,section,offset,bit,width,endian,signed",
		"secret-cain,Cain unlocked,secrets,0,0x02,0,,,",
		"item-sad-onion,The Sad Onion,items,3,1,,,,",
		"mom-kills,Mom kills,counters,1,0x54,,4,le,false",
		"best-streak,Best streak,counters,1,0x58,,4,,true",
		"magic-number,Magic,counters,,0x100,,2,be,yes",
	}, "\n")

	descs, rowErrs, err := Load(strings.NewReader(table))
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, descs, 5)

	require.Equal(t, save.Descriptor{
		ID: "secret-cain", Label: "Cain unlocked", Group: "secrets",
		Section: 0, Offset: 0x02,
	}, descs[0])

	momKills := descs[2]
	require.Equal(t, 1, momKills.Section)
	require.Equal(t, int64(0x54), momKills.Offset)
	require.Equal(t, 4, momKills.Width)
	require.False(t, momKills.BigEndian)
	require.False(t, momKills.Signed)

	require.True(t, descs[3].Signed)

	magic := descs[4]
	require.Equal(t, save.AbsoluteSection, magic.Section, "blank section means absolute")
	require.True(t, magic.BigEndian)
	require.True(t, magic.Signed)
}

func TestLoadStripsBOM(t *testing.T) {
	table := "\xEF\xBB\xBFid,label,group,offset\nsecret-cain,Cain,secrets,2\n"
	descs, rowErrs, err := Load(strings.NewReader(table))
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, descs, 1)
	require.Equal(t, "secret-cain", descs[0].ID, "BOM must not corrupt the first header column")
}

func TestLoadRejectsBadRowsIndividually(t *testing.T) {
	table := strings.Join([]string{
		"id,label,group,section,offset,bit,width,endian,signed",
		"good-1,One,secrets,0,1,,,,",
		",Nameless,secrets,0,2,,,,",          // empty id
		"bad-offset,Two,secrets,0,lots,,,,",  // unparsable offset
		"bad-bit,Three,secrets,0,3,9,,,",     // bit out of 0..7
		"bad-endian,Four,counters,0,4,,4,pdp,", // unknown endian
		"bad-signed,Five,counters,0,5,,4,le,maybe",
		"good-2,Six,secrets,0,6,,,,",
	}, "\n")

	descs, rowErrs, err := Load(strings.NewReader(table))
	require.NoError(t, err)
	require.Len(t, descs, 2)
	require.Equal(t, "good-1", descs[0].ID)
	require.Equal(t, "good-2", descs[1].ID)

	require.Len(t, rowErrs, 5)
	for _, rowErr := range rowErrs {
		kind, ok := save.KindOf(rowErr)
		require.True(t, ok)
		require.Equal(t, save.ErrKindConfig, kind)
	}
	// rejections carry the 1-based source row so users can fix the table
	require.Contains(t, rowErrs[0].Error(), "row 3")
	require.Contains(t, rowErrs[4].Error(), "row 7")
}

func TestLoadMissingColumn(t *testing.T) {
	_, _, err := Load(strings.NewReader("id,label,offset\na,A,1\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `"group"`)
}

func TestLoadHeaderCaseAndSpacing(t *testing.T) {
	table := "ID, Label ,GROUP,Offset\nsecret-cain,Cain,secrets,0x10\n"
	descs, rowErrs, err := Load(strings.NewReader(table))
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, descs, 1)
	require.Equal(t, int64(0x10), descs[0].Offset)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("id,label,group,offset\nsecret-cain,Cain,secrets,2\n"), 0o644))

	descs, rowErrs, err := LoadFile(path)
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, descs, 1)

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}
