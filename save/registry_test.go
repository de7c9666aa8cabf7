package save

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/savetools/savekit/layout"
)

func TestLoadRegistryKeepsValidSubset(t *testing.T) {
	lay := layout.Repentance()
	descs := []Descriptor{
		{ID: "secret-1", Group: layout.GroupSecrets, Section: 0, Offset: 1},
		{ID: "", Group: layout.GroupSecrets, Section: 0, Offset: 2},               // empty id
		{ID: "bad-bit", Group: layout.GroupSecrets, Section: 0, Offset: 3, Bit: 8}, // bit out of range
		{ID: "secret-1", Group: layout.GroupSecrets, Section: 0, Offset: 4},        // duplicate
		{ID: "bad-group", Group: "mystery", Section: 0, Offset: 5},
		{ID: "bad-section", Group: layout.GroupCounters, Section: 99, Offset: 0, Width: 2},
		{ID: "streak", Group: layout.GroupCounters, Section: 1, Offset: 0x54, Width: 4},
	}

	reg, rejected := LoadRegistry(descs, lay)
	require.Len(t, rejected, 5)
	for _, err := range rejected {
		kind, ok := KindOf(err)
		require.True(t, ok)
		require.Equal(t, ErrKindConfig, kind)
	}

	require.Equal(t, 2, reg.Len())
	_, err := reg.Lookup("secret-1")
	require.NoError(t, err)
	_, err = reg.Lookup("bad-bit")
	require.Error(t, err)
}

func TestLoadRegistryAbsoluteOffsetBounds(t *testing.T) {
	lay := &layout.Layout{
		Edition:          "flat",
		MinFileSize:      64,
		SectionDirOffset: -1,
		Checksum:         layout.ChecksumSpec{Algorithm: AlgXOR32},
	}

	_, rejected := LoadRegistry([]Descriptor{
		{ID: "fits", Section: AbsoluteSection, Offset: 62, Width: 2},
		{ID: "straddles", Section: AbsoluteSection, Offset: 63, Width: 2},
		{ID: "sectioned", Section: 0, Offset: 0}, // edition has no sections
	}, lay)
	require.Len(t, rejected, 2)
}

func TestRegistryOrdering(t *testing.T) {
	lay := layout.Repentance()
	var descs []Descriptor
	ids := []string{"z", "a", "m", "b"}
	for i, id := range ids {
		descs = append(descs, Descriptor{ID: id, Group: layout.GroupSecrets, Section: 0, Offset: int64(i)})
	}
	descs = append(descs, Descriptor{ID: "tokens", Group: layout.GroupCounters, Section: 1, Offset: 0x50, Width: 4})

	reg, rejected := LoadRegistry(descs, lay)
	require.Empty(t, rejected)

	// insertion order, not sorted order
	group := reg.Group(layout.GroupSecrets)
	var got []string
	for _, d := range group {
		got = append(got, d.ID)
	}
	require.Equal(t, ids, got)

	require.Equal(t, []string{layout.GroupSecrets, layout.GroupCounters}, reg.Groups())
	require.Len(t, reg.All(), 5)
	require.Empty(t, reg.Group("unknown"))
}

func TestLookupNotFound(t *testing.T) {
	reg, _ := LoadRegistry(nil, nil)
	_, err := reg.Lookup("ghost")
	require.ErrorIs(t, err, ErrNotFound)
	kind, _ := KindOf(err)
	require.Equal(t, ErrKindNotFound, kind)
}
