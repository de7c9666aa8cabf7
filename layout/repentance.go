package layout

// Group names used by the Repentance flag tables.
const (
	GroupSecrets    = "secrets"
	GroupItems      = "items"
	GroupChallenges = "challenges"
	GroupMarks      = "completion-marks"
	GroupCounters   = "counters"
)

// Repentance returns the built-in layout for rep_persistentgamedata save
// files: CRC over everything between the 0x10-byte header and the trailing
// 4-byte checksum, and the eleven-section directory at 0x14.
func Repentance() *Layout {
	return &Layout{
		Edition:          "repentance",
		MinFileSize:      0x14,
		SectionDirOffset: 0x14,
		EntryLengths:     []int{1, 4, 4, 1, 1, 1, 1, 4, 4, 1, 546},
		Checksum: ChecksumSpec{
			Algorithm:   "abcrc32",
			Start:       0x10,
			TrimTrailer: 4,
			Location:    -4,
		},
		Groups: []string{
			GroupSecrets,
			GroupItems,
			GroupChallenges,
			GroupMarks,
			GroupCounters,
		},
	}
}
