package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/savetools/savekit/save"
)

func init() {
	rootCmd.AddCommand(newSectionsCmd())
}

func newSectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections <save>",
		Short: "Dump the save file's section directory",
		Long: `The sections command resolves and prints the section directory: each
section's index, header offset, payload offset, entry count and end.
Useful when building a catalog for a new edition. Needs no catalog.

Example:
  savectl sections rep_persistentgamedata1.dat
  savectl sections modded.dat --layout custom.ini --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(args)
		},
	}
	return cmd
}

func runSections(args []string) error {
	savePath := args[0]

	lay, err := loadLayout()
	if err != nil {
		return err
	}
	if !lay.HasSections() {
		return fmt.Errorf("edition %q has no section directory", lay.Edition)
	}

	reg, _ := save.LoadRegistry(nil, lay)
	doc, err := save.Open(savePath, reg, lay)
	if err != nil {
		return err
	}
	defer doc.Close()

	sections := doc.Sections()
	if sections == nil {
		return fmt.Errorf("section directory unresolvable: %v", doc.Warning())
	}

	if jsonOut {
		type secRow struct {
			Index int   `json:"index"`
			Head  int64 `json:"head"`
			Data  int64 `json:"data"`
			Count int   `json:"count"`
			End   int64 `json:"end"`
		}
		rows := make([]secRow, 0, len(sections))
		for _, s := range sections {
			rows = append(rows, secRow{s.Index, s.Head, s.Data, s.Count, s.End})
		}
		return printJSON(rows)
	}

	printInfo("\nSection directory of %s (%d sections):\n", savePath, len(sections))
	printInfo("  %-5s %-10s %-10s %-8s %-10s\n", "idx", "head", "data", "count", "end")
	for _, s := range sections {
		printInfo("  %-5d %#-10x %#-10x %-8d %#-10x\n", s.Index, s.Head, s.Data, s.Count, s.End)
	}
	return nil
}
