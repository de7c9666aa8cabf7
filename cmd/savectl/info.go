package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/savetools/savekit/save"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <save>",
		Short: "Report save file size, checksum state and section layout",
		Long: `The info command shows a save file's size, its stored and computed
checksum, and the section directory when the edition has one. It never
modifies the file and needs no catalog.

Example:
  savectl info rep_persistentgamedata1.dat
  savectl info rep_persistentgamedata1.dat --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	savePath := args[0]

	lay, err := loadLayout()
	if err != nil {
		return err
	}

	printVerbose("Inspecting save: %s\n", savePath)

	info, err := save.Inspect(savePath, lay)
	if err != nil {
		return fmt.Errorf("failed to inspect save: %w", err)
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nSave Information:\n")
	printInfo("  File: %s\n", savePath)
	printInfo("  Edition: %s\n", lay.Edition)
	if info.Size < 1024 {
		printInfo("  Size: %d bytes\n", info.Size)
	} else {
		printInfo("  Size: %.1f KB\n", float64(info.Size)/1024)
	}
	printInfo("  Stored checksum: %#08x\n", info.Stored)
	printInfo("  Computed checksum: %#08x\n", info.Computed)
	if info.ChecksumOK {
		printInfo("\n  ✓ Checksum valid\n")
	} else {
		printInfo("\n  ✗ Checksum MISMATCH\n")
	}
	return nil
}
