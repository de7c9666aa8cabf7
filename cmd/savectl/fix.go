package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/savetools/savekit/save"
)

var (
	fixBackup bool
	fixOutput string
)

func init() {
	cmd := newFixCmd()
	cmd.Flags().BoolVar(&fixBackup, "backup", true, "Create a .bak copy of the original file")
	cmd.Flags().StringVarP(&fixOutput, "output", "o", "", "Write to this path instead of in place")
	rootCmd.AddCommand(cmd)
}

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix <save>",
		Short: "Recompute and rewrite a stale checksum",
		Long: `The fix command rewrites a save file whose checksum no longer matches
its content, usually after hand-editing with a hex editor. No field is
changed; only the trailing checksum is recomputed. Needs no catalog.

Example:
  savectl fix hexedited.dat
  savectl fix hexedited.dat -o repaired.dat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(args)
		},
	}
	return cmd
}

func runFix(args []string) error {
	savePath := args[0]

	lay, err := loadLayout()
	if err != nil {
		return err
	}
	reg, _ := save.LoadRegistry(nil, lay)
	doc, err := save.Open(savePath, reg, lay)
	if err != nil {
		return err
	}
	defer doc.Close()

	if !doc.Corrupt() {
		printInfo("Checksum already valid, nothing to fix\n")
		return nil
	}
	printVerbose("Mismatch: %v\n", doc.Warning())

	if err := doc.Commit(fixOutput, save.CommitOptions{CreateBackup: fixBackup}); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"file": savePath, "fixed": true})
	}
	printInfo("✓ Checksum recomputed\n")
	return nil
}
