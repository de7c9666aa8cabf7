package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/savetools/savekit/save"
)

var (
	unlockClear  bool
	unlockBackup bool
	unlockOutput string
)

func init() {
	cmd := newUnlockCmd()
	cmd.Flags().BoolVar(&unlockClear, "clear", false, "Clear the group's flags instead of setting them")
	cmd.Flags().BoolVar(&unlockBackup, "backup", true, "Create a .bak copy of the original file")
	cmd.Flags().StringVarP(&unlockOutput, "output", "o", "", "Write to this path instead of in place")
	rootCmd.AddCommand(cmd)
}

func newUnlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlock <save> <group>",
		Short: "Set every flag of a group at once",
		Long: `The unlock command sets (or with --clear, clears) every flag in a
catalog group and rewrites the file. Fields that fail are skipped and
reported; the rest are still applied.

Example:
  savectl unlock save1.dat secrets --catalog fields.csv
  savectl unlock save1.dat completion-marks --catalog fields.csv --clear`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnlock(args)
		},
	}
	return cmd
}

func runUnlock(args []string) error {
	savePath := args[0]
	group := args[1]

	doc, err := openDocument(savePath)
	if err != nil {
		return err
	}
	defer doc.Close()

	total := len(doc.Registry().Group(group))
	if total == 0 {
		return fmt.Errorf("catalog has no fields in group %q", group)
	}

	errs := doc.SetGroup(group, !unlockClear)
	for _, e := range errs {
		printError("%v\n", e)
	}
	applied := total - len(errs)
	if applied == 0 {
		return fmt.Errorf("no field in group %q could be applied", group)
	}

	if err := doc.Commit(unlockOutput, save.CommitOptions{CreateBackup: unlockBackup}); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}

	verb := "set"
	if unlockClear {
		verb = "cleared"
	}
	if jsonOut {
		return printJSON(map[string]interface{}{
			"file": savePath, "group": group,
			"applied": applied, "skipped": len(errs), "cleared": unlockClear,
		})
	}
	printInfo("✓ %d of %d flag(s) in %q %s\n", applied, total, group, verb)
	return nil
}
