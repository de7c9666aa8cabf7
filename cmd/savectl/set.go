package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/savetools/savekit/save"
)

var (
	setBackup bool
	setOutput string
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().BoolVar(&setBackup, "backup", true, "Create a .bak copy of the original file")
	cmd.Flags().StringVarP(&setOutput, "output", "o", "", "Write to this path instead of in place")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <save> <id> <value>",
		Short: "Write one flag or counter and recompute the checksum",
		Long: `The set command writes a single field by its catalog id, recomputes the
save checksum, and rewrites the file atomically. Flags take true/false,
counters take decimal or 0x-prefixed numbers.

Example:
  savectl set save1.dat secret-cain true --catalog fields.csv
  savectl set save1.dat mom-kills 500 --catalog fields.csv
  savectl set save1.dat donation 0x270F --catalog fields.csv -o tweaked.dat`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	savePath := args[0]
	id := args[1]
	valueStr := args[2]

	doc, err := openDocument(savePath)
	if err != nil {
		return err
	}
	defer doc.Close()

	desc, err := doc.Registry().Lookup(id)
	if err != nil {
		return err
	}

	if desc.IsFlag() {
		v, err := parseBool(valueStr)
		if err != nil {
			return fmt.Errorf("value for flag %s: %w", id, err)
		}
		if err := doc.SetFlag(id, v); err != nil {
			return err
		}
	} else {
		v, err := strconv.ParseInt(valueStr, 0, 64)
		if err != nil {
			return fmt.Errorf("value for counter %s: %w", id, err)
		}
		if err := doc.SetCounter(id, v); err != nil {
			return err
		}
	}

	if err := doc.Commit(setOutput, save.CommitOptions{CreateBackup: setBackup}); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file": savePath, "id": id, "value": valueStr, "success": true,
		})
	}
	printInfo("✓ %s set to %s\n", id, valueStr)
	if setBackup && setOutput == "" {
		printInfo("Backup created: %s.bak\n", savePath)
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", s)
}
