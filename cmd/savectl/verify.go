package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/savetools/savekit/save"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <save>",
		Short: "Verify the save file checksum",
		Long: `The verify command recomputes the save checksum and compares it to
the stored one. It exits non-zero on a mismatch, which makes it usable
from scripts.

Example:
  savectl verify rep_persistentgamedata1.dat
  savectl verify modded.dat --layout repentance.ini`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	return cmd
}

func runVerify(args []string) error {
	savePath := args[0]

	lay, err := loadLayout()
	if err != nil {
		return err
	}
	info, err := save.Inspect(savePath, lay)
	if err != nil {
		return fmt.Errorf("failed to inspect save: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":     savePath,
			"valid":    info.ChecksumOK,
			"stored":   fmt.Sprintf("%#08x", info.Stored),
			"computed": fmt.Sprintf("%#08x", info.Computed),
		})
	}
	if !info.ChecksumOK {
		return fmt.Errorf("checksum mismatch: stored %#08x, computed %#08x", info.Stored, info.Computed)
	}
	printInfo("✓ Checksum valid (%#08x)\n", info.Stored)
	return nil
}
