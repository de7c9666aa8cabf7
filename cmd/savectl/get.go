package main

import (
	"github.com/spf13/cobra"
)

var getHex bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getHex, "hex", false, "Output counter values as hex")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <save> <id>",
		Short: "Read one flag or counter",
		Long: `The get command reads a single field by its catalog id. Flags print
as true/false, counters as their numeric value.

Example:
  savectl get save1.dat secret-cain --catalog fields.csv
  savectl get save1.dat mom-kills --catalog fields.csv --hex`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	savePath := args[0]
	id := args[1]

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
		v, err := doc.GetFlag(id)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(map[string]interface{}{"id": id, "label": desc.Label, "value": v})
		}
		printInfo("%s = %t\n", id, v)
		return nil
	}

	v, err := doc.GetCounter(id)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]interface{}{"id": id, "label": desc.Label, "value": v})
	}
	if getHex {
		printInfo("%s = %#x\n", id, v)
	} else {
		printInfo("%s = %d\n", id, v)
	}
	return nil
}
