package main

import (
	"github.com/spf13/cobra"

	"github.com/savetools/savekit/save"
)

var fieldsGroup string

func init() {
	cmd := newFieldsCmd()
	cmd.Flags().StringVarP(&fieldsGroup, "group", "g", "", "Only list fields of this group")
	rootCmd.AddCommand(cmd)
}

func newFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields <save>",
		Short: "List catalog fields with their current values",
		Long: `The fields command walks the catalog and prints every field's current
value in the save file. Fields the file cannot resolve (for example a
section-relative offset past the section's end) are reported and skipped.

Example:
  savectl fields save1.dat --catalog fields.csv
  savectl fields save1.dat --catalog fields.csv --group secrets
  savectl fields save1.dat --catalog fields.csv --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(args)
		},
	}
	return cmd
}

type fieldRow struct {
	ID    string      `json:"id"`
	Label string      `json:"label,omitempty"`
	Group string      `json:"group"`
	Value interface{} `json:"value,omitempty"`
	Error string      `json:"error,omitempty"`
}

func runFields(args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	defer doc.Close()

	var descs []save.Descriptor
	if fieldsGroup != "" {
		descs = doc.Registry().Group(fieldsGroup)
	} else {
		descs = doc.Registry().All()
	}

	rows := make([]fieldRow, 0, len(descs))
	for _, desc := range descs {
		row := fieldRow{ID: desc.ID, Label: desc.Label, Group: desc.Group}
		if desc.IsFlag() {
			v, err := doc.GetFlag(desc.ID)
			if err != nil {
				row.Error = err.Error()
			} else {
				row.Value = v
			}
		} else {
			v, err := doc.GetCounter(desc.ID)
			if err != nil {
				row.Error = err.Error()
			} else {
				row.Value = v
			}
		}
		rows = append(rows, row)
	}

	if jsonOut {
		return printJSON(rows)
	}
	for _, row := range rows {
		if row.Error != "" {
			printInfo("  %-30s <unreadable: %s>\n", row.ID, row.Error)
			continue
		}
		printInfo("  %-30s %v\n", row.ID, row.Value)
	}
	printInfo("\n%d field(s)\n", len(rows))
	return nil
}
