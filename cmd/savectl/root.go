package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/savetools/savekit/catalog"
	"github.com/savetools/savekit/layout"
	"github.com/savetools/savekit/save"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	catalogPath string
	layoutPath  string
)

var rootCmd = &cobra.Command{
	Use:   "savectl",
	Short: "Inspect and edit Binding of Isaac save files",
	Long: `savectl reads and edits persistent game data save files. It verifies
and recomputes the save checksum, reads and writes individual flags and
counters by id, and unlocks whole groups at once.

Field ids come from a catalog CSV; file geometry comes from a layout INI
(the built-in Repentance layout is used when none is given).`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "Field catalog CSV")
	rootCmd.PersistentFlags().StringVarP(&layoutPath, "layout", "l", "", "Edition layout INI (default: built-in Repentance)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadLayout returns the --layout file, or the built-in Repentance layout.
func loadLayout() (*layout.Layout, error) {
	if layoutPath == "" {
		return layout.Repentance(), nil
	}
	printVerbose("Loading layout: %s\n", layoutPath)
	return layout.LoadFile(layoutPath)
}

// loadRegistry loads --catalog and builds the registry against lay. Rejected
// rows are warnings, not failures; the rest of the table stays usable.
func loadRegistry(lay *layout.Layout) (*save.Registry, error) {
	if catalogPath == "" {
		return nil, fmt.Errorf("this command needs a field catalog (--catalog)")
	}
	printVerbose("Loading catalog: %s\n", catalogPath)

	descs, rowErrs, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return nil, err
	}
	reg, rejected := save.LoadRegistry(descs, lay)
	for _, e := range append(rowErrs, rejected...) {
		printError("%v\n", e)
	}
	printVerbose("Catalog: %d fields loaded, %d rows rejected\n", reg.Len(), len(rowErrs)+len(rejected))
	return reg, nil
}

// openDocument loads a save file with the configured catalog and layout.
func openDocument(path string) (*save.Document, error) {
	lay, err := loadLayout()
	if err != nil {
		return nil, err
	}
	reg, err := loadRegistry(lay)
	if err != nil {
		return nil, err
	}
	doc, err := save.Open(path, reg, lay)
	if err != nil {
		return nil, err
	}
	if doc.Corrupt() {
		printError("warning: %v\n", doc.Warning())
	}
	return doc, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
