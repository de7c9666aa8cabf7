package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/savetools/savekit/save"
	"github.com/savetools/savekit/watch"
)

var watchPatterns []string

func init() {
	cmd := newWatchCmd()
	cmd.Flags().StringSliceVarP(&watchPatterns, "pattern", "p", []string{"*.dat"}, "Glob patterns of files to report")
	rootCmd.AddCommand(cmd)
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Report external rewrites of save files in a directory",
		Long: `The watch command observes a save directory and reports every time the
game (or anything else) rewrites a matching file, together with the new
checksum state. Useful to confirm when the game flushes its saves, and
to avoid committing over a fresher file. Ctrl-C stops it.

Example:
  savectl watch "~/.local/share/binding of isaac repentance"
  savectl watch . --pattern "rep_*.dat"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args)
		},
	}
	return cmd
}

func runWatch(args []string) error {
	dir := args[0]

	lay, err := loadLayout()
	if err != nil {
		return err
	}

	w := watch.New(dir, watchPatterns...)
	events := make(chan watch.Event, 16)
	if err := w.Start(events); err != nil {
		return err
	}
	defer w.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	printInfo("Watching %s (%v)\n", dir, watchPatterns)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			info, err := save.Inspect(ev.Path, lay)
			if err != nil {
				printInfo("rewritten: %s (unreadable: %v)\n", ev.Path, err)
				continue
			}
			state := "checksum valid"
			if !info.ChecksumOK {
				state = "checksum MISMATCH"
			}
			printInfo("rewritten: %s (%d bytes, %s)\n", ev.Path, info.Size, state)
		case <-stop:
			printInfo("\nStopped\n")
			return nil
		}
	}
}
