package cmd

import (
	"os"

	"github.com/blockcopy/blockcopy/internal/logging"
	"github.com/blockcopy/blockcopy/internal/syncengine"
	"github.com/blockcopy/blockcopy/internal/ttycheck"
	"github.com/spf13/cobra"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve FILE",
	Short: "Turn a hash stream (read from stdin) plus a local source object into a data stream on stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		logger := effectiveLogger()

		if ttycheck.IsTerminal(os.Stdout) {
			err := logging.NewUsageError("refusing to write a binary data stream to a terminal")
			logging.FailAndExit("retrieve", err, verbose)
			return nil
		}

		source, err := openRandomAccessFile(args[0], false)
		if err != nil {
			logging.FailAndExit("retrieve", err, verbose)
			return nil
		}
		defer source.Close()

		opts := syncengine.RetrieveOptions{Logger: logger}
		if err := syncengine.RunRetrieve(source, os.Stdin, os.Stdout, opts); err != nil {
			logging.FailAndExit("retrieve", err, verbose)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(retrieveCmd)
}
