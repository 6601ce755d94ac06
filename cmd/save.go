package cmd

import (
	"os"

	"github.com/blockcopy/blockcopy/internal/logging"
	"github.com/blockcopy/blockcopy/internal/syncengine"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save FILE",
	Short: "Apply a data stream (read from stdin) to a local destination object",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		logger := effectiveLogger()

		dest, err := openRandomAccessFile(args[0], true)
		if err != nil {
			logging.FailAndExit("save", err, verbose)
			return nil
		}
		defer dest.Close()

		opts := syncengine.SaveOptions{Logger: logger}
		if err := syncengine.RunSave(dest, os.Stdin, opts); err != nil {
			logging.FailAndExit("save", err, verbose)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
