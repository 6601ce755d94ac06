package cmd

import (
	"os"

	"github.com/blockcopy/blockcopy/internal/logging"
	"github.com/blockcopy/blockcopy/internal/syncengine"
	"github.com/blockcopy/blockcopy/internal/ttycheck"
	"github.com/spf13/cobra"
)

var (
	checksumStart uint64
	checksumEnd   uint64
)

var checksumCmd = &cobra.Command{
	Use:   "checksum FILE",
	Short: "Hash an object's blocks and write a hash stream to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		logger := effectiveLogger()

		if ttycheck.IsTerminal(os.Stdout) {
			err := logging.NewUsageError("refusing to write a binary hash stream to a terminal")
			logging.FailAndExit("checksum", err, verbose)
			return nil
		}

		src, closer, seekable, err := openSourceArg(args[0])
		if err != nil {
			logging.FailAndExit("checksum", err, verbose)
			return nil
		}
		if closer != nil {
			defer closer.Close()
		}

		opts := syncengine.ChecksumOptions{
			Start:    checksumStart,
			Seekable: seekable,
			Logger:   logger,
		}
		if c.Flags().Changed("end") {
			end := checksumEnd
			opts.End = &end
		}

		if err := syncengine.RunChecksum(src, os.Stdout, opts); err != nil {
			logging.FailAndExit("checksum", err, verbose)
		}
		return nil
	},
}

func init() {
	checksumCmd.Flags().Uint64Var(&checksumStart, "start", 0, "first byte offset to hash")
	checksumCmd.Flags().Uint64Var(&checksumEnd, "end", 0, "exclusive end byte offset to hash")
	rootCmd.AddCommand(checksumCmd)
}
