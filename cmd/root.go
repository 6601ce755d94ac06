// Package cmd implements blockcopy's CLI surface: three subcommands
// (checksum, retrieve, save) over a shared root command, built with cobra
// the way the teacher builds its own multi-command surface.
package cmd

import (
	"fmt"
	"os"

	"github.com/blockcopy/blockcopy/internal/logging"
	"github.com/spf13/cobra"
)

const version = "blockcopy 0.0.2"

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "blockcopy",
	Short:   "Sparse, checksum-driven block synchronization",
	Version: version,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute runs the root command; it is the sole entrypoint main calls.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// cobra has already printed usage/error for us in the normal case.
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug-level detail to stderr")
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s\n", version))
}

func effectiveLogger() logging.ILogger {
	level := logging.VerbosityFromFlags(verbose, os.Getenv("DEBUG"))
	return logging.NewLogger(os.Stderr, level)
}
