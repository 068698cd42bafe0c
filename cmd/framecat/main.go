// Command framecat packs data into frames and inspects framed files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "framecat",
	Short:         "Pack and inspect length-prefixed frames",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			return nil
		}
		dev, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = dev
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(newPackCmd(), newDumpCmd(), newUnpackCmd())
}

// execute runs the command line in args and returns the process exit code.
// Errors are reported through logger, since cobra's own printing is silenced.
func execute(args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("framecat failed", zap.Error(err))
		return 1
	}
	return 0
}

func main() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "framecat: logger:", err)
		os.Exit(1)
	}
	code := execute(os.Args[1:])
	_ = logger.Sync()
	os.Exit(code)
}
