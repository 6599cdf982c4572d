// Command casestack inspects experiment descriptions and master archives.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	listAll bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "casestack",
	Short: "Assemble per-case labeled data into case-major masters",
	Long: `casestack works with experiments made of categorical cases.

An experiment YAML declares the cases and their ordered values; the case
product fixes the leading axes of every assembled master. Masters can be
stored as .cst archives and inspected with this tool.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var spaceCmd = &cobra.Command{
	Use:   "space <experiment.yaml>",
	Short: "Show the case space of an experiment",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpace,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.cst>",
	Short: "Describe a master archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	spaceCmd.Flags().BoolVarP(&listAll, "list", "l", false, "List every case-tuple in canonical order")

	rootCmd.AddCommand(spaceCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
