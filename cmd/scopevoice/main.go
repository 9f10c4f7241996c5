// Command scopevoice interprets spoken surgical commands: utterance text or
// audio in, a safety-validated robot command out.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Logger
	logger *zap.Logger
)

var version = "0.3.0"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scopevoice",
	Short: "scopevoice - voice command interpretation for a tele-operated endoscope",
	Long: `scopevoice turns a spoken or typed utterance into a safety-validated
robot motion command.

Two parsing tiers run in fixed priority order: an LLM-backed semantic
parser, then a deterministic pattern parser. When both come up empty the
pipeline emits a zero-confidence STOP, so there is always a well-formed
command to execute or withhold.

Run "scopevoice repl" for an interactive session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scopevoice version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scopevoice %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(audioCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
