package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codescope/internal/logging"
)

var (
	configPath string
	outputDir  string
	debugMode  bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "codescope",
	Short: "codescope - LLM-backed source partition and analysis",
	Long: `codescope partitions a normalized JavaScript/TypeScript source file
into named units, infers approximate cross-unit dependencies, and runs a
multi-facet LLM analysis over the result.

Unit artifacts, the position map, the dependency graph, and per-category
analyses are written under the output directory for downstream report
generation.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "codescope.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.AddCommand(analyzeCmd)
}

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
