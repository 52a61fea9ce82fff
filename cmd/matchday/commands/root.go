package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	artifactsDir string
	strategyPath string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "matchday",
	Short: "matchday - football match outcome ensemble",
	Long: `matchday CLI

Predicts football match outcomes by weighted vote over five signals
(head-to-head history, squad strength for each side, rating delta,
formation strength) and serves team data for the lineup builder.

Usage:
  go run ./cmd/matchday [command]

Examples:
  go run ./cmd/matchday api
  go run ./cmd/matchday predict --team-a Arsenal --team-b Liverpool --rating-a 84 --rating-b 83
  go run ./cmd/matchday artifacts check
  go run ./cmd/matchday formation import artifacts/formation/formation_strength.csv
  go run ./cmd/matchday scheduler start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&artifactsDir, "artifacts", "", "model artifact directory (overrides ARTIFACTS_DIR)")
	rootCmd.PersistentFlags().StringVar(&strategyPath, "strategy", "", "ensemble strategy YAML (overrides STRATEGY_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
