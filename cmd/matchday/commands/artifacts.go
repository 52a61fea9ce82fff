package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/matchday/internal/contracts"
	"github.com/wonny/matchday/internal/models"
	"github.com/wonny/matchday/internal/strategyconfig"
)

// artifactsCmd groups artifact maintenance
var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Inspect prediction artifacts",
}

var artifactsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate every artifact without serving",
	Long: `Load the classifier bundle, the formation table and the strategy,
validate them and print a summary. Exits non-zero on the first invalid artifact.

Example:
  go run ./cmd/matchday artifacts check
  go run ./cmd/matchday artifacts check --strategy config/strategy/default.yaml`,
	RunE: runArtifactsCheck,
}

func init() {
	rootCmd.AddCommand(artifactsCmd)
	artifactsCmd.AddCommand(artifactsCheckCmd)
}

func runArtifactsCheck(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	PrintDoubleSeparator()
	fmt.Println("  Artifact check")
	PrintSeparator()

	// 1. Strategy
	strategy, err := strategyconfig.LoadOrDefault(cfg.Artifacts.StrategyPath)
	if err != nil {
		return err
	}
	if err := strategyconfig.Validate(strategy); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	snapshot, err := strategyconfig.NewDecisionSnapshot(strategy)
	if err != nil {
		return err
	}
	source := cfg.Artifacts.StrategyPath
	if source == "" {
		source = "(built-in default)"
	}
	fmt.Printf("  Strategy  : %s v%s from %s\n", snapshot.StrategyID, snapshot.Version, source)
	fmt.Printf("  Hash      : %s\n", snapshot.ConfigHash)
	for _, name := range contracts.SignalOrder {
		fmt.Printf("    %-12s %.2f\n", name, strategy.Ensemble.Weights.Get(name))
	}
	for _, w := range strategyconfig.Warn(strategy) {
		PrintWarning(fmt.Sprintf("%s: %s", w.Code, w.Message))
	}

	// 2. Classifiers
	bundle, err := models.LoadBundle(cfg.Artifacts.Dir)
	if err != nil {
		return err
	}
	fmt.Printf("  History   : %d teams\n", len(bundle.History.Teams()))
	fmt.Printf("  Strength  : %d feature columns\n", len(bundle.Strength.FeatureColumns()))

	// 3. Formation table
	ctx := context.Background()
	db, err := openFormationDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	table, err := loadFormationTable(ctx, cfg, db)
	if err != nil {
		return err
	}
	fmt.Printf("  Formation : %d rows (%s)\n", table.Len(), cfg.Artifacts.FormationSrc)

	PrintSeparator()
	PrintSuccess("All artifacts valid")
	return nil
}
