package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/matchday/internal/formation"
	"github.com/wonny/matchday/pkg/database"
)

// formationCmd groups formation table maintenance
var formationCmd = &cobra.Command{
	Use:   "formation",
	Short: "Manage the formation strength table",
}

var formationImportCmd = &cobra.Command{
	Use:   "import [csv]",
	Short: "Load a formation CSV into the database",
	Long: `Parse a formation strength CSV and replace the contents of
formation_strength with it. Run with FORMATION_SOURCE=db afterwards to serve it.

Example:
  go run ./cmd/matchday formation import artifacts/formation/formation_strength.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormationImport,
}

func init() {
	rootCmd.AddCommand(formationCmd)
	formationCmd.AddCommand(formationImportCmd)
}

func runFormationImport(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.Artifacts.FormationCSV
	if len(args) == 1 {
		path = args[0]
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := formation.ParseCSV(f)
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	n, err := formation.NewRepository(db.Pool).Import(ctx, rows)
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"path": path,
		"rows": n,
	}).Info("Formation table imported")
	PrintSuccess(fmt.Sprintf("Imported %d formation rows from %s", n, path))
	return nil
}
