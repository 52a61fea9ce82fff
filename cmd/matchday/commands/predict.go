package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/matchday/internal/api/handlers"
	"github.com/wonny/matchday/internal/contracts"
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict one match from the command line",
	Long: `Run the ensemble once without starting the server.

The match is read from --file (the same JSON body POST /predict accepts)
or built from flags. Squads are comma separated player names.

Example:
  go run ./cmd/matchday predict --file match.json
  go run ./cmd/matchday predict --team-a Arsenal --team-b Liverpool \
      --formation-a 4-3-3 --formation-b 4-3-3 \
      --squad-a Saka,Rice --squad-b Salah \
      --rating-a 84 --rating-b 83 --explain`,
	RunE: runPredict,
}

var (
	predictFile    string
	predictTeamA   string
	predictTeamB   string
	predictFormA   string
	predictFormB   string
	predictSquadA  string
	predictSquadB  string
	predictRatingA float64
	predictRatingB float64
	predictExplain bool
)

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVarP(&predictFile, "file", "f", "", "JSON request file (- for stdin)")
	predictCmd.Flags().StringVar(&predictTeamA, "team-a", "", "left team")
	predictCmd.Flags().StringVar(&predictTeamB, "team-b", "", "right team")
	predictCmd.Flags().StringVar(&predictFormA, "formation-a", "", "left formation, e.g. 4-3-3")
	predictCmd.Flags().StringVar(&predictFormB, "formation-b", "", "right formation")
	predictCmd.Flags().StringVar(&predictSquadA, "squad-a", "", "left starting players, comma separated")
	predictCmd.Flags().StringVar(&predictSquadB, "squad-b", "", "right starting players, comma separated")
	predictCmd.Flags().Float64Var(&predictRatingA, "rating-a", 0, "left squad rating")
	predictCmd.Flags().Float64Var(&predictRatingB, "rating-b", 0, "right squad rating")
	predictCmd.Flags().BoolVar(&predictExplain, "explain", false, "print the per-signal vote")
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	req, err := predictRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := openFormationDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc, _, err := buildPrediction(ctx, cfg, db, nil, log)
	if err != nil {
		return err
	}

	decision, err := svc.Predict(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if predictExplain {
		return enc.Encode(decision)
	}
	return enc.Encode(decision.PredictionResult)
}

func predictRequestFromFlags(cmd *cobra.Command) (contracts.MatchRequest, error) {
	if predictFile != "" {
		var body handlers.PredictRequest
		if err := readJSONFile(predictFile, &body); err != nil {
			return contracts.MatchRequest{}, err
		}
		return body.ToMatchRequest()
	}

	if !cmd.Flags().Changed("rating-a") || !cmd.Flags().Changed("rating-b") {
		return contracts.MatchRequest{}, fmt.Errorf("--rating-a and --rating-b are required")
	}

	return contracts.MatchRequest{
		TeamA:      predictTeamA,
		TeamB:      predictTeamB,
		FormationA: predictFormA,
		FormationB: predictFormB,
		SquadA:     parseSquad(predictSquadA),
		SquadB:     parseSquad(predictSquadB),
		RatingA:    predictRatingA,
		RatingB:    predictRatingB,
	}, nil
}

// parseSquad turns "A, B" into {"A": 1, "B": 1}
func parseSquad(list string) contracts.Squad {
	squad := contracts.Squad{}
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			squad[name] = 1
		}
	}
	return squad
}

func readJSONFile(path string, dest interface{}) error {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
	}

	if err := json.NewDecoder(f).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
