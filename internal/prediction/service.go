// Package prediction runs the signal ensemble for one match.
package prediction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wonny/matchday/internal/contracts"
	"github.com/wonny/matchday/internal/ensemble"
	"github.com/wonny/matchday/internal/signals"
	"github.com/wonny/matchday/internal/strategyconfig"
	"github.com/wonny/matchday/pkg/metrics"
)

// Dependencies are the read-only inputs loaded at startup
type Dependencies struct {
	History    contracts.HistoryClassifier
	Squad      contracts.SquadClassifier
	Formations contracts.FormationTable
	Strategy   *strategyconfig.Config
	Metrics    *metrics.Registry
	Logger     zerolog.Logger
}

// Decision is a verdict with the vote that produced it
type Decision struct {
	contracts.PredictionResult
	Class        contracts.VoteClass            `json:"class"`
	Tally        contracts.VoteTally            `json:"tally"`
	Signals      []contracts.SignalContribution `json:"signals"`
	StrategyID   string                         `json:"strategy_id"`
	StrategyHash string                         `json:"strategy_hash"`
}

// Service predicts match outcomes.
// ⭐ SSOT: every prediction goes through Service.Predict
type Service struct {
	history   *signals.History
	squad     *signals.Squad
	rating    *signals.Rating
	formation *signals.Formation
	voter     *ensemble.Voter

	strategyID   string
	strategyHash string

	validate *validator.Validate
	metrics  *metrics.Registry
	tracer   trace.Tracer
	log      zerolog.Logger
}

// NewService wires the signals to the voter. A nil strategy uses strategyconfig.Default().
func NewService(deps Dependencies) (*Service, error) {
	if deps.History == nil || deps.Squad == nil || deps.Formations == nil {
		return nil, errors.New("prediction: history, squad and formation providers are required")
	}

	strategy := deps.Strategy
	if strategy == nil {
		strategy = strategyconfig.Default()
	}
	if err := strategyconfig.Validate(strategy); err != nil {
		return nil, fmt.Errorf("prediction: %w", err)
	}

	voter, err := ensemble.NewVoter(strategy.Ensemble.Weights, strategy.Ensemble.TieEpsilon)
	if err != nil {
		return nil, fmt.Errorf("prediction: %w", err)
	}

	hash, err := strategyconfig.Hash(strategy)
	if err != nil {
		return nil, fmt.Errorf("prediction: hash strategy: %w", err)
	}

	return &Service{
		history: signals.NewHistory(deps.History, deps.Logger),
		squad: signals.NewSquad(deps.Squad, signals.SquadOptions{
			TeamFeature:     strategy.Signals.Squad.TeamFeature,
			UnknownTeamCode: strategy.Signals.Squad.UnknownTeamCode,
		}, deps.Logger),
		rating:       signals.NewRating(strategy.Signals.Rating.MinDelta),
		formation:    signals.NewFormation(deps.Formations, strategy.Signals.Formation.Coefficients, deps.Logger),
		voter:        voter,
		strategyID:   strategy.Meta.StrategyID,
		strategyHash: hash,
		validate:     contracts.NewValidator(),
		metrics:      deps.Metrics,
		tracer:       otel.Tracer("matchday/prediction"),
		log:          deps.Logger.With().Str("component", "prediction").Logger(),
	}, nil
}

// StrategyHash identifies the weight table in use
func (s *Service) StrategyHash() string {
	return s.strategyHash
}

// Predict validates the request, evaluates every active signal in fixed order and votes.
// Errors are *contracts.ValidationError (client error) or *contracts.SignalError (server error).
func (s *Service) Predict(ctx context.Context, req contracts.MatchRequest) (*Decision, error) {
	ctx, span := s.tracer.Start(ctx, "prediction.Predict")
	defer span.End()

	start := time.Now()

	if err := s.validate.StructCtx(ctx, req); err != nil {
		verr := toValidationError(err)
		s.metrics.PredictionError("validation")
		span.SetStatus(codes.Error, verr.Error())
		return nil, verr
	}
	req = req.Normalized()

	span.SetAttributes(
		attribute.String("match.team_a", req.TeamA),
		attribute.String("match.team_b", req.TeamB),
	)

	contributions, err := s.evaluate(req)
	if err != nil {
		var sigErr *contracts.SignalError
		if errors.As(err, &sigErr) {
			s.metrics.SignalFailure(string(sigErr.Signal))
		}
		s.metrics.PredictionError("signal")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error().Err(err).
			Str("team_a", req.TeamA).
			Str("team_b", req.TeamB).
			Msg("prediction failed")
		return nil, err
	}

	vote := s.voter.Vote(contributions)
	for _, c := range vote.Contributions {
		if c.Outcome == contracts.Neutral {
			s.metrics.SignalNeutral(string(c.Signal))
		}
	}

	decision := &Decision{
		PredictionResult: contracts.PredictionResult{
			Winner: ensemble.Winner(vote.Class, req.TeamA, req.TeamB),
		},
		Class:        vote.Class,
		Tally:        vote.Tally,
		Signals:      vote.Contributions,
		StrategyID:   s.strategyID,
		StrategyHash: s.strategyHash,
	}

	elapsed := time.Since(start)
	s.metrics.ObservePrediction(string(vote.Class), elapsed)
	span.SetAttributes(attribute.String("match.winner", decision.Winner))
	span.SetStatus(codes.Ok, "")

	s.log.Debug().
		Str("team_a", req.TeamA).
		Str("team_b", req.TeamB).
		Str("winner", decision.Winner).
		Float64("win_a", vote.Tally.WinA).
		Float64("win_b", vote.Tally.WinB).
		Float64("draw", vote.Tally.Draw).
		Dur("elapsed", elapsed).
		Msg("prediction complete")

	return decision, nil
}

// evaluate runs the active signals in order. The first failure aborts the vote.
func (s *Service) evaluate(req contracts.MatchRequest) ([]contracts.SignalContribution, error) {
	out := make([]contracts.SignalContribution, 0, len(contracts.SignalOrder))

	for _, name := range contracts.SignalOrder {
		if !s.voter.Active(name) {
			continue
		}

		result, err := s.run(name, req)
		if err != nil {
			return nil, err
		}

		out = append(out, contracts.SignalContribution{
			Signal:  name,
			Outcome: result.Outcome,
			Weight:  s.voter.Weight(name),
			Detail:  result.Detail,
		})
	}
	return out, nil
}

// run evaluates one signal; provider panics become a SignalError
func (s *Service) run(name contracts.SignalName, req contracts.MatchRequest) (result signals.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &contracts.SignalError{Signal: name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	switch name {
	case contracts.SignalHistory:
		return s.history.Evaluate(req.TeamA, req.TeamB)
	case contracts.SignalSquadLeft:
		return s.squad.Evaluate(signals.Left, req.TeamA, req.SquadA)
	case contracts.SignalSquadRight:
		return s.squad.Evaluate(signals.Right, req.TeamB, req.SquadB)
	case contracts.SignalRating:
		return s.rating.Evaluate(req.RatingA, req.RatingB), nil
	case contracts.SignalFormation:
		return s.formation.Evaluate(req.TeamA, req.FormationA, req.TeamB, req.FormationB), nil
	default:
		return signals.Result{}, &contracts.SignalError{Signal: name, Err: errors.New("unknown signal")}
	}
}
