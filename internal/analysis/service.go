package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wonny/matchday/internal/contracts"
	"github.com/wonny/matchday/internal/prediction"
)

// DefaultListLimit caps List when the caller passes no limit
const DefaultListLimit = 50

// Store is the persistence the service needs
type Store interface {
	Insert(ctx context.Context, a *Analysis) error
	List(ctx context.Context, userID string, limit int) ([]Summary, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (*Analysis, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// Predictor runs the ensemble for an attached match
type Predictor interface {
	Predict(ctx context.Context, req contracts.MatchRequest) (*prediction.Decision, error)
}

// ErrNoUser is returned when the caller identity is missing
var ErrNoUser = errors.New("user id required")

// Service saves and reads analyses
type Service struct {
	store     Store
	predictor Predictor
	validate  *validator.Validate
	now       func() time.Time
	log       zerolog.Logger
}

// NewService creates an analysis service. predictor may be nil when no match is ever attached.
func NewService(store Store, predictor Predictor, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		predictor: predictor,
		validate:  contracts.NewValidator(),
		now:       time.Now,
		log:       log.With().Str("component", "analysis").Logger(),
	}
}

// Save validates req, predicts the attached match if any, and stores the analysis
func (s *Service) Save(ctx context.Context, userID string, req SaveRequest) (*Analysis, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNoUser
	}
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, &contracts.ValidationError{Field: "analysis", Message: err.Error()}
	}

	a := &Analysis{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          strings.TrimSpace(req.Name),
		Team:          strings.TrimSpace(req.Team),
		Formation:     strings.TrimSpace(req.Formation),
		Assigned:      req.Assigned,
		FreePositions: req.FreePositions,
		Match:         req.Match,
		CreatedAt:     s.now().UTC(),
	}
	if a.Name == "" {
		a.Name = fmt.Sprintf("%s %s", a.Team, a.Formation)
	}
	if a.Assigned == nil {
		a.Assigned = map[string]string{}
	}
	if a.FreePositions == nil {
		a.FreePositions = []string{}
	}

	if req.Match != nil {
		if s.predictor == nil {
			return nil, errors.New("analysis: prediction is not available")
		}
		decision, err := s.predictor.Predict(ctx, *req.Match)
		if err != nil {
			return nil, err
		}
		a.Result = &decision.PredictionResult
		a.Class = decision.Class
		a.StrategyHash = decision.StrategyHash
	}

	if err := s.store.Insert(ctx, a); err != nil {
		return nil, err
	}

	event := s.log.Info().
		Str("user_id", userID).
		Str("analysis_id", a.ID.String()).
		Str("team", a.Team)
	if a.Result != nil {
		event = event.Str("winner", a.Result.Winner)
	}
	event.Msg("analysis saved")

	return a, nil
}

// List returns the caller's analyses, newest first
func (s *Service) List(ctx context.Context, userID string, limit int) ([]Summary, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNoUser
	}
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	return s.store.List(ctx, userID, limit)
}

// Get returns one of the caller's analyses
func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Analysis, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNoUser
	}
	return s.store.Get(ctx, userID, id)
}

// Delete removes one of the caller's analyses
func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if strings.TrimSpace(userID) == "" {
		return ErrNoUser
	}
	return s.store.Delete(ctx, userID, id)
}
