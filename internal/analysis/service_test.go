package analysis

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/matchday/internal/contracts"
	"github.com/wonny/matchday/internal/prediction"
)

type memoryStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*Analysis
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[uuid.UUID]*Analysis)}
}

func (m *memoryStore) Insert(ctx context.Context, a *Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.rows[a.ID] = &cp
	return nil
}

func (m *memoryStore) List(ctx context.Context, userID string, limit int) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Summary{}
	for _, a := range m.rows {
		if a.UserID != userID {
			continue
		}
		s := Summary{ID: a.ID, Name: a.Name, Team: a.Team, Formation: a.Formation, CreatedAt: a.CreatedAt}
		if a.Result != nil {
			s.Winner = a.Result.Winner
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStore) Get(ctx context.Context, userID string, id uuid.UUID) (*Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok || a.UserID != userID {
		return nil, ErrNotFound
	}
	return a, nil
}

func (m *memoryStore) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok || a.UserID != userID {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type fixedPredictor struct {
	winner string
	err    error
	calls  int
}

func (p *fixedPredictor) Predict(ctx context.Context, req contracts.MatchRequest) (*prediction.Decision, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &prediction.Decision{
		PredictionResult: contracts.PredictionResult{Winner: p.winner},
		Class:            contracts.WinA,
		StrategyHash:     "abc123",
	}, nil
}

func lineup() SaveRequest {
	return SaveRequest{
		Team:          "Arsenal",
		Formation:     "4-3-3",
		Assigned:      map[string]string{"0": "Raya", "10": "Saka"},
		FreePositions: []string{"3"},
	}
}

func TestService_SaveWithoutMatch(t *testing.T) {
	pred := &fixedPredictor{winner: "Arsenal"}
	svc := NewService(newMemoryStore(), pred, zerolog.Nop())

	a, err := svc.Save(context.Background(), "user-1", lineup())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "Arsenal 4-3-3", a.Name, "name defaults to team and formation")
	assert.Nil(t, a.Result)
	assert.Zero(t, pred.calls)
}

func TestService_SaveWithMatch(t *testing.T) {
	pred := &fixedPredictor{winner: "Arsenal"}
	svc := NewService(newMemoryStore(), pred, zerolog.Nop())

	req := lineup()
	req.Name = "derby plan"
	req.Match = &contracts.MatchRequest{TeamA: "Arsenal", TeamB: "Chelsea"}

	a, err := svc.Save(context.Background(), "user-1", req)
	require.NoError(t, err)

	require.NotNil(t, a.Result)
	assert.Equal(t, "Arsenal", a.Result.Winner)
	assert.Equal(t, contracts.WinA, a.Class)
	assert.Equal(t, "abc123", a.StrategyHash)
	assert.Equal(t, 1, pred.calls)

	got, err := svc.Get(context.Background(), "user-1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, "derby plan", got.Name)
}

func TestService_SaveRejectsInvalidMatch(t *testing.T) {
	store := newMemoryStore()
	pred := &fixedPredictor{winner: "Arsenal"}
	svc := NewService(store, pred, zerolog.Nop())

	tests := []struct {
		name  string
		match contracts.MatchRequest
	}{
		{"blank team", contracts.MatchRequest{TeamA: "Arsenal", TeamB: "  ", RatingA: 80, RatingB: 80}},
		{"non-binary squad", contracts.MatchRequest{TeamA: "Arsenal", TeamB: "Chelsea", SquadA: contracts.Squad{"Saka": 2}}},
		{"infinite rating", contracts.MatchRequest{TeamA: "Arsenal", TeamB: "Chelsea", RatingA: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := lineup()
			match := tt.match
			req.Match = &match

			_, err := svc.Save(context.Background(), "user-1", req)
			var verr *contracts.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
	assert.Zero(t, pred.calls)
	assert.Empty(t, store.rows)
}

func TestService_SavePredictionErrorNotStored(t *testing.T) {
	store := newMemoryStore()
	pred := &fixedPredictor{err: &contracts.SignalError{Signal: contracts.SignalHistory, Err: errors.New("boom")}}
	svc := NewService(store, pred, zerolog.Nop())

	req := lineup()
	req.Match = &contracts.MatchRequest{TeamA: "Arsenal", TeamB: "Chelsea"}

	_, err := svc.Save(context.Background(), "user-1", req)
	var serr *contracts.SignalError
	assert.ErrorAs(t, err, &serr)
	assert.Empty(t, store.rows)
}

func TestService_SaveValidation(t *testing.T) {
	svc := NewService(newMemoryStore(), nil, zerolog.Nop())

	_, err := svc.Save(context.Background(), "", lineup())
	assert.ErrorIs(t, err, ErrNoUser)

	req := lineup()
	req.Team = " "
	_, err = svc.Save(context.Background(), "user-1", req)
	var verr *contracts.ValidationError
	assert.ErrorAs(t, err, &verr)

	req = lineup()
	req.Match = &contracts.MatchRequest{TeamA: "Arsenal", TeamB: "Chelsea"}
	_, err = svc.Save(context.Background(), "user-1", req)
	assert.Error(t, err, "match attached without a predictor")
}

func TestService_OwnershipIsolation(t *testing.T) {
	svc := NewService(newMemoryStore(), nil, zerolog.Nop())
	ctx := context.Background()

	a, err := svc.Save(ctx, "user-1", lineup())
	require.NoError(t, err)

	_, err = svc.Get(ctx, "user-2", a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.List(ctx, "user-2", 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.Delete(ctx, "user-2", a.ID), ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, "user-1", a.ID))
}

func TestService_ListNewestFirst(t *testing.T) {
	svc := NewService(newMemoryStore(), nil, zerolog.Nop())
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	ctx := context.Background()
	for _, team := range []string{"Arsenal", "Chelsea", "Liverpool"} {
		req := lineup()
		req.Team = team
		_, err := svc.Save(ctx, "user-1", req)
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, "user-1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Liverpool", list[0].Team)
	assert.Equal(t, "Chelsea", list[1].Team)
}
