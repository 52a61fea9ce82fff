package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/matchday/internal/contracts"
)

// Repository persists analyses in PostgreSQL
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository instance
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a new analysis
func (r *Repository) Insert(ctx context.Context, a *Analysis) error {
	assigned, err := json.Marshal(a.Assigned)
	if err != nil {
		return fmt.Errorf("marshal assigned: %w", err)
	}
	match, err := marshalOptional(a.Match)
	if err != nil {
		return fmt.Errorf("marshal match: %w", err)
	}

	var winner *string
	if a.Result != nil {
		winner = &a.Result.Winner
	}

	query := `
		INSERT INTO analyses
			(id, user_id, name, team, formation, assigned, free_positions, match, winner, class, strategy_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.pool.Exec(ctx, query,
		a.ID, a.UserID, a.Name, a.Team, a.Formation,
		assigned, a.FreePositions, match,
		winner, string(a.Class), a.StrategyHash, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// List returns a user's analyses, newest first
func (r *Repository) List(ctx context.Context, userID string, limit int) ([]Summary, error) {
	query := `
		SELECT id, name, team, formation, COALESCE(winner, ''), created_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Team, &s.Formation, &s.Winner, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns one analysis owned by userID
func (r *Repository) Get(ctx context.Context, userID string, id uuid.UUID) (*Analysis, error) {
	query := `
		SELECT id, user_id, name, team, formation, assigned, free_positions, match,
		       winner, COALESCE(class, ''), COALESCE(strategy_hash, ''), created_at
		FROM analyses
		WHERE id = $1 AND user_id = $2`

	var (
		a        Analysis
		assigned []byte
		match    []byte
		winner   *string
		class    string
	)
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&a.ID, &a.UserID, &a.Name, &a.Team, &a.Formation,
		&assigned, &a.FreePositions, &match,
		&winner, &class, &a.StrategyHash, &a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis: %w", err)
	}

	if len(assigned) > 0 {
		if err := json.Unmarshal(assigned, &a.Assigned); err != nil {
			return nil, fmt.Errorf("decode assigned: %w", err)
		}
	}
	if len(match) > 0 {
		a.Match = &contracts.MatchRequest{}
		if err := json.Unmarshal(match, a.Match); err != nil {
			return nil, fmt.Errorf("decode match: %w", err)
		}
	}
	if winner != nil {
		a.Result = &contracts.PredictionResult{Winner: *winner}
	}
	a.Class = contracts.VoteClass(class)
	if a.FreePositions == nil {
		a.FreePositions = []string{}
	}
	return &a, nil
}

// Delete removes one analysis owned by userID
func (r *Repository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalOptional(v *contracts.MatchRequest) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
