package formation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/matchday/internal/contracts"
)

// Repository persists formation rates in PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository instance
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// LoadTable reads every row into an immutable Table
func (r *Repository) LoadTable(ctx context.Context) (*Table, error) {
	query := `
		SELECT team, formation, winning_rate, draw_rate, losing_rate
		FROM formation_strength
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query formation_strength: %w", err)
	}
	defer rows.Close()

	var out []contracts.FormationRow
	for rows.Next() {
		var row contracts.FormationRow
		if err := rows.Scan(&row.Team, &row.Formation, &row.WinningRate, &row.DrawRate, &row.LosingRate); err != nil {
			return nil, fmt.Errorf("scan formation row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate formation rows: %w", err)
	}

	return NewTable(out), nil
}

// Import replaces the stored table with rows in a single transaction
func (r *Repository) Import(ctx context.Context, rows []contracts.FormationRow) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM formation_strength`); err != nil {
		return 0, fmt.Errorf("clear formation_strength: %w", err)
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO formation_strength (team, formation, winning_rate, draw_rate, losing_rate)
			VALUES ($1, $2, $3, $4, $5)
		`, row.Team, row.Formation, row.WinningRate, row.DrawRate, row.LosingRate)
	}

	results := tx.SendBatch(ctx, batch)
	for range rows {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, fmt.Errorf("insert formation row: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(rows), nil
}
