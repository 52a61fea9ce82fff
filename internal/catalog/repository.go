package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/matchday/internal/rating"
)

// Repository reads and writes the team catalog in PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository instance
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListTeams returns every team name, sorted
func (r *Repository) ListTeams(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect teams: %w", err)
	}
	return names, nil
}

// GetLogo returns the team's logo URL, or nil when the team or logo is unknown
func (r *Repository) GetLogo(ctx context.Context, team string) (*string, error) {
	var logo *string
	err := r.db.QueryRow(ctx, `SELECT logo FROM teams WHERE name = $1`, team).Scan(&logo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query logo: %w", err)
	}
	return logo, nil
}

// ListPlayers returns the roster of a team
func (r *Repository) ListPlayers(ctx context.Context, team string) ([]rating.Player, error) {
	query := `
		SELECT name, COALESCE(position, ''), COALESCE(rating, 0)
		FROM players
		WHERE team = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, team)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	players := []rating.Player{}
	for rows.Next() {
		var p rating.Player
		if err := rows.Scan(&p.Name, &p.Position, &p.Rating); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

// GetClubMetrics returns the metrics document of a team, or [] when absent
func (r *Repository) GetClubMetrics(ctx context.Context, team string) (json.RawMessage, error) {
	return r.jsonDocument(ctx, `SELECT metrics FROM club_metrics WHERE team = $1 LIMIT 1`, team)
}

// GetClubHistory returns the history document of a team, or [] when absent.
// History rows are keyed by lower-cased team name.
func (r *Repository) GetClubHistory(ctx context.Context, team string) (json.RawMessage, error) {
	return r.jsonDocument(ctx, `SELECT history FROM club_history WHERE team = $1 LIMIT 1`, strings.ToLower(team))
}

func (r *Repository) jsonDocument(ctx context.Context, query, team string) (json.RawMessage, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, query, team).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) || len(doc) == 0 {
		return emptyJSONList, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}
	return json.RawMessage(doc), nil
}

// CreateCustomTeam inserts a team and its roster in one transaction
func (r *Repository) CreateCustomTeam(ctx context.Context, team CustomTeam) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var logo *string
	if team.Logo != "" {
		logo = &team.Logo
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO teams (name, logo, custom)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (name) DO NOTHING
	`, team.Name, logo)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("team %q: %w", team.Name, ErrAlreadyExists)
	}

	rows := make([][]interface{}, 0, len(team.Players))
	for _, p := range team.Players {
		rows = append(rows, []interface{}{p.Name, team.Name, p.Position, int(p.Rating)})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"players"},
		[]string{"name", "team", "position", "rating"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("copy players: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ErrAlreadyExists is returned when a custom team name is taken
var ErrAlreadyExists = errors.New("already exists")
