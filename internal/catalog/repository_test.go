package catalog

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Integration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	repo := NewRepository(pool)

	_, err = repo.ListTeams(ctx)
	require.NoError(t, err)

	logo, err := repo.GetLogo(ctx, "no-such-team-xyz")
	require.NoError(t, err)
	assert.Nil(t, logo)

	history, err := repo.GetClubHistory(ctx, "no-such-team-xyz")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(history))
}
