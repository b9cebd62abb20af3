//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/repository"
)

const skipIntegration = "Skipping integration test in short mode"

func intPtr(v int) *int { return &v }

func seedGame(t *testing.T, ctx context.Context, db *database.DB, status string) *models.Game {
	repo := repository.NewPostgresGameRepository(db)

	game := &models.Game{
		ID:       uuid.New(),
		SourceID: uuid.NewString(),
		GameDate: time.Now().UTC().Truncate(24 * time.Hour),
		HomeTeam: "New York Yankees",
		AwayTeam: "Boston Red Sox",
		Status:   status,
	}
	if status == models.GameStatusCompleted {
		game.HomeRuns = intPtr(5)
		game.AwayRuns = intPtr(3)
	}
	require.NoError(t, repo.Upsert(ctx, game))
	return game
}

// TestDatabaseRepositoryIntegration exercises all repositories against a real PostgreSQL
func TestDatabaseRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip(skipIntegration)
	}

	ctx := context.Background()
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	t.Run("GameRepository", func(t *testing.T) {
		repo := repository.NewPostgresGameRepository(db)
		game := seedGame(t, ctx, db, models.GameStatusScheduled)

		retrieved, err := repo.GetBySourceID(ctx, game.SourceID)
		require.NoError(t, err)
		assert.Equal(t, game.HomeTeam, retrieved.HomeTeam)
		assert.Equal(t, models.GameStatusScheduled, retrieved.Status)
		assert.Nil(t, retrieved.HomeRuns)

		// Re-reporting the same source id updates score and status in place
		game.HomeRuns = intPtr(7)
		game.AwayRuns = intPtr(4)
		game.Status = models.GameStatusCompleted
		require.NoError(t, repo.Upsert(ctx, game))

		updated, err := repo.GetBySourceID(ctx, game.SourceID)
		require.NoError(t, err)
		assert.True(t, updated.IsCompleted())
		assert.Equal(t, 7, *updated.HomeRuns)

		completed, err := repo.GetCompletedSince(ctx, time.Now().UTC().AddDate(0, 0, -1))
		require.NoError(t, err)
		assert.NotEmpty(t, completed)
	})

	t.Run("TeamProfileRepository", func(t *testing.T) {
		repo := repository.NewPostgresTeamProfileRepository(db)

		profile := &models.TeamRunProfile{
			Team:           "Chicago Cubs",
			AvgRunsScored:  4.6,
			AvgRunsAllowed: 4.1,
			GamesPlayed:    25,
			UpdatedAt:      time.Now().UTC(),
		}
		require.NoError(t, repo.Upsert(ctx, profile))

		profile.AvgRunsScored = 4.8
		require.NoError(t, repo.Upsert(ctx, profile))

		retrieved, err := repo.GetByTeam(ctx, "Chicago Cubs")
		require.NoError(t, err)
		assert.InDelta(t, 4.8, retrieved.AvgRunsScored, 1e-9)

		_, err = repo.GetByTeam(ctx, "No Such Team")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("PredictionRepository", func(t *testing.T) {
		repo := repository.NewPostgresPredictionRepository(db)
		game := seedGame(t, ctx, db, models.GameStatusCompleted)

		pred := &models.Prediction{
			ID:               uuid.New(),
			GameID:           game.ID,
			ModelName:        "poisson_v1",
			HomeWinProb:      0.58,
			AwayWinProb:      0.37,
			TieProb:          0.04,
			HomeExpectedRuns: 5.2,
			AwayExpectedRuns: 4.1,
			PredictedWinner:  game.HomeTeam,
			CreatedAt:        time.Now().UTC(),
		}
		require.NoError(t, repo.Create(ctx, pred))

		unsettled, err := repo.GetUnsettled(ctx, "poisson_v1")
		require.NoError(t, err)
		require.NotEmpty(t, unsettled)

		require.NoError(t, repo.Settle(ctx, pred.ID, true, time.Now().UTC()))

		byGame, err := repo.GetByGameID(ctx, game.ID)
		require.NoError(t, err)
		require.Len(t, byGame, 1)
		assert.True(t, byGame[0].IsSettled())
		require.NotNil(t, byGame[0].Correct)
		assert.True(t, *byGame[0].Correct)

		accuracy, err := repo.GetAccuracy(ctx, "poisson_v1", time.Now().UTC().AddDate(0, 0, -7))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, accuracy, 0.0)
		assert.LessOrEqual(t, accuracy, 1.0)

		err = repo.Settle(ctx, uuid.New(), true, time.Now().UTC())
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("ValueBetRepository", func(t *testing.T) {
		repo := repository.NewPostgresValueBetRepository(db)
		game := seedGame(t, ctx, db, models.GameStatusScheduled)

		bet := &models.ValueBet{
			ID:             uuid.New(),
			GameID:         game.ID,
			Team:           game.HomeTeam,
			Side:           models.BetSideHome,
			AmericanOdds:   145,
			WinProbability: 0.52,
			Stake:          decimal.NewFromInt(100),
			ExpectedValue:  decimal.NewFromFloat(27.40),
			CreatedAt:      time.Now().UTC(),
		}
		require.NoError(t, repo.Create(ctx, bet))

		byGame, err := repo.GetByGameID(ctx, game.ID)
		require.NoError(t, err)
		require.Len(t, byGame, 1)
		assert.True(t, byGame[0].ExpectedValue.Equal(decimal.NewFromFloat(27.40)))

		recent, err := repo.GetRecent(ctx, 10)
		require.NoError(t, err)
		assert.NotEmpty(t, recent)
	})
}

// TestConcurrentUpserts verifies upserts are safe under concurrent writers
func TestConcurrentUpserts(t *testing.T) {
	if testing.Short() {
		t.Skip(skipIntegration)
	}

	ctx := context.Background()
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repo := repository.NewPostgresGameRepository(db)
	sourceID := uuid.NewString()

	var wg sync.WaitGroup
	concurrency := 10
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			game := &models.Game{
				ID:       uuid.New(),
				SourceID: sourceID,
				GameDate: time.Now().UTC().Truncate(24 * time.Hour),
				HomeTeam: "Seattle Mariners",
				AwayTeam: "Houston Astros",
				HomeRuns: intPtr(index),
				AwayRuns: intPtr(2),
				Status:   models.GameStatusCompleted,
			}
			assert.NoError(t, repo.Upsert(ctx, game))
		}(i)
	}
	wg.Wait()

	// All writers collapsed onto a single row
	stored, err := repo.GetBySourceID(ctx, sourceID)
	require.NoError(t, err)
	assert.True(t, stored.IsCompleted())
}

// TestTransactionRollback verifies data inserted in a failed transaction is not persisted
func TestTransactionRollback(t *testing.T) {
	if testing.Short() {
		t.Skip(skipIntegration)
	}

	ctx := context.Background()
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	gameRepo := repository.NewPostgresGameRepository(db)
	id := uuid.New()

	err := db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO games (id, source_id, game_date, home_team, away_team, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, uuid.NewString(), time.Now().UTC(), "Rollback Home", "Rollback Away", models.GameStatusScheduled)
		if err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	_, err = gameRepo.GetByID(ctx, id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// TestSchemaTables verifies EnsureSchema created every table
func TestSchemaTables(t *testing.T) {
	if testing.Short() {
		t.Skip(skipIntegration)
	}

	ctx := context.Background()
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	tables := []string{"games", "team_profiles", "predictions", "value_bets"}
	for _, table := range tables {
		var exists bool
		query := `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_name = $1
			)
		`
		err := db.GetPool().QueryRow(ctx, query, table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "Table %s should exist", table)
	}
}
