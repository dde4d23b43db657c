//go:build integration

package skip

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/finpulse/internal/test_utils"
	"github.com/klokku/finpulse/pkg/period"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	code := m.Run()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (*pgxpool.Pool, Repository) {
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(context.Background())
		require.NoError(t, err)
	})
	return db, NewRepository(db)
}

func TestRepositoryImpl_UpsertSkipException(t *testing.T) {
	t.Run("should converge under concurrent toggles", func(t *testing.T) {
		// given
		db, repo := setupTestRepository(t)
		monthly := decimal.NewFromInt(100)
		id := test_utils.InsertContribution(t, db, 1, "trip", &monthly, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		month := period.NewMonthKey(3, 2025)

		// when
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, repo.UpsertSkipException(ctx, id, month, true))
			}()
		}
		wg.Wait()

		// then
		var count int
		require.NoError(t, db.QueryRow(ctx, `SELECT count(*) FROM contribution_skip WHERE contribution_id = $1`, id).Scan(&count))
		assert.Equal(t, 1, count)
		skipped, err := repo.IsSkipped(ctx, id, month)
		require.NoError(t, err)
		assert.True(t, skipped)
	})

	t.Run("should remove the exception and tolerate repeated removal", func(t *testing.T) {
		// given
		db, repo := setupTestRepository(t)
		monthly := decimal.NewFromInt(100)
		id := test_utils.InsertContribution(t, db, 1, "trip", &monthly, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		month := period.NewMonthKey(3, 2025)
		require.NoError(t, repo.UpsertSkipException(ctx, id, month, true))

		// when
		require.NoError(t, repo.UpsertSkipException(ctx, id, month, false))
		require.NoError(t, repo.UpsertSkipException(ctx, id, month, false))

		// then
		skipped, err := repo.IsSkipped(ctx, id, month)
		require.NoError(t, err)
		assert.False(t, skipped)
	})

	t.Run("should check contribution ownership", func(t *testing.T) {
		db, repo := setupTestRepository(t)
		id := test_utils.InsertContribution(t, db, 1, "trip", nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

		own, err := repo.ContributionExists(ctx, 1, id)
		require.NoError(t, err)
		other, err := repo.ContributionExists(ctx, 2, id)
		require.NoError(t, err)

		assert.True(t, own)
		assert.False(t, other)
	})
}
