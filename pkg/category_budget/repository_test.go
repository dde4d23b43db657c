//go:build integration

package category_budget

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/finpulse/internal/test_utils"
	"github.com/klokku/finpulse/pkg/ledger"
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

func TestRepositoryImpl_UpsertCategoryBudget(t *testing.T) {
	// given
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		require.NoError(t, pgContainer.Restore(context.Background()))
	})
	repo := NewRepository(db)
	reader := ledger.NewRepository(db)
	budget := ledger.CategoryBudget{CategoryId: 3, AccountId: 1, Month: march, Amount: decimal.NewFromInt(100)}

	// when
	_, err := repo.UpsertCategoryBudget(ctx, budget)
	require.NoError(t, err)
	budget.Amount = decimal.RequireFromString("250.75")
	stored, err := repo.UpsertCategoryBudget(ctx, budget)
	require.NoError(t, err)

	// then
	assert.True(t, decimal.RequireFromString("250.75").Equal(stored.Amount))
	budgets, err := reader.ListCategoryBudgets(ctx, 1, march)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budget.Amount.Equal(budgets[0].Amount))
}
