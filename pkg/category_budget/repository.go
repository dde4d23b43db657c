package category_budget

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/finpulse/pkg/ledger"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// UpsertCategoryBudget inserts the budget or replaces the amount stored
	// under the same (account, category, month, year) key.
	UpsertCategoryBudget(ctx context.Context, budget ledger.CategoryBudget) (ledger.CategoryBudget, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) UpsertCategoryBudget(ctx context.Context, budget ledger.CategoryBudget) (ledger.CategoryBudget, error) {
	query := `INSERT INTO category_budget (account_id, category_id, month, year, amount)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (account_id, category_id, month, year) DO UPDATE SET amount = EXCLUDED.amount
			  RETURNING amount`
	err := r.db.QueryRow(ctx, query,
		budget.AccountId, budget.CategoryId, budget.Month.Month, budget.Month.Year, budget.Amount,
	).Scan(&budget.Amount)
	if err != nil {
		log.Errorf("failed to upsert budget of category %d in %s: %v", budget.CategoryId, budget.Month, err)
		return ledger.CategoryBudget{}, fmt.Errorf("failed to store category budget: %w", err)
	}
	return budget, nil
}
