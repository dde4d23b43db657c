package category_budget

import (
	"context"

	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/period"
)

type budgetKey struct {
	accountId  int
	categoryId int
	month      period.MonthKey
}

type RepositoryStub struct {
	budgets map[budgetKey]ledger.CategoryBudget
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{budgets: map[budgetKey]ledger.CategoryBudget{}}
}

func (s *RepositoryStub) Cleanup() {
	s.budgets = map[budgetKey]ledger.CategoryBudget{}
}

// Budgets returns the stored rows, usable as ledger.ReaderStub.Budgets.
func (s *RepositoryStub) Budgets() []ledger.CategoryBudget {
	result := make([]ledger.CategoryBudget, 0, len(s.budgets))
	for _, b := range s.budgets {
		result = append(result, b)
	}
	return result
}

func (s *RepositoryStub) UpsertCategoryBudget(ctx context.Context, budget ledger.CategoryBudget) (ledger.CategoryBudget, error) {
	s.budgets[budgetKey{budget.AccountId, budget.CategoryId, budget.Month}] = budget
	return budget, nil
}
