package category_budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/period"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidBudget = errors.New("invalid category budget")

type Service interface {
	Set(ctx context.Context, budget ledger.CategoryBudget) (ledger.CategoryBudget, error)
	List(ctx context.Context, month period.MonthKey) ([]ledger.CategoryBudget, error)
}

type ServiceImpl struct {
	repo   Repository
	reader ledger.Reader
}

func NewService(repo Repository, reader ledger.Reader) *ServiceImpl {
	return &ServiceImpl{repo: repo, reader: reader}
}

func (s *ServiceImpl) Set(ctx context.Context, budget ledger.CategoryBudget) (ledger.CategoryBudget, error) {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return ledger.CategoryBudget{}, fmt.Errorf("failed to get current account: %w", err)
	}
	if budget.CategoryId <= 0 {
		return ledger.CategoryBudget{}, fmt.Errorf("%w: category is required", ErrInvalidBudget)
	}
	if budget.Amount.IsNegative() {
		return ledger.CategoryBudget{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidBudget)
	}
	budget.AccountId = accountId
	log.Debugf("setting budget of category %d in %s to %s", budget.CategoryId, budget.Month, budget.Amount)
	return s.repo.UpsertCategoryBudget(ctx, budget)
}

func (s *ServiceImpl) List(ctx context.Context, month period.MonthKey) ([]ledger.CategoryBudget, error) {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current account: %w", err)
	}
	return s.reader.ListCategoryBudgets(ctx, accountId, month)
}
