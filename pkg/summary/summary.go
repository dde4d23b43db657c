package summary

import (
	"context"
	"fmt"

	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/klokku/finpulse/pkg/health"
	"github.com/klokku/finpulse/pkg/period"
	log "github.com/sirupsen/logrus"
)

type Summary struct {
	Aggregate aggregate.MonthlyAggregate
	Health    health.Result
}

type Service interface {
	Summary(ctx context.Context, month period.MonthKey) (Summary, error)
}

type ServiceImpl struct {
	aggregates aggregate.Service
}

func NewService(aggregates aggregate.Service) *ServiceImpl {
	return &ServiceImpl{aggregates: aggregates}
}

func (s *ServiceImpl) Summary(ctx context.Context, month period.MonthKey) (Summary, error) {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get current account: %w", err)
	}
	agg, err := s.aggregates.ComputeMonth(ctx, accountId, month)
	if err != nil {
		return Summary{}, err
	}
	result := health.Evaluate(agg.TotalIncome, agg.TotalExpense)
	log.Debugf("summary for account %d in %s: balance %s, health %s", accountId, month, agg.Balance, result.Status)
	return Summary{Aggregate: agg, Health: result}, nil
}
