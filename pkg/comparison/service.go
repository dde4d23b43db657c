package comparison

import (
	"context"
	"fmt"

	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/klokku/finpulse/pkg/period"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	Compare(ctx context.Context, monthA, monthB period.MonthKey) (Comparison, error)
}

type ServiceImpl struct {
	aggregates aggregate.Service
}

func NewService(aggregates aggregate.Service) *ServiceImpl {
	return &ServiceImpl{aggregates: aggregates}
}

func (s *ServiceImpl) Compare(ctx context.Context, monthA, monthB period.MonthKey) (Comparison, error) {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return Comparison{}, fmt.Errorf("failed to get current account: %w", err)
	}

	var a, b aggregate.MonthlyAggregate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.aggregates.ComputeMonth(gctx, accountId, monthA)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = s.aggregates.ComputeMonth(gctx, accountId, monthB)
		return err
	})
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	log.Debugf("comparing %s with %s for account %d", monthA, monthB, accountId)
	return Compare(a, b), nil
}
