package score

import (
	"context"
	"fmt"

	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/period"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	Score(ctx context.Context, month period.MonthKey) (Result, error)
}

type ServiceImpl struct {
	aggregates     aggregate.Service
	reader         ledger.Reader
	cfg            Config
	trailingMonths int
}

func NewService(aggregates aggregate.Service, reader ledger.Reader, cfg Config, trailingMonths int) *ServiceImpl {
	return &ServiceImpl{
		aggregates:     aggregates,
		reader:         reader,
		cfg:            cfg,
		trailingMonths: trailingMonths,
	}
}

func (s *ServiceImpl) Score(ctx context.Context, month period.MonthKey) (Result, error) {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get current account: %w", err)
	}
	in, err := s.loadInputs(ctx, accountId, month)
	if err != nil {
		return Result{}, err
	}
	result := Compute(in, s.cfg)
	log.Debugf("score for account %d in %s: %d (%s)", accountId, month, result.Score, result.Level)
	return result, nil
}

// loadInputs reads the independent parts of the account snapshot in parallel.
// The trailing average is anchored at month, so the month itself is excluded
// for both the reserve and habits pillars.
func (s *ServiceImpl) loadInputs(ctx context.Context, accountId int, month period.MonthKey) (Inputs, error) {
	var in Inputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		agg, err := s.aggregates.ComputeMonth(gctx, accountId, month)
		if err != nil {
			return err
		}
		in.Month = agg
		return nil
	})
	g.Go(func() error {
		avg, err := s.aggregates.TrailingVariableAverage(gctx, accountId, month, s.trailingMonths)
		if err != nil {
			return err
		}
		in.TrailingAverage = avg
		return nil
	})
	g.Go(func() error {
		budgets, err := s.reader.ListCategoryBudgets(gctx, accountId, month)
		if err != nil {
			return fmt.Errorf("failed to load budgets: %w", err)
		}
		in.Budgets = budgets
		return nil
	})
	g.Go(func() error {
		assets, err := s.reader.ListAssets(gctx, accountId, ledger.AssetFilter{})
		if err != nil {
			return fmt.Errorf("failed to load assets: %w", err)
		}
		in.Assets = assets
		return nil
	})
	g.Go(func() error {
		contributions, err := s.reader.ListRecurringContributions(gctx, accountId, false)
		if err != nil {
			return fmt.Errorf("failed to load contributions: %w", err)
		}
		in.Contributions = contributions
		return nil
	})

	if err := g.Wait(); err != nil {
		return Inputs{}, err
	}
	return in, nil
}
