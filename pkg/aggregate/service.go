package aggregate

import (
	"context"
	"fmt"

	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/period"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	ComputeMonth(ctx context.Context, accountId int, month period.MonthKey) (MonthlyAggregate, error)
	TrailingVariableAverage(ctx context.Context, accountId int, anchor period.MonthKey, window int) (decimal.Decimal, error)
	// LoadCommitments reads the fixed rows and scheduled contributions, which
	// apply to any month. The returned snapshot carries no ad hoc entries.
	LoadCommitments(ctx context.Context, accountId int) (Snapshot, error)
	// LoadSnapshot reads everything needed to aggregate any month in [from, to].
	LoadSnapshot(ctx context.Context, accountId int, from, to period.MonthKey) (Snapshot, error)
	// LoadVariableExpenses reads variable expenses dated within [from, to].
	LoadVariableExpenses(ctx context.Context, accountId int, from, to period.MonthKey) ([]ledger.AdHocEntry, error)
}

type ServiceImpl struct {
	reader ledger.Reader
}

func NewService(reader ledger.Reader) *ServiceImpl {
	return &ServiceImpl{reader: reader}
}

func (s *ServiceImpl) ComputeMonth(ctx context.Context, accountId int, month period.MonthKey) (MonthlyAggregate, error) {
	snapshot, err := s.LoadSnapshot(ctx, accountId, month, month)
	if err != nil {
		return MonthlyAggregate{}, err
	}
	agg := ComputeMonth(snapshot, month)
	log.Tracef("aggregate for account %d, month %s: %+v", accountId, month, agg)
	return agg, nil
}

func (s *ServiceImpl) TrailingVariableAverage(ctx context.Context, accountId int, anchor period.MonthKey, window int) (decimal.Decimal, error) {
	if window <= 0 {
		return decimal.Zero, nil
	}
	from, to := TrailingWindow(anchor, window)
	expenses, err := s.LoadVariableExpenses(ctx, accountId, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return TrailingVariableAverage(expenses, anchor, window), nil
}

func (s *ServiceImpl) LoadVariableExpenses(ctx context.Context, accountId int, from, to period.MonthKey) ([]ledger.AdHocEntry, error) {
	expenses, err := s.reader.ListAdHocEntries(ctx, accountId, ledger.KindExpense, ledger.DateRange(from.Start(), to.End()))
	if err != nil {
		return nil, fmt.Errorf("failed to load variable expenses: %w", err)
	}
	return expenses, nil
}

func (s *ServiceImpl) LoadCommitments(ctx context.Context, accountId int) (Snapshot, error) {
	var snapshot Snapshot
	g, gctx := errgroup.WithContext(ctx)
	s.loadCommitments(g, gctx, accountId, &snapshot)
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

func (s *ServiceImpl) LoadSnapshot(ctx context.Context, accountId int, from, to period.MonthKey) (Snapshot, error) {
	var snapshot Snapshot
	g, gctx := errgroup.WithContext(ctx)
	s.loadCommitments(g, gctx, accountId, &snapshot)

	g.Go(func() error {
		expenses, err := s.LoadVariableExpenses(gctx, accountId, from, to)
		if err != nil {
			return err
		}
		snapshot.VariableExpenses = expenses
		return nil
	})
	g.Go(func() error {
		var incomes []ledger.AdHocEntry
		for month := from; !month.After(to); month = month.Next() {
			monthIncomes, err := s.reader.ListAdHocEntries(gctx, accountId, ledger.KindIncome, ledger.MonthYear(month))
			if err != nil {
				return fmt.Errorf("failed to load extra incomes: %w", err)
			}
			incomes = append(incomes, monthIncomes...)
		}
		snapshot.ExtraIncomes = incomes
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

// loadCommitments schedules the reads shared by every snapshot on g. Each
// goroutine writes a distinct field of snapshot.
func (s *ServiceImpl) loadCommitments(g *errgroup.Group, ctx context.Context, accountId int, snapshot *Snapshot) {
	g.Go(func() error {
		incomes, err := s.reader.ListFixedCommitments(ctx, accountId, ledger.KindIncome)
		if err != nil {
			return fmt.Errorf("failed to load fixed incomes: %w", err)
		}
		snapshot.FixedIncomes = incomes
		return nil
	})
	g.Go(func() error {
		expenses, err := s.reader.ListFixedCommitments(ctx, accountId, ledger.KindExpense)
		if err != nil {
			return fmt.Errorf("failed to load fixed expenses: %w", err)
		}
		snapshot.FixedExpenses = expenses
		return nil
	})
	g.Go(func() error {
		contributions, err := s.reader.ListRecurringContributions(ctx, accountId, true)
		if err != nil {
			return fmt.Errorf("failed to load recurring contributions: %w", err)
		}
		snapshot.Contributions = contributions
		return nil
	})
}
