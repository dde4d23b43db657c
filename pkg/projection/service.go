package projection

import (
	"context"
	"fmt"

	"github.com/klokku/finpulse/internal/utils"
	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/klokku/finpulse/pkg/period"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	Project(ctx context.Context, monthsAhead int) (Projection, error)
}

type ServiceImpl struct {
	aggregates     aggregate.Service
	clock          utils.Clock
	trailingMonths int
}

func NewService(aggregates aggregate.Service, clock utils.Clock, trailingMonths int) *ServiceImpl {
	return &ServiceImpl{aggregates: aggregates, clock: clock, trailingMonths: trailingMonths}
}

func (s *ServiceImpl) Project(ctx context.Context, monthsAhead int) (Projection, error) {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return Projection{}, fmt.Errorf("failed to get current account: %w", err)
	}
	current := period.MonthKeyFromTime(s.clock.Now())

	var commitments aggregate.Snapshot
	var avgVariable decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		commitments, err = s.aggregates.LoadCommitments(gctx, accountId)
		return err
	})
	g.Go(func() error {
		avg, err := s.aggregates.TrailingVariableAverage(gctx, accountId, current, s.trailingMonths)
		if err != nil {
			return err
		}
		avgVariable = avg.Round(2)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Projection{}, err
	}

	log.Debugf("projecting %d months after %s for account %d", monthsAhead, current, accountId)
	return Project(commitments, current, monthsAhead, avgVariable, s.trailingMonths), nil
}
