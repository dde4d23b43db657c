package skip

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/period"
	log "github.com/sirupsen/logrus"
)

var ErrContributionNotFound = errors.New("contribution not found")

// Registry answers and changes whether a contribution is suppressed in a month.
type Registry interface {
	IsSkipped(ctx context.Context, contributionId int, month period.MonthKey) (bool, error)
	// Toggle is idempotent: repeating a call leaves the same state.
	Toggle(ctx context.Context, contributionId int, month period.MonthKey, skip bool) error
}

type RegistryImpl struct {
	repo Repository
}

func NewRegistry(repo Repository) *RegistryImpl {
	return &RegistryImpl{repo: repo}
}

func (s *RegistryImpl) IsSkipped(ctx context.Context, contributionId int, month period.MonthKey) (bool, error) {
	if err := s.checkOwnership(ctx, contributionId); err != nil {
		return false, err
	}
	return s.repo.IsSkipped(ctx, contributionId, month)
}

func (s *RegistryImpl) Toggle(ctx context.Context, contributionId int, month period.MonthKey, skip bool) error {
	if err := s.checkOwnership(ctx, contributionId); err != nil {
		return err
	}
	log.Debugf("setting skip=%t for contribution %d in %s", skip, contributionId, month)
	return s.repo.UpsertSkipException(ctx, contributionId, month, skip)
}

func (s *RegistryImpl) checkOwnership(ctx context.Context, contributionId int) error {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current account: %w", err)
	}
	exists, err := s.repo.ContributionExists(ctx, accountId, contributionId)
	if err != nil {
		return err
	}
	if !exists {
		return ErrContributionNotFound
	}
	return nil
}
