package skip

import (
	"context"
	"sync"

	"github.com/klokku/finpulse/pkg/period"
)

type key struct {
	contributionId int
	month          period.MonthKey
}

type RepositoryStub struct {
	mu            sync.Mutex
	contributions map[int]int // contribution id -> account id
	skips         map[key]struct{}
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		contributions: map[int]int{},
		skips:         map[key]struct{}{},
	}
}

func (s *RepositoryStub) AddContribution(accountId int, contributionId int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contributions[contributionId] = accountId
}

func (s *RepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.skips)
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contributions = map[int]int{}
	s.skips = map[key]struct{}{}
}

func (s *RepositoryStub) ContributionExists(ctx context.Context, accountId int, contributionId int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.contributions[contributionId]
	return ok && owner == accountId, nil
}

func (s *RepositoryStub) IsSkipped(ctx context.Context, contributionId int, month period.MonthKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.skips[key{contributionId, month}]
	return ok, nil
}

func (s *RepositoryStub) UpsertSkipException(ctx context.Context, contributionId int, month period.MonthKey, skip bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if skip {
		s.skips[key{contributionId, month}] = struct{}{}
	} else {
		delete(s.skips, key{contributionId, month})
	}
	return nil
}
