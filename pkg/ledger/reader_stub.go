package ledger

import (
	"context"
	"sync"

	"github.com/klokku/finpulse/pkg/period"
)

// ReaderStub is an in-memory Reader used by tests across packages.
type ReaderStub struct {
	Fixed         []FixedCommitment
	AdHoc         []AdHocEntry
	Contributions []RecurringContribution
	Budgets       []CategoryBudget
	Assets        []Asset
	// Err, when set, is returned by every read.
	Err   error
	Reads int

	mu sync.Mutex
}

func NewReaderStub() *ReaderStub {
	return &ReaderStub{}
}

func (s *ReaderStub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fixed, s.AdHoc, s.Contributions, s.Budgets, s.Assets = nil, nil, nil, nil, nil
	s.Err = nil
	s.Reads = 0
}

// read counts a call; the services under test read concurrently.
func (s *ReaderStub) read() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reads++
	return s.Err
}

func (s *ReaderStub) ListFixedCommitments(ctx context.Context, accountId int, kind Kind) ([]FixedCommitment, error) {
	if err := s.read(); err != nil {
		return nil, err
	}
	var result []FixedCommitment
	for _, c := range s.Fixed {
		if c.AccountId == accountId && c.Kind == kind {
			result = append(result, c)
		}
	}
	return result, nil
}

func (s *ReaderStub) ListAdHocEntries(ctx context.Context, accountId int, kind Kind, filter AdHocFilter) ([]AdHocEntry, error) {
	if err := s.read(); err != nil {
		return nil, err
	}
	var result []AdHocEntry
	for _, e := range s.AdHoc {
		if e.AccountId != accountId || e.Kind != kind {
			continue
		}
		if filter.From != nil && filter.To != nil {
			if e.Date.Before(*filter.From) || e.Date.After(*filter.To) {
				continue
			}
		} else if filter.Month != nil && !e.Period.Equal(*filter.Month) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (s *ReaderStub) ListRecurringContributions(ctx context.Context, accountId int, onlyWithSchedule bool) ([]RecurringContribution, error) {
	if err := s.read(); err != nil {
		return nil, err
	}
	var result []RecurringContribution
	for _, c := range s.Contributions {
		if c.AccountId != accountId {
			continue
		}
		if onlyWithSchedule && c.MonthlyContribution == nil {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (s *ReaderStub) ListCategoryBudgets(ctx context.Context, accountId int, month period.MonthKey) ([]CategoryBudget, error) {
	if err := s.read(); err != nil {
		return nil, err
	}
	var result []CategoryBudget
	for _, b := range s.Budgets {
		if b.AccountId == accountId && b.Month.Equal(month) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (s *ReaderStub) ListAssets(ctx context.Context, accountId int, filter AssetFilter) ([]Asset, error) {
	if err := s.read(); err != nil {
		return nil, err
	}
	var result []Asset
	for _, a := range s.Assets {
		if a.AccountId != accountId {
			continue
		}
		if filter.Category != nil && a.Category != *filter.Category {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}
