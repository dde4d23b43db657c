package asset

import (
	"context"
	"errors"

	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/shopspring/decimal"
)

// RepositoryStub keeps assets and wallets in memory. Transactions work on a
// copy that is only kept when fn succeeds.
type RepositoryStub struct {
	nextId        int
	assets        map[int]ledger.Asset
	contributions map[int]ledger.RecurringContribution
	// FailOn makes the named operation fail, to exercise rollbacks.
	FailOn string
}

var errStubFailure = errors.New("stub failure")

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		assets:        map[int]ledger.Asset{},
		contributions: map[int]ledger.RecurringContribution{},
	}
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.assets = map[int]ledger.Asset{}
	s.contributions = map[int]ledger.RecurringContribution{}
	s.FailOn = ""
}

func (s *RepositoryStub) Contribution(id int) (ledger.RecurringContribution, bool) {
	c, ok := s.contributions[id]
	return c, ok
}

func (s *RepositoryStub) Contributions() []ledger.RecurringContribution {
	result := make([]ledger.RecurringContribution, 0, len(s.contributions))
	for _, c := range s.contributions {
		result = append(result, c)
	}
	return result
}

func (s *RepositoryStub) Assets() []ledger.Asset {
	result := make([]ledger.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		result = append(result, a)
	}
	return result
}

func (s *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx := &RepositoryStub{
		nextId:        s.nextId,
		assets:        map[int]ledger.Asset{},
		contributions: map[int]ledger.RecurringContribution{},
		FailOn:        s.FailOn,
	}
	for id, a := range s.assets {
		tx.assets[id] = a
	}
	for id, c := range s.contributions {
		tx.contributions[id] = c
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.nextId, s.assets, s.contributions = tx.nextId, tx.assets, tx.contributions
	return nil
}

func (s *RepositoryStub) fail(op string) error {
	if s.FailOn == op {
		return errStubFailure
	}
	return nil
}

func (s *RepositoryStub) GetAsset(ctx context.Context, accountId int, id int) (ledger.Asset, error) {
	a, ok := s.assets[id]
	if !ok || a.AccountId != accountId {
		return ledger.Asset{}, ErrAssetNotFound
	}
	return a, nil
}

func (s *RepositoryStub) CreateAsset(ctx context.Context, accountId int, asset ledger.Asset) (ledger.Asset, error) {
	if err := s.fail("CreateAsset"); err != nil {
		return ledger.Asset{}, err
	}
	s.nextId++
	asset.Id = s.nextId
	asset.AccountId = accountId
	s.assets[asset.Id] = asset
	return asset, nil
}

func (s *RepositoryStub) UpdateAsset(ctx context.Context, accountId int, asset ledger.Asset) (ledger.Asset, error) {
	existing, ok := s.assets[asset.Id]
	if !ok || existing.AccountId != accountId {
		return ledger.Asset{}, ErrAssetNotFound
	}
	asset.AccountId = accountId
	s.assets[asset.Id] = asset
	return asset, nil
}

func (s *RepositoryStub) DeleteAsset(ctx context.Context, accountId int, id int) error {
	a, ok := s.assets[id]
	if !ok || a.AccountId != accountId {
		return ErrAssetNotFound
	}
	delete(s.assets, id)
	return nil
}

func (s *RepositoryStub) CreateContribution(ctx context.Context, accountId int, c ledger.RecurringContribution) (ledger.RecurringContribution, error) {
	s.nextId++
	c.Id = s.nextId
	c.AccountId = accountId
	s.contributions[c.Id] = c
	return c, nil
}

func (s *RepositoryStub) SetContributionTarget(ctx context.Context, accountId int, id int, target decimal.Decimal) error {
	c, ok := s.contributions[id]
	if ok && c.AccountId == accountId {
		c.TargetAmount = target
		s.contributions[id] = c
	}
	return nil
}

func (s *RepositoryStub) SetMonthlyContribution(ctx context.Context, accountId int, id int, monthly *decimal.Decimal) error {
	c, ok := s.contributions[id]
	if ok && c.AccountId == accountId {
		c.MonthlyContribution = monthly
		s.contributions[id] = c
	}
	return nil
}

func (s *RepositoryStub) DeleteContribution(ctx context.Context, accountId int, id int) error {
	if err := s.fail("DeleteContribution"); err != nil {
		return err
	}
	for _, a := range s.assets {
		if a.LinkedContributionId != nil && *a.LinkedContributionId == id {
			return errors.New("contribution is still referenced by an asset")
		}
	}
	delete(s.contributions, id)
	return nil
}
