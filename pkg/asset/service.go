package asset

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/klokku/finpulse/internal/utils"
	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/market_rate"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidAsset = errors.New("invalid asset")

// Input is an asset as submitted by the account. MonthlyContribution, when
// set, is the committed amount of the wallet of an asset in progress.
type Input struct {
	Name                string
	Category            string
	EstimatedValue      decimal.Decimal
	Status              ledger.AssetStatus
	MonthlyContribution *decimal.Decimal
}

type Yield struct {
	Asset   ledger.Asset
	Monthly decimal.Decimal
}

type YieldEstimate struct {
	Rate   market_rate.Rate
	Assets []Yield
	Total  decimal.Decimal
}

type Service interface {
	List(ctx context.Context) ([]ledger.Asset, error)
	Create(ctx context.Context, input Input) (ledger.Asset, error)
	Update(ctx context.Context, id int, input Input) (ledger.Asset, error)
	Delete(ctx context.Context, id int) error
	EstimateYield(ctx context.Context) (YieldEstimate, error)
}

type ServiceImpl struct {
	repo            Repository
	reader          ledger.Reader
	rates           market_rate.Provider
	clock           utils.Clock
	yieldCategories []string
}

func NewService(repo Repository, reader ledger.Reader, rates market_rate.Provider, clock utils.Clock, yieldCategories []string) *ServiceImpl {
	return &ServiceImpl{
		repo:            repo,
		reader:          reader,
		rates:           rates,
		clock:           clock,
		yieldCategories: yieldCategories,
	}
}

func (s *ServiceImpl) List(ctx context.Context) ([]ledger.Asset, error) {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current account: %w", err)
	}
	return s.reader.ListAssets(ctx, accountId, ledger.AssetFilter{})
}

func (s *ServiceImpl) Create(ctx context.Context, input Input) (ledger.Asset, error) {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return ledger.Asset{}, fmt.Errorf("failed to get current account: %w", err)
	}
	if err := validate(input); err != nil {
		return ledger.Asset{}, err
	}

	asset := ledger.Asset{
		Name:           input.Name,
		Category:       input.Category,
		EstimatedValue: input.EstimatedValue,
		Status:         input.Status,
	}
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		if needsContribution(asset) {
			linkedId, err := s.openContribution(ctx, repo, accountId, asset, input.MonthlyContribution)
			if err != nil {
				return err
			}
			asset.LinkedContributionId = &linkedId
		}
		asset, err = repo.CreateAsset(ctx, accountId, asset)
		return err
	})
	if err != nil {
		return ledger.Asset{}, err
	}
	log.Debugf("created asset %d (%s) for account %d", asset.Id, asset.Status, accountId)
	return asset, nil
}

// Update applies a status/value change and keeps the linked wallet consistent:
// an asset in progress has a wallet targeting its value, a paid off asset's
// wallet keeps its balance but stops its monthly schedule.
func (s *ServiceImpl) Update(ctx context.Context, id int, input Input) (ledger.Asset, error) {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return ledger.Asset{}, fmt.Errorf("failed to get current account: %w", err)
	}
	if err := validate(input); err != nil {
		return ledger.Asset{}, err
	}

	var updated ledger.Asset
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		existing, err := repo.GetAsset(ctx, accountId, id)
		if err != nil {
			return err
		}
		updated = existing
		updated.Name = input.Name
		updated.Category = input.Category
		updated.EstimatedValue = input.EstimatedValue
		updated.Status = input.Status

		switch {
		case updated.Status == ledger.AssetPaidOff && updated.LinkedContributionId != nil:
			if err := repo.SetMonthlyContribution(ctx, accountId, *updated.LinkedContributionId, nil); err != nil {
				return err
			}
		case needsContribution(updated) && updated.LinkedContributionId != nil:
			if err := repo.SetContributionTarget(ctx, accountId, *updated.LinkedContributionId, updated.EstimatedValue); err != nil {
				return err
			}
			if input.MonthlyContribution != nil {
				if err := repo.SetMonthlyContribution(ctx, accountId, *updated.LinkedContributionId, input.MonthlyContribution); err != nil {
					return err
				}
			}
		case needsContribution(updated):
			linkedId, err := s.openContribution(ctx, repo, accountId, updated, input.MonthlyContribution)
			if err != nil {
				return err
			}
			updated.LinkedContributionId = &linkedId
		}

		updated, err = repo.UpdateAsset(ctx, accountId, updated)
		return err
	})
	if err != nil {
		return ledger.Asset{}, err
	}
	log.Debugf("updated asset %d to %s for account %d", id, updated.Status, accountId)
	return updated, nil
}

// Delete removes the asset and then its wallet, unlinking first so the
// asset never points at a deleted row.
func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current account: %w", err)
	}
	return s.repo.WithTransaction(ctx, func(repo Repository) error {
		asset, err := repo.GetAsset(ctx, accountId, id)
		if err != nil {
			return err
		}
		linkedId := asset.LinkedContributionId
		if linkedId != nil {
			asset.LinkedContributionId = nil
			if _, err := repo.UpdateAsset(ctx, accountId, asset); err != nil {
				return err
			}
		}
		if err := repo.DeleteAsset(ctx, accountId, id); err != nil {
			return err
		}
		if linkedId != nil {
			return repo.DeleteContribution(ctx, accountId, *linkedId)
		}
		return nil
	})
}

// EstimateYield applies the current market rate to paid off assets of the
// yield bearing categories.
func (s *ServiceImpl) EstimateYield(ctx context.Context) (YieldEstimate, error) {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return YieldEstimate{}, fmt.Errorf("failed to get current account: %w", err)
	}
	paidOff := ledger.AssetPaidOff
	assets, err := s.reader.ListAssets(ctx, accountId, ledger.AssetFilter{Status: &paidOff})
	if err != nil {
		return YieldEstimate{}, err
	}
	rate, err := s.rates.CurrentRate(ctx)
	if err != nil {
		return YieldEstimate{}, err
	}

	estimate := YieldEstimate{Rate: rate, Assets: []Yield{}, Total: decimal.Zero}
	factor := rate.MonthlyFactor()
	for _, asset := range assets {
		if !slices.Contains(s.yieldCategories, asset.Category) {
			continue
		}
		monthly := asset.EstimatedValue.Mul(factor).Round(2)
		estimate.Assets = append(estimate.Assets, Yield{Asset: asset, Monthly: monthly})
		estimate.Total = estimate.Total.Add(monthly)
	}
	return estimate, nil
}

func (s *ServiceImpl) openContribution(ctx context.Context, repo Repository, accountId int, asset ledger.Asset, monthly *decimal.Decimal) (int, error) {
	contribution, err := repo.CreateContribution(ctx, accountId, ledger.RecurringContribution{
		Name:                asset.Name,
		TargetAmount:        asset.EstimatedValue,
		CurrentAmount:       decimal.Zero,
		StartDate:           s.clock.Now(),
		MonthlyContribution: monthly,
	})
	if err != nil {
		return 0, err
	}
	return contribution.Id, nil
}

// needsContribution reports whether the asset is being saved for.
func needsContribution(asset ledger.Asset) bool {
	return asset.Status == ledger.AssetInProgress && asset.EstimatedValue.IsPositive()
}

func validate(input Input) error {
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidAsset)
	}
	if input.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidAsset)
	}
	if input.EstimatedValue.IsNegative() {
		return fmt.Errorf("%w: estimated value must not be negative", ErrInvalidAsset)
	}
	if input.Status != ledger.AssetPaidOff && input.Status != ledger.AssetInProgress {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidAsset, input.Status)
	}
	if input.MonthlyContribution != nil && input.MonthlyContribution.IsNegative() {
		return fmt.Errorf("%w: monthly contribution must not be negative", ErrInvalidAsset)
	}
	return nil
}
