package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/klokku/finpulse/pkg/period"
)

// ErrDataUnavailable marks a failed read from the store.
var ErrDataUnavailable = errors.New("ledger data unavailable")

// AdHocFilter selects entries either by a date range or by a month tag.
type AdHocFilter struct {
	From  *time.Time
	To    *time.Time
	Month *period.MonthKey
}

func DateRange(from, to time.Time) AdHocFilter {
	return AdHocFilter{From: &from, To: &to}
}

func MonthYear(month period.MonthKey) AdHocFilter {
	return AdHocFilter{Month: &month}
}

type AssetFilter struct {
	Category *string
	Status   *AssetStatus
}

// Reader is the read side of the store.
type Reader interface {
	ListFixedCommitments(ctx context.Context, accountId int, kind Kind) ([]FixedCommitment, error)
	ListAdHocEntries(ctx context.Context, accountId int, kind Kind, filter AdHocFilter) ([]AdHocEntry, error)
	// ListRecurringContributions returns contributions with their skip exceptions loaded.
	ListRecurringContributions(ctx context.Context, accountId int, onlyWithSchedule bool) ([]RecurringContribution, error)
	ListCategoryBudgets(ctx context.Context, accountId int, month period.MonthKey) ([]CategoryBudget, error)
	ListAssets(ctx context.Context, accountId int, filter AssetFilter) ([]Asset, error)
}
