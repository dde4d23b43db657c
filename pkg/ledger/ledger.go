package ledger

import (
	"strconv"
	"time"

	"github.com/klokku/finpulse/pkg/period"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// UncategorizedKey buckets rows without a category.
const UncategorizedKey = "uncategorized"

// FixedCommitment is a recurring fixed income or expense.
type FixedCommitment struct {
	Id         int
	AccountId  int
	Kind       Kind
	Name       string
	Amount     decimal.Decimal
	StartDate  time.Time
	EndDate    *time.Time // nil means permanent
	CategoryId *int
	DueDay     *int
}

func (c FixedCommitment) IsActiveIn(month period.MonthKey) bool {
	return period.IsActiveIn(c.StartDate, c.EndDate, month)
}

// AdHocEntry is a dated variable expense or a month-tagged extra income.
type AdHocEntry struct {
	Id          int
	AccountId   int
	Kind        Kind
	Description string
	Amount      decimal.Decimal
	// Date is set for expenses.
	Date time.Time
	// Period is set for incomes, which carry no specific day.
	Period     period.MonthKey
	CategoryId *int
}

// InMonth reports whether the entry counts toward month.
func (e AdHocEntry) InMonth(month period.MonthKey) bool {
	if e.Kind == KindIncome {
		return e.Period.Equal(month)
	}
	return month.Contains(e.Date)
}

// SkipSet holds the months in which a contribution is suppressed.
type SkipSet map[period.MonthKey]struct{}

func NewSkipSet(months ...period.MonthKey) SkipSet {
	s := make(SkipSet, len(months))
	for _, m := range months {
		s[m] = struct{}{}
	}
	return s
}

func (s SkipSet) Contains(month period.MonthKey) bool {
	_, ok := s[month]
	return ok
}

type SkipException struct {
	ContributionId int
	Month          period.MonthKey
}

// RecurringContribution is a savings wallet. EndDate and PeriodsTotal are
// mutually exclusive. A nil MonthlyContribution means balance tracking only.
type RecurringContribution struct {
	Id                  int
	AccountId           int
	Name                string
	TargetAmount        decimal.Decimal
	CurrentAmount       decimal.Decimal
	StartDate           time.Time
	EndDate             *time.Time
	PeriodsTotal        *int
	MonthlyContribution *decimal.Decimal
	Skips               SkipSet
}

// ScheduleEnd resolves the last day covered by the contribution, from either
// the explicit end date or the period count.
func (c RecurringContribution) ScheduleEnd() *time.Time {
	if c.EndDate != nil {
		return c.EndDate
	}
	if c.PeriodsTotal != nil {
		end := c.StartDate.AddDate(0, *c.PeriodsTotal, 0)
		return &end
	}
	return nil
}

// IsDueIn reports whether the committed monthly amount feeds month.
// A PeriodsTotal of N means exactly N payments, in the start month and the
// N-1 months after it. ScheduleEnd resolves to start plus N months, one
// month past the last payment, and only bounds MonthsRemaining.
func (c RecurringContribution) IsDueIn(month period.MonthKey) bool {
	if c.MonthlyContribution == nil {
		return false
	}
	if !period.IsActiveIn(c.StartDate, c.EndDate, month) {
		return false
	}
	if c.EndDate == nil && c.PeriodsTotal != nil {
		last := period.MonthKeyFromTime(c.StartDate).AddMonths(*c.PeriodsTotal - 1)
		if month.After(last) {
			return false
		}
	}
	return !c.Skips.Contains(month)
}

type CategoryBudget struct {
	CategoryId int
	AccountId  int
	Month      period.MonthKey
	Amount     decimal.Decimal
}

type AssetStatus string

const (
	AssetPaidOff    AssetStatus = "QUITADO"
	AssetInProgress AssetStatus = "EM_ANDAMENTO"
)

type Asset struct {
	Id                   int
	AccountId            int
	Name                 string
	Category             string
	EstimatedValue       decimal.Decimal
	Status               AssetStatus
	LinkedContributionId *int
}

// CategoryKey returns the byCategory bucket for a category reference.
func CategoryKey(categoryId *int) string {
	if categoryId == nil {
		return UncategorizedKey
	}
	return strconv.Itoa(*categoryId)
}
