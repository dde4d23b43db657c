package aggregate

import (
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/period"
	"github.com/shopspring/decimal"
)

// DefaultTrailingMonths is the window used by every trailing average consumer.
const DefaultTrailingMonths = 3

type CategoryTotal struct {
	Total decimal.Decimal
	Count int
}

type MonthlyAggregate struct {
	Month               period.MonthKey
	FixedIncome         decimal.Decimal
	ExtraIncome         decimal.Decimal
	FixedExpense        decimal.Decimal
	VariableExpense     decimal.Decimal
	ContributionExpense decimal.Decimal
	TotalIncome         decimal.Decimal
	TotalExpense        decimal.Decimal
	Balance             decimal.Decimal
	// ByCategory groups fixed and variable expenses by ledger.CategoryKey.
	ByCategory map[string]CategoryTotal
}

// Snapshot is the raw ledger data an aggregation runs over. It may hold rows
// outside the aggregated month; ComputeMonth filters them.
type Snapshot struct {
	FixedIncomes     []ledger.FixedCommitment
	FixedExpenses    []ledger.FixedCommitment
	ExtraIncomes     []ledger.AdHocEntry
	VariableExpenses []ledger.AdHocEntry
	Contributions    []ledger.RecurringContribution
}

// ComputeMonth folds a snapshot into the totals of one month. It has no side
// effects and returns identical results for identical input.
func ComputeMonth(s Snapshot, month period.MonthKey) MonthlyAggregate {
	agg := MonthlyAggregate{
		Month:      month,
		ByCategory: map[string]CategoryTotal{},
	}

	// fixed incomes have no activation window
	for _, income := range s.FixedIncomes {
		agg.FixedIncome = agg.FixedIncome.Add(income.Amount)
	}

	for _, income := range s.ExtraIncomes {
		if income.Kind == ledger.KindIncome && income.InMonth(month) {
			agg.ExtraIncome = agg.ExtraIncome.Add(income.Amount)
		}
	}

	for _, expense := range s.FixedExpenses {
		if !expense.IsActiveIn(month) {
			continue
		}
		agg.FixedExpense = agg.FixedExpense.Add(expense.Amount)
		agg.addToCategory(expense.CategoryId, expense.Amount)
	}

	for _, expense := range s.VariableExpenses {
		if expense.Kind != ledger.KindExpense || !expense.InMonth(month) {
			continue
		}
		agg.VariableExpense = agg.VariableExpense.Add(expense.Amount)
		agg.addToCategory(expense.CategoryId, expense.Amount)
	}

	for _, c := range s.Contributions {
		if c.IsDueIn(month) {
			agg.ContributionExpense = agg.ContributionExpense.Add(*c.MonthlyContribution)
		}
	}

	agg.TotalIncome = agg.FixedIncome.Add(agg.ExtraIncome)
	agg.TotalExpense = agg.FixedExpense.Add(agg.VariableExpense).Add(agg.ContributionExpense)
	agg.Balance = agg.TotalIncome.Sub(agg.TotalExpense)
	return agg
}

func (a *MonthlyAggregate) addToCategory(categoryId *int, amount decimal.Decimal) {
	key := ledger.CategoryKey(categoryId)
	bucket := a.ByCategory[key]
	bucket.Total = bucket.Total.Add(amount)
	bucket.Count++
	a.ByCategory[key] = bucket
}

// TrailingWindow returns the half-open range [anchor-window, anchor) as
// inclusive instants: the months strictly before anchor.
func TrailingWindow(anchor period.MonthKey, window int) (period.MonthKey, period.MonthKey) {
	return anchor.AddMonths(-window), anchor.Prev()
}

// TrailingVariableAverage sums variable expenses dated in the window months
// before anchor and divides by the window size, not by the number of months
// that have entries, so sparse history pulls the average toward zero.
func TrailingVariableAverage(expenses []ledger.AdHocEntry, anchor period.MonthKey, window int) decimal.Decimal {
	if window <= 0 {
		return decimal.Zero
	}
	from, to := TrailingWindow(anchor, window)
	start, end := from.Start(), to.End()

	sum := decimal.Zero
	for _, e := range expenses {
		if e.Kind != ledger.KindExpense {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		sum = sum.Add(e.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(window)))
}
