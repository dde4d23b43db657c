package comparison

import (
	"slices"

	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/shopspring/decimal"
)

type Change struct {
	Category      string
	TotalA        decimal.Decimal
	TotalB        decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
}

type Comparison struct {
	MonthA          aggregate.MonthlyAggregate
	MonthB          aggregate.MonthlyAggregate
	Changes         []Change
	BiggestIncrease *Change
	BiggestSaving   *Change
}

var hundred = decimal.NewFromInt(100)

// Compare diffs the per-category totals of two aggregates. Changes are ordered
// by absolute change, largest first, with ties kept in category order.
func Compare(a, b aggregate.MonthlyAggregate) Comparison {
	keys := make([]string, 0, len(a.ByCategory)+len(b.ByCategory))
	for key := range a.ByCategory {
		keys = append(keys, key)
	}
	for key := range b.ByCategory {
		if _, ok := a.ByCategory[key]; !ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	changes := make([]Change, 0, len(keys))
	for _, key := range keys {
		totalA := a.ByCategory[key].Total
		totalB := b.ByCategory[key].Total
		change := totalB.Sub(totalA)
		changes = append(changes, Change{
			Category:      key,
			TotalA:        totalA,
			TotalB:        totalB,
			Change:        change,
			ChangePercent: changePercent(change, totalA, totalB),
		})
	}
	slices.SortStableFunc(changes, func(x, y Change) int {
		return y.Change.Abs().Cmp(x.Change.Abs())
	})

	result := Comparison{MonthA: a, MonthB: b, Changes: changes}
	for i := range changes {
		if result.BiggestIncrease == nil && changes[i].Change.IsPositive() {
			result.BiggestIncrease = &changes[i]
		}
		if result.BiggestSaving == nil && changes[i].Change.IsNegative() {
			result.BiggestSaving = &changes[i]
		}
	}
	return result
}

func changePercent(change, totalA, totalB decimal.Decimal) decimal.Decimal {
	if totalA.IsPositive() {
		return change.Div(totalA).Mul(hundred).Round(2)
	}
	if totalB.IsPositive() {
		return hundred
	}
	return decimal.Zero
}
