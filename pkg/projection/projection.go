package projection

import (
	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/klokku/finpulse/pkg/period"
	"github.com/shopspring/decimal"
)

type Row struct {
	Month               period.MonthKey
	Income              decimal.Decimal
	FixedExpense        decimal.Decimal
	ContributionExpense decimal.Decimal
	AvgVariable         decimal.Decimal
	TotalExpense        decimal.Decimal
	Balance             decimal.Decimal
	CumulativeBalance   decimal.Decimal
}

type Assumptions struct {
	FixedIncomeTotal  decimal.Decimal
	AvgVariableMonths int
	AvgVariableTotal  decimal.Decimal
}

type Projection struct {
	Months      []Row
	Assumptions Assumptions
}

// Project runs the commitments forward over the monthsAhead months after
// current. Income is the fixed income total and variable spending is held at
// avgVariable; expirations and recorded skips still apply per month.
func Project(commitments aggregate.Snapshot, current period.MonthKey, monthsAhead int, avgVariable decimal.Decimal, window int) Projection {
	fixedIncome := aggregate.ComputeMonth(aggregate.Snapshot{FixedIncomes: commitments.FixedIncomes}, current).FixedIncome
	result := Projection{
		Months: make([]Row, 0, max(monthsAhead, 0)),
		Assumptions: Assumptions{
			FixedIncomeTotal:  fixedIncome,
			AvgVariableMonths: window,
			AvgVariableTotal:  avgVariable,
		},
	}

	futureSnapshot := aggregate.Snapshot{
		FixedIncomes:  commitments.FixedIncomes,
		FixedExpenses: commitments.FixedExpenses,
		Contributions: commitments.Contributions,
	}
	cumulative := decimal.Zero
	for i := 1; i <= monthsAhead; i++ {
		month := current.AddMonths(i)
		agg := aggregate.ComputeMonth(futureSnapshot, month)

		total := agg.FixedExpense.Add(agg.ContributionExpense).Add(avgVariable)
		balance := fixedIncome.Sub(total)
		cumulative = cumulative.Add(balance)
		result.Months = append(result.Months, Row{
			Month:               month,
			Income:              fixedIncome,
			FixedExpense:        agg.FixedExpense,
			ContributionExpense: agg.ContributionExpense,
			AvgVariable:         avgVariable,
			TotalExpense:        total,
			Balance:             balance,
			CumulativeBalance:   cumulative,
		})
	}
	return result
}
