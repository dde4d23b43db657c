package contribution

import (
	"time"

	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/period"
	"github.com/shopspring/decimal"
)

// MonthsRemaining counts the whole months left until the contribution's
// schedule ends. The end is either endDate or startDate shifted by
// periodsTotal months; without either the result is 0. Past ends floor to 0.
func MonthsRemaining(today time.Time, endDate *time.Time, periodsTotal *int, startDate time.Time) int {
	switch {
	case endDate != nil:
		return period.WholeMonthsBetween(today, *endDate)
	case periodsTotal != nil:
		return period.WholeMonthsBetween(today, startDate.AddDate(0, *periodsTotal, 0))
	default:
		return 0
	}
}

// SuggestedPeriodicAmount splits what is still missing from the target across
// the remaining periods. With no periods left the whole gap is owed at once.
func SuggestedPeriodicAmount(target, current decimal.Decimal, periodsRemaining int) decimal.Decimal {
	missing := decimal.Max(target.Sub(current), decimal.Zero)
	if periodsRemaining <= 0 {
		return missing
	}
	return missing.Div(decimal.NewFromInt(int64(periodsRemaining))).Round(2)
}

// Wallet is a contribution together with its schedule figures as of a day.
type Wallet struct {
	ledger.RecurringContribution
	MonthsRemaining int
	SuggestedAmount decimal.Decimal
	// Progress is current/target as a percentage, capped at 100.
	Progress decimal.Decimal
}

func NewWallet(c ledger.RecurringContribution, today time.Time) Wallet {
	remaining := MonthsRemaining(today, c.EndDate, c.PeriodsTotal, c.StartDate)
	return Wallet{
		RecurringContribution: c,
		MonthsRemaining:       remaining,
		SuggestedAmount:       SuggestedPeriodicAmount(c.TargetAmount, c.CurrentAmount, remaining),
		Progress:              progress(c.TargetAmount, c.CurrentAmount),
	}
}

func progress(target, current decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	p := current.Div(target).Mul(decimal.NewFromInt(100)).Round(2)
	return decimal.Min(decimal.Max(p, decimal.Zero), decimal.NewFromInt(100))
}
