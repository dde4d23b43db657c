package health

import "github.com/shopspring/decimal"

type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusWarning   Status = "warning"
	StatusCritical  Status = "critical"
)

var hundred = decimal.NewFromInt(100)

var thresholds = []struct {
	max    decimal.Decimal
	status Status
}{
	{decimal.NewFromInt(50), StatusExcellent},
	{decimal.NewFromInt(80), StatusGood},
	{decimal.NewFromInt(100), StatusWarning},
}

type Result struct {
	Status Status
	// Percentage is the share of income spent, rounded to two decimals.
	Percentage decimal.Decimal
}

// Evaluate classifies a month by the ratio of expense to income.
func Evaluate(income, expense decimal.Decimal) Result {
	if !income.IsPositive() {
		if expense.IsPositive() {
			return Result{Status: StatusCritical, Percentage: hundred}
		}
		return Result{Status: StatusExcellent, Percentage: decimal.Zero}
	}

	// bands are chosen on the exact ratio, only the reported value is rounded
	exact := expense.Div(income).Mul(hundred)
	percentage := exact.Round(2)
	for _, t := range thresholds {
		if exact.LessThanOrEqual(t.max) {
			return Result{Status: t.status, Percentage: percentage}
		}
	}
	return Result{Status: StatusCritical, Percentage: percentage}
}
