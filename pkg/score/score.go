package score

import (
	"fmt"

	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/shopspring/decimal"
)

const (
	PillarMax = 200
	MaxScore  = 5 * PillarMax
)

type Level string

const (
	LevelExcellent Level = "Excellent"
	LevelGood      Level = "Good"
	LevelRegular   Level = "Regular"
	LevelPoor      Level = "Poor"
	LevelCritical  Level = "Critical"
)

const (
	PillarSavings         = "savings"
	PillarBudget          = "budget"
	PillarReserve         = "reserve"
	PillarDiversification = "diversification"
	PillarHabits          = "habits"
)

type Pillar struct {
	Name   string
	Score  int
	Max    int
	Detail string
}

type Result struct {
	Score   int
	Level   Level
	Pillars []Pillar
}

// Config holds the tunable constants of the reserve pillar.
type Config struct {
	EmergencyMonths      int
	SavingsAssetCategory string
}

// Inputs is everything one month's score is computed from.
type Inputs struct {
	Month aggregate.MonthlyAggregate
	// TrailingAverage is the variable expense average of the months before Month.
	TrailingAverage decimal.Decimal
	Budgets         []ledger.CategoryBudget
	Assets          []ledger.Asset
	Contributions   []ledger.RecurringContribution
}

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Compute scores the five pillars and sums them.
func Compute(in Inputs, cfg Config) Result {
	pillars := []Pillar{
		savingsPillar(in.Month),
		budgetPillar(in.Month, in.Budgets),
		reservePillar(in, cfg),
		diversificationPillar(in.Assets),
		habitsPillar(in.Month, in.TrailingAverage),
	}
	total := 0
	for i := range pillars {
		pillars[i].Score = clamp(pillars[i].Score, 0, PillarMax)
		pillars[i].Max = PillarMax
		total += pillars[i].Score
	}
	return Result{Score: total, Level: LevelFor(total), Pillars: pillars}
}

func LevelFor(total int) Level {
	switch {
	case total >= 801:
		return LevelExcellent
	case total >= 601:
		return LevelGood
	case total >= 401:
		return LevelRegular
	case total >= 201:
		return LevelPoor
	default:
		return LevelCritical
	}
}

func savingsPillar(month aggregate.MonthlyAggregate) Pillar {
	pillar := Pillar{Name: PillarSavings}
	if !month.TotalIncome.IsPositive() {
		pillar.Detail = "No income this month"
		return pillar
	}
	rate := month.TotalIncome.Sub(month.TotalExpense).Div(month.TotalIncome).Mul(hundred)
	switch {
	case rate.GreaterThanOrEqual(decimal.NewFromInt(20)):
		pillar.Score = 200
	case rate.GreaterThanOrEqual(decimal.NewFromInt(10)):
		pillar.Score = 150
	case rate.GreaterThanOrEqual(decimal.NewFromInt(5)):
		pillar.Score = 100
	case rate.GreaterThanOrEqual(decimal.Zero):
		pillar.Score = 50
	}
	pillar.Detail = fmt.Sprintf("Savings rate %s%%", rate.StringFixed(2))
	return pillar
}

// budgetPillar averages per-budget compliance. Overspending is penalized
// linearly and reaches zero at twice the budget.
func budgetPillar(month aggregate.MonthlyAggregate, budgets []ledger.CategoryBudget) Pillar {
	pillar := Pillar{Name: PillarBudget}
	if len(budgets) == 0 {
		pillar.Score = 100
		pillar.Detail = "No budgets defined"
		return pillar
	}

	sum := decimal.Zero
	within := 0
	for _, budget := range budgets {
		categoryId := budget.CategoryId
		spent := month.ByCategory[ledger.CategoryKey(&categoryId)].Total
		compliance := complianceOf(spent, budget.Amount)
		if compliance.Equal(decimal.NewFromInt(1)) {
			within++
		}
		sum = sum.Add(compliance)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(budgets))))
	pillar.Score = toPoints(mean.Mul(decimal.NewFromInt(PillarMax)))
	pillar.Detail = fmt.Sprintf("%d of %d budgets within limit", within, len(budgets))
	return pillar
}

func complianceOf(spent, budget decimal.Decimal) decimal.Decimal {
	if spent.LessThanOrEqual(budget) {
		return decimal.NewFromInt(1)
	}
	// a zero budget with any spending is fully overspent
	if !budget.IsPositive() {
		return decimal.Zero
	}
	return decimal.Max(decimal.Zero, two.Sub(spent.Div(budget)))
}

// reservePillar compares saved money against months of expenses. The goal
// exists once the account keeps at least one wallet not tied to an asset.
func reservePillar(in Inputs, cfg Config) Pillar {
	pillar := Pillar{Name: PillarReserve}

	linked := map[int]bool{}
	current := decimal.Zero
	for _, asset := range in.Assets {
		if asset.LinkedContributionId != nil {
			linked[*asset.LinkedContributionId] = true
		}
		if asset.Status == ledger.AssetPaidOff && asset.Category == cfg.SavingsAssetCategory {
			current = current.Add(asset.EstimatedValue)
		}
	}
	hasGoal := false
	for _, c := range in.Contributions {
		if linked[c.Id] {
			continue
		}
		hasGoal = true
		current = current.Add(c.CurrentAmount)
	}

	target := in.TrailingAverage.Add(in.Month.FixedExpense).Mul(decimal.NewFromInt(int64(cfg.EmergencyMonths)))
	if !hasGoal || !target.IsPositive() {
		pillar.Detail = "No emergency goal defined"
		return pillar
	}

	coverage := decimal.Min(current.Div(target), decimal.NewFromInt(1))
	pillar.Score = toPoints(coverage.Mul(decimal.NewFromInt(PillarMax)))
	pillar.Detail = fmt.Sprintf("Reserve covers %s%% of %d months of expenses", coverage.Mul(hundred).StringFixed(2), cfg.EmergencyMonths)
	return pillar
}

func diversificationPillar(assets []ledger.Asset) Pillar {
	categories := map[string]struct{}{}
	for _, asset := range assets {
		categories[asset.Category] = struct{}{}
	}
	count := len(categories)
	return Pillar{
		Name:   PillarDiversification,
		Score:  min(count, 5) * 40,
		Detail: fmt.Sprintf("%d asset categories", count),
	}
}

func habitsPillar(month aggregate.MonthlyAggregate, trailingAverage decimal.Decimal) Pillar {
	fixedScore, fixedDetail := fixedRatioScore(month.FixedExpense, month.TotalIncome)
	variableScore, variableDetail := variableDisciplineScore(month.VariableExpense, trailingAverage)
	return Pillar{
		Name:   PillarHabits,
		Score:  fixedScore + variableScore,
		Detail: fixedDetail + ", " + variableDetail,
	}
}

func fixedRatioScore(fixedExpense, income decimal.Decimal) (int, string) {
	if !income.IsPositive() {
		return 0, "no income to compare fixed expenses with"
	}
	ratio := fixedExpense.Div(income)
	detail := fmt.Sprintf("fixed expenses take %s%% of income", ratio.Mul(hundred).StringFixed(2))
	if ratio.LessThan(decimal.NewFromFloat(0.5)) {
		return 100, detail
	}
	return toPoints(decimal.Max(decimal.Zero, decimal.NewFromInt(1).Sub(ratio)).Mul(hundred)), detail
}

func variableDisciplineScore(current, average decimal.Decimal) (int, string) {
	if current.LessThanOrEqual(average) {
		return 100, "variable spending within the recent average"
	}
	if !average.IsPositive() {
		return 50, "no recent variable spending to compare with"
	}
	ratio := current.Div(average)
	detail := fmt.Sprintf("variable spending at %s%% of the recent average", ratio.Mul(hundred).StringFixed(2))
	return toPoints(decimal.Max(decimal.Zero, two.Sub(ratio)).Mul(hundred)), detail
}

func toPoints(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
