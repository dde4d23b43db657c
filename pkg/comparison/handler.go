package comparison

import (
	"net/http"

	"github.com/klokku/finpulse/internal/rest"
	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type CategoryTotalDTO struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type AggregateDTO struct {
	Month               int                         `json:"month"`
	Year                int                         `json:"year"`
	FixedIncome         decimal.Decimal             `json:"fixedIncome"`
	ExtraIncome         decimal.Decimal             `json:"extraIncome"`
	FixedExpense        decimal.Decimal             `json:"fixedExpense"`
	VariableExpense     decimal.Decimal             `json:"variableExpense"`
	ContributionExpense decimal.Decimal             `json:"contributionExpense"`
	TotalIncome         decimal.Decimal             `json:"totalIncome"`
	TotalExpense        decimal.Decimal             `json:"totalExpense"`
	Balance             decimal.Decimal             `json:"balance"`
	ByCategory          map[string]CategoryTotalDTO `json:"byCategory"`
}

type ChangeDTO struct {
	Category      string          `json:"category"`
	Month1Total   decimal.Decimal `json:"month1Total"`
	Month2Total   decimal.Decimal `json:"month2Total"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
}

type ComparisonDTO struct {
	Month1          AggregateDTO `json:"month1"`
	Month2          AggregateDTO `json:"month2"`
	Changes         []ChangeDTO  `json:"changes"`
	BiggestIncrease *ChangeDTO   `json:"biggestIncrease"`
	BiggestSaving   *ChangeDTO   `json:"biggestSaving"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// CompareMonths godoc
// @Summary Compare two months
// @Description Diff per-category spending between two months
// @Tags Comparison
// @Produce json
// @Param month1 query int true "First month (1-12)"
// @Param year1 query int true "First year"
// @Param month2 query int true "Second month (1-12)"
// @Param year2 query int true "Second year"
// @Success 200 {object} ComparisonDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month"
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Failure 503 {object} rest.ErrorResponse "Data unavailable"
// @Router /api/comparison [get]
// @Security XAccountId
func (handler *Handler) CompareMonths(w http.ResponseWriter, r *http.Request) {
	log.Debug("Comparing months")
	monthA, err := rest.MonthParam(r, "month1", "year1")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return
	}
	monthB, err := rest.MonthParam(r, "month2", "year2")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return
	}

	comparison, err := handler.service.Compare(r.Context(), monthA, monthB)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(comparison))
}

func toDTO(c Comparison) ComparisonDTO {
	changes := make([]ChangeDTO, 0, len(c.Changes))
	for _, change := range c.Changes {
		changes = append(changes, changeToDTO(change))
	}
	result := ComparisonDTO{
		Month1:  aggregateToDTO(c.MonthA),
		Month2:  aggregateToDTO(c.MonthB),
		Changes: changes,
	}
	if c.BiggestIncrease != nil {
		dto := changeToDTO(*c.BiggestIncrease)
		result.BiggestIncrease = &dto
	}
	if c.BiggestSaving != nil {
		dto := changeToDTO(*c.BiggestSaving)
		result.BiggestSaving = &dto
	}
	return result
}

func changeToDTO(c Change) ChangeDTO {
	return ChangeDTO{
		Category:      c.Category,
		Month1Total:   c.TotalA,
		Month2Total:   c.TotalB,
		Change:        c.Change,
		ChangePercent: c.ChangePercent,
	}
}

func aggregateToDTO(a aggregate.MonthlyAggregate) AggregateDTO {
	byCategory := make(map[string]CategoryTotalDTO, len(a.ByCategory))
	for key, total := range a.ByCategory {
		byCategory[key] = CategoryTotalDTO{Total: total.Total, Count: total.Count}
	}
	return AggregateDTO{
		Month:               a.Month.Month,
		Year:                a.Month.Year,
		FixedIncome:         a.FixedIncome,
		ExtraIncome:         a.ExtraIncome,
		FixedExpense:        a.FixedExpense,
		VariableExpense:     a.VariableExpense,
		ContributionExpense: a.ContributionExpense,
		TotalIncome:         a.TotalIncome,
		TotalExpense:        a.TotalExpense,
		Balance:             a.Balance,
		ByCategory:          byCategory,
	}
}
