package summary

import (
	"net/http"

	"github.com/klokku/finpulse/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type IncomeDTO struct {
	Fixed decimal.Decimal `json:"fixed"`
	Extra decimal.Decimal `json:"extra"`
	Total decimal.Decimal `json:"total"`
}

type TotalDTO struct {
	Total decimal.Decimal `json:"total"`
}

type ExpensesDTO struct {
	Fixed      TotalDTO        `json:"fixed"`
	Variable   TotalDTO        `json:"variable"`
	PiggyBanks TotalDTO        `json:"piggyBanks"`
	Total      decimal.Decimal `json:"total"`
}

type HealthDTO struct {
	Percentage decimal.Decimal `json:"percentage"`
	Status     string          `json:"status"`
}

type SummaryDTO struct {
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Income   IncomeDTO       `json:"income"`
	Expenses ExpensesDTO     `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
	Health   HealthDTO       `json:"health"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetSummary godoc
// @Summary Monthly summary
// @Description Income, expenses, balance and health of one month
// @Tags Summary
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} SummaryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month"
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Failure 503 {object} rest.ErrorResponse "Data unavailable"
// @Router /api/summary [get]
// @Security XAccountId
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting monthly summary")
	month, err := rest.MonthParam(r, "month", "year")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return
	}
	summary, err := handler.service.Summary(r.Context(), month)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(summary))
}

func toDTO(s Summary) SummaryDTO {
	agg := s.Aggregate
	return SummaryDTO{
		Month: agg.Month.Month,
		Year:  agg.Month.Year,
		Income: IncomeDTO{
			Fixed: agg.FixedIncome,
			Extra: agg.ExtraIncome,
			Total: agg.TotalIncome,
		},
		Expenses: ExpensesDTO{
			Fixed:      TotalDTO{agg.FixedExpense},
			Variable:   TotalDTO{agg.VariableExpense},
			PiggyBanks: TotalDTO{agg.ContributionExpense},
			Total:      agg.TotalExpense,
		},
		Balance: agg.Balance,
		Health: HealthDTO{
			Percentage: s.Health.Percentage,
			Status:     string(s.Health.Status),
		},
	}
}
