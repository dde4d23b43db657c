package category_budget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klokku/finpulse/internal/rest"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/period"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	CategoryId int             `json:"categoryId"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// SetBudget godoc
// @Summary Set a category budget
// @Description Creates the budget or replaces the amount for the same category and month
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body BudgetDTO true "Budget"
// @Success 200 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid budget"
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Router /api/budget [put]
// @Security XAccountId
func (handler *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	log.Debug("Setting category budget")
	var budgetDTO BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&budgetDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if budgetDTO.Month < 1 || budgetDTO.Month > 12 || budgetDTO.Year < rest.MinYear {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", "month must be within 1-12 and year not lower than 2000")
		return
	}

	budget, err := handler.service.Set(r.Context(), ledger.CategoryBudget{
		CategoryId: budgetDTO.CategoryId,
		Month:      period.NewMonthKey(budgetDTO.Month, budgetDTO.Year),
		Amount:     budgetDTO.Amount,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidBudget) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid budget", err.Error())
			return
		}
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, budgetToDTO(budget))
}

// ListBudgets godoc
// @Summary List category budgets of a month
// @Tags Budget
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {array} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month"
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Router /api/budget [get]
// @Security XAccountId
func (handler *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing category budgets")
	month, err := rest.MonthParam(r, "month", "year")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return
	}
	budgets, err := handler.service.List(r.Context(), month)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	budgetsDTO := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		budgetsDTO = append(budgetsDTO, budgetToDTO(b))
	}
	rest.WriteJSON(w, http.StatusOK, budgetsDTO)
}

func budgetToDTO(b ledger.CategoryBudget) BudgetDTO {
	return BudgetDTO{
		CategoryId: b.CategoryId,
		Month:      b.Month.Month,
		Year:       b.Month.Year,
		Amount:     b.Amount,
	}
}
