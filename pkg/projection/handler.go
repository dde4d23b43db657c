package projection

import (
	"fmt"
	"net/http"

	"github.com/klokku/finpulse/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// MaxMonthsAhead bounds the projection horizon accepted over HTTP.
const MaxMonthsAhead = 120

type RowDTO struct {
	Month               int             `json:"month"`
	Year                int             `json:"year"`
	Income              decimal.Decimal `json:"income"`
	FixedExpense        decimal.Decimal `json:"fixedExpense"`
	ContributionExpense decimal.Decimal `json:"contributionExpense"`
	AvgVariable         decimal.Decimal `json:"avgVariable"`
	TotalExpense        decimal.Decimal `json:"totalExpense"`
	Balance             decimal.Decimal `json:"balance"`
	CumulativeBalance   decimal.Decimal `json:"cumulativeBalance"`
}

type AssumptionsDTO struct {
	FixedIncomeTotal  decimal.Decimal `json:"fixedIncomeTotal"`
	AvgVariableMonths int             `json:"avgVariableMonths"`
	AvgVariableTotal  decimal.Decimal `json:"avgVariableTotal"`
}

type ProjectionDTO struct {
	Months      []RowDTO       `json:"months"`
	Assumptions AssumptionsDTO `json:"assumptions"`
}

type Handler struct {
	service       Service
	defaultMonths int
}

func NewHandler(service Service, defaultMonths int) *Handler {
	return &Handler{service: service, defaultMonths: defaultMonths}
}

// GetProjection godoc
// @Summary Project the coming months
// @Description Run fixed commitments forward holding variable spending at its recent average
// @Tags Projection
// @Produce json
// @Param months query int false "Months ahead"
// @Success 200 {object} ProjectionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid months"
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Failure 503 {object} rest.ErrorResponse "Data unavailable"
// @Router /api/projection [get]
// @Security XAccountId
func (handler *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing projection")
	months, err := rest.IntParam(r, "months", handler.defaultMonths)
	if err == nil && months > MaxMonthsAhead {
		err = fmt.Errorf("months must not exceed %d", MaxMonthsAhead)
	}
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid months", err.Error())
		return
	}

	projection, err := handler.service.Project(r.Context(), months)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(projection))
}

func toDTO(p Projection) ProjectionDTO {
	rows := make([]RowDTO, 0, len(p.Months))
	for _, row := range p.Months {
		rows = append(rows, RowDTO{
			Month:               row.Month.Month,
			Year:                row.Month.Year,
			Income:              row.Income,
			FixedExpense:        row.FixedExpense,
			ContributionExpense: row.ContributionExpense,
			AvgVariable:         row.AvgVariable,
			TotalExpense:        row.TotalExpense,
			Balance:             row.Balance,
			CumulativeBalance:   row.CumulativeBalance,
		})
	}
	return ProjectionDTO{
		Months: rows,
		Assumptions: AssumptionsDTO{
			FixedIncomeTotal:  p.Assumptions.FixedIncomeTotal,
			AvgVariableMonths: p.Assumptions.AvgVariableMonths,
			AvgVariableTotal:  p.Assumptions.AvgVariableTotal,
		},
	}
}
