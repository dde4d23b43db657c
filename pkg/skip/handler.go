package skip

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/klokku/finpulse/internal/rest"
	"github.com/klokku/finpulse/pkg/period"
	log "github.com/sirupsen/logrus"
)

type SkipDTO struct {
	Month int  `json:"month"`
	Year  int  `json:"year"`
	Skip  bool `json:"skip"`
}

type Handler struct {
	registry Registry
}

func NewHandler(registry Registry) *Handler {
	return &Handler{registry}
}

// ToggleSkip godoc
// @Summary Skip or resume a contribution for one month
// @Tags Contribution
// @Accept json
// @Param contributionId path int true "Contribution ID"
// @Param skip body SkipDTO true "Skip toggle"
// @Success 204 "No Content"
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Failure 404 {object} rest.ErrorResponse "Contribution not found"
// @Router /api/contribution/{contributionId}/skip [put]
// @Security XAccountId
func (handler *Handler) ToggleSkip(w http.ResponseWriter, r *http.Request) {
	log.Debug("Toggling contribution skip")
	contributionId, err := strconv.Atoi(mux.Vars(r)["contributionId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid contribution id", err.Error())
		return
	}
	var skipDTO SkipDTO
	if err := json.NewDecoder(r.Body).Decode(&skipDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if skipDTO.Month < 1 || skipDTO.Month > 12 || skipDTO.Year < rest.MinYear {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", "month must be within 1-12 and year not lower than 2000")
		return
	}

	err = handler.registry.Toggle(r.Context(), contributionId, period.NewMonthKey(skipDTO.Month, skipDTO.Year), skipDTO.Skip)
	if err != nil {
		if errors.Is(err, ErrContributionNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Contribution not found", err.Error())
			return
		}
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
