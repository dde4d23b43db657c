package score

import (
	"net/http"

	"github.com/klokku/finpulse/internal/rest"
	log "github.com/sirupsen/logrus"
)

type PillarDTO struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Max    int    `json:"max"`
	Detail string `json:"detail"`
}

type ScoreDTO struct {
	Score    int         `json:"score"`
	MaxScore int         `json:"maxScore"`
	Level    string      `json:"level"`
	Pillars  []PillarDTO `json:"pillars"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetScore godoc
// @Summary Financial health score
// @Description Score the month from 0 to 1000 across five pillars
// @Tags Score
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} ScoreDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month"
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Failure 503 {object} rest.ErrorResponse "Data unavailable"
// @Router /api/score [get]
// @Security XAccountId
func (handler *Handler) GetScore(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing score")
	month, err := rest.MonthParam(r, "month", "year")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return
	}
	result, err := handler.service.Score(r.Context(), month)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(result))
}

func toDTO(result Result) ScoreDTO {
	pillars := make([]PillarDTO, 0, len(result.Pillars))
	for _, p := range result.Pillars {
		pillars = append(pillars, PillarDTO{Name: p.Name, Score: p.Score, Max: p.Max, Detail: p.Detail})
	}
	return ScoreDTO{
		Score:    result.Score,
		MaxScore: MaxScore,
		Level:    string(result.Level),
		Pillars:  pillars,
	}
}
