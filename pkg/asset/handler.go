package asset

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/finpulse/internal/rest"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/market_rate"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type AssetDTO struct {
	Id                   int              `json:"id"`
	Name                 string           `json:"name"`
	Category             string           `json:"category"`
	EstimatedValue       decimal.Decimal  `json:"estimatedValue"`
	Status               string           `json:"status"`
	LinkedContributionId *int             `json:"linkedContributionId"`
	MonthlyContribution  *decimal.Decimal `json:"monthlyContribution,omitempty"`
}

type AssetYieldDTO struct {
	Id      int             `json:"id"`
	Name    string          `json:"name"`
	Value   decimal.Decimal `json:"estimatedValue"`
	Monthly decimal.Decimal `json:"monthlyYield"`
}

type YieldDTO struct {
	Series        string          `json:"series"`
	AnnualPercent decimal.Decimal `json:"annualPercent"`
	RateDate      time.Time       `json:"rateDate"`
	Assets        []AssetYieldDTO `json:"assets"`
	Total         decimal.Decimal `json:"total"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListAssets godoc
// @Summary List assets
// @Tags Asset
// @Produce json
// @Success 200 {array} AssetDTO
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Router /api/asset [get]
// @Security XAccountId
func (handler *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing assets")
	assets, err := handler.service.List(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	assetsDTO := make([]AssetDTO, 0, len(assets))
	for _, asset := range assets {
		assetsDTO = append(assetsDTO, assetToDTO(asset))
	}
	rest.WriteJSON(w, http.StatusOK, assetsDTO)
}

// CreateAsset godoc
// @Summary Create an asset
// @Description An asset in progress gets a linked wallet targeting its value
// @Tags Asset
// @Accept json
// @Produce json
// @Param asset body AssetDTO true "Asset"
// @Success 201 {object} AssetDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid asset"
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Router /api/asset [post]
// @Security XAccountId
func (handler *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating asset")
	var assetDTO AssetDTO
	if err := json.NewDecoder(r.Body).Decode(&assetDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	asset, err := handler.service.Create(r.Context(), dtoToInput(assetDTO))
	if err != nil {
		handler.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, assetToDTO(asset))
}

// UpdateAsset godoc
// @Summary Update an asset
// @Description Changing status or value keeps the linked wallet in sync
// @Tags Asset
// @Accept json
// @Produce json
// @Param assetId path int true "Asset ID"
// @Param asset body AssetDTO true "Asset"
// @Success 200 {object} AssetDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid asset"
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Failure 404 {object} rest.ErrorResponse "Asset not found"
// @Router /api/asset/{assetId} [put]
// @Security XAccountId
func (handler *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating asset")
	assetId, err := strconv.Atoi(mux.Vars(r)["assetId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid asset id", err.Error())
		return
	}
	var assetDTO AssetDTO
	if err := json.NewDecoder(r.Body).Decode(&assetDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if assetDTO.Id != 0 && assetDTO.Id != assetId {
		rest.WriteError(w, http.StatusBadRequest, "Invalid asset id", "asset id in body does not match the path")
		return
	}
	asset, err := handler.service.Update(r.Context(), assetId, dtoToInput(assetDTO))
	if err != nil {
		handler.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, assetToDTO(asset))
}

// DeleteAsset godoc
// @Summary Delete an asset
// @Description Deletes the asset and its linked wallet
// @Tags Asset
// @Param assetId path int true "Asset ID"
// @Success 204 "No Content"
// @Failure 400 {object} rest.ErrorResponse "Invalid asset id"
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Failure 404 {object} rest.ErrorResponse "Asset not found"
// @Router /api/asset/{assetId} [delete]
// @Security XAccountId
func (handler *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting asset")
	assetId, err := strconv.Atoi(mux.Vars(r)["assetId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid asset id", err.Error())
		return
	}
	if err := handler.service.Delete(r.Context(), assetId); err != nil {
		handler.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetYield godoc
// @Summary Estimated monthly yield
// @Description Applies the current market rate to paid off assets
// @Tags Asset
// @Produce json
// @Success 200 {object} YieldDTO
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Failure 503 {object} rest.ErrorResponse "Rate unavailable"
// @Router /api/asset/yield [get]
// @Security XAccountId
func (handler *Handler) GetYield(w http.ResponseWriter, r *http.Request) {
	log.Debug("Estimating asset yield")
	estimate, err := handler.service.EstimateYield(r.Context())
	if err != nil {
		handler.writeError(w, err)
		return
	}
	assets := make([]AssetYieldDTO, 0, len(estimate.Assets))
	for _, y := range estimate.Assets {
		assets = append(assets, AssetYieldDTO{Id: y.Asset.Id, Name: y.Asset.Name, Value: y.Asset.EstimatedValue, Monthly: y.Monthly})
	}
	rest.WriteJSON(w, http.StatusOK, YieldDTO{
		Series:        estimate.Rate.Series,
		AnnualPercent: estimate.Rate.AnnualPercent,
		RateDate:      estimate.Rate.Date,
		Assets:        assets,
		Total:         estimate.Total,
	})
}

func (handler *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidAsset):
		rest.WriteError(w, http.StatusBadRequest, "Invalid asset", err.Error())
	case errors.Is(err, ErrAssetNotFound):
		rest.WriteError(w, http.StatusNotFound, "Asset not found", err.Error())
	case errors.Is(err, market_rate.ErrRateUnavailable):
		rest.WriteError(w, http.StatusServiceUnavailable, "Market rate unavailable", err.Error())
	default:
		rest.WriteServiceError(w, err)
	}
}

func assetToDTO(asset ledger.Asset) AssetDTO {
	return AssetDTO{
		Id:                   asset.Id,
		Name:                 asset.Name,
		Category:             asset.Category,
		EstimatedValue:       asset.EstimatedValue,
		Status:               string(asset.Status),
		LinkedContributionId: asset.LinkedContributionId,
	}
}

func dtoToInput(dto AssetDTO) Input {
	return Input{
		Name:                dto.Name,
		Category:            dto.Category,
		EstimatedValue:      dto.EstimatedValue,
		Status:              ledger.AssetStatus(dto.Status),
		MonthlyContribution: dto.MonthlyContribution,
	}
}
