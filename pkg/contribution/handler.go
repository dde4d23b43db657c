package contribution

import (
	"net/http"
	"slices"
	"time"

	"github.com/klokku/finpulse/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type WalletDTO struct {
	Id                  int              `json:"id"`
	Name                string           `json:"name"`
	TargetAmount        decimal.Decimal  `json:"targetAmount"`
	CurrentAmount       decimal.Decimal  `json:"currentAmount"`
	StartDate           time.Time        `json:"startDate"`
	EndDate             *time.Time       `json:"endDate,omitempty"`
	PeriodsTotal        *int             `json:"periodsTotal,omitempty"`
	MonthlyContribution *decimal.Decimal `json:"monthlyContribution"`
	SkippedMonths       []string         `json:"skippedMonths"`
	MonthsRemaining     int              `json:"monthsRemaining"`
	SuggestedAmount     decimal.Decimal  `json:"suggestedAmount"`
	Progress            decimal.Decimal  `json:"progress"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListWallets godoc
// @Summary List contribution wallets
// @Description Get every wallet of the current account with the suggested monthly amount
// @Tags Contribution
// @Produce json
// @Success 200 {array} WalletDTO
// @Failure 403 {object} rest.ErrorResponse "Account not found"
// @Failure 503 {object} rest.ErrorResponse "Data unavailable"
// @Router /api/contribution [get]
// @Security XAccountId
func (handler *Handler) ListWallets(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing contribution wallets")
	wallets, err := handler.service.List(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}

	walletsDTO := make([]WalletDTO, 0, len(wallets))
	for _, wallet := range wallets {
		walletsDTO = append(walletsDTO, walletToDTO(wallet))
	}
	rest.WriteJSON(w, http.StatusOK, walletsDTO)
}

func walletToDTO(wallet Wallet) WalletDTO {
	skipped := make([]string, 0, len(wallet.Skips))
	for month := range wallet.Skips {
		skipped = append(skipped, month.String())
	}
	slices.Sort(skipped)
	return WalletDTO{
		Id:                  wallet.Id,
		Name:                wallet.Name,
		TargetAmount:        wallet.TargetAmount,
		CurrentAmount:       wallet.CurrentAmount,
		StartDate:           wallet.StartDate,
		EndDate:             wallet.EndDate,
		PeriodsTotal:        wallet.PeriodsTotal,
		MonthlyContribution: wallet.MonthlyContribution,
		SkippedMonths:       skipped,
		MonthsRemaining:     wallet.MonthsRemaining,
		SuggestedAmount:     wallet.SuggestedAmount,
		Progress:            wallet.Progress,
	}
}
