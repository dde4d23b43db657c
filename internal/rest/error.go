package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

func init() {
	// amounts travel as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// WriteError encodes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, status int, message string, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encodeErr := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   message,
		Details: details,
	})
	if encodeErr != nil {
		log.Errorf("failed to encode error response: %v", encodeErr)
	}
}

// WriteServiceError maps errors shared by every engine endpoint to a status code.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrNoAccount):
		WriteError(w, http.StatusForbidden, "Account not found", err.Error())
	case errors.Is(err, ledger.ErrDataUnavailable):
		WriteError(w, http.StatusServiceUnavailable, "Data unavailable", err.Error())
	default:
		log.Errorf("request failed: %v", err)
		WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
