package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/klokku/finpulse/pkg/period"
)

// MinYear is the earliest year accepted in month parameters.
const MinYear = 2000

// MonthParam reads a month/year pair from the query string.
func MonthParam(r *http.Request, monthName, yearName string) (period.MonthKey, error) {
	query := r.URL.Query()
	month, err := strconv.Atoi(query.Get(monthName))
	if err != nil || month < 1 || month > 12 {
		return period.MonthKey{}, fmt.Errorf("%s must be a number between 1 and 12", monthName)
	}
	year, err := strconv.Atoi(query.Get(yearName))
	if err != nil || year < MinYear {
		return period.MonthKey{}, fmt.Errorf("%s must be a number not lower than %d", yearName, MinYear)
	}
	return period.NewMonthKey(month, year), nil
}

// IntParam reads an optional positive integer, falling back to def when absent.
func IntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%s must be a positive number", name)
	}
	return value, nil
}
