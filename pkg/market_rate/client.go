package market_rate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// DefaultURL queries the latest value of a Central Bank SGS series. %s is the series code.
const DefaultURL = "https://api.bcb.gov.br/dados/serie/bcdata.sgs.%s/dados/ultimos/1?formato=json"

var ErrRateUnavailable = errors.New("market rate unavailable")

// Rate is an annual percentage published for a series on a given day.
type Rate struct {
	Series        string          `json:"series"`
	AnnualPercent decimal.Decimal `json:"annualPercent"`
	Date          time.Time       `json:"date"`
}

// MonthlyFactor converts the annual percentage to a simple monthly fraction.
func (r Rate) MonthlyFactor() decimal.Decimal {
	return r.AnnualPercent.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
}

type Client interface {
	LatestRate(ctx context.Context, series string) (Rate, error)
}

type ClientImpl struct {
	httpClient  *http.Client
	urlTemplate string
}

func NewClient(httpClient *http.Client, urlTemplate string) *ClientImpl {
	if urlTemplate == "" {
		urlTemplate = DefaultURL
	}
	return &ClientImpl{httpClient: httpClient, urlTemplate: urlTemplate}
}

type seriesValue struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

func (c *ClientImpl) LatestRate(ctx context.Context, series string) (Rate, error) {
	url := c.urlTemplate
	if strings.Contains(url, "%s") {
		url = fmt.Sprintf(url, series)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return Rate{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return Rate{}, fmt.Errorf("%w: %w", ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Errorf("Market rate API returned status %d for series %s", resp.StatusCode, series)
		return Rate{}, fmt.Errorf("%w: status %d", ErrRateUnavailable, resp.StatusCode)
	}

	var values []seriesValue
	if err := json.NewDecoder(resp.Body).Decode(&values); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return Rate{}, fmt.Errorf("%w: %w", ErrRateUnavailable, err)
	}
	if len(values) == 0 {
		return Rate{}, fmt.Errorf("%w: series %s has no values", ErrRateUnavailable, series)
	}

	latest := values[len(values)-1]
	percent, err := decimal.NewFromString(latest.Value)
	if err != nil {
		return Rate{}, fmt.Errorf("%w: invalid value %q: %w", ErrRateUnavailable, latest.Value, err)
	}
	date, err := time.Parse("02/01/2006", latest.Date)
	if err != nil {
		return Rate{}, fmt.Errorf("%w: invalid date %q: %w", ErrRateUnavailable, latest.Date, err)
	}
	return Rate{Series: series, AnnualPercent: percent, Date: date}, nil
}
