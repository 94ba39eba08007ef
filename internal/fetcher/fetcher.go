// Package fetcher retrieves country and exchange-rate data from the
// external providers and normalizes it into stored records.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/alexivanou/countrydata-api/internal/apperr"
	"github.com/alexivanou/countrydata-api/internal/config"
	"github.com/alexivanou/countrydata-api/internal/model"
)

// Fetcher calls the upstream providers. A fetch is all-or-nothing: any
// transport or parse failure fails the whole attempt, no retries.
type Fetcher struct {
	client       *http.Client
	countriesURL string
	ratesURL     string
}

// New creates a fetcher from upstream configuration
func New(cfg config.UpstreamConfig) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		countriesURL: cfg.CountriesURL,
		ratesURL:     cfg.RatesURL,
	}
}

// upstreamCountry matches the restcountries v2 payload shape
type upstreamCountry struct {
	Name       string `json:"name"`
	Capital    string `json:"capital"`
	Region     string `json:"region"`
	Population int64  `json:"population"`
	Flag       string `json:"flag"`
	Currencies []struct {
		Code string `json:"code"`
	} `json:"currencies"`
}

// ratesPayload matches the open.er-api.com payload shape
type ratesPayload struct {
	Rates map[string]float64 `json:"rates"`
}

// FetchAll fetches both upstream payloads and returns normalized records.
// Records without a name are dropped; missing non-key fields are kept as
// their unknown representation rather than dropping the record.
func (f *Fetcher) FetchAll(ctx context.Context) ([]model.Country, error) {
	var raw []upstreamCountry
	if err := f.getJSON(ctx, f.countriesURL, &raw); err != nil {
		return nil, fmt.Errorf("countries api: %w", err)
	}

	var rates ratesPayload
	if err := f.getJSON(ctx, f.ratesURL, &rates); err != nil {
		return nil, fmt.Errorf("exchange rate api: %w", err)
	}

	now := time.Now().UTC()
	countries := make([]model.Country, 0, len(raw))
	for _, uc := range raw {
		if uc.Name == "" {
			continue
		}

		c := model.Country{
			Name:            uc.Name,
			Region:          uc.Region,
			Population:      uc.Population,
			LastRefreshedAt: now,
		}
		if uc.Capital != "" {
			capital := uc.Capital
			c.Capital = &capital
		}
		if uc.Flag != "" {
			flag := uc.Flag
			c.FlagURL = &flag
		}

		// First listed currency wins when several exist
		for _, cur := range uc.Currencies {
			if cur.Code != "" {
				code := cur.Code
				c.CurrencyCode = &code
				break
			}
		}

		if c.CurrencyCode != nil {
			if rate, ok := rates.Rates[*c.CurrencyCode]; ok && rate != 0 {
				r := rate
				c.ExchangeRate = &r
				if c.Population > 0 {
					gdp := estimateGDP(c.Population, rate)
					c.EstimatedGDP = &gdp
				}
			}
		}

		countries = append(countries, c)
	}

	return countries, nil
}

// estimateGDP derives the GDP proxy from population and exchange rate.
// The multiplier is intentionally random per upstream convention.
func estimateGDP(population int64, rate float64) float64 {
	multiplier := 1000 + rand.Float64()*1000
	return float64(population) * multiplier / rate
}

func (f *Fetcher) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %d", apperr.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrUpstreamMalformed, err)
	}
	return nil
}
