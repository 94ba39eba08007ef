package model

import "time"

// CountryResponse is the JSON shape of a single country record.
// Unknown fields serialize as null, never omitted, so the schema stays
// stable for clients.
type CountryResponse struct {
	Name            string    `json:"name"`
	Capital         *string   `json:"capital"`
	Region          string    `json:"region"`
	Population      int64     `json:"population"`
	CurrencyCode    *string   `json:"currency_code"`
	ExchangeRate    *float64  `json:"exchange_rate"`
	EstimatedGDP    *float64  `json:"estimated_gdp"`
	FlagURL         *string   `json:"flag_url"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
}

// NewCountryResponse converts a stored row to its response shape.
func NewCountryResponse(c Country) CountryResponse {
	return CountryResponse{
		Name:            c.Name,
		Capital:         c.Capital,
		Region:          c.Region,
		Population:      c.Population,
		CurrencyCode:    c.CurrencyCode,
		ExchangeRate:    c.ExchangeRate,
		EstimatedGDP:    c.EstimatedGDP,
		FlagURL:         c.FlagURL,
		LastRefreshedAt: c.LastRefreshedAt,
	}
}

// RefreshResponse summarizes a completed refresh.
type RefreshResponse struct {
	Message        string `json:"message"`
	TotalCountries int    `json:"total_countries"`
}

// StatusResponse reflects the store state at request time.
// LastRefreshedAt is null when a refresh has never run.
type StatusResponse struct {
	TotalCountries  int        `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}

// DeleteResponse reports whether a record was removed.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// ErrorResponse is the envelope every error response carries.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
