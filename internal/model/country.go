package model

import "time"

// Country represents one cached country row.
// Name is the primary key, stored exactly as received from upstream.
type Country struct {
	Name            string    `db:"name"`
	Capital         *string   `db:"capital"`
	Region          string    `db:"region"`
	Population      int64     `db:"population"`
	CurrencyCode    *string   `db:"currency_code"`
	ExchangeRate    *float64  `db:"exchange_rate"`
	EstimatedGDP    *float64  `db:"estimated_gdp"`
	FlagURL         *string   `db:"flag_url"`
	LastRefreshedAt time.Time `db:"last_refreshed_at"`
}

// SortKey is the fixed vocabulary of list orderings.
type SortKey string

const (
	SortNameAsc        SortKey = "name_asc"
	SortNameDesc       SortKey = "name_desc"
	SortGDPDesc        SortKey = "gdp_desc"
	SortGDPAsc         SortKey = "gdp_asc"
	SortPopulationDesc SortKey = "population_desc"
	SortPopulationAsc  SortKey = "population_asc"
)

// ParseSortKey maps a request-level sort parameter onto the vocabulary.
// Unknown values fall back to the default ordering instead of failing.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNameAsc, SortNameDesc, SortGDPDesc, SortGDPAsc, SortPopulationDesc, SortPopulationAsc:
		return SortKey(s)
	default:
		return SortNameAsc
	}
}

// Filter describes a list query pushed down to the repository.
// Region and Currency match case-insensitively; empty values mean no filter.
type Filter struct {
	Region   string
	Currency string
	Sort     SortKey
}
