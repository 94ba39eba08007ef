package repository

import (
	"context"
	"time"

	"github.com/alexivanou/countrydata-api/internal/config"
	"github.com/alexivanou/countrydata-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// CountryRepository defines operations over the countries table
type CountryRepository interface {
	// UpsertCountries inserts or replaces records by name and returns the
	// number of rows actually written. A mid-batch failure returns the
	// count written so far together with the error.
	UpsertCountries(ctx context.Context, countries []model.Country) (int, error)
	ListCountries(ctx context.Context, filter model.Filter) ([]model.Country, error)
	// GetCountryByName is a case-sensitive exact-match lookup; returns nil
	// when no record exists.
	GetCountryByName(ctx context.Context, name string) (*model.Country, error)
	// DeleteCountryByName removes one record; deleting an absent name
	// reports false without error.
	DeleteCountryByName(ctx context.Context, name string) (bool, error)
	CountCountries(ctx context.Context) (int, error)
	// LastRefreshedAt returns the newest refresh timestamp in the table,
	// or nil when the store has never been refreshed.
	LastRefreshedAt(ctx context.Context) (*time.Time, error)
}

// NewCountryRepository creates a repository implementation based on DB type
func NewCountryRepository(db *sqlx.DB, dbType config.DBType) CountryRepository {
	if dbType == config.DBTypePostgreSQL {
		return &pgCountryRepository{db: db}
	}

	// Default to SQLite
	return &sqliteCountryRepository{db: db}
}

// IsDatabaseEmpty reports whether the countries table has no rows (used by
// main after migrations have run)
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM countries"
	if err := db.GetContext(ctx, &count, query); err != nil {
		return false, err
	}
	return count == 0, nil
}
