package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alexivanou/countrydata-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgCountryRepository struct {
	db *sqlx.DB
}

func (r *pgCountryRepository) UpsertCountries(ctx context.Context, countries []model.Country) (int, error) {
	// Chunking to stay well below the 65535 parameter limit
	chunkSize := 500
	written := 0
	for i := 0; i < len(countries); i += chunkSize {
		end := i + chunkSize
		if end > len(countries) {
			end = len(countries)
		}
		batch := countries[i:end]

		_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO countries (name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at)
		VALUES (:name, :capital, :region, :population, :currency_code, :exchange_rate, :estimated_gdp, :flag_url, :last_refreshed_at)
		ON CONFLICT (name) DO UPDATE SET
			capital = EXCLUDED.capital,
			region = EXCLUDED.region,
			population = EXCLUDED.population,
			currency_code = EXCLUDED.currency_code,
			exchange_rate = EXCLUDED.exchange_rate,
			estimated_gdp = EXCLUDED.estimated_gdp,
			flag_url = EXCLUDED.flag_url,
			last_refreshed_at = EXCLUDED.last_refreshed_at`,
			batch)
		if err != nil {
			return written, err
		}
		written += len(batch)
	}
	return written, nil
}

func (r *pgCountryRepository) ListCountries(ctx context.Context, filter model.Filter) ([]model.Country, error) {
	q := "SELECT * FROM countries"
	var args []interface{}

	where := ""
	if filter.Region != "" {
		args = append(args, filter.Region)
		where = " WHERE LOWER(region) = LOWER($1)"
	}
	if filter.Currency != "" {
		args = append(args, filter.Currency)
		if where == "" {
			where = " WHERE LOWER(currency_code) = LOWER($1)"
		} else {
			where += " AND LOWER(currency_code) = LOWER($2)"
		}
	}
	q += where + " ORDER BY " + pgOrderClause(filter.Sort)

	countries := []model.Country{}
	if err := r.db.SelectContext(ctx, &countries, q, args...); err != nil {
		return nil, err
	}
	return countries, nil
}

// pgOrderClause maps a sort key onto a Postgres ORDER BY expression.
// Records with unknown GDP sort last in both directions.
func pgOrderClause(sort model.SortKey) string {
	switch sort {
	case model.SortNameDesc:
		return "name DESC"
	case model.SortGDPDesc:
		return "estimated_gdp DESC NULLS LAST, name ASC"
	case model.SortGDPAsc:
		return "estimated_gdp ASC NULLS LAST, name ASC"
	case model.SortPopulationDesc:
		return "population DESC, name ASC"
	case model.SortPopulationAsc:
		return "population ASC, name ASC"
	default:
		return "name ASC"
	}
}

func (r *pgCountryRepository) GetCountryByName(ctx context.Context, name string) (*model.Country, error) {
	var country model.Country
	if err := r.db.GetContext(ctx, &country, "SELECT * FROM countries WHERE name = $1", name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &country, nil
}

func (r *pgCountryRepository) DeleteCountryByName(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM countries WHERE name = $1", name)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *pgCountryRepository) CountCountries(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM countries"); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *pgCountryRepository) LastRefreshedAt(ctx context.Context) (*time.Time, error) {
	var ts time.Time
	q := "SELECT last_refreshed_at FROM countries ORDER BY last_refreshed_at DESC LIMIT 1"
	if err := r.db.GetContext(ctx, &ts, q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ts, nil
}
