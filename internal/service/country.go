package service

import (
	"context"
	"fmt"

	"github.com/alexivanou/countrydata-api/internal/apperr"
	"github.com/alexivanou/countrydata-api/internal/model"
	"go.uber.org/zap"
)

// RefreshCountries fetches the upstream data set and upserts it into the
// store. The reported total is read back from the store, so it never
// overstates what was actually persisted.
func (s *Service) RefreshCountries(ctx context.Context) (*model.RefreshResponse, error) {
	countries, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upstream data: %w", err)
	}

	written, err := s.repo.UpsertCountries(ctx, countries)
	if err != nil {
		s.logger.Error("Refresh aborted mid-batch",
			zap.Int("written", written),
			zap.Int("fetched", len(countries)),
			zap.Error(err),
		)
		return nil, storeErr(err)
	}

	total, err := s.repo.CountCountries(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	s.logger.Info("Countries refreshed",
		zap.Int("fetched", len(countries)),
		zap.Int("written", written),
		zap.Int("total", total),
	)

	// Regenerate the cached summary image best-effort; a render failure
	// never fails the refresh itself.
	if err := s.regenerateImage(ctx); err != nil {
		s.logger.Warn("Could not regenerate summary image", zap.Error(err))
	}

	return &model.RefreshResponse{
		Message:        "Countries refreshed successfully",
		TotalCountries: total,
	}, nil
}

// ListCountries normalizes the request parameters and queries the store.
// Filters are case-insensitive exact matches combined with AND; an unknown
// sort value falls back to the default ordering instead of failing.
func (s *Service) ListCountries(ctx context.Context, region, currency, sort string) ([]model.CountryResponse, error) {
	filter := model.Filter{
		Region:   region,
		Currency: currency,
		Sort:     model.ParseSortKey(sort),
	}

	countries, err := s.repo.ListCountries(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}

	responses := make([]model.CountryResponse, 0, len(countries))
	for _, c := range countries {
		responses = append(responses, model.NewCountryResponse(c))
	}
	return responses, nil
}

// GetCountry looks up a single record by exact name match
func (s *Service) GetCountry(ctx context.Context, name string) (*model.CountryResponse, error) {
	country, err := s.repo.GetCountryByName(ctx, name)
	if err != nil {
		return nil, storeErr(err)
	}
	if country == nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrNotFound, name)
	}

	resp := model.NewCountryResponse(*country)
	return &resp, nil
}

// DeleteCountry removes a record permanently. Deleting an absent name
// reports false, not an error.
func (s *Service) DeleteCountry(ctx context.Context, name string) (bool, error) {
	deleted, err := s.repo.DeleteCountryByName(ctx, name)
	if err != nil {
		return false, storeErr(err)
	}
	return deleted, nil
}

// Status reports the store state at request time
func (s *Service) Status(ctx context.Context) (*model.StatusResponse, error) {
	total, err := s.repo.CountCountries(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	lastRefreshed, err := s.repo.LastRefreshedAt(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	return &model.StatusResponse{
		TotalCountries:  total,
		LastRefreshedAt: lastRefreshed,
	}, nil
}

// SummaryImage returns the cached summary image, rendering one
// synchronously from the current store contents when no cache exists.
// An unreadable cache file is treated as a miss.
func (s *Service) SummaryImage(ctx context.Context) ([]byte, error) {
	data, ok, err := s.renderer.CachedImage()
	if err != nil {
		s.logger.Warn("Could not read cached image, rendering fresh", zap.Error(err))
	} else if ok {
		return data, nil
	}

	countries, err := s.repo.ListCountries(ctx, model.Filter{Sort: model.SortNameAsc})
	if err != nil {
		return nil, storeErr(err)
	}

	data, err = s.renderer.Render(countries)
	if err != nil {
		return nil, err
	}

	if err := s.renderer.WriteCache(data); err != nil {
		s.logger.Warn("Could not cache summary image", zap.Error(err))
	}
	return data, nil
}

func (s *Service) regenerateImage(ctx context.Context) error {
	countries, err := s.repo.ListCountries(ctx, model.Filter{Sort: model.SortNameAsc})
	if err != nil {
		return storeErr(err)
	}

	data, err := s.renderer.Render(countries)
	if err != nil {
		return err
	}
	return s.renderer.WriteCache(data)
}

// storeErr surfaces any repository failure as StoreUnavailable
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
}
