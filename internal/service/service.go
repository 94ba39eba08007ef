package service

import (
	"context"

	"github.com/alexivanou/countrydata-api/internal/model"
	"github.com/alexivanou/countrydata-api/internal/repository"
	"go.uber.org/zap"
)

// Fetcher retrieves normalized records from the upstream providers
type Fetcher interface {
	FetchAll(ctx context.Context) ([]model.Country, error)
}

// Renderer produces the summary image and manages its disk cache
type Renderer interface {
	Render(countries []model.Country) ([]byte, error)
	WriteCache(data []byte) error
	CachedImage() ([]byte, bool, error)
}

// Service provides business logic for the API
type Service struct {
	repo     repository.CountryRepository
	fetcher  Fetcher
	renderer Renderer
	logger   *zap.Logger
}

// NewService creates a new service instance
func NewService(
	repo repository.CountryRepository,
	fetcher Fetcher,
	renderer Renderer,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:     repo,
		fetcher:  fetcher,
		renderer: renderer,
		logger:   logger,
	}
}
