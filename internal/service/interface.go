package service

import (
	"context"

	"github.com/alexivanou/countrydata-api/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	RefreshCountries(ctx context.Context) (*model.RefreshResponse, error)
	ListCountries(ctx context.Context, region, currency, sort string) ([]model.CountryResponse, error)
	GetCountry(ctx context.Context, name string) (*model.CountryResponse, error)
	DeleteCountry(ctx context.Context, name string) (bool, error)
	Status(ctx context.Context) (*model.StatusResponse, error)
	SummaryImage(ctx context.Context) ([]byte, error)
}
