package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexivanou/countrydata-api/internal/apperr"
	"github.com/alexivanou/countrydata-api/internal/model"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockService is a mock implementation of ServiceInterface
type MockService struct {
	mock.Mock
}

func (m *MockService) RefreshCountries(ctx context.Context) (*model.RefreshResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshResponse), args.Error(1)
}

func (m *MockService) ListCountries(ctx context.Context, region, currency, sort string) ([]model.CountryResponse, error) {
	args := m.Called(ctx, region, currency, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CountryResponse), args.Error(1)
}

func (m *MockService) GetCountry(ctx context.Context, name string) (*model.CountryResponse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CountryResponse), args.Error(1)
}

func (m *MockService) DeleteCountry(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockService) Status(ctx context.Context) (*model.StatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StatusResponse), args.Error(1)
}

func (m *MockService) SummaryImage(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func newTestHandler(ms *MockService) *Handler {
	return NewHandler(ms, zap.NewNop())
}

func decodeErrorEnvelope(t *testing.T, rr *httptest.ResponseRecorder) model.ErrorResponse {
	var envelope model.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	return envelope
}

func TestHandler_RefreshCountries(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockService)
		expectedStatus int
		expectedKind   string
	}{
		{
			name: "successful refresh",
			mockSetup: func(ms *MockService) {
				ms.On("RefreshCountries", mock.Anything).Return(&model.RefreshResponse{
					Message:        "Countries refreshed successfully",
					TotalCountries: 250,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "upstream unavailable maps to 502",
			mockSetup: func(ms *MockService) {
				ms.On("RefreshCountries", mock.Anything).Return(nil, apperr.ErrUpstreamUnavailable)
			},
			expectedStatus: http.StatusBadGateway,
			expectedKind:   "UpstreamUnavailable",
		},
		{
			name: "malformed upstream payload maps to 502",
			mockSetup: func(ms *MockService) {
				ms.On("RefreshCountries", mock.Anything).Return(nil, apperr.ErrUpstreamMalformed)
			},
			expectedStatus: http.StatusBadGateway,
			expectedKind:   "UpstreamMalformedData",
		},
		{
			name: "store failure maps to 500",
			mockSetup: func(ms *MockService) {
				ms.On("RefreshCountries", mock.Anything).Return(nil, apperr.ErrStoreUnavailable)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedKind:   "StoreUnavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)
			handler := newTestHandler(mockService)

			req := httptest.NewRequest("POST", "/countries/refresh", nil)
			rr := httptest.NewRecorder()
			handler.RefreshCountries(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedKind != "" {
				envelope := decodeErrorEnvelope(t, rr)
				assert.Equal(t, tt.expectedKind, envelope.Error)
				assert.NotEmpty(t, envelope.Message)
			}
		})
	}
}

func TestHandler_ListCountries(t *testing.T) {
	mockService := new(MockService)
	mockService.On("ListCountries", mock.Anything, "Africa", "NGN", "gdp_desc").Return([]model.CountryResponse{
		{Name: "Nigeria", Region: "Africa"},
	}, nil)

	handler := newTestHandler(mockService)

	req := httptest.NewRequest("GET", "/countries?region=Africa&currency=NGN&sort=gdp_desc", nil)
	rr := httptest.NewRecorder()
	handler.ListCountries(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var countries []model.CountryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &countries))
	require.Len(t, countries, 1)
	assert.Equal(t, "Nigeria", countries[0].Name)
	mockService.AssertExpectations(t)
}

func TestHandler_ListCountries_NullFieldsStayInSchema(t *testing.T) {
	mockService := new(MockService)
	mockService.On("ListCountries", mock.Anything, "", "", "").Return([]model.CountryResponse{
		{Name: "Wakanda", Region: "Africa", LastRefreshedAt: time.Now().UTC()},
	}, nil)

	handler := newTestHandler(mockService)

	req := httptest.NewRequest("GET", "/countries", nil)
	rr := httptest.NewRecorder()
	handler.ListCountries(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	require.Len(t, raw, 1)

	// Unknown values serialize as null but the keys are always present
	for _, key := range []string{"currency_code", "estimated_gdp", "capital", "exchange_rate", "flag_url"} {
		val, ok := raw[0][key]
		require.True(t, ok, "key %q missing from response", key)
		assert.Equal(t, "null", string(val))
	}
}

func TestHandler_GetCountry(t *testing.T) {
	tests := []struct {
		name           string
		country        string
		mockSetup      func(*MockService)
		expectedStatus int
	}{
		{
			name:    "existing country",
			country: "Nigeria",
			mockSetup: func(ms *MockService) {
				ms.On("GetCountry", mock.Anything, "Nigeria").Return(&model.CountryResponse{Name: "Nigeria"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "unknown country",
			country: "Atlantis",
			mockSetup: func(ms *MockService) {
				ms.On("GetCountry", mock.Anything, "Atlantis").Return(nil, apperr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)
			handler := newTestHandler(mockService)

			req := httptest.NewRequest("GET", "/countries/"+tt.country, nil)
			req = mux.SetURLVars(req, map[string]string{"name": tt.country})
			rr := httptest.NewRecorder()
			handler.GetCountry(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestHandler_DeleteCountry(t *testing.T) {
	tests := []struct {
		name            string
		deleted         bool
		expectedDeleted bool
	}{
		{"existing record deleted", true, true},
		{"absent record is not an error", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockService.On("DeleteCountry", mock.Anything, "Wakanda").Return(tt.deleted, nil)
			handler := newTestHandler(mockService)

			req := httptest.NewRequest("DELETE", "/countries/Wakanda", nil)
			req = mux.SetURLVars(req, map[string]string{"name": "Wakanda"})
			rr := httptest.NewRecorder()
			handler.DeleteCountry(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)

			var resp model.DeleteResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedDeleted, resp.Deleted)
		})
	}
}

func TestHandler_GetStatus(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Status", mock.Anything).Return(&model.StatusResponse{TotalCountries: 0}, nil)
	handler := newTestHandler(mockService)

	req := httptest.NewRequest("GET", "/status", nil)
	rr := httptest.NewRecorder()
	handler.GetStatus(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Equal(t, "0", string(raw["total_countries"]))
	// Never-refreshed serializes as an explicit null
	assert.Equal(t, "null", string(raw["last_refreshed_at"]))
}

func TestHandler_GetSummaryImage(t *testing.T) {
	t.Run("returns image bytes", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("SummaryImage", mock.Anything).Return([]byte{0x89, 'P', 'N', 'G'}, nil)
		handler := newTestHandler(mockService)

		req := httptest.NewRequest("GET", "/countries/image", nil)
		rr := httptest.NewRecorder()
		handler.GetSummaryImage(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rr.Body.Bytes())
	})

	t.Run("empty store maps to 404", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("SummaryImage", mock.Anything).Return(nil, apperr.ErrNothingToRender)
		handler := newTestHandler(mockService)

		req := httptest.NewRequest("GET", "/countries/image", nil)
		rr := httptest.NewRecorder()
		handler.GetSummaryImage(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		envelope := decodeErrorEnvelope(t, rr)
		assert.Equal(t, "NothingToRender", envelope.Error)
	})
}
