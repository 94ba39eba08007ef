package render

import (
	"bytes"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/alexivanou/countrydata-api/internal/apperr"
	"github.com/alexivanou/countrydata-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gdp(v float64) *float64 { return &v }

func sampleCountries() []model.Country {
	refreshedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.Country{
		{Name: "Japan", Region: "Asia", Population: 125836021, EstimatedGDP: gdp(1.2e12), LastRefreshedAt: refreshedAt},
		{Name: "Nigeria", Region: "Africa", Population: 206139589, EstimatedGDP: gdp(1.9e11), LastRefreshedAt: refreshedAt},
		{Name: "Wakanda", Region: "Africa", LastRefreshedAt: refreshedAt},
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(t.TempDir())

	data, err := r.Render(sampleCountries())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, imageWidth, bounds.Dx())
	assert.Equal(t, imageHeight, bounds.Dy())
}

func TestRenderer_RenderDeterministic(t *testing.T) {
	r := NewRenderer(t.TempDir())

	first, err := r.Render(sampleCountries())
	require.NoError(t, err)
	second, err := r.Render(sampleCountries())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderer_RenderEmptyStore(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	data, err := r.Render(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNothingToRender)
	assert.Nil(t, data)

	// Nothing may be written to the cache on failure
	_, statErr := os.Stat(r.CachePath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderer_CacheRoundTrip(t *testing.T) {
	r := NewRenderer(t.TempDir())

	// No cache yet
	_, ok, err := r.CachedImage()
	require.NoError(t, err)
	assert.False(t, ok)

	data, err := r.Render(sampleCountries())
	require.NoError(t, err)
	require.NoError(t, r.WriteCache(data))

	cached, ok, err := r.CachedImage()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, data, cached)

	// A new render overwrites the previous artifact
	smaller, err := r.Render(sampleCountries()[:1])
	require.NoError(t, err)
	require.NoError(t, r.WriteCache(smaller))

	cached, ok, err = r.CachedImage()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, smaller, cached)
}

func TestTopByGDP(t *testing.T) {
	countries := sampleCountries()

	top := topByGDP(countries, 5)
	require.Len(t, top, 2) // Wakanda has no GDP
	assert.Equal(t, "Japan", top[0].Name)
	assert.Equal(t, "Nigeria", top[1].Name)

	top = topByGDP(countries, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "Japan", top[0].Name)
}
