// Package render produces the PNG summary of the current record set and
// manages its on-disk cache. The image is a derived artifact: regenerable
// at any time, stale until regenerated.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/alexivanou/countrydata-api/internal/apperr"
	"github.com/alexivanou/countrydata-api/internal/model"
)

const (
	imageFileName = "summary.png"
	imageWidth    = 800
	imageHeight   = 600
	topCount      = 5
)

// Renderer draws summary images and caches the latest one to disk
type Renderer struct {
	cacheDir string
}

// NewRenderer creates a renderer writing to the given cache directory
func NewRenderer(cacheDir string) *Renderer {
	return &Renderer{cacheDir: cacheDir}
}

// CachePath returns the location of the cached summary image
func (r *Renderer) CachePath() string {
	return filepath.Join(r.cacheDir, imageFileName)
}

// Render produces a PNG summary of the given records: total count, top
// countries by estimated GDP and the data's newest refresh timestamp.
// The output is deterministic for a given record set. An empty set fails
// with NothingToRender and writes nothing.
func (r *Renderer) Render(countries []model.Country) ([]byte, error) {
	if len(countries) == 0 {
		return nil, apperr.ErrNothingToRender
	}

	img := image.NewRGBA(image.Rect(0, 0, imageWidth, imageHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	black := color.RGBA{A: 255}
	blue := color.RGBA{B: 139, A: 255}
	gray := color.RGBA{R: 128, G: 128, B: 128, A: 255}

	drawText(img, 50, 50, black, "Country Data Summary")
	drawText(img, 50, 110, black, fmt.Sprintf("Total Countries: %d", len(countries)))
	drawText(img, 50, 160, black, fmt.Sprintf("Top %d by Estimated GDP:", topCount))

	y := 200
	for i, c := range topByGDP(countries, topCount) {
		line := fmt.Sprintf("%d. %s: $%.2f", i+1, c.Name, *c.EstimatedGDP)
		drawText(img, 70, y, blue, line)
		y += 40
	}

	stamp := newestRefresh(countries).UTC().Format("2006-01-02 15:04:05")
	drawText(img, 50, 520, gray, "Last Updated: "+stamp+" UTC")

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode summary image: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCache overwrites the cached image with the given render
func (r *Renderer) WriteCache(data []byte) error {
	if err := os.MkdirAll(r.cacheDir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	if err := os.WriteFile(r.CachePath(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	return nil
}

// CachedImage returns the cached render if one exists
func (r *Renderer) CachedImage() ([]byte, bool, error) {
	data, err := os.ReadFile(r.CachePath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func drawText(img *image.RGBA, x, y int, col color.Color, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func topByGDP(countries []model.Country, n int) []model.Country {
	withGDP := make([]model.Country, 0, len(countries))
	for _, c := range countries {
		if c.EstimatedGDP != nil {
			withGDP = append(withGDP, c)
		}
	}
	sort.Slice(withGDP, func(i, j int) bool {
		return *withGDP[i].EstimatedGDP > *withGDP[j].EstimatedGDP
	})
	if len(withGDP) > n {
		withGDP = withGDP[:n]
	}
	return withGDP
}

func newestRefresh(countries []model.Country) time.Time {
	var newest time.Time
	for _, c := range countries {
		if c.LastRefreshedAt.After(newest) {
			newest = c.LastRefreshedAt
		}
	}
	return newest
}
