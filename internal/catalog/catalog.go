// Package catalog defines the metadata boundary: a Provider supplies series
// information and the complete episode list the matching pipeline works
// against. Implementations wrap specific metadata services behind this
// interface so the pipeline never touches wire formats.
package catalog

import (
	"context"
	"fmt"
)

// SeriesInfo identifies one series in the catalog.
type SeriesInfo struct {
	ID     int64
	Name   string
	Status string
}

// EpisodeRecord is one episode as the catalog knows it. Number is the
// episode number within Season; Season 0 holds specials.
type EpisodeRecord struct {
	ID     int64
	Number int
	Season int
	Title  string
}

// Provider supplies series metadata and episode lists.
type Provider interface {
	// Authenticate establishes a session. Safe to call more than once.
	Authenticate(ctx context.Context) error

	// SeriesInfo returns metadata for one series.
	SeriesInfo(ctx context.Context, seriesID int64) (SeriesInfo, error)

	// AllEpisodes returns every episode of the series across all seasons,
	// specials included, in catalog order.
	AllEpisodes(ctx context.Context, seriesID int64) ([]EpisodeRecord, error)
}

// FallbackTitle is the title used when the catalog has none for an episode.
func FallbackTitle(number int) string {
	return fmt.Sprintf("Episode %d", number)
}
