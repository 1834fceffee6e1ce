package maps

import (
	"context"
	"fmt"
	"log"
	"time"

	"googlemaps.github.io/maps"

	"eatbot/internal/types"
)

// DistanceService handles walking-duration lookups via the Distance Matrix API.
type DistanceService struct {
	client *maps.Client
}

// NewDistanceService creates a new DistanceService with the given API Key.
func NewDistanceService(apiKey string) (*DistanceService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DistanceService{client: client}, nil
}

// WalkingDurations returns one optional duration per destination, in input
// order. A nil entry means the duration could not be resolved for that
// destination. The returned slice always has len(destinations) entries;
// a failed API call yields all-nil entries rather than an error.
func (s *DistanceService) WalkingDurations(ctx context.Context, origin types.Point, destinations []types.Point) []*time.Duration {
	durations := make([]*time.Duration, len(destinations))
	if len(destinations) == 0 {
		return durations
	}

	dests := make([]string, len(destinations))
	for i, d := range destinations {
		dests[i] = fmt.Sprintf("%f,%f", d.Lat, d.Lng)
	}

	r := &maps.DistanceMatrixRequest{
		Origins:      []string{fmt.Sprintf("%f,%f", origin.Lat, origin.Lng)},
		Destinations: dests,
		Mode:         maps.TravelModeWalking,
		Language:     "zh-TW",
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		log.Printf("distance matrix: %v", err)
		return durations
	}
	if len(resp.Rows) == 0 {
		return durations
	}

	for i, elem := range resp.Rows[0].Elements {
		if i >= len(durations) {
			break
		}
		if elem.Status != "OK" {
			continue
		}
		d := elem.Duration
		durations[i] = &d
	}
	return durations
}
