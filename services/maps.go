package services

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// TransitTimer abstracts the external travel-time lookup so handlers can be
// tested with a substitute.
type TransitTimer interface {
	// TransitTime returns the base transit duration between two location
	// strings, in minutes.
	TransitTime(ctx context.Context, origin, destination string) (float64, error)
}

// MapsService looks up transit durations through the Google Maps Distance
// Matrix API. Calls are synchronous with no retry; failures surface to the
// caller with the underlying message attached.
type MapsService struct {
	client *maps.Client
}

func NewMapsService(apiKey string) (*MapsService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating maps client: %w", err)
	}
	return &MapsService{client: client}, nil
}

func (s *MapsService) TransitTime(ctx context.Context, origin, destination string) (float64, error) {
	resp, err := s.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeTransit,
	})
	if err != nil {
		return 0, fmt.Errorf("maps distance matrix: %w", err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("maps returned no result for %s -> %s", origin, destination)
	}
	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, fmt.Errorf("maps element status %s for %s -> %s", element.Status, origin, destination)
	}
	return element.Duration.Minutes(), nil
}
