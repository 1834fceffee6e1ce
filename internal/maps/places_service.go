package maps

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"googlemaps.github.io/maps"

	"eatbot/internal/types"
)

// Place represents a simplified restaurant result.
type Place struct {
	PlaceID          string
	Name             string
	Location         types.Point
	Rating           float32
	UserRatingsTotal int
	PriceLevel       int
	Address          string
	PhotoReference   string
	ServesDelivery   bool
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
	apiKey string
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, apiKey: apiKey}, nil
}

// SearchNearby searches for open restaurants matching keyword around loc,
// restricted to the given price-level band (1-4; 0 disables the bound).
// Failures never propagate: any API error yields an empty result.
func (s *PlacesService) SearchNearby(ctx context.Context, loc types.Point, keyword string, radiusMeters uint, minPrice, maxPrice int) []Place {
	r := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: loc.Lat, Lng: loc.Lng},
		Radius:   radiusMeters,
		Keyword:  keyword,
		Type:     maps.PlaceTypeRestaurant,
		OpenNow:  true,
		Language: "zh-TW",
		MinPrice: apiPriceLevel(minPrice),
		MaxPrice: apiPriceLevel(maxPrice),
	}

	resp, err := s.client.NearbySearch(ctx, r)
	if err != nil {
		log.Printf("places nearby search (%s): %v", keyword, err)
		return nil
	}

	results := make([]Place, 0, len(resp.Results))
	for _, result := range resp.Results {
		results = append(results, fromSearchResult(result))
	}
	return results
}

// PlaceDetails fetches the full record for one place. The ok return is false
// on any failure; callers keep the fields they already have from the search.
func (s *PlacesService) PlaceDetails(ctx context.Context, placeID string) (Place, bool) {
	if placeID == "" {
		return Place{}, false
	}

	// No field mask: the details endpoint returns every basic field, matching
	// the behaviour the rest of the pipeline expects.
	r := &maps.PlaceDetailsRequest{
		PlaceID:  placeID,
		Language: "zh-TW",
	}

	resp, err := s.client.PlaceDetails(ctx, r)
	if err != nil {
		log.Printf("place details %s: %v", placeID, err)
		return Place{}, false
	}

	p := Place{
		PlaceID:          placeID,
		Name:             resp.Name,
		Location:         types.Point{Lat: resp.Geometry.Location.Lat, Lng: resp.Geometry.Location.Lng},
		Rating:           resp.Rating,
		UserRatingsTotal: resp.UserRatingsTotal,
		PriceLevel:       resp.PriceLevel,
		Address:          firstNonEmpty(resp.Vicinity, resp.FormattedAddress),
		ServesDelivery:   resp.Delivery,
	}
	if len(resp.Photos) > 0 {
		p.PhotoReference = resp.Photos[0].PhotoReference
	}
	return p, true
}

// PhotoURL builds the public photo URL for a Places photo reference.
// Returns a placeholder when the place has no photo.
func (s *PlacesService) PhotoURL(photoReference string) string {
	if photoReference == "" {
		return "https://via.placeholder.com/400x200?text=No+Image"
	}
	return "https://maps.googleapis.com/maps/api/place/photo?maxwidth=400&photoreference=" +
		url.QueryEscape(photoReference) + "&key=" + url.QueryEscape(s.apiKey)
}

func fromSearchResult(result maps.PlacesSearchResult) Place {
	p := Place{
		PlaceID:          result.PlaceID,
		Name:             result.Name,
		Location:         types.Point{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng},
		Rating:           result.Rating,
		UserRatingsTotal: result.UserRatingsTotal,
		PriceLevel:       result.PriceLevel,
		Address:          firstNonEmpty(result.Vicinity, result.FormattedAddress),
	}
	if len(result.Photos) > 0 {
		p.PhotoReference = result.Photos[0].PhotoReference
	}
	return p
}

func apiPriceLevel(n int) maps.PriceLevel {
	switch n {
	case 1:
		return maps.PriceLevelInexpensive
	case 2:
		return maps.PriceLevelModerate
	case 3:
		return maps.PriceLevelExpensive
	case 4:
		return maps.PriceLevelVeryExpensive
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
