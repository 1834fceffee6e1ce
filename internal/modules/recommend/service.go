// README: Two-stage restaurant selection: search, purpose policy, enrichment.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"eatbot/internal/ai"
	"eatbot/internal/maps"
	"eatbot/internal/modules/profile"
	"eatbot/internal/types"
)

const (
	maxResults  = 5
	workerPool  = 12
	nearLimit   = 3
	farLimit    = 2
	nearCutoff  = 10 * time.Minute
	farCutoff   = 15 * time.Minute
	callTimeout = 10 * time.Second
)

// PlacesAPI is the nearby-search and detail port.
type PlacesAPI interface {
	SearchNearby(ctx context.Context, loc types.Point, keyword string, radiusMeters uint, minPrice, maxPrice int) []maps.Place
	PlaceDetails(ctx context.Context, placeID string) (maps.Place, bool)
}

// Distances resolves walking durations to a set of destinations.
type Distances interface {
	WalkingDurations(ctx context.Context, origin types.Point, destinations []types.Point) []*time.Duration
}

// Describer produces a short promotional description for one candidate.
type Describer interface {
	DescribeRestaurant(ctx context.Context, info ai.RestaurantInfo, preference string) string
}

// Selector runs the search, selection and enrichment pipeline.
type Selector struct {
	places       PlacesAPI
	distances    Distances
	describer    Describer
	radiusMeters uint
}

func NewSelector(places PlacesAPI, distances Distances, describer Describer, radiusMeters uint) *Selector {
	return &Selector{places: places, distances: distances, describer: describer, radiusMeters: radiusMeters}
}

// bandFor maps the dining purpose to a price-level band.
func bandFor(purpose profile.Purpose) (int, int) {
	if purpose == profile.PurposeBusiness {
		return 3, 4
	}
	return 1, 2
}

// Select returns at most 5 enriched candidates in rank order, or an
// empty slice when nothing nearby matches. Per-candidate failures are
// absorbed; every returned candidate has a non-empty description.
func (s *Selector) Select(ctx context.Context, loc types.Point, purpose profile.Purpose, keyword string) []Candidate {
	minPrice, maxPrice := bandFor(purpose)

	searchCtx, cancel := context.WithTimeout(ctx, callTimeout)
	places := s.places.SearchNearby(searchCtx, loc, keyword, s.radiusMeters, minPrice, maxPrice)
	cancel()
	if len(places) == 0 {
		return nil
	}

	var selected []Candidate
	if purpose == profile.PurposeBusiness {
		selected = pickBusiness(places)
	} else {
		selected = s.pickWorker(ctx, loc, places)
	}

	for i := range selected {
		s.enrich(ctx, &selected[i], keyword)
	}
	return selected
}

// pickWorker keeps the 12 highest-rated hits, resolves walking times,
// then takes up to 3 within 10 minutes and up to 2 within 10 to 15
// minutes. Candidates without a resolvable duration are dropped.
func (s *Selector) pickWorker(ctx context.Context, origin types.Point, places []maps.Place) []Candidate {
	sortByRating(places)
	if len(places) > workerPool {
		places = places[:workerPool]
	}

	destinations := make([]types.Point, len(places))
	for i, p := range places {
		destinations[i] = p.Location
	}
	distCtx, cancel := context.WithTimeout(ctx, callTimeout)
	durations := s.distances.WalkingDurations(distCtx, origin, destinations)
	cancel()

	var near, far []Candidate
	for i, p := range places {
		d := durations[i]
		if d == nil {
			continue
		}
		c := Candidate{Place: p, WalkingDuration: d}
		switch {
		case *d <= nearCutoff:
			near = append(near, c)
		case *d <= farCutoff:
			far = append(far, c)
		}
	}
	if len(near) > nearLimit {
		near = near[:nearLimit]
	}
	if len(far) > farLimit {
		far = far[:farLimit]
	}
	return append(near, far...)
}

// pickBusiness keeps the 5 highest-rated hits, breaking rating ties by
// review count descending. No distance filter for hosted meals.
func pickBusiness(places []maps.Place) []Candidate {
	sort.SliceStable(places, func(i, j int) bool {
		if places[i].Rating != places[j].Rating {
			return places[i].Rating > places[j].Rating
		}
		return places[i].UserRatingsTotal > places[j].UserRatingsTotal
	})
	if len(places) > maxResults {
		places = places[:maxResults]
	}
	out := make([]Candidate, len(places))
	for i, p := range places {
		out[i] = Candidate{Place: p}
	}
	return out
}

// enrich fetches place details and an AI description for one candidate.
// Either call may fail; the candidate keeps its search fields and gets a
// fixed fallback description instead.
func (s *Selector) enrich(ctx context.Context, c *Candidate, keyword string) {
	detailCtx, cancel := context.WithTimeout(ctx, callTimeout)
	if detail, ok := s.places.PlaceDetails(detailCtx, c.PlaceID); ok {
		mergeDetail(&c.Place, detail)
	}
	cancel()

	info := ai.RestaurantInfo{
		Name:           c.Name,
		Rating:         c.Rating,
		Address:        c.Address,
		WalkingMinutes: c.WalkingMinutes(),
		ServesDelivery: c.ServesDelivery,
	}
	descCtx, cancel := context.WithTimeout(ctx, callTimeout)
	c.Description = s.describer.DescribeRestaurant(descCtx, info, keyword)
	cancel()
	if c.Description == "" {
		c.Description = fmt.Sprintf("推薦您品嚐這家%s餐廳！", keyword)
	}
}

// mergeDetail overlays detail fields onto the search record, keeping
// search values where the detail response left a field blank.
func mergeDetail(base *maps.Place, detail maps.Place) {
	if detail.Name != "" {
		base.Name = detail.Name
	}
	if detail.Address != "" {
		base.Address = detail.Address
	}
	if detail.Rating > 0 {
		base.Rating = detail.Rating
		base.UserRatingsTotal = detail.UserRatingsTotal
	}
	if detail.PhotoReference != "" {
		base.PhotoReference = detail.PhotoReference
	}
	base.ServesDelivery = base.ServesDelivery || detail.ServesDelivery
}

func sortByRating(places []maps.Place) {
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Rating > places[j].Rating
	})
}
