// README: Restaurant candidate flowing through the selection pipeline.
package recommend

import (
	"time"

	"eatbot/internal/maps"
)

// Candidate is a restaurant in flight through the pipeline. It is never
// persisted; only the user's eventual card choice is.
type Candidate struct {
	maps.Place
	WalkingDuration *time.Duration
	Description     string
}

// WalkingMinutes rounds the walking duration to whole minutes.
// Returns 0 when no duration was resolved.
func (c Candidate) WalkingMinutes() int {
	if c.WalkingDuration == nil {
		return 0
	}
	return int((*c.WalkingDuration + 30*time.Second) / time.Minute)
}
