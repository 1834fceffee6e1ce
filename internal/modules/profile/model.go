// README: User profile aggregate accumulated across conversation turns.
package profile

import (
	"time"

	"eatbot/internal/types"
)

// Purpose is the coarse user segment driving price-band and selection policy.
type Purpose string

const (
	PurposeUnset    Purpose = ""
	PurposeWorker   Purpose = "worker"   // budget-conscious quick lunch
	PurposeBusiness Purpose = "business" // higher-end hosted meal
)

// Valid reports whether p is one of the two known segments.
func (p Purpose) Valid() bool {
	return p == PurposeWorker || p == PurposeBusiness
}

// Choice records the last restaurant action a user took from a carousel.
type Choice struct {
	PlaceID    string    `json:"placeId"`
	ActionType string    `json:"actionType"`
	Timestamp  time.Time `json:"timestamp"`
}

// Profile is one user's accumulated conversation state, keyed by the opaque
// platform user ID.
type Profile struct {
	DisplayName            string       `json:"displayName,omitempty"`
	DiningPurpose          Purpose      `json:"diningPurpose,omitempty"`
	FoodPreference         string       `json:"foodPreference,omitempty"`
	AwaitingFoodPreference bool         `json:"awaitingFoodPreference,omitempty"`
	Location               *types.Point `json:"location,omitempty"`
	LastRestaurantChoice   *Choice      `json:"lastRestaurantChoice,omitempty"`
	LastPreferenceUpdate   *time.Time   `json:"lastPreferenceUpdate,omitempty"`
	CreatedAt              time.Time    `json:"createdAt"`
	UpdatedAt              time.Time    `json:"updatedAt"`
}

// Patch is a partial profile update. Nil fields are left untouched so that
// repeated writes merge rather than overwrite unrelated fields.
// AwaitingFoodPreference travels in the same patch as the purpose/preference
// fields it qualifies, keeping the profile self-consistent on every write.
type Patch struct {
	DiningPurpose          *Purpose
	FoodPreference         *string
	AwaitingFoodPreference *bool
	Location               *types.Point
	LastRestaurantChoice   *Choice
	LastPreferenceUpdate   *time.Time
}

// Apply merges the patch into the profile and stamps UpdatedAt.
func (p *Profile) Apply(patch Patch, now time.Time) {
	if patch.DiningPurpose != nil {
		p.DiningPurpose = *patch.DiningPurpose
	}
	if patch.FoodPreference != nil {
		p.FoodPreference = *patch.FoodPreference
	}
	if patch.AwaitingFoodPreference != nil {
		p.AwaitingFoodPreference = *patch.AwaitingFoodPreference
	}
	if patch.Location != nil {
		p.Location = patch.Location
	}
	if patch.LastRestaurantChoice != nil {
		p.LastRestaurantChoice = patch.LastRestaurantChoice
	}
	if patch.LastPreferenceUpdate != nil {
		p.LastPreferenceUpdate = patch.LastPreferenceUpdate
	}
	p.UpdatedAt = now
}
