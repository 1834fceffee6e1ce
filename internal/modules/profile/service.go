// README: Profile service; one facade over the KV profile and history stores.
package profile

import (
	"context"
	"log"
	"time"

	"eatbot/internal/types"
)

// KV is the key-value profile store contract.
type KV interface {
	Get(ctx context.Context, id types.ID) (*Profile, error)
	Upsert(ctx context.Context, id types.ID, displayName string, patch Patch) error
}

// History is the append-only history store contract.
type History interface {
	AppendPreference(ctx context.Context, id types.ID, preference string) error
	RecentPreferences(ctx context.Context, id types.ID, limit int) ([]string, error)
	AppendChoice(ctx context.Context, id types.ID, placeID, actionType string) error
}

// Service orchestrates profile persistence. History failures are logged and
// swallowed: losing one history row must never break the conversation.
type Service struct {
	kv      KV
	history History
}

// NewService creates a Service over the given stores.
func NewService(kv KV, history History) *Service {
	return &Service{kv: kv, history: history}
}

// Get loads a profile; a new user yields (nil, nil).
func (s *Service) Get(ctx context.Context, id types.ID) (*Profile, error) {
	return s.kv.Get(ctx, id)
}

// Save merges a partial update into the profile.
func (s *Service) Save(ctx context.Context, id types.ID, displayName string, patch Patch) error {
	return s.kv.Upsert(ctx, id, displayName, patch)
}

// SavePreference records a food preference: the profile's current preference
// and the awaiting flag change in one write, and a history row is appended.
func (s *Service) SavePreference(ctx context.Context, id types.ID, displayName, preference string) error {
	now := time.Now()
	awaiting := false
	patch := Patch{
		FoodPreference:         &preference,
		AwaitingFoodPreference: &awaiting,
		LastPreferenceUpdate:   &now,
	}
	if err := s.kv.Upsert(ctx, id, displayName, patch); err != nil {
		return err
	}
	if err := s.history.AppendPreference(ctx, id, preference); err != nil {
		log.Printf("append preference history %s: %v", id, err)
	}
	return nil
}

// SaveChoice records which card action the user took.
func (s *Service) SaveChoice(ctx context.Context, id types.ID, placeID, actionType string) error {
	choice := &Choice{PlaceID: placeID, ActionType: actionType, Timestamp: time.Now()}
	if err := s.kv.Upsert(ctx, id, "", Patch{LastRestaurantChoice: choice}); err != nil {
		return err
	}
	if err := s.history.AppendChoice(ctx, id, placeID, actionType); err != nil {
		log.Printf("append choice history %s: %v", id, err)
	}
	return nil
}

// PreferenceHistory returns up to limit past preferences, newest first.
// A history-store failure degrades to an empty list.
func (s *Service) PreferenceHistory(ctx context.Context, id types.ID, limit int) []string {
	prefs, err := s.history.RecentPreferences(ctx, id, limit)
	if err != nil {
		log.Printf("load preference history %s: %v", id, err)
		return nil
	}
	return prefs
}
