package profile

import (
	"context"
	"errors"
	"testing"

	"eatbot/internal/types"
)

type fakeKV struct {
	profiles map[types.ID]*Profile
	patches  []Patch
	err      error
}

func newFakeKV() *fakeKV {
	return &fakeKV{profiles: map[types.ID]*Profile{}}
}

func (f *fakeKV) Get(_ context.Context, id types.ID) (*Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[id], nil
}

func (f *fakeKV) Upsert(_ context.Context, id types.ID, displayName string, patch Patch) error {
	if f.err != nil {
		return f.err
	}
	f.patches = append(f.patches, patch)
	p := f.profiles[id]
	if p == nil {
		p = &Profile{}
		f.profiles[id] = p
	}
	if displayName != "" {
		p.DisplayName = displayName
	}
	p.Apply(patch, p.UpdatedAt)
	return nil
}

type fakeHistory struct {
	preferences []string
	choices     []string
	err         error
}

func (f *fakeHistory) AppendPreference(_ context.Context, _ types.ID, preference string) error {
	if f.err != nil {
		return f.err
	}
	f.preferences = append(f.preferences, preference)
	return nil
}

func (f *fakeHistory) RecentPreferences(_ context.Context, _ types.ID, limit int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > len(f.preferences) {
		limit = len(f.preferences)
	}
	out := make([]string, 0, limit)
	for i := len(f.preferences) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.preferences[i])
	}
	return out, nil
}

func (f *fakeHistory) AppendChoice(_ context.Context, _ types.ID, placeID, actionType string) error {
	if f.err != nil {
		return f.err
	}
	f.choices = append(f.choices, placeID+":"+actionType)
	return nil
}

func TestSavePreferenceAtomicPatch(t *testing.T) {
	kv := newFakeKV()
	history := &fakeHistory{}
	svc := NewService(kv, history)
	ctx := context.Background()

	if err := svc.SavePreference(ctx, "U1", "小明", "拉麵"); err != nil {
		t.Fatalf("SavePreference: %v", err)
	}

	if len(kv.patches) != 1 {
		t.Fatalf("expected a single patch, got %d", len(kv.patches))
	}
	patch := kv.patches[0]
	if patch.FoodPreference == nil || *patch.FoodPreference != "拉麵" {
		t.Errorf("FoodPreference patch = %v", patch.FoodPreference)
	}
	if patch.AwaitingFoodPreference == nil || *patch.AwaitingFoodPreference {
		t.Error("AwaitingFoodPreference must be cleared in the same patch")
	}
	if patch.LastPreferenceUpdate == nil {
		t.Error("LastPreferenceUpdate must be set")
	}
	if len(history.preferences) != 1 || history.preferences[0] != "拉麵" {
		t.Errorf("history = %v", history.preferences)
	}
}

func TestSavePreferenceHistoryFailureNotFatal(t *testing.T) {
	kv := newFakeKV()
	history := &fakeHistory{err: errors.New("db down")}
	svc := NewService(kv, history)

	if err := svc.SavePreference(context.Background(), "U1", "", "牛肉麵"); err != nil {
		t.Fatalf("history failure should not fail the save: %v", err)
	}
	p := kv.profiles["U1"]
	if p == nil || p.FoodPreference != "牛肉麵" {
		t.Fatalf("profile not saved: %+v", p)
	}
}

func TestSavePreferenceKVFailure(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("redis down")
	svc := NewService(kv, &fakeHistory{})

	if err := svc.SavePreference(context.Background(), "U1", "", "火鍋"); err == nil {
		t.Fatal("expected error when the profile store fails")
	}
}

func TestSaveChoice(t *testing.T) {
	kv := newFakeKV()
	history := &fakeHistory{}
	svc := NewService(kv, history)

	if err := svc.SaveChoice(context.Background(), "U1", "place-1", "navigate"); err != nil {
		t.Fatalf("SaveChoice: %v", err)
	}
	p := kv.profiles["U1"]
	if p == nil || p.LastRestaurantChoice == nil || p.LastRestaurantChoice.PlaceID != "place-1" {
		t.Fatalf("choice not saved: %+v", p)
	}
	if len(history.choices) != 1 || history.choices[0] != "place-1:navigate" {
		t.Errorf("history choices = %v", history.choices)
	}
}

func TestPreferenceHistoryDegradesToEmpty(t *testing.T) {
	svc := NewService(newFakeKV(), &fakeHistory{err: errors.New("db down")})

	prefs := svc.PreferenceHistory(context.Background(), "U1", 5)
	if prefs != nil {
		t.Fatalf("expected nil on failure, got %v", prefs)
	}
}
