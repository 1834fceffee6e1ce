package conversation

import (
	"context"
	"errors"
	"testing"

	"eatbot/internal/ai"
	"eatbot/internal/modules/profile"
)

type fakeClassifier struct {
	intent *ai.InitialIntent
	err    error
	calls  int
}

func (f *fakeClassifier) ClassifyInitialIntent(_ context.Context, _ string) (*ai.InitialIntent, error) {
	f.calls++
	return f.intent, f.err
}

func strptr(s string) *string { return &s }

func TestResolveFirstTurn(t *testing.T) {
	cases := []struct {
		name   string
		intent *ai.InitialIntent
		err    error
		want   TurnKind
	}{
		{"greeting", &ai.InitialIntent{Intent: ai.IntentGreeting}, nil, TurnGreeting},
		{"set purpose", &ai.InitialIntent{Intent: ai.IntentSetPurpose, DiningPurpose: strptr("worker")}, nil, TurnSetPurpose},
		{"purpose and preference", &ai.InitialIntent{Intent: ai.IntentSetPurposeAndPreference, DiningPurpose: strptr("business"), FoodPreference: strptr("牛排")}, nil, TurnSetPurposeAndPreference},
		{"explicit selection request", &ai.InitialIntent{Intent: ai.IntentNeedPurposeSelection}, nil, TurnNeedPurposeSelection},
		{"classifier error", nil, errors.New("timeout"), TurnNeedPurposeSelection},
		{"nil result", nil, nil, TurnNeedPurposeSelection},
		{"purpose intent without purpose", &ai.InitialIntent{Intent: ai.IntentSetPurpose}, nil, TurnNeedPurposeSelection},
		{"combined intent missing preference", &ai.InitialIntent{Intent: ai.IntentSetPurposeAndPreference, DiningPurpose: strptr("worker")}, nil, TurnNeedPurposeSelection},
		{"unknown purpose value", &ai.InitialIntent{Intent: ai.IntentSetPurpose, DiningPurpose: strptr("tourist")}, nil, TurnNeedPurposeSelection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(&fakeClassifier{intent: tc.intent, err: tc.err})
			got := r.Resolve(context.Background(), nil, "哈囉")
			if got.Kind != tc.want {
				t.Errorf("Kind = %s, want %s", got.Kind, tc.want)
			}
		})
	}
}

func TestResolveNeverSearchesWithoutPurpose(t *testing.T) {
	r := NewResolver(&fakeClassifier{})
	for _, text := range []string{"hello", "我想吃拉麵", "推薦一下"} {
		got := r.Resolve(context.Background(), &profile.Profile{}, text)
		if got.Kind == TurnNewSearch || got.Kind == TurnRequestRecommendation {
			t.Errorf("%q resolved to %s before purpose was set", text, got.Kind)
		}
	}
}

func TestResolveAwaitingPreference(t *testing.T) {
	classifier := &fakeClassifier{}
	r := NewResolver(classifier)
	p := &profile.Profile{DiningPurpose: profile.PurposeWorker, AwaitingFoodPreference: true}

	got := r.Resolve(context.Background(), p, "我想吃拉麵")
	if got.Kind != TurnContinueExistingFlow {
		t.Fatalf("Kind = %s, want %s", got.Kind, TurnContinueExistingFlow)
	}
	if got.Preference != "拉麵" {
		t.Errorf("Preference = %q, want 拉麵", got.Preference)
	}
	if got.Purpose != profile.PurposeWorker {
		t.Errorf("Purpose = %q", got.Purpose)
	}
	if classifier.calls != 0 {
		t.Error("classifier must not run once a purpose is set")
	}
}

func TestResolveRecommendationBeatsSearch(t *testing.T) {
	r := NewResolver(&fakeClassifier{})
	p := &profile.Profile{DiningPurpose: profile.PurposeWorker, FoodPreference: "拉麵"}

	got := r.Resolve(context.Background(), p, "你覺得吃什麼好")
	if got.Kind != TurnRequestRecommendation {
		t.Fatalf("Kind = %s, want %s", got.Kind, TurnRequestRecommendation)
	}
}

func TestResolveNewSearch(t *testing.T) {
	r := NewResolver(&fakeClassifier{})
	p := &profile.Profile{DiningPurpose: profile.PurposeBusiness, FoodPreference: "拉麵"}

	got := r.Resolve(context.Background(), p, "想吃火鍋")
	if got.Kind != TurnNewSearch {
		t.Fatalf("Kind = %s, want %s", got.Kind, TurnNewSearch)
	}
	if got.Preference != "火鍋" {
		t.Errorf("Preference = %q, want 火鍋", got.Preference)
	}
}
