// README: Intent resolution; decides which transition a text turn takes.
package conversation

import (
	"context"
	"log"

	"eatbot/internal/ai"
	"eatbot/internal/modules/profile"
)

// Classifier is the AI-assisted first-turn classification port.
type Classifier interface {
	ClassifyInitialIntent(ctx context.Context, text string) (*ai.InitialIntent, error)
}

// Resolver maps raw user text and the current profile to a TurnResult.
// It is pure over its inputs; persistence happens in the Service.
type Resolver struct {
	classifier Classifier
}

func NewResolver(classifier Classifier) *Resolver {
	return &Resolver{classifier: classifier}
}

// Resolve applies the priority ladder. An AI classification is
// authoritative only when structurally valid; anything else falls back
// to asking the user to pick a purpose, never a guess.
func (r *Resolver) Resolve(ctx context.Context, p *profile.Profile, text string) TurnResult {
	if p == nil || p.DiningPurpose == profile.PurposeUnset {
		return r.resolveFirstTurn(ctx, text)
	}

	if p.AwaitingFoodPreference {
		return TurnResult{
			Kind:       TurnContinueExistingFlow,
			Purpose:    p.DiningPurpose,
			Preference: ExtractFoodKeyword(text),
			RawText:    text,
		}
	}

	if WantsRecommendation(text) {
		return TurnResult{Kind: TurnRequestRecommendation, Purpose: p.DiningPurpose, RawText: text}
	}

	return TurnResult{
		Kind:       TurnNewSearch,
		Purpose:    p.DiningPurpose,
		Preference: ExtractFoodKeyword(text),
		RawText:    text,
	}
}

func (r *Resolver) resolveFirstTurn(ctx context.Context, text string) TurnResult {
	fallback := TurnResult{Kind: TurnNeedPurposeSelection, RawText: text}

	intent, err := r.classifier.ClassifyInitialIntent(ctx, text)
	if err != nil {
		log.Printf("classify initial intent: %v", err)
		return fallback
	}
	if !intent.Valid() {
		return fallback
	}

	switch intent.Intent {
	case ai.IntentGreeting:
		return TurnResult{Kind: TurnGreeting, RawText: text}
	case ai.IntentSetPurpose:
		return TurnResult{
			Kind:    TurnSetPurpose,
			Purpose: profile.Purpose(intent.Purpose()),
			RawText: text,
		}
	case ai.IntentSetPurposeAndPreference:
		return TurnResult{
			Kind:       TurnSetPurposeAndPreference,
			Purpose:    profile.Purpose(intent.Purpose()),
			Preference: intent.Preference(),
			RawText:    text,
		}
	default:
		return fallback
	}
}
