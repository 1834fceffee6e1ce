// README: Conversation states, turn kinds and incoming webhook events.
package conversation

import (
	"eatbot/internal/modules/profile"
	"eatbot/internal/types"
)

type State string

const (
	StateNew                State = "new"
	StateAwaitingPreference State = "awaiting_preference"
	StateAwaitingLocation   State = "awaiting_location"
	StateReady              State = "ready"
)

// StateOf derives the conversation state from the stored profile.
func StateOf(p *profile.Profile) State {
	switch {
	case p == nil || p.DiningPurpose == profile.PurposeUnset:
		return StateNew
	case p.AwaitingFoodPreference || p.FoodPreference == "":
		return StateAwaitingPreference
	case p.Location == nil:
		return StateAwaitingLocation
	default:
		return StateReady
	}
}

// AllowedTransitions represents the conversation flow (diagram) as code.
// Setup states never regress within a turn; Ready loops on itself because
// new preferences and locations overwrite in place.
var AllowedTransitions = map[State][]State{
	StateNew:                {StateNew, StateAwaitingPreference, StateAwaitingLocation, StateReady},
	StateAwaitingPreference: {StateAwaitingPreference, StateAwaitingLocation, StateReady},
	StateAwaitingLocation:   {StateAwaitingLocation, StateReady},
	StateReady:              {StateReady},
}

func CanTransition(from, to State) bool {
	for _, next := range AllowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TurnKind classifies what a text turn asks the bot to do.
type TurnKind string

const (
	TurnGreeting                TurnKind = "greeting"
	TurnSetPurpose              TurnKind = "set_dining_purpose"
	TurnSetPurposeAndPreference TurnKind = "set_dining_purpose_and_food_preference"
	TurnNeedPurposeSelection    TurnKind = "request_dining_purpose_selection"
	TurnContinueExistingFlow    TurnKind = "continue_existing_flow"
	TurnRequestRecommendation   TurnKind = "request_recommendation"
	TurnNewSearch               TurnKind = "new_search"
)

// TurnResult is the resolved meaning of one text turn.
type TurnResult struct {
	Kind       TurnKind
	Purpose    profile.Purpose
	Preference string
	RawText    string
}

type TextEvent struct {
	UserID      types.ID
	ReplyToken  string
	DisplayName string
	Text        string
}

type LocationEvent struct {
	UserID      types.ID
	ReplyToken  string
	DisplayName string
	Location    types.Point
}

type PostbackEvent struct {
	UserID      types.ID
	ReplyToken  string
	DisplayName string
	Data        string
}
