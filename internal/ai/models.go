package ai

// Intent labels returned by the first-turn classifier.
const (
	IntentGreeting                = "greeting"
	IntentSetPurpose              = "set_dining_purpose"
	IntentSetPurposeAndPreference = "set_dining_purpose_and_food_preference"
	IntentNeedPurposeSelection    = "request_dining_purpose_selection"
)

// InitialIntent captures the structured output of the first-turn classification.
type InitialIntent struct {
	// Intent is one of the Intent* labels above.
	Intent string `json:"intent"`

	// DiningPurpose is "worker" or "business" when the message states a purpose.
	// Nullable because greetings carry no purpose.
	DiningPurpose *string `json:"diningPurpose,omitempty"`

	// FoodPreference is the cuisine keyword when the message states one.
	FoodPreference *string `json:"foodPreference,omitempty"`
}

// purpose reports the dining purpose if it is present and one of the two known
// segments. The classifier is only authoritative over values it was instructed
// to emit; anything else counts as absent.
func (r *InitialIntent) purpose() (string, bool) {
	if r.DiningPurpose == nil {
		return "", false
	}
	p := *r.DiningPurpose
	if p != "worker" && p != "business" {
		return "", false
	}
	return p, true
}

func (r *InitialIntent) preference() (string, bool) {
	if r.FoodPreference == nil || *r.FoodPreference == "" {
		return "", false
	}
	return *r.FoodPreference, true
}

// Purpose returns the validated dining purpose, or "" when absent or unknown.
func (r *InitialIntent) Purpose() string {
	p, _ := r.purpose()
	return p
}

// Preference returns the food preference, or "" when absent.
func (r *InitialIntent) Preference() string {
	p, _ := r.preference()
	return p
}

// Valid reports whether the result carries every field its declared intent
// requires. Partial results must be treated the same as a failed call.
func (r *InitialIntent) Valid() bool {
	if r == nil {
		return false
	}
	switch r.Intent {
	case IntentGreeting, IntentNeedPurposeSelection:
		return true
	case IntentSetPurpose:
		_, ok := r.purpose()
		return ok
	case IntentSetPurposeAndPreference:
		_, okP := r.purpose()
		_, okF := r.preference()
		return okP && okF
	default:
		return false
	}
}

// RestaurantInfo is the subset of candidate fields the description prompt needs.
type RestaurantInfo struct {
	Name           string
	Rating         float32
	Address        string
	WalkingMinutes int // 0 when unknown
	ServesDelivery bool
}

// PreferenceAnalysis is the structured result of the preference-history analysis.
type PreferenceAnalysis struct {
	// PreferredCuisines lists up to three cuisine types, most likely first.
	PreferredCuisines []string `json:"preferredCuisines"`
	// Recommendation is one concrete dish or cuisine to suggest.
	Recommendation string `json:"recommendation"`
}
