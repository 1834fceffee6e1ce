package ai

import (
	"context"
)

// Provider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type Provider interface {
	// GenerateText produces a free-text reply for the given prompt.
	// The error is advisory: callers decide whether to fall back to FallbackReply
	// or to drop the message entirely.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// DescribeRestaurant writes a short promotional description for one restaurant.
	// Returns the empty string on any failure so callers can substitute their own default.
	DescribeRestaurant(ctx context.Context, info RestaurantInfo, preference string) string

	// ClassifyInitialIntent analyzes the first message of a user with no dining
	// purpose on record. Returns nil on any failure or unparseable output.
	ClassifyInitialIntent(ctx context.Context, text string) (*InitialIntent, error)

	// AnalyzePreferences summarizes a user's past food preferences into likely
	// cuisines and one concrete suggestion. Returns the zero value on failure.
	AnalyzePreferences(ctx context.Context, preferences []string) PreferenceAnalysis
}

// FallbackReply is the fixed apology used when text generation fails and a
// reply is still owed to the user.
const FallbackReply = "抱歉，我現在無法處理您的請求。請稍後再試。"
