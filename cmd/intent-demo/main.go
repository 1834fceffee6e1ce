package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"eatbot/internal/ai"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-pro"
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey, model)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	userMessage := "我今天想跟客戶吃日式料理"
	if len(os.Args) > 1 {
		userMessage = os.Args[1]
	}
	fmt.Printf("User: %s\n", userMessage)

	result, err := provider.ClassifyInitialIntent(ctx, userMessage)
	if err != nil {
		log.Fatalf("Error classifying intent: %v", err)
	}

	fmt.Printf("Intent: %s\n", result.Intent)
	if result.DiningPurpose != nil {
		fmt.Printf("Dining purpose: %s\n", *result.DiningPurpose)
	}
	if result.FoodPreference != nil {
		fmt.Printf("Food preference: %s\n", *result.FoodPreference)
	}
}
