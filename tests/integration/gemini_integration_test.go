package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"eatbot/internal/ai"
)

// Live Gemini round trip. Needs GEMINI_API_KEY; skipped otherwise.
func TestGeminiClassifyInitialIntentLive(t *testing.T) {
	loadDotEnv(t)

	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set; skipping live Gemini test")
	}
	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = "gemini-1.5-pro"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	provider, err := ai.NewGeminiProvider(ctx, apiKey, model)
	if err != nil {
		t.Fatalf("gemini init: %v", err)
	}
	defer provider.Close()

	result, err := provider.ClassifyInitialIntent(ctx, "我今天要跟客戶吃日式料理")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("classification structurally invalid: %+v", result)
	}
	t.Logf("intent=%s purpose=%q preference=%q", result.Intent, result.Purpose(), result.Preference())

	reply, err := provider.GenerateText(ctx, "請用一句話推薦一道台灣小吃。")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.TrimSpace(reply) == "" {
		t.Fatal("empty generation result")
	}
	t.Logf("reply: %s", reply)
}

func loadDotEnv(t *testing.T) {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		return
	}
	path := ""
	for i := 0; i < 8; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if path == "" {
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.TrimSpace(parts[1])
		if k == "" {
			continue
		}
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		_ = os.Setenv(k, v)
	}
}
