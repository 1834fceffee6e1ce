package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client

	// textModel answers free-text prompts (suggestions, recommendations).
	textModel *genai.GenerativeModel
	// jsonModel is forced into JSON response mode for structured parsing.
	jsonModel *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey and model name should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	textModel := client.GenerativeModel(model)
	textModel.SetTemperature(0.7)
	textModel.SetMaxOutputTokens(1000)

	jsonModel := client.GenerativeModel(model)
	jsonModel.ResponseMIMEType = "application/json"
	jsonModel.SetTemperature(0.4)

	return &GeminiProvider{
		client:    client,
		textModel: textModel,
		jsonModel: jsonModel,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// GenerateText sends a free-text prompt and returns the reply.
func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	text, err := p.generate(ctx, p.textModel, prompt)
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// DescribeRestaurant asks for a short promotional description of one restaurant.
// Returns "" on any failure so the caller can substitute a default description.
func (p *GeminiProvider) DescribeRestaurant(ctx context.Context, info RestaurantInfo, preference string) string {
	rating := "無評分"
	if info.Rating > 0 {
		rating = fmt.Sprintf("%.1f", info.Rating)
	}
	walking := "未提供"
	if info.WalkingMinutes > 0 {
		walking = fmt.Sprintf("%d分鐘", info.WalkingMinutes)
	}
	delivery := "否"
	if info.ServesDelivery {
		delivery = "是"
	}

	prompt := fmt.Sprintf(`你是一個專業的餐廳推薦專家。根據以下餐廳信息，生成一個簡短、吸引人的描述（限制在100字以內）：

餐廳名稱：%s
評分：%s
地址：%s
步行時間：%s
提供外送：%s

使用者喜好：%s

請提供一個簡短的、吸引人的描述，重點強調餐廳的特色和與用戶喜好的匹配度。不要重複已有的數據，而是提供更多價值。
回覆必須是中文，風格要活潑但專業。`,
		info.Name, rating, info.Address, walking, delivery, preference)

	text, err := p.generate(ctx, p.textModel, prompt)
	if err != nil {
		log.Printf("gemini describe restaurant %q: %v", info.Name, err)
		return ""
	}
	return strings.TrimSpace(text)
}

// ClassifyInitialIntent classifies a first-turn message into one of the
// Intent* labels and extracts purpose/preference fields where stated.
// Any transport or parse failure yields (nil, err); the caller falls back
// deterministically.
func (p *GeminiProvider) ClassifyInitialIntent(ctx context.Context, text string) (*InitialIntent, error) {
	prompt := fmt.Sprintf(`你是餐廳推薦助理的意圖分類器。請分析用戶的第一句話，判斷他的意圖。

用戶訊息：「%s」

意圖類別：
- greeting：純打招呼或閒聊，沒有提到用餐需求
- set_dining_purpose：提到了用餐目的（簡單便宜的午餐 = worker，高級商業聚餐或請客戶吃飯 = business），但沒提到想吃什麼料理
- set_dining_purpose_and_food_preference：同時提到用餐目的和想吃的料理
- request_dining_purpose_selection：無法確定用餐目的

以JSON格式回覆，格式如下：
{"intent": "意圖類別", "diningPurpose": "worker" 或 "business" 或 null, "foodPreference": "料理關鍵字" 或 null}

只返回JSON格式，不要包含其他文字。`, text)

	raw, err := p.generate(ctx, p.jsonModel, prompt)
	if err != nil {
		return nil, fmt.Errorf("gemini intent classification error: %w", err)
	}
	return parseInitialIntent(raw)
}

// AnalyzePreferences summarizes past preferences into likely cuisines plus one
// concrete suggestion. Failures are swallowed: an empty analysis only makes
// the recommendation less personal.
func (p *GeminiProvider) AnalyzePreferences(ctx context.Context, preferences []string) PreferenceAnalysis {
	if len(preferences) == 0 {
		return PreferenceAnalysis{}
	}

	prompt := fmt.Sprintf(`分析以下用戶的餐飲偏好歷史，並提出推薦：

歷史偏好：%s

請提供：
1. 這個用戶可能喜歡的3種料理類型（按可能性排序）
2. 一個基於這些偏好的具體推薦（具體的一種料理）

以JSON格式回覆，格式如下：
{
  "preferredCuisines": ["類型1", "類型2", "類型3"],
  "recommendation": "具體推薦的料理"
}

只返回JSON格式，不要包含其他文字。`, strings.Join(preferences, ", "))

	raw, err := p.generate(ctx, p.jsonModel, prompt)
	if err != nil {
		log.Printf("gemini preference analysis: %v", err)
		return PreferenceAnalysis{}
	}

	var analysis PreferenceAnalysis
	if err := json.Unmarshal([]byte(cleanJSONString(raw)), &analysis); err != nil {
		log.Printf("gemini preference analysis parse: %v", err)
		return PreferenceAnalysis{}
	}
	return analysis
}

// generate runs one GenerateContent call and concatenates the text parts.
func (p *GeminiProvider) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty text parts from Gemini")
	}
	return sb.String(), nil
}

// parseInitialIntent decodes the classifier's JSON and validates it against
// its declared intent. Partial or unknown results are treated as a failure.
func parseInitialIntent(raw string) (*InitialIntent, error) {
	var result InitialIntent
	clean := cleanJSONString(raw)
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, clean)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("incomplete intent result: %s", clean)
	}
	return &result, nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
