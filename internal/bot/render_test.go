package bot

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"eatbot/internal/reply"
)

func TestRenderTextWithQuickReply(t *testing.T) {
	msg := renderOne(reply.TextWithLocationPrompt("請分享位置"))
	text, ok := msg.(*linebot.TextMessage)
	if !ok {
		t.Fatalf("rendered %T, want *linebot.TextMessage", msg)
	}
	if text.Text != "請分享位置" {
		t.Errorf("Text = %q", text.Text)
	}
	// The quick-reply items only surface in the wire payload.
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload := string(b)
	if !strings.Contains(payload, `"quickReply"`) || !strings.Contains(payload, `"location"`) {
		t.Errorf("quick reply missing from payload: %s", payload)
	}
}

func TestRenderCarousel(t *testing.T) {
	msg := renderOne(reply.Message{Carousel: &reply.Carousel{
		AltText: "為您找到的餐廳",
		Cards: []reply.Card{{
			ImageURL: "https://example.invalid/p.jpg",
			Title:    "巷口拉麵",
			Text:     "⭐ 4.6",
			Actions: []reply.Action{
				{Kind: reply.ActionURI, Label: "🗺️ Google導航", URI: "https://maps.example"},
			},
		}},
	}})
	tmpl, ok := msg.(*linebot.TemplateMessage)
	if !ok {
		t.Fatalf("rendered %T, want *linebot.TemplateMessage", msg)
	}
	carousel, ok := tmpl.Template.(*linebot.CarouselTemplate)
	if !ok {
		t.Fatalf("template %T, want *linebot.CarouselTemplate", tmpl.Template)
	}
	if len(carousel.Columns) != 1 {
		t.Fatalf("columns = %d", len(carousel.Columns))
	}
	if carousel.Columns[0].Title != "巷口拉麵" {
		t.Errorf("column title = %q", carousel.Columns[0].Title)
	}
}

func TestRenderButtonsPostback(t *testing.T) {
	msg := renderOne(reply.PurposeMenu("", false))
	tmpl, ok := msg.(*linebot.TemplateMessage)
	if !ok {
		t.Fatalf("rendered %T, want *linebot.TemplateMessage", msg)
	}
	buttons, ok := tmpl.Template.(*linebot.ButtonsTemplate)
	if !ok {
		t.Fatalf("template %T, want *linebot.ButtonsTemplate", tmpl.Template)
	}
	if len(buttons.Actions) != 2 {
		t.Fatalf("actions = %d", len(buttons.Actions))
	}
	pb, ok := buttons.Actions[0].(*linebot.PostbackAction)
	if !ok {
		t.Fatalf("action %T, want *linebot.PostbackAction", buttons.Actions[0])
	}
	if pb.Data != "action=diningPurpose&purpose=worker" {
		t.Errorf("postback data = %q", pb.Data)
	}
}
