// README: Builds carousel cards, menus and AI prompts from candidates.
package reply

import (
	"fmt"
	"net/url"
	"strings"

	"eatbot/internal/modules/profile"
	"eatbot/internal/modules/recommend"
)

const (
	titleCap   = 40
	textCap    = 60
	actionsCap = 4
)

// PhotoURLFunc resolves a Places photo reference to an image URL.
type PhotoURLFunc func(photoReference string) string

// Composer renders pipeline output into Message values.
type Composer struct {
	photoURL PhotoURLFunc
}

func NewComposer(photoURL PhotoURLFunc) *Composer {
	return &Composer{photoURL: photoURL}
}

// BuildCarousel renders the selected restaurants as carousel cards.
func (c *Composer) BuildCarousel(candidates []recommend.Candidate, purpose profile.Purpose) Message {
	cards := make([]Card, 0, len(candidates))
	for _, cand := range candidates {
		cards = append(cards, c.buildCard(cand, purpose))
	}
	return Message{Carousel: &Carousel{AltText: "為您找到的餐廳", Cards: cards}}
}

func (c *Composer) buildCard(cand recommend.Candidate, purpose profile.Purpose) Card {
	var body strings.Builder
	if purpose == profile.PurposeWorker && cand.WalkingDuration != nil {
		fmt.Fprintf(&body, "🚶 步行約 %d 分鐘\n", cand.WalkingMinutes())
	}
	if cand.Rating > 0 {
		fmt.Fprintf(&body, "⭐ %.1f (%d則評論)", cand.Rating, cand.UserRatingsTotal)
	} else {
		body.WriteString("尚未有評分")
	}
	body.WriteString("\n")
	body.WriteString(cand.Description)

	actions := []Action{{
		Kind:  ActionURI,
		Label: "🗺️ Google導航",
		URI: fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%f,%f&travelmode=walking",
			cand.Location.Lat, cand.Location.Lng),
	}}
	if cand.ServesDelivery {
		actions = append(actions, Action{
			Kind:  ActionURI,
			Label: "🛵 UberEats叫餐",
			URI:   "https://www.ubereats.com/search?q=" + url.QueryEscape(cand.Name),
		})
		if len(actions) < actionsCap {
			actions = append(actions, Action{
				Kind:  ActionURI,
				Label: "🐼 Foodpanda叫餐",
				URI:   "https://www.foodpanda.com.tw/search?q=" + url.QueryEscape(cand.Name),
			})
		}
	}
	if len(actions) > actionsCap {
		actions = actions[:actionsCap]
	}

	return Card{
		ImageURL: c.photoURL(cand.PhotoReference),
		Title:    capRunes(cand.Name, titleCap),
		Text:     capRunes(body.String(), textCap),
		Actions:  actions,
	}
}

// PurposeMenu builds the two-choice dining purpose buttons template.
// withKeywordHint selects the longer copy used on a first text turn.
func PurposeMenu(displayName string, withKeywordHint bool) Message {
	greeting := "您好！"
	if displayName != "" {
		greeting = displayName + "，您好！"
	}
	text := greeting + "請問今天的用餐目的是什麼呢？"
	if withKeywordHint {
		text = greeting + " 請問今天的用餐目的是什麼呢？或者可以直接告訴我想吃的料理類型喔！"
	}
	return Message{Buttons: &Buttons{
		AltText: "請選擇您的用餐目的",
		Title:   "上班吃什麼？",
		Text:    text,
		Actions: []Action{
			{Kind: ActionPostback, Label: "🍱 小資族午餐", Data: "action=diningPurpose&purpose=worker"},
			{Kind: ActionPostback, Label: "🍽️ 高級商業聚餐", Data: "action=diningPurpose&purpose=business"},
		},
	}}
}

// BuildSuggestionPrompt is the free-text prompt sent to the generator
// after a carousel, asking for a short per-restaurant rundown.
func BuildSuggestionPrompt(names []string, keyword string) string {
	return fmt.Sprintf(`
我剛剛幫用戶搜尋了%s的餐廳，找到了這些餐廳：%s。
請根據這些實際找到的餐廳，給用戶一些具體的推薦和建議，讓他們更好地選擇。
請在回覆中明確提及這些餐廳的名稱，並根據它們的特點給出建議。

重要排版要求：
1. 每介紹完一間餐廳後只換一行，不要空行
2. 整體排版要清晰易讀，避免長段落
3. 總字數控制在150字以內

建議應該簡短、活潑、友善，必須使用中文。
`, keyword, strings.Join(names, "、"))
}

func capRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
