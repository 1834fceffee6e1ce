// README: Conversation orchestrator; drives state transitions per event.
package conversation

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"eatbot/internal/ai"
	"eatbot/internal/modules/profile"
	"eatbot/internal/modules/recommend"
	"eatbot/internal/reply"
	"eatbot/internal/types"
)

const historyDepth = 10

// Profiles is the profile persistence port.
type Profiles interface {
	Get(ctx context.Context, id types.ID) (*profile.Profile, error)
	Save(ctx context.Context, id types.ID, displayName string, patch profile.Patch) error
	SavePreference(ctx context.Context, id types.ID, displayName, preference string) error
	SaveChoice(ctx context.Context, id types.ID, placeID, actionType string) error
	PreferenceHistory(ctx context.Context, id types.ID, limit int) []string
}

// SelectorPort runs the restaurant selection pipeline.
type SelectorPort interface {
	Select(ctx context.Context, loc types.Point, purpose profile.Purpose, keyword string) []recommend.Candidate
}

// Generator is the free-text AI port.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	AnalyzePreferences(ctx context.Context, preferences []string) ai.PreferenceAnalysis
}

// Replier delivers messages back to the user.
type Replier interface {
	Reply(ctx context.Context, replyToken string, msgs ...reply.Message) error
	Push(ctx context.Context, to types.ID, msgs ...reply.Message) error
}

// Service wires the resolver, selector and composer into the per-event
// conversation flow.
type Service struct {
	profiles Profiles
	resolver *Resolver
	selector SelectorPort
	gen      Generator
	composer *reply.Composer
	replier  Replier
}

func NewService(profiles Profiles, resolver *Resolver, selector SelectorPort, gen Generator, composer *reply.Composer, replier Replier) *Service {
	return &Service{
		profiles: profiles,
		resolver: resolver,
		selector: selector,
		gen:      gen,
		composer: composer,
		replier:  replier,
	}
}

// HandleText processes one inbound text message.
func (s *Service) HandleText(ctx context.Context, ev TextEvent) error {
	p, err := s.profiles.Get(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	before := StateOf(p)

	turn := s.resolver.Resolve(ctx, p, ev.Text)
	switch turn.Kind {
	case TurnGreeting:
		greeting := "您好！"
		if ev.DisplayName != "" {
			greeting = ev.DisplayName + "，您好！"
		}
		return s.replier.Reply(ctx, ev.ReplyToken, reply.TextMessage(
			greeting+` 今天想吃點什麼呢？您可以直接告訴我您的用餐類型（像是"簡單午餐"或"跟客戶吃飯"），或想吃的料理喔！`))

	case TurnSetPurpose:
		if err := s.savePurpose(ctx, ev.UserID, ev.DisplayName, turn.Purpose); err != nil {
			return err
		}
		s.checkTransition(ev.UserID, before, StateAwaitingPreference)
		return s.replier.Reply(ctx, ev.ReplyToken, reply.TextMessage(fmt.Sprintf(
			"好的%s了解您想找%s的地方！那今天想吃點什麼料理呢？（例如：飯類、麵食、日式、泰式等）",
			nickname(ev.DisplayName), purposePhrase(turn.Purpose))))

	case TurnSetPurposeAndPreference:
		purpose := turn.Purpose
		if err := s.profiles.Save(ctx, ev.UserID, ev.DisplayName, profile.Patch{DiningPurpose: &purpose}); err != nil {
			return fmt.Errorf("save dining purpose: %w", err)
		}
		if err := s.profiles.SavePreference(ctx, ev.UserID, ev.DisplayName, turn.Preference); err != nil {
			return fmt.Errorf("save preference: %w", err)
		}
		if p != nil && p.Location != nil {
			s.checkTransition(ev.UserID, before, StateReady)
			return s.runSearch(ctx, ev.UserID, ev.ReplyToken, turn.Purpose, turn.Preference, *p.Location)
		}
		s.checkTransition(ev.UserID, before, StateAwaitingLocation)
		return s.replier.Reply(ctx, ev.ReplyToken, reply.TextWithLocationPrompt(fmt.Sprintf(
			"收到！您想找%s，並且想吃【%s】對吧？為了幫您找到附近的餐廳，請分享您的目前位置。",
			purposeLabel(turn.Purpose), turn.Preference)))

	case TurnNeedPurposeSelection:
		return s.replier.Reply(ctx, ev.ReplyToken, reply.PurposeMenu(ev.DisplayName, true))

	case TurnContinueExistingFlow:
		if err := s.profiles.SavePreference(ctx, ev.UserID, ev.DisplayName, turn.Preference); err != nil {
			return fmt.Errorf("save preference: %w", err)
		}
		if p.Location != nil {
			s.checkTransition(ev.UserID, before, StateReady)
			return s.runSearch(ctx, ev.UserID, ev.ReplyToken, turn.Purpose, turn.Preference, *p.Location)
		}
		s.checkTransition(ev.UserID, before, StateAwaitingLocation)
		return s.replier.Reply(ctx, ev.ReplyToken, reply.TextWithLocationPrompt(fmt.Sprintf(
			"收到【%s】！為了幫您找到附近的餐廳，請分享您的目前位置。", turn.Preference)))

	case TurnRequestRecommendation:
		return s.recommendFromHistory(ctx, ev)

	case TurnNewSearch:
		if err := s.profiles.SavePreference(ctx, ev.UserID, ev.DisplayName, turn.Preference); err != nil {
			return fmt.Errorf("save preference: %w", err)
		}
		if p.Location != nil {
			return s.runSearch(ctx, ev.UserID, ev.ReplyToken, turn.Purpose, turn.Preference, *p.Location)
		}
		return s.replier.Reply(ctx, ev.ReplyToken, reply.TextWithLocationPrompt(fmt.Sprintf(
			"收到！為了幫您找到附近的%s，請分享您的目前位置。", turn.Preference)))
	}
	return nil
}

// HandleLocation stores the shared location and continues wherever the
// conversation left off.
func (s *Service) HandleLocation(ctx context.Context, ev LocationEvent) error {
	loc := ev.Location
	if err := s.profiles.Save(ctx, ev.UserID, ev.DisplayName, profile.Patch{Location: &loc}); err != nil {
		return fmt.Errorf("save location: %w", err)
	}

	p, err := s.profiles.Get(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	if p != nil && p.DiningPurpose != profile.PurposeUnset && p.FoodPreference != "" && !p.AwaitingFoodPreference {
		return s.runSearch(ctx, ev.UserID, ev.ReplyToken, p.DiningPurpose, p.FoodPreference, loc)
	}
	if p == nil || p.DiningPurpose == profile.PurposeUnset {
		return s.replier.Reply(ctx, ev.ReplyToken, reply.PurposeMenu(ev.DisplayName, false))
	}
	return s.replier.Reply(ctx, ev.ReplyToken, reply.TextMessage(fmt.Sprintf(
		"好的，%s我已記錄您的位置。今天想吃點什麼呢？例如：飯類、麵食、日式、泰式、或其他你想到的關鍵字？",
		nickname(ev.DisplayName))))
}

// HandlePostback handles menu selections and card-action choice logging.
func (s *Service) HandlePostback(ctx context.Context, ev PostbackEvent) error {
	values, err := url.ParseQuery(ev.Data)
	if err != nil {
		log.Printf("parse postback data %q: %v", ev.Data, err)
		return s.replier.Reply(ctx, ev.ReplyToken, reply.TextMessage("抱歉，我無法處理這個請求。"))
	}

	switch values.Get("action") {
	case "diningPurpose":
		purpose := profile.Purpose(values.Get("purpose"))
		if !purpose.Valid() {
			return s.replier.Reply(ctx, ev.ReplyToken, reply.TextMessage("抱歉，我無法處理這個請求。"))
		}
		if err := s.savePurpose(ctx, ev.UserID, ev.DisplayName, purpose); err != nil {
			return err
		}
		return s.replier.Reply(ctx, ev.ReplyToken, reply.TextMessage(fmt.Sprintf(
			"好的%s是%s！那今天想吃點什麼呢？例如：飯類、麵食、日式、泰式、或其他你想到的關鍵字？",
			nickname(ev.DisplayName), purposeMenuLabel(purpose))))

	case "navigate", "uberEats", "foodpanda":
		// User is being redirected to an external app; log the choice, no reply.
		return s.profiles.SaveChoice(ctx, ev.UserID, values.Get("placeId"), values.Get("action"))

	default:
		return s.replier.Reply(ctx, ev.ReplyToken, reply.TextMessage("抱歉，我無法處理這個請求。"))
	}
}

// runSearch acknowledges with a reply, then delivers results as pushes.
func (s *Service) runSearch(ctx context.Context, userID types.ID, replyToken string, purpose profile.Purpose, keyword string, loc types.Point) error {
	if err := s.replier.Reply(ctx, replyToken, reply.TextMessage(fmt.Sprintf(
		"收到！正在為您尋找附近的%s...", keyword))); err != nil {
		return fmt.Errorf("acknowledge search: %w", err)
	}

	candidates := s.selector.Select(ctx, loc, purpose, keyword)
	if len(candidates) == 0 {
		return s.replier.Push(ctx, userID, reply.TextMessage(fmt.Sprintf(
			"抱歉，在您附近找不到符合條件的%s餐廳。", keyword)))
	}

	if err := s.replier.Push(ctx, userID, s.composer.BuildCarousel(candidates, purpose)); err != nil {
		return fmt.Errorf("push carousel: %w", err)
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	suggestion, err := s.gen.GenerateText(ctx, reply.BuildSuggestionPrompt(names, keyword))
	if err != nil {
		// Carousel already delivered; the follow-up is best effort.
		log.Printf("suggestion generation for %s: %v", userID, err)
		return nil
	}
	return s.replier.Push(ctx, userID, reply.TextMessage(suggestion))
}

// recommendFromHistory answers a recommendation request from past
// preferences without re-running the search pipeline.
func (s *Service) recommendFromHistory(ctx context.Context, ev TextEvent) error {
	prefs := s.profiles.PreferenceHistory(ctx, ev.UserID, historyDepth)
	analysis := s.gen.AnalyzePreferences(ctx, prefs)

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "使用者想要關於餐廳的推薦。他問的問題是: \"%s\"。", ev.Text)
	if len(analysis.PreferredCuisines) > 0 {
		fmt.Fprintf(&prompt, "根據他過去的搜尋紀錄，他可能喜歡這些類型的料理: %s。", strings.Join(analysis.PreferredCuisines, ", "))
	}
	if analysis.Recommendation != "" {
		fmt.Fprintf(&prompt, "你可以考慮推薦他: %s，或類似的食物。", analysis.Recommendation)
	}
	prompt.WriteString("請給予簡短、活潑且有用的餐飲建議。回覆必須是中文，不要超過100字。")

	answer, err := s.gen.GenerateText(ctx, prompt.String())
	if err != nil {
		log.Printf("recommendation generation for %s: %v", ev.UserID, err)
		answer = ai.FallbackReply
	}
	return s.replier.Reply(ctx, ev.ReplyToken, reply.TextMessage(answer))
}

func (s *Service) savePurpose(ctx context.Context, id types.ID, displayName string, purpose profile.Purpose) error {
	awaiting := true
	patch := profile.Patch{DiningPurpose: &purpose, AwaitingFoodPreference: &awaiting}
	if err := s.profiles.Save(ctx, id, displayName, patch); err != nil {
		return fmt.Errorf("save dining purpose: %w", err)
	}
	return nil
}

// checkTransition logs when an event would step outside the transition
// table. The flow itself never produces such a step.
func (s *Service) checkTransition(id types.ID, from, to State) {
	if !CanTransition(from, to) {
		log.Printf("unexpected state transition for %s: %s -> %s", id, from, to)
	}
}

func nickname(displayName string) string {
	if displayName == "" {
		return ""
	}
	return displayName + "，"
}

func purposePhrase(p profile.Purpose) string {
	if p == profile.PurposeBusiness {
		return "個「高級商業聚餐」"
	}
	return "個「小資族午餐」"
}

func purposeLabel(p profile.Purpose) string {
	if p == profile.PurposeBusiness {
		return "「高級商業聚餐」"
	}
	return "「小資族午餐」"
}

func purposeMenuLabel(p profile.Purpose) string {
	if p == profile.PurposeBusiness {
		return "🍽️ 高級商業聚餐"
	}
	return "🍱 我是社畜吃中餐"
}
