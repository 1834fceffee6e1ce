// README: Renders neutral reply messages into LINE SDK payloads.
package bot

import (
	"github.com/line/line-bot-sdk-go/v7/linebot"

	"eatbot/internal/reply"
)

func render(msgs []reply.Message) []linebot.SendingMessage {
	out := make([]linebot.SendingMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, renderOne(m))
	}
	return out
}

func renderOne(m reply.Message) linebot.SendingMessage {
	switch {
	case m.Carousel != nil:
		columns := make([]*linebot.CarouselColumn, 0, len(m.Carousel.Cards))
		for _, card := range m.Carousel.Cards {
			columns = append(columns, linebot.NewCarouselColumn(
				card.ImageURL, card.Title, card.Text, renderActions(card.Actions)...))
		}
		return linebot.NewTemplateMessage(m.Carousel.AltText, linebot.NewCarouselTemplate(columns...))

	case m.Buttons != nil:
		return linebot.NewTemplateMessage(m.Buttons.AltText, linebot.NewButtonsTemplate(
			"", m.Buttons.Title, m.Buttons.Text, renderActions(m.Buttons.Actions)...))

	default:
		msg := linebot.NewTextMessage(m.Text)
		if m.QuickReplyLocation {
			return msg.WithQuickReplies(linebot.NewQuickReplyItems(
				linebot.NewQuickReplyButton("", linebot.NewLocationAction("分享位置"))))
		}
		return msg
	}
}

func renderActions(actions []reply.Action) []linebot.TemplateAction {
	out := make([]linebot.TemplateAction, 0, len(actions))
	for _, a := range actions {
		switch a.Kind {
		case reply.ActionPostback:
			out = append(out, &linebot.PostbackAction{Label: a.Label, Data: a.Data})
		default:
			out = append(out, linebot.NewURIAction(a.Label, a.URI))
		}
	}
	return out
}
