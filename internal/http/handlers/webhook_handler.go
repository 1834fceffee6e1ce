// README: LINE webhook handler; decodes events and dispatches to the conversation service.
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v7/linebot"

	"eatbot/internal/bot"
	"eatbot/internal/modules/conversation"
	"eatbot/internal/reply"
	"eatbot/internal/types"
)

// eventTimeout bounds one event's whole pipeline, including the
// push-delivered search results.
const eventTimeout = 60 * time.Second

type WebhookHandler struct {
	bot  *bot.Client
	conv *conversation.Service
}

func NewWebhookHandler(botClient *bot.Client, conv *conversation.Service) *WebhookHandler {
	return &WebhookHandler{bot: botClient, conv: conv}
}

// Handle handles POST /webhook.
func (h *WebhookHandler) Handle(c *gin.Context) {
	events, err := h.bot.ParseRequest(c.Request)
	if err != nil {
		if err == linebot.ErrInvalidSignature {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	// LINE expects a fast 200; each event runs on its own goroutine
	// detached from the request context.
	for _, event := range events {
		go h.dispatch(event)
	}
	c.Status(http.StatusOK)
}

func (h *WebhookHandler) dispatch(event *linebot.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	userID := types.ID(event.Source.UserID)
	displayName := h.bot.DisplayName(ctx, userID)

	var err error
	switch event.Type {
	case linebot.EventTypeMessage:
		switch msg := event.Message.(type) {
		case *linebot.TextMessage:
			err = h.conv.HandleText(ctx, conversation.TextEvent{
				UserID:      userID,
				ReplyToken:  event.ReplyToken,
				DisplayName: displayName,
				Text:        msg.Text,
			})
		case *linebot.LocationMessage:
			err = h.conv.HandleLocation(ctx, conversation.LocationEvent{
				UserID:      userID,
				ReplyToken:  event.ReplyToken,
				DisplayName: displayName,
				Location:    types.Point{Lat: msg.Latitude, Lng: msg.Longitude},
			})
		default:
			err = h.bot.Reply(ctx, event.ReplyToken, replyUnsupported())
		}
	case linebot.EventTypePostback:
		err = h.conv.HandlePostback(ctx, conversation.PostbackEvent{
			UserID:      userID,
			ReplyToken:  event.ReplyToken,
			DisplayName: displayName,
			Data:        event.Postback.Data,
		})
	default:
		// Follow/unfollow and friends are ignored.
		return
	}
	if err != nil {
		log.Printf("handle %s event for %s: %v", event.Type, userID, err)
	}
}

func replyUnsupported() reply.Message {
	return reply.TextMessage("很抱歉，我只能處理文字訊息和位置訊息。")
}
