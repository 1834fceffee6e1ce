// README: LINE Messaging API adapter.
package bot

import (
	"context"
	"log"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"eatbot/internal/reply"
	"eatbot/internal/types"
)

// Client wraps the LINE SDK client behind the message shapes the
// conversation service produces.
type Client struct {
	bot *linebot.Client
}

func New(channelSecret, channelToken string) (*Client, error) {
	b, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, err
	}
	return &Client{bot: b}, nil
}

// ParseRequest validates the webhook signature and decodes the events.
func (c *Client) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	return c.bot.ParseRequest(r)
}

// DisplayName resolves the user's display name, or "" when the lookup
// fails. Greetings degrade to the anonymous form.
func (c *Client) DisplayName(ctx context.Context, userID types.ID) string {
	res, err := c.bot.GetProfile(string(userID)).WithContext(ctx).Do()
	if err != nil {
		log.Printf("get line profile %s: %v", userID, err)
		return ""
	}
	return res.DisplayName
}

func (c *Client) Reply(ctx context.Context, replyToken string, msgs ...reply.Message) error {
	_, err := c.bot.ReplyMessage(replyToken, render(msgs)...).WithContext(ctx).Do()
	return err
}

func (c *Client) Push(ctx context.Context, to types.ID, msgs ...reply.Message) error {
	_, err := c.bot.PushMessage(string(to), render(msgs)...).WithContext(ctx).Do()
	return err
}
