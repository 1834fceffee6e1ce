// README: Platform-neutral outbound message shapes.
package reply

// ActionKind selects how an action is rendered on the platform.
type ActionKind string

const (
	ActionURI      ActionKind = "uri"
	ActionPostback ActionKind = "postback"
)

type Action struct {
	Kind  ActionKind
	Label string
	URI   string
	Data  string
}

// Card is one carousel column.
type Card struct {
	ImageURL string
	Title    string
	Text     string
	Actions  []Action
}

type Carousel struct {
	AltText string
	Cards   []Card
}

// Buttons is a single-column template with postback choices.
type Buttons struct {
	AltText string
	Title   string
	Text    string
	Actions []Action
}

// Message is one outbound message. Exactly one of Text, Buttons or
// Carousel is set; QuickReplyLocation adds a share-location quick reply
// to a text message.
type Message struct {
	Text               string
	QuickReplyLocation bool
	Buttons            *Buttons
	Carousel           *Carousel
}

func TextMessage(text string) Message {
	return Message{Text: text}
}

func TextWithLocationPrompt(text string) Message {
	return Message{Text: text, QuickReplyLocation: true}
}
