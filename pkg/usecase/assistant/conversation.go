package assistant

import (
	"google.golang.org/genai"

	"github.com/m-mizutani/concierge/pkg/model"
)

// Conversation is the append-only session log. It keeps two parallel views:
// the user-facing message sequence and the raw genai contents sent to the
// oracle. Notices (reminders, cancellations, error advisories) appear only in
// the message view; the oracle never sees them.
type Conversation struct {
	messages []model.Message
	contents []*genai.Content
}

func NewConversation() *Conversation {
	return &Conversation{}
}

// Messages returns the user-facing log.
func (c *Conversation) Messages() []model.Message {
	return c.messages
}

// Contents returns the oracle-facing history.
func (c *Conversation) Contents() []*genai.Content {
	return c.contents
}

// AddUser appends a user utterance to both views.
func (c *Conversation) AddUser(text string) {
	c.messages = append(c.messages, model.NewUserMessage(text))
	c.contents = append(c.contents, genai.NewContentFromText(text, genai.RoleUser))
}

// AddContent appends raw oracle history (model turns, function responses)
// without touching the message view.
func (c *Conversation) AddContent(content *genai.Content) {
	c.contents = append(c.contents, content)
}

// AddAssistant appends an assistant message to the user-facing view only.
func (c *Conversation) AddAssistant(text string, sources ...model.Source) {
	c.messages = append(c.messages, model.NewAssistantMessage(text, sources...))
}

// AddNotice appends an advisory assistant message that is not part of the
// oracle history.
func (c *Conversation) AddNotice(text string) {
	c.messages = append(c.messages, model.NewAssistantMessage(text))
}
