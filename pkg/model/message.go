package model

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Source is a reference attached to an assistant message, e.g. grounding
// material returned by the model.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Message is a single entry in the conversation log. Messages are immutable
// once appended and live only for the session; they are never persisted.
type Message struct {
	Role    Role     `json:"role"`
	Content string   `json:"content"`
	Sources []Source `json:"sources,omitempty"`
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string, sources ...Source) Message {
	return Message{Role: RoleAssistant, Content: content, Sources: sources}
}
