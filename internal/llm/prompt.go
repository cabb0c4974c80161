package llm

// Role identifies who authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Part is one piece of message content: plain text, or an inline image
// encoded as a self-describing data URI (data:<mime>;base64,<payload>).
// Exactly one field is set.
type Part struct {
	Text     string `json:"text,omitempty"`
	ImageURI string `json:"image_uri,omitempty"`
}

// TextPart builds a text content part.
func TextPart(s string) Part { return Part{Text: s} }

// ImagePart builds an inline image content part from a data URI.
func ImagePart(uri string) Part { return Part{ImageURI: uri} }

// Message is a single turn in a conversation.
type Message struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// UserText builds a text-only user message.
func UserText(s string) Message {
	return Message{Role: RoleUser, Parts: []Part{TextPart(s)}}
}

// Text concatenates the message's text parts. Image parts contribute nothing.
func (m Message) Text() string {
	out := ""
	for _, p := range m.Parts {
		out += p.Text
	}
	return out
}

// HasImage reports whether any part carries inline image content.
func (m Message) HasImage() bool {
	for _, p := range m.Parts {
		if p.ImageURI != "" {
			return true
		}
	}
	return false
}

// Prompt is the full input to an LLM completion call.
type Prompt struct {
	SystemPrompt string    `json:"system_prompt,omitempty"`
	Messages     []Message `json:"messages"`
}

// Validate checks the prompt before it goes on the wire.
func (p *Prompt) Validate() error {
	if p == nil || len(p.Messages) == 0 {
		return ErrValidation
	}
	return nil
}
