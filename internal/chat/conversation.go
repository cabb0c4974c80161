// Package chat holds the shared conversation state passed between pipeline
// stages: an ordered, append-only sequence of authored messages.
package chat

import "github.com/musekit/muse/internal/llm"

// Message is one entry in a conversation, tagged with the author that
// produced it. Immutable once appended.
type Message struct {
	Author string     `json:"author"`
	Parts  []llm.Part `json:"parts"`
	Index  int        `json:"index"`
}

// Text concatenates the message's text parts.
func (m Message) Text() string {
	out := ""
	for _, p := range m.Parts {
		out += p.Text
	}
	return out
}

// UserMessage builds an initial caller-authored message from content parts.
func UserMessage(parts ...llm.Part) Message {
	return Message{Author: "user", Parts: parts}
}

// Conversation is an ordered, append-only message sequence. Insertion order
// is semantically meaningful: it defines the context each agent sees.
type Conversation struct {
	messages []Message
}

// New creates an empty conversation.
func New() *Conversation {
	return &Conversation{}
}

// Append adds a message and assigns it the next index.
func (c *Conversation) Append(m Message) Message {
	m.Index = len(c.messages)
	c.messages = append(c.messages, m)
	return m
}

// Len returns the number of messages.
func (c *Conversation) Len() int { return len(c.messages) }

// Messages returns a copy of the message sequence; callers cannot mutate
// history through it.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Last returns the most recent message and whether one exists.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}
