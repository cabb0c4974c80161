package chat

import (
	"testing"

	"github.com/musekit/muse/internal/llm"
)

func TestAppend_AssignsIndexes(t *testing.T) {
	conv := New()

	first := conv.Append(UserMessage(llm.TextPart("hello")))
	second := conv.Append(Message{Author: "Analysis Agent", Parts: []llm.Part{llm.TextPart("a caption")}})

	if first.Index != 0 || second.Index != 1 {
		t.Errorf("indexes = %d, %d; want 0, 1", first.Index, second.Index)
	}
	if conv.Len() != 2 {
		t.Errorf("Len() = %d, want 2", conv.Len())
	}
}

func TestMessages_ReturnsCopy(t *testing.T) {
	conv := New()
	conv.Append(UserMessage(llm.TextPart("original")))

	msgs := conv.Messages()
	msgs[0].Author = "tampered"

	got := conv.Messages()[0].Author
	if got != "user" {
		t.Errorf("conversation was mutated through Messages(): author = %q", got)
	}
}

func TestLast(t *testing.T) {
	conv := New()
	if _, ok := conv.Last(); ok {
		t.Fatal("Last() on empty conversation should report no message")
	}

	conv.Append(UserMessage(llm.TextPart("one")))
	conv.Append(Message{Author: "Creative Agent", Parts: []llm.Part{llm.TextPart("two")}})

	last, ok := conv.Last()
	if !ok || last.Text() != "two" {
		t.Errorf("Last() = %q, %v; want \"two\", true", last.Text(), ok)
	}
}

func TestMessageText(t *testing.T) {
	m := Message{Author: "user", Parts: []llm.Part{
		llm.ImagePart("data:image/png;base64,AA=="),
		llm.TextPart("look at this"),
	}}
	if m.Text() != "look at this" {
		t.Errorf("Text() = %q", m.Text())
	}
}
