// Package agent binds a fixed persona to a model provider. An agent reads
// the running conversation and produces exactly one new message.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/musekit/muse/internal/chat"
	"github.com/musekit/muse/internal/llm"
	"github.com/musekit/muse/internal/observability"
)

// Agent is a named persona over an LLM provider. Constructed once at
// pipeline setup and never mutated.
type Agent struct {
	name        string
	instruction string
	provider    llm.Provider
	opts        *llm.RequestOptions
}

// New creates an agent. instruction is the persona's fixed system prompt.
func New(name, instruction string, provider llm.Provider, opts *llm.RequestOptions) *Agent {
	return &Agent{
		name:        name,
		instruction: instruction,
		provider:    provider,
		opts:        opts,
	}
}

// Name returns the agent identifier.
func (a *Agent) Name() string { return a.name }

// Model returns the provider name backing this agent.
func (a *Agent) Model() string {
	if a.provider == nil {
		return ""
	}
	return a.provider.Name()
}

// Respond produces the agent's next message given the conversation so far.
// The input conversation is not mutated; provider failures propagate
// unchanged apart from added context.
func (a *Agent) Respond(ctx context.Context, conv *chat.Conversation) (chat.Message, error) {
	if conv == nil || conv.Len() == 0 {
		return chat.Message{}, fmt.Errorf("agent %s: %w: empty conversation", a.name, llm.ErrValidation)
	}

	prompt := &llm.Prompt{SystemPrompt: a.instruction}
	for _, m := range conv.Messages() {
		// The agent's own prior messages read as assistant turns;
		// everything else is context it responds to.
		role := llm.RoleUser
		if m.Author == a.name {
			role = llm.RoleAssistant
		}
		prompt.Messages = append(prompt.Messages, llm.Message{Role: role, Parts: m.Parts})
	}

	llmCtx, span := observability.StartLLMSpan(ctx, a.provider.Name(), "")
	start := time.Now()
	resp, err := a.provider.Complete(llmCtx, prompt, a.opts)
	if err != nil {
		observability.RecordError(span, err)
		span.End()
		return chat.Message{}, err
	}
	observability.RecordLLMUsage(span, resp.InputTokens, resp.OutputTokens, time.Since(start))
	span.End()

	text := llm.StripThinkingTags(resp.Content)
	if text == "" {
		return chat.Message{}, fmt.Errorf("agent %s: %w: empty completion", a.name, llm.ErrUpstream)
	}

	return chat.Message{Author: a.name, Parts: []llm.Part{llm.TextPart(text)}}, nil
}
