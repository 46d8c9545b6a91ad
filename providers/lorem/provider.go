package lorem

import (
	"context"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"

	bedrockllm "github.com/haowjy/bedrock-llm-go"
)

// Provider is a mock LLM provider that generates lorem ipsum text.
// Used for testing and development without requiring AWS credentials.
type Provider struct {
	generator *loremgen.Lorem
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() bedrockllm.ProviderID {
	return bedrockllm.ProviderLorem
}

// SupportsModel returns true if the model name starts with "lorem-".
// Example models: "lorem-fast", "lorem-slow", "lorem-test"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

// Complete generates a complete lorem ipsum response.
func (p *Provider) Complete(ctx context.Context, req *bedrockllm.ChatRequest) (*bedrockllm.Completion, error) {
	if !p.SupportsModel(req.Model) {
		return nil, &bedrockllm.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not supported by Lorem provider (must start with 'lorem-')",
			Err:      bedrockllm.ErrInvalidModel,
		}
	}

	opts := req.Options
	if opts == nil {
		opts = &bedrockllm.RequestOptions{}
	}
	maxTokens := opts.GetMaxTokens(bedrockllm.DefaultMaxTokens)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Estimate: 1 token ≈ 4 characters
	text := p.generateText(maxTokens * 4)

	return &bedrockllm.Completion{
		Text:         text,
		Model:        req.Model,
		InputTokens:  estimateTokens(req.Messages),
		OutputTokens: len(strings.Fields(text)),
		StopReason:   "end_turn",
		ResponseMetadata: map[string]interface{}{
			"mock":     true,
			"provider": "lorem",
		},
	}, nil
}

// getStreamDelay returns the delay between words based on the model name.
// - lorem-slow: 2 words/second (500ms per word)
// - lorem-fast: 30 words/second (33ms per word)
// - lorem-medium: 10 words/second (100ms per word)
// - default: 10 words/second
func getStreamDelay(model string) time.Duration {
	if strings.Contains(model, "slow") {
		return 500 * time.Millisecond
	}
	if strings.Contains(model, "fast") {
		return 33 * time.Millisecond
	}
	return 100 * time.Millisecond
}

// Stream generates a streaming lorem ipsum response. When reasoning is
// enabled, the stream begins with a run of reasoning deltas followed by a
// block stop, then the text deltas, mimicking the event shape of a real
// extended-thinking stream.
func (p *Provider) Stream(ctx context.Context, req *bedrockllm.ChatRequest) (<-chan bedrockllm.StreamEvent, error) {
	if !p.SupportsModel(req.Model) {
		return nil, &bedrockllm.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not supported by Lorem provider (must start with 'lorem-')",
			Err:      bedrockllm.ErrInvalidModel,
		}
	}

	opts := req.Options
	if opts == nil {
		opts = &bedrockllm.RequestOptions{}
	}
	maxTokens := opts.GetMaxTokens(bedrockllm.DefaultMaxTokens)
	reasoning := opts.IsReasoningEnabled()

	events := make(chan bedrockllm.StreamEvent, 10)

	go func() {
		defer close(events)

		totalWords := 0

		if reasoning {
			sent, err := p.streamWords(ctx, events, bedrockllm.DeltaKindReasoning, 20, req.Model)
			totalWords += sent
			if err != nil {
				events <- bedrockllm.StreamEvent{Err: err}
				return
			}
			events <- bedrockllm.StreamEvent{BlockStop: true}
		}

		target := maxTokens - totalWords
		if target > 60 {
			target = 60
		}
		sent, err := p.streamWords(ctx, events, bedrockllm.DeltaKindText, target, req.Model)
		totalWords += sent
		if err != nil {
			events <- bedrockllm.StreamEvent{Err: err}
			return
		}
		events <- bedrockllm.StreamEvent{BlockStop: true}

		events <- bedrockllm.StreamEvent{
			Metadata: &bedrockllm.StreamMetadata{
				Model:        req.Model,
				InputTokens:  estimateTokens(req.Messages),
				OutputTokens: totalWords,
				StopReason:   "end_turn",
				ResponseMetadata: map[string]interface{}{
					"mock":     true,
					"provider": "lorem",
				},
			},
		}
	}()

	return events, nil
}

// streamWords emits targetWords lorem words as deltas of the given kind,
// pacing each delta by the model's speed. Returns the word count sent.
func (p *Provider) streamWords(ctx context.Context, events chan<- bedrockllm.StreamEvent, kind bedrockllm.DeltaKind, targetWords int, model string) (int, error) {
	if targetWords <= 0 {
		return 0, nil
	}

	words := strings.Fields(p.generateTextWords(targetWords))
	delay := getStreamDelay(model)

	sent := 0
	for _, word := range words {
		if sent >= targetWords {
			break
		}

		select {
		case <-ctx.Done():
			return sent, ctx.Err()
		default:
		}

		events <- bedrockllm.StreamEvent{
			Delta: &bedrockllm.ContentDelta{
				Kind: kind,
				Text: word + " ",
			},
		}

		time.Sleep(delay)
		sent++
	}

	return sent, nil
}

// generateText generates lorem ipsum text with approximately targetChars characters.
func (p *Provider) generateText(targetChars int) string {
	var sb strings.Builder
	for sb.Len() < targetChars {
		sb.WriteString(p.generator.Paragraph(3, 5))
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}

// generateTextWords generates lorem ipsum text with approximately targetWords words.
func (p *Provider) generateTextWords(targetWords int) string {
	var sb strings.Builder
	wordCount := 0

	for wordCount < targetWords {
		sentence := p.generator.Sentence(5, 15)
		sb.WriteString(sentence)
		sb.WriteString(" ")
		wordCount += len(strings.Fields(sentence))
	}

	return strings.TrimSpace(sb.String())
}

// estimateTokens estimates the token count for a list of messages.
// Uses word count as a rough approximation.
func estimateTokens(messages []bedrockllm.Message) int {
	totalWords := 0
	for _, msg := range messages {
		totalWords += len(strings.Fields(msg.Content))
		for _, part := range msg.Parts {
			totalWords += len(strings.Fields(part.Text))
		}
	}
	return totalWords
}
