package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	bedrockllm "github.com/haowjy/bedrock-llm-go"
)

// Stream generates a streaming response via ConverseStream.
// Returns a channel that emits StreamEvent as deltas arrive from the API.
func (p *Provider) Stream(ctx context.Context, req *bedrockllm.ChatRequest) (<-chan bedrockllm.StreamEvent, error) {
	if !p.SupportsModel(req.Model) {
		return nil, &bedrockllm.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not supported by Bedrock adapter (expected an 'anthropic.' model id)",
			Err:      bedrockllm.ErrInvalidModel,
		}
	}

	// Build Converse parameters (shared logic with Complete). Validation
	// failures surface here, before the network call.
	input, err := p.buildConverseInput(ctx, req)
	if err != nil {
		return nil, err
	}

	out, err := p.runtime.ConverseStream(ctx, toStreamInput(input))
	if err != nil {
		return nil, &bedrockllm.ProviderError{
			Provider: p.Name().String(),
			Message:  fmt.Sprintf("converse stream call failed: %v", err),
			Err:      err,
		}
	}

	events := make(chan bedrockllm.StreamEvent, 10) // Buffered to prevent blocking

	go func() {
		defer close(events)

		stream := out.GetStream()
		defer stream.Close()

		// Final metadata accumulated from message-stop and metadata events
		meta := &bedrockllm.StreamMetadata{
			Model:            req.Model,
			ResponseMetadata: make(map[string]interface{}),
		}

		for raw := range stream.Events() {
			switch e := raw.(type) {
			case *brtypes.ConverseStreamOutputMemberMessageStop:
				meta.StopReason = string(e.Value.StopReason)

			case *brtypes.ConverseStreamOutputMemberMetadata:
				if e.Value.Usage != nil {
					meta.InputTokens = int(aws.ToInt32(e.Value.Usage.InputTokens))
					meta.OutputTokens = int(aws.ToInt32(e.Value.Usage.OutputTokens))
				}
				if e.Value.Metrics != nil && e.Value.Metrics.LatencyMs != nil {
					meta.ResponseMetadata["latency_ms"] = aws.ToInt64(e.Value.Metrics.LatencyMs)
				}

			default:
				ev := transformConverseStreamEvent(raw)
				if ev.Delta == nil && !ev.BlockStop {
					// No-op event, nothing for consumers
					continue
				}

				select {
				case <-ctx.Done():
					events <- bedrockllm.StreamEvent{Err: ctx.Err()}
					return
				case events <- ev:
				}
			}
		}

		if err := stream.Err(); err != nil {
			events <- bedrockllm.StreamEvent{Err: fmt.Errorf("bedrock streaming error: %w", err)}
			return
		}

		events <- bedrockllm.StreamEvent{Metadata: meta}
	}()

	return events, nil
}

// transformConverseStreamEvent converts a Converse stream event to a library
// StreamEvent.
//
// Converse stream events include:
// - MessageStart: message metadata (role)
// - ContentBlockStart: new content block started (index, type)
// - ContentBlockDelta: incremental content (text or reasoningContent)
// - ContentBlockStop: current block finished
// - MessageStop: stop reason (handled by the stream loop)
// - Metadata: token usage (handled by the stream loop)
//
// Events the adapter does not recognize map to an empty StreamEvent rather
// than an error: one unexpected event must not abort a valid stream.
func transformConverseStreamEvent(event brtypes.ConverseStreamOutput) bedrockllm.StreamEvent {
	switch e := event.(type) {
	case *brtypes.ConverseStreamOutputMemberContentBlockDelta:
		switch d := e.Value.Delta.(type) {
		case *brtypes.ContentBlockDeltaMemberText:
			return bedrockllm.StreamEvent{
				Delta: &bedrockllm.ContentDelta{
					Kind: bedrockllm.DeltaKindText,
					Text: d.Value,
				},
			}

		case *brtypes.ContentBlockDeltaMemberReasoningContent:
			// Reasoning deltas carry either text or bookkeeping
			// (signature/redacted content). Bookkeeping maps to an
			// empty-payload reasoning delta: it still marks the region.
			text := ""
			if rc, ok := d.Value.(*brtypes.ReasoningContentBlockDeltaMemberText); ok {
				text = rc.Value
			}
			return bedrockllm.StreamEvent{
				Delta: &bedrockllm.ContentDelta{
					Kind: bedrockllm.DeltaKindReasoning,
					Text: text,
				},
			}

		default:
			// Unknown delta kind (e.g., tool input) - ignored
			return bedrockllm.StreamEvent{}
		}

	case *brtypes.ConverseStreamOutputMemberContentBlockStop:
		return bedrockllm.StreamEvent{BlockStop: true}

	default:
		// MessageStart, ContentBlockStart, unknown future events - ignored
		return bedrockllm.StreamEvent{}
	}
}
