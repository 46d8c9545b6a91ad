package bedrockllm

// DeltaKind identifies the kind of content carried by a ContentDelta.
type DeltaKind string

const (
	// DeltaKindText is regular assistant-visible text content.
	DeltaKindText DeltaKind = "text"

	// DeltaKindReasoning is internal reasoning ("thinking") content emitted
	// by reasoning-capable models before the visible answer.
	DeltaKindReasoning DeltaKind = "reasoning"
)

// ContentDelta is an incremental fragment of model output delivered as one
// stream event. An event carries at most one delta kind.
type ContentDelta struct {
	// Kind indicates whether this is visible text or reasoning content.
	Kind DeltaKind

	// Text is the payload. May be empty (Bedrock emits empty reasoning
	// deltas around signature bookkeeping).
	Text string
}

// StreamEvent represents a single event in a streaming response.
// At most one of Delta, BlockStop, Metadata, or Err is meaningful per event;
// an event with none set is a no-op and is skipped by consumers.
type StreamEvent struct {
	// Delta contains incremental content (nil if block-stop/metadata/error)
	Delta *ContentDelta

	// BlockStop is true when the provider signals that the current content
	// block (text or reasoning) has ended.
	BlockStop bool

	// Metadata contains final response data when streaming completes (nil until end)
	Metadata *StreamMetadata

	// Err contains any error that occurred during streaming (nil if successful)
	Err error
}

// StreamMetadata contains completion information sent when streaming finishes.
// This is sent as the final event before the channel closes.
type StreamMetadata struct {
	// Model is the model that was used (may differ from the request if the
	// id was resolved through an inference profile)
	Model string

	// InputTokens is the number of tokens in the input
	InputTokens int

	// OutputTokens is the number of tokens in the output
	OutputTokens int

	// StopReason indicates why generation stopped (e.g., "end_turn", "max_tokens")
	StopReason string

	// ResponseMetadata contains provider-specific response data
	ResponseMetadata map[string]interface{}
}
