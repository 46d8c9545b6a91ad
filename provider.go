package bedrockllm

import (
	"context"
)

// Provider defines the interface that chat providers must implement.
// The Bedrock adapter is the production implementation; the lorem provider
// is a mock for development and tests.
//
// Types used by this interface:
//   - ChatRequest, Message: defined in request.go
//   - Completion: defined in response.go
//   - StreamEvent: defined in streaming.go
type Provider interface {
	// Complete generates a complete response from the provider (blocking).
	// Used for non-streaming requests.
	Complete(ctx context.Context, req *ChatRequest) (*Completion, error)

	// Stream generates a streaming response from the provider.
	// Returns a channel that emits StreamEvent as they arrive; the channel
	// is closed when streaming completes or encounters an error. Token
	// usage and stop reason arrive in the final StreamMetadata event.
	//
	// Usage:
	//   events, err := provider.Stream(ctx, req)
	//   if err != nil { return err }
	//   for frag := range bedrockllm.Fragments(events) {
	//     emit(frag)
	//   }
	Stream(ctx context.Context, req *ChatRequest) (<-chan StreamEvent, error)

	// Name returns the provider name (e.g., "bedrock", "lorem")
	Name() ProviderID

	// SupportsModel returns true if the provider supports the given model.
	SupportsModel(model string) bool
}

// ModelInfo describes one entry in a provider's model catalog.
type ModelInfo struct {
	// ID is the invocable model identifier (foundation model id or
	// inference profile id)
	ID string `json:"id"`

	// Name is the human-readable model name
	Name string `json:"name"`
}
