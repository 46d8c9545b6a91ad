package bedrockllm

// Completion contains a provider's complete (non-streaming) response.
type Completion struct {
	// Text is the assistant's reply text
	Text string

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
	// Examples: latency_ms, additional model response fields, etc.
	ResponseMetadata map[string]interface{}
}
