package bedrockllm

import (
	"encoding/json"
	"fmt"
)

// Request option defaults applied when the caller leaves a field unset.
// These mirror the Converse defaults the upstream UI sends.
const (
	DefaultTemperature = 0.5
	DefaultTopP        = 0.9
	DefaultTopK        = 200
	DefaultMaxTokens   = 4096
)

// RequestOptions represents all request options callers may set.
// All fields are optional pointers to distinguish "not set" from "set to
// zero value".
type RequestOptions struct {
	// ===== Sampling =====

	// Temperature controls randomness (0.0-1.0)
	Temperature *float64 `json:"temperature,omitempty"`

	// TopP (nucleus sampling) - cumulative probability cutoff (0.0-1.0)
	TopP *float64 `json:"top_p,omitempty"`

	// TopK limits sampling to top K tokens
	TopK *int `json:"top_k,omitempty"`

	// MaxTokens sets the maximum number of tokens to generate
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Stop sequences - generation stops if any of these are generated
	Stop []string `json:"stop,omitempty"`

	// ===== Delivery =====

	// Stream selects streaming delivery (lazy fragment sequence) over a
	// single complete completion.
	Stream *bool `json:"stream,omitempty"`

	// ===== Reasoning (Claude extended thinking) =====

	// ReasoningEnabled enables extended thinking mode
	ReasoningEnabled *bool `json:"reasoning_enabled,omitempty"`

	// ReasoningBudgetTokens caps how many tokens the model may spend on
	// internal reasoning before producing visible output. Takes precedence
	// over ReasoningEffort when both are set.
	ReasoningBudgetTokens *int `json:"reasoning_budget_tokens,omitempty"`

	// ReasoningEffort sets the reasoning budget by level: "low", "medium",
	// "high". Maps to token budgets via the capability registry.
	ReasoningEffort *string `json:"reasoning_effort,omitempty"`

	// ===== Prompting =====

	// System prompt override (can also be carried as a system message in
	// the conversation history)
	System *string `json:"system,omitempty"`
}

// ValidateRequestOptions validates request options
func ValidateRequestOptions(opts *RequestOptions) error {
	if opts == nil {
		return nil // nil options is valid
	}

	if opts.Temperature != nil {
		if *opts.Temperature < 0.0 || *opts.Temperature > 1.0 {
			return &ValidationError{
				Field:  "temperature",
				Value:  *opts.Temperature,
				Reason: "must be between 0.0 and 1.0",
				Err:    ErrInvalidRequest,
			}
		}
	}

	if opts.TopP != nil {
		if *opts.TopP < 0.0 || *opts.TopP > 1.0 {
			return &ValidationError{
				Field:  "top_p",
				Value:  *opts.TopP,
				Reason: "must be between 0.0 and 1.0",
				Err:    ErrInvalidRequest,
			}
		}
	}

	if opts.TopK != nil {
		if *opts.TopK < 0 {
			return &ValidationError{
				Field:  "top_k",
				Value:  *opts.TopK,
				Reason: "must be non-negative",
				Err:    ErrInvalidRequest,
			}
		}
	}

	if opts.MaxTokens != nil {
		if *opts.MaxTokens < 1 {
			return &ValidationError{
				Field:  "max_tokens",
				Value:  *opts.MaxTokens,
				Reason: "must be positive",
				Err:    ErrInvalidRequest,
			}
		}
	}

	if opts.ReasoningBudgetTokens != nil {
		if *opts.ReasoningBudgetTokens < 1 {
			return &ValidationError{
				Field:  "reasoning_budget_tokens",
				Value:  *opts.ReasoningBudgetTokens,
				Reason: "must be positive",
				Err:    ErrInvalidRequest,
			}
		}
	}

	if opts.ReasoningEffort != nil {
		validLevels := map[string]bool{"low": true, "medium": true, "high": true}
		if !validLevels[*opts.ReasoningEffort] {
			return &ValidationError{
				Field:  "reasoning_effort",
				Value:  *opts.ReasoningEffort,
				Reason: "must be 'low', 'medium', or 'high'",
				Err:    ErrInvalidRequest,
			}
		}
	}

	return nil
}

// GetRequestOptionsStruct unmarshals a loosely-typed options map (the JSON
// request body a caller forwards) into a typed RequestOptions struct.
func GetRequestOptionsStruct(body map[string]interface{}) (*RequestOptions, error) {
	if body == nil {
		return &RequestOptions{}, nil
	}

	jsonBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal options: %w", err)
	}

	var opts RequestOptions
	if err := json.Unmarshal(jsonBytes, &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}

	return &opts, nil
}

// GetMaxTokens returns max_tokens with default fallback
func (ro *RequestOptions) GetMaxTokens(defaultValue int) int {
	if ro.MaxTokens != nil {
		return *ro.MaxTokens
	}
	return defaultValue
}

// GetTemperature returns temperature with default fallback
func (ro *RequestOptions) GetTemperature(defaultValue float64) float64 {
	if ro.Temperature != nil {
		return *ro.Temperature
	}
	return defaultValue
}

// GetTopP returns top_p with default fallback
func (ro *RequestOptions) GetTopP(defaultValue float64) float64 {
	if ro.TopP != nil {
		return *ro.TopP
	}
	return defaultValue
}

// GetTopK returns top_k with default fallback
func (ro *RequestOptions) GetTopK(defaultValue int) int {
	if ro.TopK != nil {
		return *ro.TopK
	}
	return defaultValue
}

// IsStreaming returns true if the caller requested streaming delivery
func (ro *RequestOptions) IsStreaming() bool {
	return ro.Stream != nil && *ro.Stream
}

// IsReasoningEnabled returns true if extended thinking was requested
func (ro *RequestOptions) IsReasoningEnabled() bool {
	return ro.ReasoningEnabled != nil && *ro.ReasoningEnabled
}

// GetReasoningBudgetTokens resolves the reasoning token budget for a model.
// An explicit budget wins; otherwise the effort level is converted through
// the capability registry. Returns 0 when reasoning is not enabled.
func (ro *RequestOptions) GetReasoningBudgetTokens(provider, model string) int {
	if !ro.IsReasoningEnabled() {
		return 0
	}

	if ro.ReasoningBudgetTokens != nil {
		return *ro.ReasoningBudgetTokens
	}

	effort := "medium"
	if ro.ReasoningEffort != nil {
		effort = *ro.ReasoningEffort
	}

	budget, err := GetCapabilityRegistry().ConvertEffortToBudget(provider, model, effort)
	if err != nil {
		return 0
	}
	return budget
}
