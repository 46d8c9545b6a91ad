package bedrockllm

import (
	"fmt"
)

// ModelValidationRule checks model-related warnings
type ModelValidationRule struct {
	registry *CapabilityRegistry
}

func (r *ModelValidationRule) Name() string {
	return "Model Validation"
}

func (r *ModelValidationRule) Check(provider string, req *ChatRequest) []ValidationWarning {
	var warnings []ValidationWarning

	// Check if model exists in capabilities (might be outdated)
	if !r.registry.SupportsModel(provider, req.Model) {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeModelUnknown,
			Category: "model",
			Field:    "model",
			Value:    req.Model,
			Message:  fmt.Sprintf("Model %s not found in %s capabilities (capabilities may be outdated)", req.Model, provider),
			Severity: SeverityWarning,
		})
	}

	return warnings
}

// ReasoningValidationRule checks extended-thinking warnings
type ReasoningValidationRule struct {
	registry *CapabilityRegistry
}

func (r *ReasoningValidationRule) Name() string {
	return "Reasoning Validation"
}

func (r *ReasoningValidationRule) Check(provider string, req *ChatRequest) []ValidationWarning {
	var warnings []ValidationWarning

	if req.Options == nil || !req.Options.IsReasoningEnabled() {
		return warnings
	}

	// The combined ceiling is a provider-wide hard limit, checkable even
	// for models missing from the registry.
	budget := req.Options.GetReasoningBudgetTokens(provider, req.Model)
	maxTokens := req.Options.GetMaxTokens(DefaultMaxTokens)
	ceiling := r.registry.CombinedTokenCeiling(provider)
	if budget+maxTokens > ceiling {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeCombinedBudgetTooHigh,
			Category: "reasoning",
			Field:    "reasoning_budget_tokens",
			Value:    budget + maxTokens,
			Message:  fmt.Sprintf("Reasoning budget %d + max_tokens %d exceeds ceiling %d (will fail)", budget, maxTokens, ceiling),
			Severity: SeverityError,
		})
	}

	modelCap, err := r.registry.GetModelCapability(provider, req.Model)
	if err != nil {
		// Can't check the rest without capabilities
		return warnings
	}

	if !modelCap.Features.Reasoning {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeReasoningUnsupported,
			Category: "reasoning",
			Field:    "reasoning_enabled",
			Value:    true,
			Message:  fmt.Sprintf("Model %s might not support extended thinking", req.Model),
			Severity: SeverityWarning,
		})
		return warnings
	}

	// Check explicit budget against the model's range
	if req.Options.ReasoningBudgetTokens != nil {
		b := *req.Options.ReasoningBudgetTokens
		min, max := modelCap.Reasoning.MinBudget, modelCap.Reasoning.MaxBudget

		if b < min {
			warnings = append(warnings, ValidationWarning{
				Code:     WarningCodeReasoningBudgetTooLow,
				Category: "reasoning",
				Field:    "reasoning_budget_tokens",
				Value:    b,
				Message:  fmt.Sprintf("Reasoning budget %d below recommended minimum %d", b, min),
				Severity: SeverityInfo,
			})
		}

		if b > max {
			warnings = append(warnings, ValidationWarning{
				Code:     WarningCodeReasoningBudgetTooHigh,
				Category: "reasoning",
				Field:    "reasoning_budget_tokens",
				Value:    b,
				Message:  fmt.Sprintf("Reasoning budget %d above maximum %d (will likely fail)", b, max),
				Severity: SeverityError,
			})
		}
	}

	// Check effort level
	if req.Options.ReasoningEffort != nil {
		_, err := r.registry.ConvertEffortToBudget(provider, req.Model, *req.Options.ReasoningEffort)
		if err != nil {
			warnings = append(warnings, ValidationWarning{
				Code:     WarningCodeReasoningEffortInvalid,
				Category: "reasoning",
				Field:    "reasoning_effort",
				Value:    *req.Options.ReasoningEffort,
				Message:  "Unknown reasoning effort (valid: low, medium, high)",
				Severity: SeverityWarning,
			})
		}
	}

	return warnings
}

// VisionValidationRule checks vision-related warnings
type VisionValidationRule struct {
	registry *CapabilityRegistry
}

func (r *VisionValidationRule) Name() string {
	return "Vision Validation"
}

func (r *VisionValidationRule) Check(provider string, req *ChatRequest) []ValidationWarning {
	var warnings []ValidationWarning

	imageCount := CountImageParts(req.Messages)
	if imageCount == 0 {
		return warnings
	}

	if limit := r.registry.MaxImagesPerRequest(provider); imageCount > limit {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeTooManyImages,
			Category: "vision",
			Field:    "messages",
			Value:    imageCount,
			Message:  fmt.Sprintf("Request embeds %d images, over the per-call maximum of %d (will fail)", imageCount, limit),
			Severity: SeverityError,
		})
	}

	modelCap, err := r.registry.GetModelCapability(provider, req.Model)
	if err != nil {
		// Can't check without capabilities
		return warnings
	}

	if !modelCap.Features.Vision {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeVisionUnsupported,
			Category: "vision",
			Field:    "messages",
			Value:    "contains images",
			Message:  fmt.Sprintf("Model %s might not support vision (check capabilities)", req.Model),
			Severity: SeverityWarning,
		})
	}

	return warnings
}

// ParameterValidationRule checks parameter range warnings
type ParameterValidationRule struct {
	registry *CapabilityRegistry
}

func (r *ParameterValidationRule) Name() string {
	return "Parameter Validation"
}

func (r *ParameterValidationRule) Check(provider string, req *ChatRequest) []ValidationWarning {
	var warnings []ValidationWarning

	if req.Options == nil {
		return warnings
	}

	providerCaps, err := r.registry.GetProviderCapabilities(provider)
	if err != nil {
		// Can't check without capabilities
		return warnings
	}

	constraints := providerCaps.Constraints

	// Check temperature
	if req.Options.Temperature != nil {
		temp := *req.Options.Temperature
		if temp < constraints.TemperatureMin || temp > constraints.TemperatureMax {
			warnings = append(warnings, ValidationWarning{
				Code:     WarningCodeTemperatureOutOfRange,
				Category: "parameter",
				Field:    "temperature",
				Value:    temp,
				Message:  fmt.Sprintf("Temperature %.2f outside recommended range [%.2f, %.2f]", temp, constraints.TemperatureMin, constraints.TemperatureMax),
				Severity: SeverityWarning,
			})
		}
	}

	// Check top_p
	if req.Options.TopP != nil {
		topP := *req.Options.TopP
		if topP < constraints.TopPMin || topP > constraints.TopPMax {
			warnings = append(warnings, ValidationWarning{
				Code:     WarningCodeTopPOutOfRange,
				Category: "parameter",
				Field:    "top_p",
				Value:    topP,
				Message:  fmt.Sprintf("TopP %.2f outside recommended range [%.2f, %.2f]", topP, constraints.TopPMin, constraints.TopPMax),
				Severity: SeverityWarning,
			})
		}
	}

	// Check top_k
	if req.Options.TopK != nil {
		topK := *req.Options.TopK
		if topK < constraints.TopKMin || topK > constraints.TopKMax {
			warnings = append(warnings, ValidationWarning{
				Code:     WarningCodeTopKOutOfRange,
				Category: "parameter",
				Field:    "top_k",
				Value:    topK,
				Message:  fmt.Sprintf("TopK %d outside recommended range [%d, %d]", topK, constraints.TopKMin, constraints.TopKMax),
				Severity: SeverityWarning,
			})
		}
	}

	return warnings
}

// CountImageParts counts image parts across a conversation history.
func CountImageParts(messages []Message) int {
	count := 0
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if part.Type == PartTypeImageURL {
				count++
			}
		}
	}
	return count
}
