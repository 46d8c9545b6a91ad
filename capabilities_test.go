package bedrockllm

import (
	"testing"
)

func TestCapabilityRegistry_BedrockModels(t *testing.T) {
	registry := GetCapabilityRegistry()

	tests := []struct {
		name      string
		model     string
		vision    bool
		reasoning bool
	}{
		{
			name:      "Claude 3.5 Sonnet v2",
			model:     "anthropic.claude-3-5-sonnet-20241022-v2:0",
			vision:    true,
			reasoning: false,
		},
		{
			name:      "Claude 3.5 Haiku",
			model:     "anthropic.claude-3-5-haiku-20241022-v1:0",
			vision:    false,
			reasoning: false,
		},
		{
			name:      "Claude 3.7 Sonnet",
			model:     "anthropic.claude-3-7-sonnet-20250219-v1:0",
			vision:    true,
			reasoning: true,
		},
		{
			name:      "Claude 3.7 Sonnet via inference profile",
			model:     "us.anthropic.claude-3-7-sonnet-20250219-v1:0",
			vision:    true,
			reasoning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !registry.SupportsModel("bedrock", tt.model) {
				t.Fatalf("model %s missing from bedrock capabilities", tt.model)
			}
			if got := registry.SupportsVision("bedrock", tt.model); got != tt.vision {
				t.Errorf("SupportsVision() = %v, want %v", got, tt.vision)
			}
			if got := registry.SupportsReasoning("bedrock", tt.model); got != tt.reasoning {
				t.Errorf("SupportsReasoning() = %v, want %v", got, tt.reasoning)
			}
		})
	}
}

func TestCapabilityRegistry_UnknownModel(t *testing.T) {
	registry := GetCapabilityRegistry()

	if registry.SupportsModel("bedrock", "anthropic.claude-nonexistent") {
		t.Error("unknown model should not be supported")
	}
	if registry.SupportsReasoning("bedrock", "anthropic.claude-nonexistent") {
		t.Error("unknown model should not report reasoning support")
	}

	if _, err := registry.GetModelCapability("bedrock", "anthropic.claude-nonexistent"); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestCapabilityRegistry_Constraints(t *testing.T) {
	registry := GetCapabilityRegistry()

	if got := registry.MaxImagesPerRequest("bedrock"); got != 20 {
		t.Errorf("MaxImagesPerRequest(bedrock) = %d, want 20", got)
	}
	if got := registry.CombinedTokenCeiling("bedrock"); got != 64000 {
		t.Errorf("CombinedTokenCeiling(bedrock) = %d, want 64000", got)
	}

	// Unregistered providers fall back to the Bedrock defaults.
	if got := registry.MaxImagesPerRequest("nonexistent"); got != 20 {
		t.Errorf("MaxImagesPerRequest(nonexistent) = %d, want fallback 20", got)
	}
	if got := registry.CombinedTokenCeiling("nonexistent"); got != 64000 {
		t.Errorf("CombinedTokenCeiling(nonexistent) = %d, want fallback 64000", got)
	}
}

func TestConvertEffortToBudget_KnownModel(t *testing.T) {
	registry := GetCapabilityRegistry()

	tests := []struct {
		name     string
		model    string
		effort   string
		expected int
	}{
		{"3.7 Sonnet low", "anthropic.claude-3-7-sonnet-20250219-v1:0", "low", 2000},
		{"3.7 Sonnet medium", "anthropic.claude-3-7-sonnet-20250219-v1:0", "medium", 5000},
		{"3.7 Sonnet high", "anthropic.claude-3-7-sonnet-20250219-v1:0", "high", 12000},
		{"profile id low", "us.anthropic.claude-3-7-sonnet-20250219-v1:0", "low", 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget, err := registry.ConvertEffortToBudget("bedrock", tt.model, tt.effort)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if budget != tt.expected {
				t.Errorf("expected budget %d, got %d", tt.expected, budget)
			}
		})
	}
}

func TestConvertEffortToBudget_UnknownModel_FallsBackToDefaults(t *testing.T) {
	registry := GetCapabilityRegistry()

	tests := []struct {
		effort   string
		expected int
	}{
		{"low", 2000},
		{"medium", 5000},
		{"high", 12000},
	}

	for _, tt := range tests {
		t.Run(tt.effort, func(t *testing.T) {
			budget, err := registry.ConvertEffortToBudget("bedrock", "anthropic.claude-unknown", tt.effort)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if budget != tt.expected {
				t.Errorf("expected budget %d, got %d", tt.expected, budget)
			}
		})
	}
}

func TestConvertEffortToBudget_InvalidEffort(t *testing.T) {
	registry := GetCapabilityRegistry()

	if _, err := registry.ConvertEffortToBudget("bedrock", "anthropic.claude-unknown", "extreme"); err == nil {
		t.Error("expected error for unknown effort level")
	}
}

func TestGetReasoningBudgetRange(t *testing.T) {
	registry := GetCapabilityRegistry()

	min, max, err := registry.GetReasoningBudgetRange("bedrock", "anthropic.claude-3-7-sonnet-20250219-v1:0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if min != 1024 {
		t.Errorf("min budget = %d, want 1024", min)
	}
	if max != 60000 {
		t.Errorf("max budget = %d, want 60000", max)
	}
}

func TestRegisterProviderCapabilities(t *testing.T) {
	registry := GetCapabilityRegistry()

	registry.RegisterProviderCapabilities("custom-test", &ProviderCapabilities{
		Provider: "custom-test",
		Models: map[string]ModelCapability{
			"custom-model": {
				ContextWindow: 1000,
				Features:      ModelFeatures{Streaming: true},
			},
		},
		Constraints: ProviderConstraints{
			MaxImagesPerRequest:  5,
			CombinedTokenCeiling: 10000,
		},
	})

	if !registry.SupportsModel("custom-test", "custom-model") {
		t.Error("registered model should be supported")
	}
	if got := registry.MaxImagesPerRequest("custom-test"); got != 5 {
		t.Errorf("MaxImagesPerRequest(custom-test) = %d, want 5", got)
	}
	if got := registry.CombinedTokenCeiling("custom-test"); got != 10000 {
		t.Errorf("CombinedTokenCeiling(custom-test) = %d, want 10000", got)
	}
}
