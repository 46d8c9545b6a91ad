package bedrockllm

import (
	"testing"
)

func TestValidateRequestOptions_Temperature(t *testing.T) {
	tests := []struct {
		name        string
		temperature *float64
		wantErr     bool
	}{
		{"nil temperature is valid", nil, false},
		{"temperature 0.0", float64Ptr(0.0), false},
		{"temperature 1.0", float64Ptr(1.0), false},
		{"temperature 0.5", float64Ptr(0.5), false},
		{"temperature -0.1 is invalid", float64Ptr(-0.1), true},
		{"temperature 1.1 is invalid", float64Ptr(1.1), true},
		{"temperature 2.0 is invalid", float64Ptr(2.0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &RequestOptions{
				Temperature: tt.temperature,
			}
			err := ValidateRequestOptions(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequestOptions() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !IsInvalidRequest(err) {
				t.Error("validation error should be classified as invalid request")
			}
		})
	}
}

func TestValidateRequestOptions_TopP(t *testing.T) {
	tests := []struct {
		name    string
		topP    *float64
		wantErr bool
	}{
		{"nil topP is valid", nil, false},
		{"topP 0.0", float64Ptr(0.0), false},
		{"topP 1.0", float64Ptr(1.0), false},
		{"topP 0.5", float64Ptr(0.5), false},
		{"topP -0.1 is invalid", float64Ptr(-0.1), true},
		{"topP 1.1 is invalid", float64Ptr(1.1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &RequestOptions{
				TopP: tt.topP,
			}
			err := ValidateRequestOptions(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequestOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRequestOptions_TopK(t *testing.T) {
	tests := []struct {
		name    string
		topK    *int
		wantErr bool
	}{
		{"nil topK is valid", nil, false},
		{"topK 0 is valid", intPtr(0), false},
		{"topK 200", intPtr(200), false},
		{"topK -1 is invalid", intPtr(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &RequestOptions{
				TopK: tt.topK,
			}
			err := ValidateRequestOptions(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequestOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRequestOptions_MaxTokens(t *testing.T) {
	tests := []struct {
		name      string
		maxTokens *int
		wantErr   bool
	}{
		{"nil maxTokens is valid", nil, false},
		{"maxTokens 1", intPtr(1), false},
		{"maxTokens 4096", intPtr(4096), false},
		{"maxTokens 0 is invalid", intPtr(0), true},
		{"maxTokens -1 is invalid", intPtr(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &RequestOptions{
				MaxTokens: tt.maxTokens,
			}
			err := ValidateRequestOptions(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequestOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRequestOptions_Reasoning(t *testing.T) {
	tests := []struct {
		name    string
		opts    *RequestOptions
		wantErr bool
	}{
		{"nil options is valid", nil, false},
		{"budget 1024", &RequestOptions{ReasoningBudgetTokens: intPtr(1024)}, false},
		{"budget 0 is invalid", &RequestOptions{ReasoningBudgetTokens: intPtr(0)}, true},
		{"budget -1 is invalid", &RequestOptions{ReasoningBudgetTokens: intPtr(-1)}, true},
		{"effort low", &RequestOptions{ReasoningEffort: stringPtr("low")}, false},
		{"effort medium", &RequestOptions{ReasoningEffort: stringPtr("medium")}, false},
		{"effort high", &RequestOptions{ReasoningEffort: stringPtr("high")}, false},
		{"effort extreme is invalid", &RequestOptions{ReasoningEffort: stringPtr("extreme")}, true},
		{"effort empty is invalid", &RequestOptions{ReasoningEffort: stringPtr("")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequestOptions(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequestOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestOptions_Getters(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		opts := &RequestOptions{}
		if got := opts.GetMaxTokens(DefaultMaxTokens); got != 4096 {
			t.Errorf("GetMaxTokens() = %d, want 4096", got)
		}
		if got := opts.GetTemperature(DefaultTemperature); got != 0.5 {
			t.Errorf("GetTemperature() = %v, want 0.5", got)
		}
		if got := opts.GetTopP(DefaultTopP); got != 0.9 {
			t.Errorf("GetTopP() = %v, want 0.9", got)
		}
		if got := opts.GetTopK(DefaultTopK); got != 200 {
			t.Errorf("GetTopK() = %d, want 200", got)
		}
		if opts.IsStreaming() {
			t.Error("IsStreaming() should be false by default")
		}
		if opts.IsReasoningEnabled() {
			t.Error("IsReasoningEnabled() should be false by default")
		}
	})

	t.Run("explicit values win", func(t *testing.T) {
		opts := &RequestOptions{
			MaxTokens:   intPtr(100),
			Temperature: float64Ptr(0.2),
			TopP:        float64Ptr(0.5),
			TopK:        intPtr(40),
			Stream:      boolPtr(true),
		}
		if got := opts.GetMaxTokens(DefaultMaxTokens); got != 100 {
			t.Errorf("GetMaxTokens() = %d, want 100", got)
		}
		if got := opts.GetTemperature(DefaultTemperature); got != 0.2 {
			t.Errorf("GetTemperature() = %v, want 0.2", got)
		}
		if got := opts.GetTopP(DefaultTopP); got != 0.5 {
			t.Errorf("GetTopP() = %v, want 0.5", got)
		}
		if got := opts.GetTopK(DefaultTopK); got != 40 {
			t.Errorf("GetTopK() = %d, want 40", got)
		}
		if !opts.IsStreaming() {
			t.Error("IsStreaming() should be true")
		}
	})
}

func TestRequestOptions_GetReasoningBudgetTokens(t *testing.T) {
	tests := []struct {
		name     string
		opts     *RequestOptions
		model    string
		expected int
	}{
		{
			name:     "reasoning disabled returns zero",
			opts:     &RequestOptions{},
			model:    "anthropic.claude-3-7-sonnet-20250219-v1:0",
			expected: 0,
		},
		{
			name: "explicit budget wins over effort",
			opts: &RequestOptions{
				ReasoningEnabled:      boolPtr(true),
				ReasoningBudgetTokens: intPtr(8000),
				ReasoningEffort:       stringPtr("low"),
			},
			model:    "anthropic.claude-3-7-sonnet-20250219-v1:0",
			expected: 8000,
		},
		{
			name: "effort level converts through registry",
			opts: &RequestOptions{
				ReasoningEnabled: boolPtr(true),
				ReasoningEffort:  stringPtr("high"),
			},
			model:    "anthropic.claude-3-7-sonnet-20250219-v1:0",
			expected: 12000,
		},
		{
			name: "defaults to medium effort",
			opts: &RequestOptions{
				ReasoningEnabled: boolPtr(true),
			},
			model:    "anthropic.claude-3-7-sonnet-20250219-v1:0",
			expected: 5000,
		},
		{
			name: "unknown model falls back to default budgets",
			opts: &RequestOptions{
				ReasoningEnabled: boolPtr(true),
				ReasoningEffort:  stringPtr("low"),
			},
			model:    "anthropic.claude-unknown",
			expected: 2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.GetReasoningBudgetTokens("bedrock", tt.model)
			if got != tt.expected {
				t.Errorf("GetReasoningBudgetTokens() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestGetRequestOptionsStruct(t *testing.T) {
	body := map[string]interface{}{
		"temperature":       0.7,
		"max_tokens":        1000,
		"stream":            true,
		"reasoning_enabled": true,
		"reasoning_effort":  "high",
		"stop":              []string{"END"},
	}

	opts, err := GetRequestOptionsStruct(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Temperature == nil || *opts.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", opts.Temperature)
	}
	if opts.MaxTokens == nil || *opts.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %v, want 1000", opts.MaxTokens)
	}
	if !opts.IsStreaming() {
		t.Error("expected streaming to be enabled")
	}
	if !opts.IsReasoningEnabled() {
		t.Error("expected reasoning to be enabled")
	}
	if opts.ReasoningEffort == nil || *opts.ReasoningEffort != "high" {
		t.Errorf("ReasoningEffort = %v, want high", opts.ReasoningEffort)
	}
	if len(opts.Stop) != 1 || opts.Stop[0] != "END" {
		t.Errorf("Stop = %v, want [END]", opts.Stop)
	}
}

func TestGetRequestOptionsStruct_NilBody(t *testing.T) {
	opts, err := GetRequestOptionsStruct(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts == nil {
		t.Fatal("expected empty options, got nil")
	}
}
