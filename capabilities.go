package bedrockllm

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/capabilities/bedrock.yaml
var bedrockCapabilitiesYAML []byte

// Capabilities Philosophy:
//
// This package provides MODEL METADATA for UX and informational purposes.
// Hard limits that the library enforces before dispatch (image count,
// combined token ceiling) live in provider constraints; everything else is
// advisory - provider APIs are the source of truth.
//
// Capabilities may be outdated as providers release new models/features.
// Library users can override embedded capabilities by:
//  1. Calling LoadCapabilitiesFromFile() with custom YAML
//  2. Calling RegisterProviderCapabilities() programmatically

// ProviderCapabilities represents the full capability configuration for a provider
type ProviderCapabilities struct {
	Version     string                     `yaml:"version"`      // Semantic version (e.g., "1.0.0")
	LastUpdated string                     `yaml:"last_updated"` // ISO 8601 date (e.g., "2026-08-23")
	Provider    string                     `yaml:"provider"`
	Models      map[string]ModelCapability `yaml:"models"`
	Constraints ProviderConstraints        `yaml:"constraints"`
}

// ModelCapability represents the capabilities of a specific model
type ModelCapability struct {
	ContextWindow   int                `yaml:"context_window"`
	MaxOutputTokens int                `yaml:"max_output_tokens"`
	Features        ModelFeatures      `yaml:"features"`
	Reasoning       ReasoningCapability `yaml:"reasoning"`
}

// ModelFeatures indicates which features a model supports
type ModelFeatures struct {
	Vision    bool `yaml:"vision"`
	Reasoning bool `yaml:"reasoning"`
	Streaming bool `yaml:"streaming"`
}

// ReasoningCapability defines extended thinking constraints
type ReasoningCapability struct {
	MinBudget      int            `yaml:"min_budget"`
	MaxBudget      int            `yaml:"max_budget"`
	EffortToBudget map[string]int `yaml:"effort_to_budget"` // "low" -> 2000, etc.
}

// ProviderConstraints defines provider-wide limits
type ProviderConstraints struct {
	TemperatureMin float64 `yaml:"temperature_min"`
	TemperatureMax float64 `yaml:"temperature_max"`
	TopPMin        float64 `yaml:"top_p_min"`
	TopPMax        float64 `yaml:"top_p_max"`
	TopKMin        int     `yaml:"top_k_min"`
	TopKMax        int     `yaml:"top_k_max"`

	// MaxImagesPerRequest caps how many images one request may embed
	MaxImagesPerRequest int `yaml:"max_images_per_request"`

	// CombinedTokenCeiling caps reasoning budget + max output tokens
	CombinedTokenCeiling int `yaml:"combined_token_ceiling"`
}

// CapabilityRegistry manages provider capabilities
type CapabilityRegistry struct {
	capabilities map[string]*ProviderCapabilities
	mu           sync.RWMutex
}

var (
	globalRegistry     *CapabilityRegistry
	globalRegistryOnce sync.Once
)

// Fallbacks used when a provider has no registered capabilities. These
// match the published limits for Claude models on Bedrock.
const (
	fallbackMaxImagesPerRequest  = 20
	fallbackCombinedTokenCeiling = 64000
)

// GetCapabilityRegistry returns the global capability registry (singleton)
func GetCapabilityRegistry() *CapabilityRegistry {
	globalRegistryOnce.Do(func() {
		globalRegistry = &CapabilityRegistry{
			capabilities: make(map[string]*ProviderCapabilities),
		}
		// Load embedded Bedrock capabilities
		if err := globalRegistry.loadBedrockCapabilities(); err != nil {
			// Log error but don't panic - lookups fall back to defaults
			fmt.Printf("Warning: failed to load Bedrock capabilities: %v\n", err)
		}
	})
	return globalRegistry
}

// loadBedrockCapabilities loads the embedded Bedrock YAML
func (r *CapabilityRegistry) loadBedrockCapabilities() error {
	var caps ProviderCapabilities
	if err := yaml.Unmarshal(bedrockCapabilitiesYAML, &caps); err != nil {
		return fmt.Errorf("failed to unmarshal Bedrock capabilities: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities["bedrock"] = &caps

	return nil
}

// GetProviderCapabilities returns capabilities for a provider
func (r *CapabilityRegistry) GetProviderCapabilities(provider string) (*ProviderCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps, ok := r.capabilities[provider]
	if !ok {
		return nil, fmt.Errorf("no capabilities found for provider: %s", provider)
	}
	return caps, nil
}

// GetModelCapability returns capabilities for a specific model
func (r *CapabilityRegistry) GetModelCapability(provider, model string) (*ModelCapability, error) {
	providerCaps, err := r.GetProviderCapabilities(provider)
	if err != nil {
		return nil, err
	}

	modelCap, ok := providerCaps.Models[model]
	if !ok {
		return nil, fmt.Errorf("model %s not found for provider %s", model, provider)
	}
	return &modelCap, nil
}

// SupportsModel checks if a provider has capability data for a model
func (r *CapabilityRegistry) SupportsModel(provider, model string) bool {
	_, err := r.GetModelCapability(provider, model)
	return err == nil
}

// SupportsReasoning checks if a model supports extended thinking
func (r *CapabilityRegistry) SupportsReasoning(provider, model string) bool {
	modelCap, err := r.GetModelCapability(provider, model)
	if err != nil {
		return false
	}
	return modelCap.Features.Reasoning
}

// SupportsVision checks if a model accepts image content
func (r *CapabilityRegistry) SupportsVision(provider, model string) bool {
	modelCap, err := r.GetModelCapability(provider, model)
	if err != nil {
		return false
	}
	return modelCap.Features.Vision
}

// GetReasoningBudgetRange returns the valid reasoning budget range for a model
func (r *CapabilityRegistry) GetReasoningBudgetRange(provider, model string) (min int, max int, err error) {
	modelCap, err := r.GetModelCapability(provider, model)
	if err != nil {
		return 0, 0, err
	}
	return modelCap.Reasoning.MinBudget, modelCap.Reasoning.MaxBudget, nil
}

// MaxImagesPerRequest returns the per-request image cap for a provider.
// Falls back to the Bedrock default when the provider is not registered.
func (r *CapabilityRegistry) MaxImagesPerRequest(provider string) int {
	caps, err := r.GetProviderCapabilities(provider)
	if err != nil || caps.Constraints.MaxImagesPerRequest == 0 {
		return fallbackMaxImagesPerRequest
	}
	return caps.Constraints.MaxImagesPerRequest
}

// CombinedTokenCeiling returns the maximum allowed sum of reasoning budget
// and output token budget for a provider. Falls back to the Bedrock default
// when the provider is not registered.
func (r *CapabilityRegistry) CombinedTokenCeiling(provider string) int {
	caps, err := r.GetProviderCapabilities(provider)
	if err != nil || caps.Constraints.CombinedTokenCeiling == 0 {
		return fallbackCombinedTokenCeiling
	}
	return caps.Constraints.CombinedTokenCeiling
}

// ConvertEffortToBudget converts effort level to token budget
// Falls back to default budgets if model not found in registry
func (r *CapabilityRegistry) ConvertEffortToBudget(provider, model, effort string) (int, error) {
	// Default reasoning budgets (used when model not in registry)
	defaultBudgets := map[string]int{
		"low":    2000,
		"medium": 5000,
		"high":   12000,
	}

	modelCap, err := r.GetModelCapability(provider, model)
	if err != nil {
		// Model not in registry - use defaults
		budget, ok := defaultBudgets[effort]
		if !ok {
			return 0, fmt.Errorf("unknown effort level: %s (valid: low, medium, high)", effort)
		}
		return budget, nil
	}

	budget, ok := modelCap.Reasoning.EffortToBudget[effort]
	if !ok {
		defaultBudget, defaultOk := defaultBudgets[effort]
		if !defaultOk {
			return 0, fmt.Errorf("unknown effort level: %s (valid: low, medium, high)", effort)
		}
		return defaultBudget, nil
	}
	return budget, nil
}

// LoadCapabilitiesFromFile loads provider capabilities from a YAML file.
// This allows library users to override embedded capabilities with custom data.
// The file format should match the embedded YAML structure.
func (r *CapabilityRegistry) LoadCapabilitiesFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read capabilities file: %w", err)
	}

	var caps ProviderCapabilities
	if err := yaml.Unmarshal(data, &caps); err != nil {
		return fmt.Errorf("failed to unmarshal capabilities: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities[caps.Provider] = &caps

	return nil
}

// RegisterProviderCapabilities programmatically registers provider capabilities.
// This allows library users to define capabilities in code rather than YAML.
func (r *CapabilityRegistry) RegisterProviderCapabilities(provider string, caps *ProviderCapabilities) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities[provider] = caps
}

// LoadCapabilitiesFromFile is a convenience function that calls the global registry's LoadCapabilitiesFromFile.
func LoadCapabilitiesFromFile(path string) error {
	return GetCapabilityRegistry().LoadCapabilitiesFromFile(path)
}

// RegisterProviderCapabilities is a convenience function that calls the global registry's RegisterProviderCapabilities.
func RegisterProviderCapabilities(provider string, caps *ProviderCapabilities) {
	GetCapabilityRegistry().RegisterProviderCapabilities(provider, caps)
}
