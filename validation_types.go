package bedrockllm

// Severity indicates how serious a validation warning is
type Severity string

const (
	SeverityInfo    Severity = "info"    // Informational (might be expected)
	SeverityWarning Severity = "warning" // Potentially problematic
	SeverityError   Severity = "error"   // Likely to cause API failure
)

// WarningCode is a machine-readable identifier for validation warnings
type WarningCode string

const (
	// Model warnings
	WarningCodeModelUnknown      WarningCode = "MODEL_UNKNOWN"
	WarningCodeCapabilityMissing WarningCode = "CAPABILITY_MISSING"

	// Reasoning warnings
	WarningCodeReasoningUnsupported   WarningCode = "REASONING_UNSUPPORTED"
	WarningCodeReasoningBudgetTooLow  WarningCode = "REASONING_BUDGET_TOO_LOW"
	WarningCodeReasoningBudgetTooHigh WarningCode = "REASONING_BUDGET_TOO_HIGH"
	WarningCodeReasoningEffortInvalid WarningCode = "REASONING_EFFORT_INVALID"
	WarningCodeCombinedBudgetTooHigh  WarningCode = "COMBINED_BUDGET_TOO_HIGH"

	// Vision warnings
	WarningCodeVisionUnsupported WarningCode = "VISION_UNSUPPORTED"
	WarningCodeTooManyImages     WarningCode = "TOO_MANY_IMAGES"

	// Parameter warnings
	WarningCodeTemperatureOutOfRange WarningCode = "TEMPERATURE_OUT_OF_RANGE"
	WarningCodeTopPOutOfRange        WarningCode = "TOP_P_OUT_OF_RANGE"
	WarningCodeTopKOutOfRange        WarningCode = "TOP_K_OUT_OF_RANGE"
)

// ValidationWarning represents a potential issue that might cause API failure.
// Warnings are informational; the hard limits (image cap, combined token
// ceiling) are additionally enforced as errors by the adapter before dispatch.
type ValidationWarning struct {
	Code     WarningCode // Machine-readable code
	Category string      // "model", "reasoning", "parameter", "vision"
	Field    string      // Field that might cause issues
	Value    any         // The potentially problematic value
	Message  string      // Human-readable warning
	Severity Severity    // How serious this warning is
}

// ValidationRule interface allows adding custom validation logic
type ValidationRule interface {
	// Name returns a human-readable name for this rule
	Name() string

	// Check validates a request and returns warnings
	Check(provider string, req *ChatRequest) []ValidationWarning
}
