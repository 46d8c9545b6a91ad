package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	bedrockllm "github.com/haowjy/bedrock-llm-go"
)

// defaultSystemPrompt is used when neither the options nor the history
// carry a system message.
const defaultSystemPrompt = "you are an intelligent ai assistant"

// buildConverseInput constructs Converse API parameters from a ChatRequest.
// This function is shared between Complete and Stream to avoid duplication.
// All request validation that must happen before dispatch lives here:
// option ranges, the per-request image cap (enforced during message
// conversion), and the combined reasoning/output token ceiling.
func (p *Provider) buildConverseInput(ctx context.Context, req *bedrockllm.ChatRequest) (*bedrockruntime.ConverseInput, error) {
	opts := req.Options
	if opts == nil {
		opts = &bedrockllm.RequestOptions{}
	}

	if err := bedrockllm.ValidateRequestOptions(opts); err != nil {
		return nil, err
	}

	providerName := p.Name().String()
	registry := bedrockllm.GetCapabilityRegistry()

	// System message: an explicit option wins over one embedded in history.
	system, history := bedrockllm.PopSystemMessage(req.Messages)
	if opts.System != nil {
		system = *opts.System
	}
	if system == "" {
		system = defaultSystemPrompt
	}

	maxTokens := opts.GetMaxTokens(bedrockllm.DefaultMaxTokens)

	// Reasoning budget check happens before any image resolution or
	// network work: no partial request is ever sent.
	var reasoningBudget int
	if opts.IsReasoningEnabled() {
		reasoningBudget = opts.GetReasoningBudgetTokens(providerName, req.Model)
		if ceiling := registry.CombinedTokenCeiling(providerName); reasoningBudget+maxTokens > ceiling {
			return nil, &bedrockllm.BudgetError{
				BudgetTokens: reasoningBudget,
				MaxTokens:    maxTokens,
				Ceiling:      ceiling,
			}
		}
	}

	messages, err := convertMessages(ctx, history, p.resolver, registry.MaxImagesPerRequest(providerName))
	if err != nil {
		return nil, err
	}

	input := &bedrockruntime.ConverseInput{
		ModelId:  aws.String(req.Model),
		Messages: messages,
		System: []brtypes.SystemContentBlock{
			&brtypes.SystemContentBlockMemberText{Value: system},
		},
		InferenceConfig: &brtypes.InferenceConfiguration{
			MaxTokens:     aws.Int32(int32(maxTokens)),
			StopSequences: opts.Stop,
		},
	}

	extra := make(map[string]interface{})

	if opts.IsReasoningEnabled() {
		// Extended thinking rejects top_k/top_p overrides and requires
		// default temperature, so only the thinking config is forwarded.
		extra["thinking"] = map[string]interface{}{
			"type":          "enabled",
			"budget_tokens": reasoningBudget,
		}
	} else {
		input.InferenceConfig.Temperature = aws.Float32(float32(opts.GetTemperature(bedrockllm.DefaultTemperature)))
		input.InferenceConfig.TopP = aws.Float32(float32(opts.GetTopP(bedrockllm.DefaultTopP)))
		extra["top_k"] = opts.GetTopK(bedrockllm.DefaultTopK)
	}

	input.AdditionalModelRequestFields = document.NewLazyDocument(extra)

	return input, nil
}

// toStreamInput maps shared Converse parameters onto the streaming call's
// input struct. The two operations take identical fields in distinct types.
func toStreamInput(input *bedrockruntime.ConverseInput) *bedrockruntime.ConverseStreamInput {
	return &bedrockruntime.ConverseStreamInput{
		ModelId:                      input.ModelId,
		Messages:                     input.Messages,
		System:                       input.System,
		InferenceConfig:              input.InferenceConfig,
		AdditionalModelRequestFields: input.AdditionalModelRequestFields,
	}
}
