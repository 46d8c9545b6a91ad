package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	bedrocksdk "github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	bedrockllm "github.com/haowjy/bedrock-llm-go"
)

// converseAPI is the slice of the Bedrock runtime client the provider uses.
// Narrow interface so tests can substitute fakes.
type converseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
	ConverseStream(ctx context.Context, params *bedrockruntime.ConverseStreamInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseStreamOutput, error)
}

// catalogAPI is the slice of the Bedrock control-plane client the provider uses.
type catalogAPI interface {
	ListFoundationModels(ctx context.Context, params *bedrocksdk.ListFoundationModelsInput, optFns ...func(*bedrocksdk.Options)) (*bedrocksdk.ListFoundationModelsOutput, error)
	ListInferenceProfiles(ctx context.Context, params *bedrocksdk.ListInferenceProfilesInput, optFns ...func(*bedrocksdk.Options)) (*bedrocksdk.ListInferenceProfilesOutput, error)
}

// Provider implements the bedrockllm.Provider interface for Anthropic
// Claude models on AWS Bedrock's Converse API.
//
// A Provider owns its client handles. Configuration changes are applied by
// constructing a fresh Provider and replacing the old one wholesale, not by
// mutating a live Provider (see Pipeline.Refresh).
type Provider struct {
	runtime  converseAPI
	catalog  catalogAPI
	resolver bedrockllm.ImageResolver
}

// NewProvider creates a new Bedrock provider from the given configuration.
// Static credentials in cfg take precedence; otherwise the SDK's default
// credential chain (instance/task role, shared config) applies.
func NewProvider(ctx context.Context, cfg bedrockllm.Config) (*Provider, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Provider{
		runtime:  bedrockruntime.NewFromConfig(awsCfg),
		catalog:  bedrocksdk.NewFromConfig(awsCfg),
		resolver: &bedrockllm.HTTPImageResolver{},
	}, nil
}

// loadAWSConfig assembles the SDK configuration from the library Config.
func loadAWSConfig(ctx context.Context, cfg bedrockllm.Config) (aws.Config, error) {
	var optFns []func(*awsconfig.LoadOptions) error

	if cfg.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
	}

	if cfg.HasStaticCredentials() {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	return awsconfig.LoadDefaultConfig(ctx, optFns...)
}

// Name returns the provider identifier.
func (p *Provider) Name() bedrockllm.ProviderID {
	return bedrockllm.ProviderBedrock
}

// SupportsModel returns true if this provider supports the given model.
// Bedrock Anthropic model ids carry an "anthropic." segment, both as plain
// foundation model ids and as region-prefixed inference profile ids
// (e.g., "us.anthropic.claude-3-7-sonnet-20250219-v1:0").
func (p *Provider) SupportsModel(model string) bool {
	return strings.Contains(model, "anthropic.")
}

// Complete generates a complete (non-streaming) response via Converse.
func (p *Provider) Complete(ctx context.Context, req *bedrockllm.ChatRequest) (*bedrockllm.Completion, error) {
	if !p.SupportsModel(req.Model) {
		return nil, &bedrockllm.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not supported by Bedrock adapter (expected an 'anthropic.' model id)",
			Err:      bedrockllm.ErrInvalidModel,
		}
	}

	// Build Converse parameters (shared logic with Stream)
	input, err := p.buildConverseInput(ctx, req)
	if err != nil {
		return nil, err
	}

	out, err := p.runtime.Converse(ctx, input)
	if err != nil {
		return nil, &bedrockllm.ProviderError{
			Provider: p.Name().String(),
			Message:  fmt.Sprintf("converse call failed: %v", err),
			Err:      err,
		}
	}

	return convertConverseOutput(req.Model, out)
}

// convertConverseOutput converts a Converse response to library format.
func convertConverseOutput(model string, out *bedrockruntime.ConverseOutput) (*bedrockllm.Completion, error) {
	msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return nil, &bedrockllm.ProviderError{
			Provider: bedrockllm.ProviderBedrock.String(),
			Message:  "converse response carried no message output",
		}
	}

	completion := &bedrockllm.Completion{
		Text:             firstTextBlock(msg.Value.Content),
		Model:            model,
		StopReason:       string(out.StopReason),
		ResponseMetadata: make(map[string]interface{}),
	}

	if out.Usage != nil {
		completion.InputTokens = int(aws.ToInt32(out.Usage.InputTokens))
		completion.OutputTokens = int(aws.ToInt32(out.Usage.OutputTokens))
	}
	if out.Metrics != nil && out.Metrics.LatencyMs != nil {
		completion.ResponseMetadata["latency_ms"] = aws.ToInt64(out.Metrics.LatencyMs)
	}

	return completion, nil
}

// firstTextBlock returns the first text content block of a Converse message.
// Reasoning-enabled models prepend a reasoning block; the visible answer is
// the first plain text block.
func firstTextBlock(content []brtypes.ContentBlock) string {
	for _, block := range content {
		if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
			return text.Value
		}
	}
	return ""
}
