package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	bedrocksdk "github.com/aws/aws-sdk-go-v2/service/bedrock"
	bctypes "github.com/aws/aws-sdk-go-v2/service/bedrock/types"

	bedrockllm "github.com/haowjy/bedrock-llm-go"
)

// Catalog listing is scoped to Anthropic foundation models.
const anthropicVendor = "Anthropic"

// Inference type values reported in InferenceTypesSupported. The SDK enum
// only predeclares ON_DEMAND/PROVISIONED; INFERENCE_PROFILE arrived later
// in the API, so both are matched by value.
const (
	inferenceTypeOnDemand = bctypes.InferenceTypeOnDemand
	inferenceTypeProfile  = bctypes.InferenceType("INFERENCE_PROFILE")
)

// ListModels returns the invocable Anthropic models in the configured
// region. ON_DEMAND models are listed under their foundation model id;
// models that are only reachable through an inference profile are listed
// under the profile id resolved by model ARN. Models with neither are
// omitted.
func (p *Provider) ListModels(ctx context.Context) ([]bedrockllm.ModelInfo, error) {
	out, err := p.catalog.ListFoundationModels(ctx, &bedrocksdk.ListFoundationModelsInput{
		ByProvider: aws.String(anthropicVendor),
	})
	if err != nil {
		return nil, &bedrockllm.ProviderError{
			Provider: p.Name().String(),
			Message:  fmt.Sprintf("list foundation models failed: %v", err),
			Err:      err,
		}
	}

	var models []bedrockllm.ModelInfo

	// Profiles are fetched lazily: only when some model requires one.
	var profiles []bctypes.InferenceProfileSummary
	profilesLoaded := false

	for _, summary := range out.ModelSummaries {
		onDemand := false
		profileOnly := false
		for _, it := range summary.InferenceTypesSupported {
			switch it {
			case inferenceTypeOnDemand:
				onDemand = true
			case inferenceTypeProfile:
				profileOnly = true
			}
		}

		if onDemand {
			models = append(models, bedrockllm.ModelInfo{
				ID:   aws.ToString(summary.ModelId),
				Name: aws.ToString(summary.ModelName),
			})
			continue
		}

		if profileOnly {
			if !profilesLoaded {
				profiles, err = p.listInferenceProfiles(ctx)
				if err != nil {
					return nil, err
				}
				profilesLoaded = true
			}

			if id := inferenceProfileIDFor(profiles, aws.ToString(summary.ModelArn)); id != "" {
				models = append(models, bedrockllm.ModelInfo{
					ID:   id,
					Name: aws.ToString(summary.ModelName),
				})
			}
		}
	}

	return models, nil
}

// listInferenceProfiles fetches all inference profile summaries, following
// pagination.
func (p *Provider) listInferenceProfiles(ctx context.Context) ([]bctypes.InferenceProfileSummary, error) {
	var summaries []bctypes.InferenceProfileSummary
	var nextToken *string

	for {
		out, err := p.catalog.ListInferenceProfiles(ctx, &bedrocksdk.ListInferenceProfilesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, &bedrockllm.ProviderError{
				Provider: p.Name().String(),
				Message:  fmt.Sprintf("list inference profiles failed: %v", err),
				Err:      err,
			}
		}

		summaries = append(summaries, out.InferenceProfileSummaries...)

		if out.NextToken == nil {
			return summaries, nil
		}
		nextToken = out.NextToken
	}
}

// inferenceProfileIDFor finds the inference profile serving the given model
// ARN. Returns "" when no profile covers the model.
func inferenceProfileIDFor(profiles []bctypes.InferenceProfileSummary, modelArn string) string {
	if modelArn == "" {
		return ""
	}
	for _, profile := range profiles {
		for _, model := range profile.Models {
			if aws.ToString(model.ModelArn) == modelArn {
				return aws.ToString(profile.InferenceProfileId)
			}
		}
	}
	return ""
}
