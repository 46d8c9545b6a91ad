package bedrock

import (
	"context"
	"fmt"

	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	bedrockllm "github.com/haowjy/bedrock-llm-go"
)

// convertMessages converts library messages to Converse API format,
// resolving image references as it goes. The per-request image cap is
// enforced before each resolution: when a request carries more than
// maxImages images, conversion fails without resolving the one over the
// limit.
func convertMessages(ctx context.Context, messages []bedrockllm.Message, resolver bedrockllm.ImageResolver, maxImages int) ([]brtypes.Message, error) {
	result := make([]brtypes.Message, 0, len(messages))
	imageCount := 0

	for i, msg := range messages {
		role, err := convertRole(msg.Role)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}

		var content []brtypes.ContentBlock

		if len(msg.Parts) > 0 {
			for j, part := range msg.Parts {
				switch part.Type {
				case bedrockllm.PartTypeText:
					content = append(content, &brtypes.ContentBlockMemberText{Value: part.Text})

				case bedrockllm.PartTypeImageURL:
					if imageCount >= maxImages {
						return nil, &bedrockllm.ValidationError{
							Field:  "messages",
							Value:  imageCount + 1,
							Reason: fmt.Sprintf("maximum of %d images per request exceeded", maxImages),
							Err:    bedrockllm.ErrTooManyImages,
						}
					}

					img, err := resolver.Resolve(ctx, part.ImageURL)
					if err != nil {
						return nil, fmt.Errorf("message %d, part %d: %w", i, j, err)
					}

					content = append(content, &brtypes.ContentBlockMemberImage{
						Value: brtypes.ImageBlock{
							Format: imageFormat(img.Format),
							Source: &brtypes.ImageSourceMemberBytes{Value: img.Data},
						},
					})
					imageCount++

				default:
					return nil, fmt.Errorf("message %d, part %d: unsupported part type '%s'", i, j, part.Type)
				}
			}
		} else {
			// Plain-string message
			content = append(content, &brtypes.ContentBlockMemberText{Value: msg.Content})
		}

		result = append(result, brtypes.Message{
			Role:    role,
			Content: content,
		})
	}

	return result, nil
}

// convertRole maps a library role to a Converse conversation role. System
// messages are popped before conversion; anything else here is a caller bug.
func convertRole(role string) (brtypes.ConversationRole, error) {
	switch role {
	case "user":
		return brtypes.ConversationRoleUser, nil
	case "assistant":
		return brtypes.ConversationRoleAssistant, nil
	default:
		return "", fmt.Errorf("unsupported role '%s'", role)
	}
}

// imageFormat maps a library format tag to the Converse image format enum.
func imageFormat(format string) brtypes.ImageFormat {
	if format == bedrockllm.ImageFormatPNG {
		return brtypes.ImageFormatPng
	}
	return brtypes.ImageFormatJpeg
}
