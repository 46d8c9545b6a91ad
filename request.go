package bedrockllm

// Content part type constants
const (
	PartTypeText     = "text"
	PartTypeImageURL = "image_url"
)

// ContentPart is one piece of a multimodal message. A part is either text
// or an image reference (inline data URL or remote URL).
type ContentPart struct {
	// Type is "text" or "image_url"
	Type string `json:"type"`

	// Text holds the content for text parts
	Text string `json:"text,omitempty"`

	// ImageURL holds the reference for image parts. Either an inline
	// base64 data URL ("data:image/png;base64,...") or a remote URL.
	ImageURL string `json:"image_url,omitempty"`
}

// Message represents a single message in the conversation history.
// Content carries plain-string messages; Parts carries multimodal ones.
// When Parts is non-empty it takes precedence over Content.
type Message struct {
	// Role is "system", "user", or "assistant"
	Role string `json:"role"`

	// Content is the plain-text content (mutually exclusive with Parts)
	Content string `json:"content,omitempty"`

	// Parts is the multimodal content (text and image parts)
	Parts []ContentPart `json:"parts,omitempty"`
}

// ChatRequest contains the parameters for a chat completion request.
type ChatRequest struct {
	// Messages contains the conversation history, system message included.
	// Adapters pop the system message into the provider's system field.
	Messages []Message

	// Model is the model identifier (e.g.,
	// "anthropic.claude-3-5-sonnet-20240620-v1:0" or an inference profile id)
	Model string

	// Options contains all request options (temperature, max_tokens,
	// reasoning settings, etc.). Provider adapters extract what they
	// support from this unified struct.
	Options *RequestOptions
}

// PopSystemMessage splits the leading system message off a conversation
// history. Returns the system text (empty if none) and the remaining
// messages. Only the first system message is popped; providers that accept
// a single system field have no defined semantics for more than one.
func PopSystemMessage(messages []Message) (string, []Message) {
	for i, msg := range messages {
		if msg.Role != "system" {
			continue
		}
		system := msg.Content
		if system == "" {
			// Multimodal system messages: concatenate the text parts.
			for _, part := range msg.Parts {
				if part.Type == PartTypeText {
					system += part.Text
				}
			}
		}
		rest := make([]Message, 0, len(messages)-1)
		rest = append(rest, messages[:i]...)
		rest = append(rest, messages[i+1:]...)
		return system, rest
	}
	return "", messages
}
