package bedrockllm

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Supported image format tags (Converse API image formats).
const (
	ImageFormatPNG  = "png"
	ImageFormatJPEG = "jpeg"
)

// ImageSource holds resolved image bytes plus the format tag the request
// payload needs alongside them.
type ImageSource struct {
	Format string
	Data   []byte
}

// ImageResolver turns an image reference (inline data URL or remote URL)
// into raw bytes and a format tag. Adapters take a resolver so tests can
// count or fake resolutions.
type ImageResolver interface {
	Resolve(ctx context.Context, url string) (*ImageSource, error)
}

// HTTPImageResolver resolves inline base64 data URLs locally and fetches
// remote URLs over HTTP.
type HTTPImageResolver struct {
	// Client is the HTTP client for remote fetches. Falls back to a
	// client with a 30s timeout when nil.
	Client *http.Client
}

func (r *HTTPImageResolver) httpClient() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// Resolve implements ImageResolver.
func (r *HTTPImageResolver) Resolve(ctx context.Context, url string) (*ImageSource, error) {
	if strings.HasPrefix(url, "data:image") {
		return decodeDataURL(url)
	}
	return r.fetch(ctx, url)
}

// decodeDataURL decodes an inline "data:image/<fmt>;base64,<payload>" reference.
func decodeDataURL(url string) (*ImageSource, error) {
	idx := strings.Index(url, ",")
	if idx < 0 {
		return nil, &ValidationError{
			Field:  "image_url",
			Value:  truncateForError(url),
			Reason: "data URL missing base64 payload",
			Err:    ErrInvalidRequest,
		}
	}

	data, err := base64.StdEncoding.DecodeString(url[idx+1:])
	if err != nil {
		return nil, &ValidationError{
			Field:  "image_url",
			Value:  truncateForError(url),
			Reason: fmt.Sprintf("invalid base64 image data: %v", err),
			Err:    ErrInvalidRequest,
		}
	}

	return &ImageSource{
		Format: imageFormatOf(url[:idx]),
		Data:   data,
	}, nil
}

// fetch downloads a remote image reference.
func (r *HTTPImageResolver) fetch(ctx context.Context, url string) (*ImageSource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	resp, err := r.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			Provider:   "image_fetch",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status fetching image %s", url),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}

	return &ImageSource{
		Format: imageFormatOf(url),
		Data:   data,
	}, nil
}

// imageFormatOf maps an image reference to a format tag: png when the
// reference names png, jpeg otherwise.
func imageFormatOf(ref string) string {
	if strings.HasSuffix(ref, ".png") || strings.Contains(ref, "image/png") {
		return ImageFormatPNG
	}
	return ImageFormatJPEG
}

// truncateForError keeps potentially huge data URLs out of error messages.
func truncateForError(s string) string {
	const max = 64
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
