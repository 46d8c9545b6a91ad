package bedrock

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	bedrockllm "github.com/haowjy/bedrock-llm-go"
)

// Placeholder catalog entries surfaced instead of a hard failure when the
// catalog cannot be fetched. Callers render these like any other model so
// misconfiguration is visible in the model picker, not fatal at startup.
var (
	configErrorModel = bedrockllm.ModelInfo{
		ID:   "error",
		Name: "Could not fetch models from Bedrock, please set up AWS Key/Secret or Instance/Task Role.",
	}
	permissionErrorModel = bedrockllm.ModelInfo{
		ID:   "error",
		Name: "Could not fetch models from Bedrock, please check permission.",
	}
)

// PipeRequest is the caller-facing request shape: the latest user text, the
// target model, the full conversation history, and the request options.
type PipeRequest struct {
	// UserMessage is the latest user message (also present as the last
	// user turn of Messages; carried separately for logging parity with
	// the upstream surface)
	UserMessage string

	// Model is the model or inference profile id to invoke
	Model string

	// Messages is the conversation history, system message included
	Messages []bedrockllm.Message

	// Options carries sampling, streaming, and reasoning settings
	Options *bedrockllm.RequestOptions
}

// PipeResult is the union result of a Pipe call: a complete text response
// (or a formatted error string) for non-streaming requests, a lazy fragment
// channel for streaming ones.
type PipeResult struct {
	// Text holds the complete response for non-streaming requests, or an
	// "Error: ..." string when the request fails at this boundary
	Text string

	// Fragments is non-nil for successful streaming requests. Reasoning
	// regions arrive delimited by the library's reasoning markers.
	Fragments <-chan string
}

// Pipeline is the caller-facing adapter surface. It owns the provider
// handle and the cached model catalog, and replaces both wholesale whenever
// the configuration changes.
type Pipeline struct {
	mu       sync.RWMutex
	cfg      bedrockllm.Config
	provider *Provider
	models   []bedrockllm.ModelInfo

	logger zerolog.Logger
}

// NewPipeline creates a pipeline from the given configuration and performs
// the initial refresh. Configuration problems are not fatal: they surface
// as a placeholder model entry until a later refresh succeeds.
func NewPipeline(ctx context.Context, cfg bedrockllm.Config) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		logger: log.With().Str("component", "bedrock_pipeline").Logger(),
	}
	p.Refresh(ctx)
	return p
}

// Refresh rebuilds both client handles from the current configuration and
// re-fetches the model catalog. The old provider is replaced wholesale; a
// failed refresh leaves a placeholder catalog entry instead of an error.
func (p *Pipeline) Refresh(ctx context.Context) {
	p.mu.RLock()
	cfg := p.cfg
	p.mu.RUnlock()

	provider, err := NewProvider(ctx, cfg)
	if err != nil {
		p.logger.Error().Err(err).Msg("provider initialization failed")
		p.mu.Lock()
		p.provider = nil
		p.models = []bedrockllm.ModelInfo{configErrorModel}
		p.mu.Unlock()
		return
	}

	models, err := provider.ListModels(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("model catalog refresh failed")
		models = []bedrockllm.ModelInfo{permissionErrorModel}
	}

	p.mu.Lock()
	p.provider = provider
	p.models = models
	p.mu.Unlock()

	p.logger.Info().Int("models", len(models)).Str("region", cfg.Region).Msg("catalog refreshed")
}

// SetConfig replaces the pipeline configuration and refreshes clients and
// catalog against it.
func (p *Pipeline) SetConfig(ctx context.Context, cfg bedrockllm.Config) {
	p.mu.Lock()
	p.cfg = cfg
	p.mu.Unlock()
	p.Refresh(ctx)
}

// OnStartup is the process-start lifecycle hook.
func (p *Pipeline) OnStartup(ctx context.Context) {
	p.logger.Info().Msg("startup")
	p.Refresh(ctx)
}

// OnShutdown is the process-stop lifecycle hook.
func (p *Pipeline) OnShutdown(ctx context.Context) {
	p.logger.Info().Msg("shutdown")
}

// OnConfigUpdated is invoked when the environment-sourced configuration
// changes; it re-reads the environment and rebuilds the client handles.
func (p *Pipeline) OnConfigUpdated(ctx context.Context) {
	p.logger.Info().Msg("config updated")
	p.SetConfig(ctx, bedrockllm.ConfigFromEnv())
}

// Models returns the cached model catalog from the last refresh.
func (p *Pipeline) Models() []bedrockllm.ModelInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()

	models := make([]bedrockllm.ModelInfo, len(p.models))
	copy(models, p.models)
	return models
}

// Pipe forwards one chat request and translates the response into the
// uniform completion shape: a complete string for non-streaming requests, a
// lazy fragment stream (reasoning regions delimited) for streaming ones.
//
// Errors never cross this boundary as Go errors: validation, budget, and
// transport failures all come back as an "Error: ..." text result, matching
// the upstream pipeline contract.
func (p *Pipeline) Pipe(ctx context.Context, req PipeRequest) PipeResult {
	p.logger.Info().
		Str("model", req.Model).
		Int("history", len(req.Messages)).
		Int("user_message_len", len(req.UserMessage)).
		Msg("pipe request")

	p.mu.RLock()
	provider := p.provider
	p.mu.RUnlock()

	if provider == nil {
		return PipeResult{Text: "Error: provider not initialized, check AWS credentials and region"}
	}

	chatReq := &bedrockllm.ChatRequest{
		Model:    req.Model,
		Messages: req.Messages,
		Options:  req.Options,
	}

	if req.Options != nil && req.Options.IsStreaming() {
		events, err := provider.Stream(ctx, chatReq)
		if err != nil {
			return PipeResult{Text: fmt.Sprintf("Error: %v", err)}
		}
		return PipeResult{Fragments: bedrockllm.Fragments(events)}
	}

	completion, err := provider.Complete(ctx, chatReq)
	if err != nil {
		return PipeResult{Text: fmt.Sprintf("Error: %v", err)}
	}
	return PipeResult{Text: completion.Text}
}
