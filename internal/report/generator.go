package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/company-insight/internal/llm"
	"github.com/jonathan/company-insight/internal/registry"
)

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "deepseek-chat"

// Sampling parameters fixed by the analyst template.
const (
	defaultMaxTokens   = 1500
	defaultTemperature = 0.5
)

// Generator produces an analysis report from a registry record. The
// completion output is returned verbatim; no post-validation of structure or
// content is performed.
type Generator struct {
	client llm.Client
	model  string
	logger *zap.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithModel overrides the completion model.
func WithModel(model string) GeneratorOption {
	return func(g *Generator) {
		g.model = model
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a report generator on top of a completion client.
func NewGenerator(client llm.Client, opts ...GeneratorOption) *Generator {
	g := &Generator{
		client: client,
		model:  DefaultModel,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate runs one completion for the record and returns the first choice's
// content verbatim. Errors from the completion client pass through typed:
// llm.ErrMissingAPIKey, *llm.TransportError, *llm.ProviderError,
// *llm.MalformedResponseError.
func (g *Generator) Generate(ctx context.Context, record registry.Record) (string, error) {
	messages, err := BuildMessages(record)
	if err != nil {
		return "", err
	}

	temperature := defaultTemperature
	resp, err := g.client.Complete(ctx, llm.Request{
		Model:       g.model,
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", err
	}

	g.logger.Debug("report generated",
		zap.String("model", resp.Model),
		zap.String("finish_reason", resp.FinishReason),
		zap.Int("length", len(resp.Content)))

	return resp.Content, nil
}
