package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/company-insight/internal/config"
	"github.com/jonathan/company-insight/internal/llm"
	"github.com/jonathan/company-insight/internal/pipeline"
	"github.com/jonathan/company-insight/internal/registry"
	"github.com/jonathan/company-insight/internal/report"
	"github.com/jonathan/company-insight/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the analysis pipeline: POST /analyze accepts a company name and returns the raw registry record plus the generated report.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

// newAnalyzer wires the pipeline stages from configuration.
func newAnalyzer(cfg *config.Config, logger *zap.Logger) *pipeline.Analyzer {
	regOpts := []registry.Option{
		registry.WithLogger(logger),
		registry.WithHTTPClient(&http.Client{Timeout: cfg.RegistryTimeout}),
	}
	if cfg.RegistryUserAgent != "" {
		regOpts = append(regOpts, registry.WithUserAgent(cfg.RegistryUserAgent))
	}
	lookup := registry.NewClient(cfg.RegistryBaseURL, cfg.RegistryToken, regOpts...)

	completions := llm.NewHTTPClient(cfg.CompletionBaseURL, cfg.CompletionAPIKey,
		llm.WithLogger(logger),
		llm.WithHTTPClient(&http.Client{Timeout: cfg.CompletionTimeout}))

	genOpts := []report.GeneratorOption{report.WithLogger(logger)}
	if cfg.CompletionModel != "" {
		genOpts = append(genOpts, report.WithModel(cfg.CompletionModel))
	}
	generator := report.NewGenerator(completions, genOpts...)

	return pipeline.New(lookup, generator, logger)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if servePort > 0 {
		cfg.Port = servePort
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	// Missing secrets are surfaced per request as 500s, not at startup.
	for _, name := range cfg.MissingSecrets() {
		logger.Warn("secret not configured; requests will fail until it is set",
			zap.String("env", name))
	}

	analyzer := newAnalyzer(cfg, logger)
	srv := server.New(server.Config{Port: cfg.Port}, analyzer, logger)

	return srv.Start()
}
