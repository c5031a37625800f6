package cli

import (
	"context"
	"fmt"
	"time"

	"resumelift/internal/ai"
	"resumelift/internal/ats"
	"resumelift/internal/config"
	"resumelift/internal/enhance"
	"resumelift/internal/errors"
	"resumelift/internal/observability"
	"resumelift/internal/pipeline"
	"resumelift/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume scoring and enhancement",
	Long: `Start an HTTP server that provides REST API endpoints for resume scoring,
enhancement, and PDF rendering.

Available endpoints:
- POST /score: Score resume text against the ATS rubric
- POST /enhance: Enhance resume text through the AI/fallback chain
- POST /process: Enhance resume text and render a PDF artifact
- POST /upload: Upload a PDF/image resume for end-to-end processing
- GET /download/{artifact}: Download a rendered PDF artifact
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("artifact-dir", "", "Directory for rendered PDF artifacts (overrides config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
	bindFlag("server.artifactdir", "artifact-dir")
	bindFlag("server.tls.mode", "tls-mode")
	bindFlag("server.tls.certfile", "cert-file")
	bindFlag("server.tls.keyfile", "key-file")
	bindFlag("server.tls.cafile", "ca-file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Validate TLS configuration after applying overrides
	tempConfig := &config.Config{Server: cfg.Server}
	if err := tempConfig.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	om, err := observability.NewObservabilityManager(
		observability.GetObservabilityConfig(cfg, Version), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := om.Shutdown(shutdownCtx); err != nil {
			logger.LogError(err, "Failed to shutdown observability")
		}
	}()

	engine, err := buildEngine(cfg)
	if err != nil {
		return fmt.Errorf("failed to build scoring engine: %w", err)
	}

	watcher, err := startLexiconWatcher(cfg, engine, logger)
	if err != nil {
		return err
	}
	if watcher != nil {
		defer func() {
			if err := watcher.Stop(); err != nil {
				logger.LogError(err, "Failed to stop lexicon watcher")
			}
		}()
	}

	rewriters, err := ai.NewGeminiProviders(&cfg.AI, logger)
	if err != nil {
		return fmt.Errorf("failed to build AI providers: %w", err)
	}

	chain := enhance.NewChain(engine, ai.InstrumentRewriters(rewriters, om), logger)
	if cfg.AI.RewritePrompt != "" {
		chain.SetPromptTemplate(cfg.AI.RewritePrompt)
	}
	controller := pipeline.NewController(engine, chain, logger)

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.Server.MaxUploadSize,
		ArtifactDir:    cfg.Server.ArtifactDir,
		RateLimit:      &cfg.Server.RateLimit,
	}
	return server.NewServer(cfg, serverCfg, controller, rewriters, logger).Start(om)
}

// startLexiconWatcher hot-reloads the scoring lexicon when the configured
// file changes. Returns nil when watching is disabled or no file is set.
func startLexiconWatcher(cfg *config.Config, engine *ats.Engine, logger *errors.Logger) (*config.LexiconWatcher, error) {
	if !cfg.Scoring.WatchLexicon || cfg.Scoring.LexiconFile == "" {
		return nil, nil
	}

	reload := func() {
		lex, err := config.LoadLexicon(cfg.Scoring.LexiconFile)
		if err != nil {
			logger.LogError(err, "Failed to reload lexicon, keeping previous one",
				"path", cfg.Scoring.LexiconFile)
			return
		}
		engine.SetLexicon(lex)
		logger.Info("Lexicon reloaded", "path", cfg.Scoring.LexiconFile)
	}

	watcher, err := config.NewLexiconWatcher(cfg.Scoring.LexiconFile, cfg.Scoring.DebounceDelay, reload, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create lexicon watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return nil, fmt.Errorf("failed to start lexicon watcher: %w", err)
	}

	logger.Info("Lexicon watcher started",
		"path", cfg.Scoring.LexiconFile,
		"debounce", cfg.Scoring.DebounceDelay)

	return watcher, nil
}
