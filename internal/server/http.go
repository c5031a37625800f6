package server

import (
	"time"

	"resumelift/internal/ai"
	"resumelift/internal/config"
	resumeliftErrors "resumelift/internal/errors"
	"resumelift/internal/pipeline"
)

// ScoreRequest represents the request body for the score endpoint
type ScoreRequest struct {
	Text string `json:"text"`
}

// EnhanceRequest represents the request body for the enhance endpoint
type EnhanceRequest struct {
	Text string `json:"text"`
}

// ProcessRequest represents the request body for the process endpoint.
// Name, when set, becomes the base name of the rendered PDF artifact.
type ProcessRequest struct {
	Text string `json:"text"`
	Name string `json:"name,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rendered PDFs are written here and served from /download/
	ArtifactDir string

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Processing pipeline and the AI providers backing it. Rewriters is
	// empty when no API key is configured; the chain then runs in
	// fallback-only mode.
	Pipeline  *pipeline.Controller
	Rewriters []*ai.GeminiRewriter

	// Logger
	Logger *resumeliftErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
// (Refactored to reduce long parameter list in NewServer)
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	ArtifactDir    string
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, pipe *pipeline.Controller, rewriters []*ai.GeminiRewriter, logger *resumeliftErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerWindow,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		ArtifactDir:    cfg.ArtifactDir,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Pipeline:       pipe,
		Rewriters:      rewriters,
		Logger:         logger,
	}
}
