package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumelift/internal/ats"
	"resumelift/internal/config"
	"resumelift/internal/enhance"
	"resumelift/internal/observability"
	"resumelift/internal/pipeline"
	"resumelift/internal/types"
)

func newTestServer(t *testing.T, apiKeys []string) (*Server, *observability.ObservabilityManager) {
	t.Helper()

	logger := newTestLogger(t)
	engine := ats.NewEngine(ats.DefaultLexicon())
	chain := enhance.NewChain(engine, nil, logger)
	pipe := pipeline.NewController(engine, chain, logger)

	cfg := &config.Config{}
	cfg.Observability.HealthCheck.Timeout = 0

	srv := NewServer(cfg, ServerConfig{
		Host:           "localhost",
		Port:           "8080",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: 1 << 20,
		ArtifactDir:    t.TempDir(),
	}, pipe, nil, logger)

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, cfg)
	if err != nil {
		t.Fatalf("NewObservabilityManager() error = %v", err)
	}
	t.Cleanup(func() {
		if err := om.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	})

	return srv, om
}

func TestHealthHandlerFallbackOnlyMode(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.healthHandler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	if body["service"] != "resumelift" {
		t.Errorf("service = %v, want resumelift", body["service"])
	}
	models, ok := body["ai_models"].(map[string]any)
	if !ok {
		t.Fatalf("ai_models missing: %v", body["ai_models"])
	}
	if models["configured"] != false {
		t.Errorf("ai_models.configured = %v, want false", models["configured"])
	}
}

func TestScoreHandler(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createScoreHandler(om)

	payload := `{"text": "john@example.com\nEXPERIENCE\nManaged a team and increased revenue by 30%"}`
	r := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var out types.ScoreOutput
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out.Categories.Contact == 0 {
		t.Error("contact score should be non-zero for text with an email address")
	}
}

func TestScoreHandlerRejectsEmptyText(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createScoreHandler(om)

	r := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{"text": "  "}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestEnhanceHandlerNeverRegresses(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createEnhanceHandler(om)

	payload := `{"text": "jane@example.com | 555-0100 | linkedin.com/in/jane\n\nEXPERIENCE\nSoftware Engineer, 2020 - 2023\n- Led migration that reduced costs by 40%\n\nSKILLS\nPython, Go, SQL"}`
	r := httptest.NewRequest(http.MethodPost, "/enhance", strings.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var out types.EnhanceOutput
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out.EnhancedScore < out.OriginalScore {
		t.Errorf("enhanced score %d regressed below original %d", out.EnhancedScore, out.OriginalScore)
	}
	if out.Strategy == "" {
		t.Error("strategy should always be reported")
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv, _ := newTestServer(t, []string{"valid-key-12345"})

	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	handler := srv.authMiddleware(next)

	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"missing key", nil, http.StatusUnauthorized},
		{"invalid key", map[string]string{"X-API-Key": "wrong"}, http.StatusUnauthorized},
		{"valid key", map[string]string{"X-API-Key": "valid-key-12345"}, http.StatusOK},
		{"valid bearer token", map[string]string{"Authorization": "Bearer valid-key-12345"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/enhance", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			handler(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestArtifactFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "resume", "enhanced_resume.pdf"},
		{"strips extension", "cv.pdf", "enhanced_cv.pdf"},
		{"strips directories", "../../etc/passwd", "enhanced_passwd.pdf"},
		{"empty falls back", "", "enhanced_resume.pdf"},
		{"dot falls back", ".", "enhanced_resume.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactFileName(tt.in); got != tt.want {
				t.Errorf("artifactFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDownloadHandlerRejectsNonPDF(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createDownloadHandler(om)

	r := httptest.NewRequest(http.MethodGet, "/download/secrets.txt", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestDownloadHandlerMissingArtifact(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createDownloadHandler(om)

	r := httptest.NewRequest(http.MethodGet, "/download/enhanced_missing.pdf", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("maskAPIKey(short) = %q, want ****", got)
	}
	if got := maskAPIKey("abcdefgh-rest-of-key"); got != "abcdefgh****" {
		t.Errorf("maskAPIKey() = %q, want abcdefgh****", got)
	}
}

func TestProcessHandlerWritesArtifact(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createProcessHandler(om)

	payload := `{"text": "john@example.com\nPROFESSIONAL EXPERIENCE\nManaged a team of five engineers and increased revenue by 30%", "name": "resume.pdf"}`
	r := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var result types.ProcessOutput
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.OutputFile != "enhanced_resume.pdf" {
		t.Errorf("OutputFile = %q, want enhanced_resume.pdf", result.OutputFile)
	}

	data, err := os.ReadFile(filepath.Join(srv.ArtifactDir, result.OutputFile))
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("artifact is not a PDF: %q", data[:min(8, len(data))])
	}

	entries, err := os.ReadDir(srv.ArtifactDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("artifact dir should hold exactly the finished PDF, got %d entries", len(entries))
	}
}

func TestProcessHandlerRenderFailureLeavesNoArtifact(t *testing.T) {
	srv, om := newTestServer(t, nil)
	srv.ArtifactDir = filepath.Join(srv.ArtifactDir, "missing")
	handler := srv.createProcessHandler(om)

	payload := `{"text": "john@example.com\nPROFESSIONAL EXPERIENCE\nManaged a team of five engineers and increased revenue by 30%", "name": "resume.pdf"}`
	r := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if _, err := os.Stat(filepath.Join(srv.ArtifactDir, "enhanced_resume.pdf")); !os.IsNotExist(err) {
		t.Error("a render failure must not leave an artifact behind")
	}
}
