package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"resumelift/internal/observability"
	"resumelift/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createScoreHandler wraps the score handler with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelift.api")
		_, span := tracer.Start(ctx, "api.score")
		defer span.End()

		var req ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Text) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "text field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.text_length", len(req.Text)),
			attribute.String("operation", "score"),
		)

		breakdown := s.Pipeline.Score(req.Text)
		result := types.ScoreOutput{
			Score: breakdown.Total,
			Categories: types.CategoryScores{
				Contact:     breakdown.Contact,
				Summary:     breakdown.Summary,
				Experience:  breakdown.Experience,
				Skills:      breakdown.Skills,
				Education:   breakdown.Education,
				ActionVerbs: breakdown.ActionVerbs,
				Structure:   breakdown.Structure,
			},
			Penalty: breakdown.Penalty,
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.Score),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createEnhanceHandler wraps the enhance handler with observability
func (s *Server) createEnhanceHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelift.api")
		ctx, span := tracer.Start(ctx, "api.enhance")
		defer span.End()

		var req EnhanceRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Text) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "text field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.text_length", len(req.Text)),
			attribute.String("operation", "enhance"),
		)

		processResult, err := s.Pipeline.Process(ctx, req.Text)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Failed to enhance resume", err.Error(), http.StatusUnprocessableEntity)
			return
		}

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "document_processed", true, om,
			attribute.String("strategy", string(processResult.Strategy)),
			attribute.Int("output.text_length", len(processResult.EnhancedText)))
		metrics.RecordScoreDelta(ctx, processResult.OriginalScore, processResult.EnhancedScore,
			string(processResult.Strategy), om)

		result := types.EnhanceOutput{
			OriginalScore: processResult.OriginalScore,
			EnhancedScore: processResult.EnhancedScore,
			Strategy:      string(processResult.Strategy),
			EnhancedText:  processResult.EnhancedText,
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("strategy", result.Strategy),
			attribute.Int("ats.original_score", result.OriginalScore),
			attribute.Int("ats.enhanced_score", result.EnhancedScore),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createProcessHandler wraps the process handler with observability
func (s *Server) createProcessHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelift.api")
		ctx, span := tracer.Start(ctx, "api.process")
		defer span.End()

		var req ProcessRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Text) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "text field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.text_length", len(req.Text)),
			attribute.String("operation", "process"),
		)

		result, err := s.processToArtifact(ctx, req.Text, req.Name, om)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "render"))
			writeErrorResponse(w, "Failed to render enhanced resume", err.Error(), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("strategy", result.Strategy),
			attribute.String("artifact", result.OutputFile),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// processToArtifact runs the pipeline on text and renders the enhanced
// resume into the artifact directory. The returned OutputFile is the bare
// file name, suitable for the /download/ endpoint.
func (s *Server) processToArtifact(ctx context.Context, text, name string, om *observability.ObservabilityManager) (types.ProcessOutput, error) {
	processResult, err := s.Pipeline.Process(ctx, text)
	if err != nil {
		return types.ProcessOutput{}, err
	}

	metrics := om.GetMetrics()
	metrics.RecordBusinessMetric(ctx, "document_processed", true, om,
		attribute.String("strategy", string(processResult.Strategy)))
	metrics.RecordScoreDelta(ctx, processResult.OriginalScore, processResult.EnhancedScore,
		string(processResult.Strategy), om)

	artifactName := artifactFileName(name)
	artifactPath := filepath.Join(s.ArtifactDir, artifactName)

	if err := s.Pipeline.RenderPDFToFile(processResult.EnhancedText, artifactPath); err != nil {
		metrics.RecordBusinessMetric(ctx, "document_rendered", false, om)
		return types.ProcessOutput{}, err
	}

	metrics.RecordBusinessMetric(ctx, "document_rendered", true, om,
		attribute.String("artifact", artifactName))

	s.Logger.Info("Rendered enhanced resume",
		"artifact", artifactName,
		"strategy", processResult.Strategy,
		"originalScore", processResult.OriginalScore,
		"enhancedScore", processResult.EnhancedScore)

	return types.ProcessOutput{
		OriginalScore: processResult.OriginalScore,
		EnhancedScore: processResult.EnhancedScore,
		Strategy:      string(processResult.Strategy),
		EnhancedText:  processResult.EnhancedText,
		OutputFile:    artifactName,
	}, nil
}

// artifactFileName builds a safe artifact name from a client-supplied base
// name. Path separators and extensions are stripped so artifacts always land
// directly in the artifact directory.
func artifactFileName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "resume"
	}
	return "enhanced_" + base + ".pdf"
}

// createUploadHandler handles multipart PDF/image uploads end to end:
// extract text, enhance, render, and report the artifact name.
func (s *Server) createUploadHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelift.api")
		ctx, span := tracer.Start(ctx, "api.upload")
		defer span.End()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid multipart form", err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing file", "multipart field 'file' is required", http.StatusBadRequest)
			return
		}
		defer func() {
			if err := file.Close(); err != nil {
				s.Logger.Warn("Failed to close uploaded file", "error", err.Error())
			}
		}()

		span.SetAttributes(
			attribute.String("upload.filename", header.Filename),
			attribute.Int64("upload.size", header.Size),
			attribute.String("operation", "upload"),
		)

		text, err := s.extractUpload(ctx, file, header.Filename)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "extraction"))
			writeErrorResponse(w, "Failed to extract resume text", err.Error(), http.StatusUnprocessableEntity)
			return
		}

		result, err := s.processToArtifact(ctx, text, header.Filename, om)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "render"))
			writeErrorResponse(w, "Failed to render enhanced resume", err.Error(), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("strategy", result.Strategy),
			attribute.String("artifact", result.OutputFile),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createDownloadHandler serves rendered PDF artifacts from the artifact
// directory. Only the base name of the request path is honored.
func (s *Server) createDownloadHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumelift.api")
		_, span := tracer.Start(r.Context(), "api.download")
		defer span.End()

		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := filepath.Base(strings.TrimPrefix(r.URL.Path, "/download/"))
		if name == "" || name == "." || name == "/" || filepath.Ext(name) != ".pdf" {
			err := fmt.Errorf("invalid artifact name: %q", name)
			span.RecordError(err)
			writeErrorResponse(w, "Invalid artifact name", "a .pdf artifact name is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(attribute.String("artifact", name))

		path := filepath.Join(s.ArtifactDir, name)
		if _, err := os.Stat(path); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Artifact not found", name, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		http.ServeFile(w, r, path)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
