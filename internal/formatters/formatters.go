package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumelift/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ScoreOutput", &ScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "ScoreOutput", &ScoreMarkdownFormatter{})
	registry.RegisterFormatter("text", "EnhanceOutput", &EnhanceTextFormatter{})
	registry.RegisterFormatter("markdown", "EnhanceOutput", &EnhanceMarkdownFormatter{})
	registry.RegisterFormatter("text", "ProcessOutput", &ProcessTextFormatter{})
	registry.RegisterFormatter("markdown", "ProcessOutput", &ProcessMarkdownFormatter{})

	return registry
}

// GlobalRegistry is the default registry used by output handling
var GlobalRegistry = NewFormatterRegistry()

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ScoreOutput:
		return "ScoreOutput"
	case types.EnhanceOutput:
		return "EnhanceOutput"
	case types.ProcessOutput:
		return "ProcessOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ScoreTextFormatter handles text formatting for score results
type ScoreTextFormatter struct{}

func (stf *ScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreOutput)
	if !ok {
		return "", fmt.Errorf("expected ScoreOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Total: %d/100\n\n", result.Score))
	output.WriteString("Categories:\n")
	output.WriteString(fmt.Sprintf("  Contact:      %d\n", result.Categories.Contact))
	output.WriteString(fmt.Sprintf("  Summary:      %d\n", result.Categories.Summary))
	output.WriteString(fmt.Sprintf("  Experience:   %d\n", result.Categories.Experience))
	output.WriteString(fmt.Sprintf("  Skills:       %d\n", result.Categories.Skills))
	output.WriteString(fmt.Sprintf("  Education:    %d\n", result.Categories.Education))
	output.WriteString(fmt.Sprintf("  Action verbs: %d\n", result.Categories.ActionVerbs))
	output.WriteString(fmt.Sprintf("  Structure:    %d\n", result.Categories.Structure))
	output.WriteString(fmt.Sprintf("\nPenalty: %d\n", result.Penalty))

	return output.String(), nil
}

func (stf *ScoreTextFormatter) SupportedType() string {
	return "ScoreOutput"
}

// ScoreMarkdownFormatter handles markdown formatting for score results
type ScoreMarkdownFormatter struct{}

func (smf *ScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreOutput)
	if !ok {
		return "", fmt.Errorf("expected ScoreOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Score\n\n")
	output.WriteString(fmt.Sprintf("**Total:** %d/100\n\n", result.Score))
	output.WriteString("## Categories\n\n")
	output.WriteString("| Category | Score |\n")
	output.WriteString("|----------|-------|\n")
	output.WriteString(fmt.Sprintf("| Contact | %d |\n", result.Categories.Contact))
	output.WriteString(fmt.Sprintf("| Summary | %d |\n", result.Categories.Summary))
	output.WriteString(fmt.Sprintf("| Experience | %d |\n", result.Categories.Experience))
	output.WriteString(fmt.Sprintf("| Skills | %d |\n", result.Categories.Skills))
	output.WriteString(fmt.Sprintf("| Education | %d |\n", result.Categories.Education))
	output.WriteString(fmt.Sprintf("| Action verbs | %d |\n", result.Categories.ActionVerbs))
	output.WriteString(fmt.Sprintf("| Structure | %d |\n", result.Categories.Structure))
	output.WriteString(fmt.Sprintf("\n**Penalty:** %d\n", result.Penalty))

	return output.String(), nil
}

func (smf *ScoreMarkdownFormatter) SupportedType() string {
	return "ScoreOutput"
}

// EnhanceTextFormatter handles text formatting for enhancement results
type EnhanceTextFormatter struct{}

func (etf *EnhanceTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EnhanceOutput)
	if !ok {
		return "", fmt.Errorf("expected EnhanceOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ENHANCED RESUME ===\n\n")
	output.WriteString(result.EnhancedText)
	output.WriteString("\n\n")

	output.WriteString("=== ENHANCEMENT SUMMARY ===\n")
	output.WriteString(fmt.Sprintf("Original score: %d/100\n", result.OriginalScore))
	output.WriteString(fmt.Sprintf("Enhanced score: %d/100\n", result.EnhancedScore))
	output.WriteString(fmt.Sprintf("Strategy: %s\n", result.Strategy))

	return output.String(), nil
}

func (etf *EnhanceTextFormatter) SupportedType() string {
	return "EnhanceOutput"
}

// EnhanceMarkdownFormatter handles markdown formatting for enhancement results
type EnhanceMarkdownFormatter struct{}

func (emf *EnhanceMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EnhanceOutput)
	if !ok {
		return "", fmt.Errorf("expected EnhanceOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Enhanced Resume\n\n")
	output.WriteString("```\n")
	output.WriteString(result.EnhancedText)
	output.WriteString("\n```\n\n")

	output.WriteString("## Enhancement Summary\n\n")
	output.WriteString(fmt.Sprintf("**Original score:** %d/100\n\n", result.OriginalScore))
	output.WriteString(fmt.Sprintf("**Enhanced score:** %d/100\n\n", result.EnhancedScore))
	output.WriteString(fmt.Sprintf("**Strategy:** %s\n", result.Strategy))

	return output.String(), nil
}

func (emf *EnhanceMarkdownFormatter) SupportedType() string {
	return "EnhanceOutput"
}

// ProcessTextFormatter handles text formatting for full pipeline results
type ProcessTextFormatter struct{}

func (ptf *ProcessTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ProcessOutput)
	if !ok {
		return "", fmt.Errorf("expected ProcessOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ENHANCED RESUME ===\n\n")
	output.WriteString(result.EnhancedText)
	output.WriteString("\n\n")

	output.WriteString("=== PIPELINE SUMMARY ===\n")
	output.WriteString(fmt.Sprintf("Original score: %d/100\n", result.OriginalScore))
	output.WriteString(fmt.Sprintf("Enhanced score: %d/100\n", result.EnhancedScore))
	output.WriteString(fmt.Sprintf("Strategy: %s\n", result.Strategy))
	if result.OutputFile != "" {
		output.WriteString(fmt.Sprintf("PDF written to: %s\n", result.OutputFile))
	}

	return output.String(), nil
}

func (ptf *ProcessTextFormatter) SupportedType() string {
	return "ProcessOutput"
}

// ProcessMarkdownFormatter handles markdown formatting for full pipeline results
type ProcessMarkdownFormatter struct{}

func (pmf *ProcessMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ProcessOutput)
	if !ok {
		return "", fmt.Errorf("expected ProcessOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Enhanced Resume\n\n")
	output.WriteString("```\n")
	output.WriteString(result.EnhancedText)
	output.WriteString("\n```\n\n")

	output.WriteString("## Pipeline Summary\n\n")
	output.WriteString(fmt.Sprintf("**Original score:** %d/100\n\n", result.OriginalScore))
	output.WriteString(fmt.Sprintf("**Enhanced score:** %d/100\n\n", result.EnhancedScore))
	output.WriteString(fmt.Sprintf("**Strategy:** %s\n", result.Strategy))
	if result.OutputFile != "" {
		output.WriteString(fmt.Sprintf("\n**PDF written to:** %s\n", result.OutputFile))
	}

	return output.String(), nil
}

func (pmf *ProcessMarkdownFormatter) SupportedType() string {
	return "ProcessOutput"
}
