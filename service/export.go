package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"legalprompt-backend/metrics"
	"legalprompt-backend/models"
	"legalprompt-backend/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExportVersion is stamped into every JSON export
const ExportVersion = "4.2.0"

// ErrUnknownExportFormat is returned for formats other than json, markdown and text
var ErrUnknownExportFormat = errors.New("unknown export format")

// ExportFormat names an export rendering
type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportMarkdown ExportFormat = "markdown"
	ExportText     ExportFormat = "text"
)

// Extension returns the file extension used when an export is saved
func (f ExportFormat) Extension() string {
	switch f {
	case ExportJSON:
		return ".json"
	case ExportMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// ParseExportFormat accepts json, markdown (or md) and text (or txt)
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return ExportJSON, nil
	case "markdown", "md":
		return ExportMarkdown, nil
	case "text", "txt":
		return ExportText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExportFormat, s)
	}
}

// JSONExport is the wire form of a JSON export
type JSONExport struct {
	Version            string   `json:"version"`
	ExportTimestamp    string   `json:"export_timestamp"`
	OriginalPrompt     string   `json:"original_prompt"`
	OptimizedPrompt    string   `json:"optimized_prompt"`
	OptimizationMode   string   `json:"optimization_mode"`
	QualityScore       int      `json:"quality_score"`
	TokenEstimate      int      `json:"token_estimate"`
	PracticeArea       string   `json:"practice_area"`
	EnhancementNotes   []string `json:"enhancement_notes"`
	SALegalAdaptations []string `json:"sa_legal_adaptations"`
	ReasoningStructure string   `json:"reasoning_structure"`
}

// ExportJSONAt renders p as an indented JSON export stamped with at
func ExportJSONAt(p models.OptimizedPrompt, at time.Time) (string, error) {
	doc := JSONExport{
		Version:            ExportVersion,
		ExportTimestamp:    at.Format(time.RFC3339),
		OriginalPrompt:     p.Original,
		OptimizedPrompt:    p.Optimized,
		OptimizationMode:   p.Mode.DisplayName(),
		QualityScore:       p.QualityScore,
		TokenEstimate:      p.TokenEstimate,
		PracticeArea:       p.PracticeArea,
		EnhancementNotes:   nonNil(p.EnhancementNotes),
		SALegalAdaptations: nonNil(p.SALegalAdaptations),
		ReasoningStructure: p.ReasoningStructure,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ParseJSONExport reads a JSON export back into an optimized prompt
func ParseJSONExport(data []byte) (models.OptimizedPrompt, error) {
	var doc JSONExport
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.OptimizedPrompt{}, fmt.Errorf("failed to decode export: %w", err)
	}
	mode, _ := models.ParseMode(doc.OptimizationMode)
	return models.OptimizedPrompt{
		Original:           doc.OriginalPrompt,
		Optimized:          doc.OptimizedPrompt,
		Mode:               mode,
		EnhancementNotes:   doc.EnhancementNotes,
		SALegalAdaptations: doc.SALegalAdaptations,
		ReasoningStructure: doc.ReasoningStructure,
		QualityScore:       doc.QualityScore,
		PracticeArea:       doc.PracticeArea,
		TokenEstimate:      doc.TokenEstimate,
	}, nil
}

// ExportMarkdownDoc renders p as a Markdown document
func ExportMarkdownDoc(p models.OptimizedPrompt) string {
	var b strings.Builder
	b.WriteString("# Optimized Legal Prompt\n\n")
	b.WriteString("## Metadata\n")
	b.WriteString(fmt.Sprintf("- **Optimization Mode:** %s\n", p.Mode.DisplayName()))
	b.WriteString(fmt.Sprintf("- **Quality Score:** %d/100\n", p.QualityScore))
	b.WriteString(fmt.Sprintf("- **Token Estimate:** ~%d\n", p.TokenEstimate))
	b.WriteString(fmt.Sprintf("- **Practice Area:** %s\n\n", orDefault(p.PracticeArea, "Not specified")))
	b.WriteString("## Original Prompt\n```\n" + p.Original + "\n```\n\n")
	b.WriteString("## Optimized Prompt\n```\n" + p.Optimized + "\n```\n\n")
	b.WriteString("## Enhancement Details\n\n")
	b.WriteString("### Enhancements Applied\n" + bulletList("-", p.EnhancementNotes) + "\n\n")
	b.WriteString("### SA Legal Adaptations\n" + bulletList("-", p.SALegalAdaptations) + "\n\n")
	b.WriteString("### Reasoning Structure\n" + orDefault(p.ReasoningStructure, "Standard flow") + "\n\n")
	b.WriteString("---\n*Generated by SA Legal Prompting Elite v" + ExportVersion + "*\n")
	return b.String()
}

// TextMeta is the optional header information of a text export
type TextMeta struct {
	Framework    string
	PracticeArea string
}

// ExportTextAt frames a prompt in a plain-text banner stamped with at
func ExportTextAt(prompt string, meta TextMeta, at time.Time) string {
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	lines := []string{
		rule,
		"SA LEGAL PROMPTING ELITE - EXPORTED PROMPT",
		rule,
		"Generated: " + at.Format("2006-01-02 15:04"),
	}
	if meta.Framework != "" {
		lines = append(lines, "Framework: "+meta.Framework)
	}
	if meta.PracticeArea != "" {
		lines = append(lines, "Practice Area: "+meta.PracticeArea)
	}
	lines = append(lines, thin, "", prompt, "", thin, "© SA Legal Prompting Elite Platform v4.0")
	return strings.Join(lines, "\n")
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ExportService renders exports and optionally persists them
type ExportService struct {
	storage storage.Storage
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// ExportServiceOption is a functional option for ExportService
type ExportServiceOption func(*ExportService)

// ExportWithStorage sets the storage backend used by Save
func ExportWithStorage(st storage.Storage) ExportServiceOption {
	return func(s *ExportService) {
		s.storage = st
	}
}

// ExportWithMetrics sets the metrics sink
func ExportWithMetrics(m *metrics.Metrics) ExportServiceOption {
	return func(s *ExportService) {
		s.metrics = m
	}
}

// ExportWithLogger sets the logger
func ExportWithLogger(l *zap.Logger) ExportServiceOption {
	return func(s *ExportService) {
		s.logger = l
	}
}

// ExportWithClock overrides the time source
func ExportWithClock(now func() time.Time) ExportServiceOption {
	return func(s *ExportService) {
		s.now = now
	}
}

// NewExportService creates a new export service
func NewExportService(opts ...ExportServiceOption) *ExportService {
	s := &ExportService{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render produces an export of p in the given format
func (s *ExportService) Render(format ExportFormat, p models.OptimizedPrompt) (string, error) {
	var (
		out string
		err error
	)
	switch format {
	case ExportJSON:
		out, err = ExportJSONAt(p, s.now())
	case ExportMarkdown:
		out = ExportMarkdownDoc(p)
	case ExportText:
		out = ExportTextAt(p.Optimized, TextMeta{Framework: p.Mode.DisplayName(), PracticeArea: p.PracticeArea}, s.now())
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
	}
	if err != nil {
		return "", err
	}
	s.metrics.RecordExport(string(format))
	return out, nil
}

// SavedExport locates a persisted export
type SavedExport struct {
	ID          uuid.UUID    `json:"id"`
	Format      ExportFormat `json:"format"`
	StoragePath string       `json:"storagePath"`
}

// Save writes rendered content to storage under a fresh export ID
func (s *ExportService) Save(ctx context.Context, format ExportFormat, name, content string) (SavedExport, error) {
	if s.storage == nil {
		return SavedExport{}, errors.New("storage not set")
	}
	if name == "" {
		name = "legal_prompt"
	}

	id := uuid.New()
	path, err := s.storage.Upload(ctx, id, name+format.Extension(), strings.NewReader(content))
	if err != nil {
		return SavedExport{}, fmt.Errorf("failed to save export: %w", err)
	}
	s.logger.Info("export saved", zap.String("path", path), zap.String("format", string(format)))
	return SavedExport{ID: id, Format: format, StoragePath: path}, nil
}

// Download returns a persisted export's content
func (s *ExportService) Download(ctx context.Context, storagePath string) ([]byte, error) {
	if s.storage == nil {
		return nil, errors.New("storage not set")
	}
	rc, err := s.storage.Download(ctx, storagePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Delete removes a persisted export
func (s *ExportService) Delete(ctx context.Context, storagePath string) error {
	if s.storage == nil {
		return errors.New("storage not set")
	}
	return s.storage.Delete(ctx, storagePath)
}
