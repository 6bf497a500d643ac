package service

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"legalprompt-backend/catalog"
	"legalprompt-backend/models"
)

//go:embed content/*.tmpl
var contentFS embed.FS

var contentFuncs = template.FuncMap{
	"bullets": bulletList,
	"join":    strings.Join,
	"inc":     func(i int) int { return i + 1 },
}

var contentTemplates = template.Must(
	template.New("content").Funcs(contentFuncs).ParseFS(contentFS, "content/*.tmpl"),
)

func bulletList(marker string, items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = marker + " " + item
	}
	return strings.Join(lines, "\n")
}

func renderContent(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := contentTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// ContentService renders catalog entries into ready-to-use prompts
type ContentService struct {
	catalog *catalog.Catalog
}

// ContentServiceOption is a functional option for ContentService
type ContentServiceOption func(*ContentService)

// ContentWithCatalog sets the catalog used for key lookups
func ContentWithCatalog(c *catalog.Catalog) ContentServiceOption {
	return func(s *ContentService) {
		s.catalog = c
	}
}

// NewContentService creates a new content service
func NewContentService(opts ...ContentServiceOption) *ContentService {
	s := &ContentService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CombinedPromptRequest names the frameworks to merge into one prompt
type CombinedPromptRequest struct {
	Frameworks   []string
	Context      string
	Issue        string
	PracticeArea string
}

// CombinedPrompt merges several frameworks' components into one prompt.
// Unknown framework keys are skipped.
func (s *ContentService) CombinedPrompt(req CombinedPromptRequest) (string, error) {
	if s.catalog == nil {
		return "", errors.New("catalog not set")
	}
	var frameworks []models.Framework
	for _, key := range req.Frameworks {
		if fw, ok := s.catalog.Framework(key); ok {
			frameworks = append(frameworks, *fw)
		}
	}
	return renderContent("combined.tmpl", struct {
		CombinedPromptRequest
		Frameworks []models.Framework
	}{req, frameworks})
}

// CourtGuidance describes how to prompt for matters before a court
func CourtGuidance(court models.Court) (string, error) {
	return renderContent("court_guidance.tmpl", court)
}

// LegislationPrompt frames an issue against an Act
func LegislationPrompt(act models.Legislation, issue string) (string, error) {
	return renderContent("legislation.tmpl", struct {
		Act   models.Legislation
		Issue string
	}{act, issue})
}

// EthicsChecklist lists what to confirm before using AI under a guideline
func EthicsChecklist(g models.EthicsGuideline) (string, error) {
	return renderContent("ethics_checklist.tmpl", g)
}

// EthicsPreamble is the compliance preamble prepended to legal queries
func EthicsPreamble() string {
	out, err := renderContent("ethics_preamble.tmpl", nil)
	if err != nil {
		panic(err)
	}
	return out
}

// PracticePrompt fills a practice-area prompt with the user's context
func PracticePrompt(p models.PracticeAreaPrompt, context string) (string, error) {
	return renderContent("practice.tmpl", struct {
		Prompt  models.PracticeAreaPrompt
		Context string
	}{p, context})
}

// DocumentStructure is the section-by-section guide for a document template
func DocumentStructure(t models.DocumentTemplate) (string, error) {
	out, err := renderContent("document_structure.tmpl", t)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(out, "\n"), nil
}

// DocumentPrompt fills a document template with the user's context
func DocumentPrompt(t models.DocumentTemplate, context string) (string, error) {
	structure, err := DocumentStructure(t)
	if err != nil {
		return "", err
	}
	return renderContent("document.tmpl", struct {
		Template  models.DocumentTemplate
		Context   string
		Structure string
	}{t, context, structure})
}

// WorkflowSummary gives an overview of a workflow and its steps
func WorkflowSummary(wf models.Workflow) (string, error) {
	return renderContent("workflow_summary.tmpl", wf)
}

// StepPrompt is the AI prompt for one workflow step with its review duties
func StepPrompt(wf models.Workflow, stepNumber int) (string, error) {
	step, ok := catalog.StepOf(&wf, stepNumber)
	if !ok {
		return fmt.Sprintf("Step %d not found in workflow %s", stepNumber, wf.Title), nil
	}
	return renderContent("workflow_step.tmpl", struct {
		Workflow models.Workflow
		Step     models.WorkflowStep
	}{wf, *step})
}
