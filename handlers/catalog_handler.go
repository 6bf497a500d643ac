package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"legalprompt-backend/catalog"
	"legalprompt-backend/models"
	"legalprompt-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the reference catalogs and the prompts built from them
type CatalogHandler struct {
	catalog  *catalog.Catalog
	content  *service.ContentService
	sessions *service.SessionService
	logger   *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(c *catalog.Catalog, content *service.ContentService, sessions *service.SessionService, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{catalog: c, content: content, sessions: sessions, logger: logger}
}

// renderText responds with a generated prompt or a render error
func renderText(c *gin.Context, text string, err error) {
	if err != nil {
		internalError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"prompt": text})
}

// ContextRequest carries the user's free text for prompt generators
type ContextRequest struct {
	Context string `json:"context"`
}

// ListFrameworks handles GET /api/frameworks
func (h *CatalogHandler) ListFrameworks(c *gin.Context) {
	frameworks := h.catalog.Frameworks()
	if category := c.Query("category"); category != "" {
		frameworks = h.catalog.FrameworksByCategory(category)
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		filtered := make([]models.Framework, 0, len(frameworks))
		for _, fw := range frameworks {
			for _, d := range h.catalog.FrameworksByDifficulty(difficulty) {
				if d.Key == fw.Key {
					filtered = append(filtered, fw)
				}
			}
		}
		frameworks = filtered
	}
	respondOK(c, http.StatusOK, frameworks)
}

// GetFramework handles GET /api/frameworks/:key
func (h *CatalogHandler) GetFramework(c *gin.Context) {
	fw, ok := h.catalog.Framework(c.Param("key"))
	if !ok {
		notFound(c, "Framework not found")
		return
	}
	if id, ok := parseOptionalSession(c.Query("sessionId")); ok && h.sessions != nil {
		if err := h.sessions.RecordFrameworkUse(c.Request.Context(), id, fw.Key); err != nil {
			h.logger.Warn("failed to record framework use", zap.Error(err))
		}
	}
	respondOK(c, http.StatusOK, fw)
}

// RecommendFrameworks handles POST /api/frameworks/recommend. With a context
// it also returns the best single framework for that text.
func (h *CatalogHandler) RecommendFrameworks(c *gin.Context) {
	var req struct {
		service.RecommendRequest
		Context string `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	data := gin.H{"frameworks": service.RecommendFrameworks(h.catalog, req.RecommendRequest)}
	if req.Context != "" {
		best, scores := service.SuggestFramework(req.Context)
		data["suggestion"] = best
		data["scores"] = scores
	}
	respondOK(c, http.StatusOK, data)
}

// CombineRequest represents the request body for a combined framework prompt
type CombineRequest struct {
	Frameworks   []string `json:"frameworks" binding:"required"`
	Context      string   `json:"context"`
	Issue        string   `json:"issue"`
	PracticeArea string   `json:"practiceArea"`
}

// CombineFrameworks handles POST /api/frameworks/combine
func (h *CatalogHandler) CombineFrameworks(c *gin.Context) {
	var req CombineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	text, err := h.content.CombinedPrompt(service.CombinedPromptRequest(req))
	renderText(c, text, err)
}

// ListCourts handles GET /api/courts
func (h *CatalogHandler) ListCourts(c *gin.Context) {
	courts := h.catalog.Courts()
	switch {
	case c.Query("matter") != "":
		courts = h.catalog.CourtsForMatter(c.Query("matter"))
	case c.Query("category") != "":
		courts = h.catalog.CourtsByCategory(c.Query("category"))
	}
	respondOK(c, http.StatusOK, courts)
}

// CourtGuidance handles GET /api/courts/:key/guidance
func (h *CatalogHandler) CourtGuidance(c *gin.Context) {
	court, ok := h.catalog.Court(c.Param("key"))
	if !ok {
		notFound(c, "Court not found")
		return
	}
	text, err := service.CourtGuidance(*court)
	renderText(c, text, err)
}

// ListLegislation handles GET /api/legislation
func (h *CatalogHandler) ListLegislation(c *gin.Context) {
	acts := h.catalog.Legislation()
	if category := c.Query("category"); category != "" {
		acts = h.catalog.LegislationByCategory(category)
	}
	respondOK(c, http.StatusOK, acts)
}

// GetProvision handles GET /api/legislation/:key/provisions/:section
func (h *CatalogHandler) GetProvision(c *gin.Context) {
	p, ok := h.catalog.Provision(c.Param("key"), c.Param("section"))
	if !ok {
		notFound(c, "Provision not found")
		return
	}
	respondOK(c, http.StatusOK, p)
}

// LegislationPrompt handles POST /api/legislation/:key/prompt
func (h *CatalogHandler) LegislationPrompt(c *gin.Context) {
	act, ok := h.catalog.Act(c.Param("key"))
	if !ok {
		notFound(c, "Legislation not found")
		return
	}
	var req struct {
		Issue string `json:"issue"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	text, err := service.LegislationPrompt(*act, req.Issue)
	renderText(c, text, err)
}

// ListGuidelines handles GET /api/ethics/guidelines
func (h *CatalogHandler) ListGuidelines(c *gin.Context) {
	guidelines := h.catalog.Guidelines()
	if category := c.Query("category"); category != "" {
		guidelines = h.catalog.GuidelinesByCategory(category)
	}
	respondOK(c, http.StatusOK, guidelines)
}

// EthicsChecklist handles GET /api/ethics/guidelines/:key/checklist
func (h *CatalogHandler) EthicsChecklist(c *gin.Context) {
	g, ok := h.catalog.Guideline(c.Param("key"))
	if !ok {
		notFound(c, "Guideline not found")
		return
	}
	text, err := service.EthicsChecklist(*g)
	renderText(c, text, err)
}

// EthicsPreamble handles GET /api/ethics/preamble
func (h *CatalogHandler) EthicsPreamble(c *gin.Context) {
	renderText(c, service.EthicsPreamble(), nil)
}

// AssessRisk handles GET /api/ethics/risk?scenario=
func (h *CatalogHandler) AssessRisk(c *gin.Context) {
	query := c.Query("scenario")
	if query == "" {
		badRequest(c, errors.New("scenario is required"))
		return
	}
	scenario, ok := h.catalog.AssessAIUseRisk(query)
	if !ok {
		notFound(c, "No matching AI use scenario")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"scenario":  scenario,
		"riskLabel": scenario.RiskLevel.Label(),
	})
}

// ListPracticePrompts handles GET /api/practice-prompts
func (h *CatalogHandler) ListPracticePrompts(c *gin.Context) {
	prompts := h.catalog.PracticePrompts()
	switch {
	case c.Query("area") != "":
		prompts = h.catalog.PracticePromptsByArea(c.Query("area"))
	case c.Query("type") != "":
		prompts = h.catalog.PracticePromptsByType(c.Query("type"))
	}
	respondOK(c, http.StatusOK, prompts)
}

// RenderPracticePrompt handles POST /api/practice-prompts/:key/render
func (h *CatalogHandler) RenderPracticePrompt(c *gin.Context) {
	p, ok := h.catalog.PracticePrompt(c.Param("key"))
	if !ok {
		notFound(c, "Practice prompt not found")
		return
	}
	var req ContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	text, err := service.PracticePrompt(*p, req.Context)
	renderText(c, text, err)
}

// ListDocuments handles GET /api/documents
func (h *CatalogHandler) ListDocuments(c *gin.Context) {
	docs := h.catalog.DocumentTemplates()
	if category := c.Query("category"); category != "" {
		docs = h.catalog.DocumentTemplatesByCategory(category)
	}
	respondOK(c, http.StatusOK, docs)
}

// DocumentStructure handles GET /api/documents/:key/structure
func (h *CatalogHandler) DocumentStructure(c *gin.Context) {
	t, ok := h.catalog.DocumentTemplate(c.Param("key"))
	if !ok {
		notFound(c, "Document template not found")
		return
	}
	text, err := service.DocumentStructure(*t)
	renderText(c, text, err)
}

// RenderDocument handles POST /api/documents/:key/render
func (h *CatalogHandler) RenderDocument(c *gin.Context) {
	t, ok := h.catalog.DocumentTemplate(c.Param("key"))
	if !ok {
		notFound(c, "Document template not found")
		return
	}
	var req ContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	text, err := service.DocumentPrompt(*t, req.Context)
	renderText(c, text, err)
}

// ListWorkflows handles GET /api/workflows
func (h *CatalogHandler) ListWorkflows(c *gin.Context) {
	workflows := h.catalog.Workflows()
	if category := c.Query("category"); category != "" {
		workflows = h.catalog.WorkflowsByCategory(category)
	}
	respondOK(c, http.StatusOK, workflows)
}

// WorkflowSummary handles GET /api/workflows/:key/summary
func (h *CatalogHandler) WorkflowSummary(c *gin.Context) {
	wf, ok := h.catalog.Workflow(c.Param("key"))
	if !ok {
		notFound(c, "Workflow not found")
		return
	}
	text, err := service.WorkflowSummary(*wf)
	renderText(c, text, err)
}

// WorkflowStep handles GET /api/workflows/:key/steps/:n. The response lists
// the step's prerequisites and dependents; they are advisory only.
func (h *CatalogHandler) WorkflowStep(c *gin.Context) {
	wf, ok := h.catalog.Workflow(c.Param("key"))
	if !ok {
		notFound(c, "Workflow not found")
		return
	}
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		badRequest(c, errors.New("step number must be an integer"))
		return
	}

	text, err := service.StepPrompt(*wf, n)
	if err != nil {
		internalError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"prompt":        text,
		"prerequisites": catalog.Prerequisites(wf, n),
		"dependents":    catalog.Dependents(wf, n),
	})
}

// ListTemplates handles GET /api/templates
func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	templates := h.catalog.QuickTemplates()
	if category := c.Query("category"); category != "" {
		templates = h.catalog.QuickTemplatesByCategory(category)
	}
	respondOK(c, http.StatusOK, templates)
}

// GetTemplate handles GET /api/templates/:name
func (h *CatalogHandler) GetTemplate(c *gin.Context) {
	t, ok := h.catalog.QuickTemplate(c.Param("name"))
	if !ok {
		notFound(c, "Template not found")
		return
	}
	respondOK(c, http.StatusOK, t)
}

// Search handles GET /api/search?q=
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if id, ok := parseOptionalSession(c.Query("sessionId")); ok && h.sessions != nil && query != "" {
		if err := h.sessions.RecordSearch(c.Request.Context(), id, query); err != nil {
			h.logger.Warn("failed to record search", zap.Error(err))
		}
	}
	respondOK(c, http.StatusOK, h.catalog.Search(query))
}
