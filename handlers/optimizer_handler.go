package handlers

import (
	"errors"
	"net/http"
	"strings"

	"legalprompt-backend/models"
	"legalprompt-backend/service"
	"legalprompt-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OptimizerHandler handles HTTP requests for prompt optimization and export
type OptimizerHandler struct {
	optimizer *service.OptimizerService
	exports   *service.ExportService
	sessions  *service.SessionService
	logger    *zap.Logger
}

// NewOptimizerHandler creates a new optimizer handler
func NewOptimizerHandler(optimizer *service.OptimizerService, exports *service.ExportService, sessions *service.SessionService, logger *zap.Logger) *OptimizerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OptimizerHandler{
		optimizer: optimizer,
		exports:   exports,
		sessions:  sessions,
		logger:    logger,
	}
}

// OptimizeRequest represents the request body for optimizing a prompt
type OptimizeRequest struct {
	Components models.Components `json:"components"`
	Mode       string            `json:"mode"`
	Format     string            `json:"format"`
	SessionID  string            `json:"sessionId"`
}

// OptimizeResponse adds the fallback flag to an optimize result
type OptimizeResponse struct {
	service.OptimizeResult
	Fallback bool `json:"fallback"`
}

func newOptimizeResponse(r service.OptimizeResult) OptimizeResponse {
	return OptimizeResponse{OptimizeResult: r, Fallback: r.IsFallback()}
}

// ListModes handles GET /api/modes
func (h *OptimizerHandler) ListModes(c *gin.Context) {
	respondOK(c, http.StatusOK, service.Modes())
}

// ListPresets handles GET /api/presets
func (h *OptimizerHandler) ListPresets(c *gin.Context) {
	respondOK(c, http.StatusOK, h.optimizer.Presets())
}

// ListFormats handles GET /api/formats
func (h *OptimizerHandler) ListFormats(c *gin.Context) {
	formats := make([]gin.H, 0, len(models.AllFormats))
	for _, f := range models.AllFormats {
		formats = append(formats, gin.H{"key": f, "name": f.DisplayName()})
	}
	respondOK(c, http.StatusOK, formats)
}

// Optimize handles POST /api/optimize
func (h *OptimizerHandler) Optimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	mode, _ := models.ParseMode(req.Mode)
	format, _ := models.ParseOutputFormat(req.Format)
	result := h.optimizer.Optimize(service.OptimizeRequest{
		Components: req.Components,
		Mode:       mode,
		Format:     format,
	})

	h.recordHistory(c, req.SessionID, result.Prompt, "Optimizer ("+result.Applied.DisplayName()+")")
	respondOK(c, http.StatusOK, newOptimizeResponse(result))
}

// PresetOptimizeRequest represents the request body for preset optimization
type PresetOptimizeRequest struct {
	Components models.Components `json:"components"`
	Preset     string            `json:"preset" binding:"required"`
	SessionID  string            `json:"sessionId"`
}

// OptimizeWithPreset handles POST /api/optimize/preset
func (h *OptimizerHandler) OptimizeWithPreset(c *gin.Context) {
	var req PresetOptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.optimizer.OptimizeWithPreset(service.PresetRequest{
		Components: req.Components,
		Preset:     req.Preset,
	})
	if err != nil {
		internalError(c, err)
		return
	}

	h.recordHistory(c, req.SessionID, result.Prompt, "Preset ("+result.Prompt.PracticeArea+")")
	respondOK(c, http.StatusOK, newOptimizeResponse(result))
}

// CompareRequest represents the request body for comparing modes
type CompareRequest struct {
	Components models.Components `json:"components"`
	Modes      []string          `json:"modes"`
	Format     string            `json:"format"`
}

// Compare handles POST /api/optimize/compare
func (h *OptimizerHandler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	modes := make([]models.Mode, 0, len(req.Modes))
	for _, m := range req.Modes {
		mode, _ := models.ParseMode(m)
		modes = append(modes, mode)
	}
	format, _ := models.ParseOutputFormat(req.Format)

	respondOK(c, http.StatusOK, h.optimizer.CompareModes(service.CompareRequest{
		Components: req.Components,
		Modes:      modes,
		Format:     format,
	}))
}

// BatchRequest represents the request body for batch optimization
type BatchRequest struct {
	Prompts []models.Components `json:"prompts" binding:"required"`
	Mode    string              `json:"mode"`
	Format  string              `json:"format"`
}

// Batch handles POST /api/optimize/batch
func (h *OptimizerHandler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	mode, _ := models.ParseMode(req.Mode)
	format, _ := models.ParseOutputFormat(req.Format)
	respondOK(c, http.StatusOK, h.optimizer.BatchOptimize(c.Request.Context(), service.BatchRequest{
		Prompts: req.Prompts,
		Mode:    mode,
		Format:  format,
	}))
}

// ScoreRequest represents the request body for the scorers
type ScoreRequest struct {
	Prompt     string            `json:"prompt"`
	Components models.Components `json:"components"`
}

// Score handles POST /api/score
func (h *OptimizerHandler) Score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	score, suggestions := service.QualityScore(req.Prompt, req.Components)
	respondOK(c, http.StatusOK, gin.H{
		"score":       score,
		"suggestions": suggestions,
	})
}

// DetailedScore handles POST /api/score/detailed
func (h *OptimizerHandler) DetailedScore(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respondOK(c, http.StatusOK, service.DetailedQualityScore(req.Prompt, req.Components))
}

// DetectRequest represents the request body for practice-area detection
type DetectRequest struct {
	Text string `json:"text"`
}

// Detect handles POST /api/detect
func (h *OptimizerHandler) Detect(c *gin.Context) {
	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	detection, err := h.optimizer.DetectPracticeArea(req.Text)
	if err != nil {
		internalError(c, err)
		return
	}
	respondOK(c, http.StatusOK, detection)
}

// ExportRequest represents the request body for exporting a prompt
type ExportRequest struct {
	Prompt    models.OptimizedPrompt `json:"prompt"`
	Format    string                 `json:"format"`
	Save      bool                   `json:"save"`
	Name      string                 `json:"name"`
	SessionID string                 `json:"sessionId"`
}

// Export handles POST /api/export
func (h *OptimizerHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	format, err := service.ParseExportFormat(req.Format)
	if err != nil {
		badRequest(c, err)
		return
	}

	content, err := h.exports.Render(format, req.Prompt)
	if err != nil {
		internalError(c, err)
		return
	}

	data := gin.H{
		"format":  format,
		"content": content,
	}
	if req.Save {
		saved, err := h.exports.Save(c.Request.Context(), format, req.Name, content)
		if err != nil {
			internalError(c, err)
			return
		}
		data["saved"] = saved
	}

	if id, ok := parseOptionalSession(req.SessionID); ok && h.sessions != nil {
		if err := h.sessions.RecordExport(c.Request.Context(), id); err != nil {
			h.logger.Warn("failed to record export", zap.String("session", id.String()), zap.Error(err))
		}
	}

	respondOK(c, http.StatusOK, data)
}

// DownloadExport handles GET /api/exports/*path
func (h *OptimizerHandler) DownloadExport(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	content, err := h.exports.Download(c.Request.Context(), path)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			notFound(c, "Export not found")
		case errors.Is(err, storage.ErrInvalidPath):
			badRequest(c, err)
		default:
			internalError(c, err)
		}
		return
	}

	c.Data(http.StatusOK, storage.ContentType(path), content)
}

// DeleteExport handles DELETE /api/exports/*path
func (h *OptimizerHandler) DeleteExport(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	if err := h.exports.Delete(c.Request.Context(), path); err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			badRequest(c, err)
			return
		}
		internalError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *OptimizerHandler) recordHistory(c *gin.Context, sessionID string, p models.OptimizedPrompt, source string) {
	id, ok := parseOptionalSession(sessionID)
	if !ok || h.sessions == nil {
		return
	}
	metadata := map[string]string{
		"optimization_mode": string(p.Mode),
		"practice_area":     p.PracticeArea,
	}
	if _, err := h.sessions.AddToHistory(c.Request.Context(), id, p.Optimized, source, metadata); err != nil {
		h.logger.Warn("failed to record history", zap.String("session", id.String()), zap.Error(err))
	}
}

func parseOptionalSession(raw string) (uuid.UUID, bool) {
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
