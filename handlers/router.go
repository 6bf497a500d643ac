package handlers

import (
	"net/http"

	"legalprompt-backend/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig carries the handlers and middleware dependencies
type RouterConfig struct {
	Optimizer *OptimizerHandler
	Catalog   *CatalogHandler
	Sessions  *SessionHandler
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// NewRouter registers every API route on a new gin engine
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Logger != nil {
		r.Use(RequestLogger(cfg.Logger))
	}
	if cfg.Metrics != nil {
		r.Use(RequestMetrics(cfg.Metrics))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		o := cfg.Optimizer
		api.GET("/modes", o.ListModes)
		api.GET("/presets", o.ListPresets)
		api.GET("/formats", o.ListFormats)
		api.POST("/optimize", o.Optimize)
		api.POST("/optimize/preset", o.OptimizeWithPreset)
		api.POST("/optimize/compare", o.Compare)
		api.POST("/optimize/batch", o.Batch)
		api.POST("/score", o.Score)
		api.POST("/score/detailed", o.DetailedScore)
		api.POST("/detect", o.Detect)
		api.POST("/export", o.Export)
		api.GET("/exports/*path", o.DownloadExport)
		api.DELETE("/exports/*path", o.DeleteExport)

		h := cfg.Catalog
		api.GET("/frameworks", h.ListFrameworks)
		api.GET("/frameworks/:key", h.GetFramework)
		api.POST("/frameworks/recommend", h.RecommendFrameworks)
		api.POST("/frameworks/combine", h.CombineFrameworks)

		api.GET("/courts", h.ListCourts)
		api.GET("/courts/:key/guidance", h.CourtGuidance)

		api.GET("/legislation", h.ListLegislation)
		api.GET("/legislation/:key/provisions/:section", h.GetProvision)
		api.POST("/legislation/:key/prompt", h.LegislationPrompt)

		api.GET("/ethics/guidelines", h.ListGuidelines)
		api.GET("/ethics/guidelines/:key/checklist", h.EthicsChecklist)
		api.GET("/ethics/preamble", h.EthicsPreamble)
		api.GET("/ethics/risk", h.AssessRisk)

		api.GET("/practice-prompts", h.ListPracticePrompts)
		api.POST("/practice-prompts/:key/render", h.RenderPracticePrompt)

		api.GET("/documents", h.ListDocuments)
		api.GET("/documents/:key/structure", h.DocumentStructure)
		api.POST("/documents/:key/render", h.RenderDocument)

		api.GET("/workflows", h.ListWorkflows)
		api.GET("/workflows/:key/summary", h.WorkflowSummary)
		api.GET("/workflows/:key/steps/:n", h.WorkflowStep)

		api.GET("/templates", h.ListTemplates)
		api.GET("/templates/:name", h.GetTemplate)

		api.GET("/search", h.Search)

		s := cfg.Sessions
		api.POST("/sessions", s.CreateSession)
		api.GET("/sessions/:id", s.GetSession)
		api.DELETE("/sessions/:id", s.DeleteSession)
		api.POST("/sessions/:id/history", s.AddHistory)
		api.GET("/sessions/:id/history", s.GetHistory)
		api.DELETE("/sessions/:id/history", s.ClearHistory)
		api.POST("/sessions/:id/history/:entry/favorite", s.ToggleFavorite)
		api.GET("/sessions/:id/analytics", s.Analytics)
		api.POST("/sessions/:id/chat", s.Chat)
		api.DELETE("/sessions/:id/chat", s.ClearChat)
	}

	return r
}
