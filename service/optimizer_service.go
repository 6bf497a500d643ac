package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"legalprompt-backend/catalog"
	"legalprompt-backend/metrics"
	"legalprompt-backend/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Resolution says whether the requested mode or preset was applied as asked
type Resolution string

const (
	ResolutionExact    Resolution = "exact"
	ResolutionFallback Resolution = "fallback"
)

// fallbackPreset is used when an unknown preset key is requested
const fallbackPreset = "LITIGATION"

const defaultBatchConcurrency = 4

// OptimizerService turns prompt components into optimized prompts
type OptimizerService struct {
	catalog          *catalog.Catalog
	metrics          *metrics.Metrics
	logger           *zap.Logger
	batchConcurrency int
}

// OptimizerServiceOption is a functional option for OptimizerService
type OptimizerServiceOption func(*OptimizerService)

// OptimizerWithCatalog sets the content catalog used for presets
func OptimizerWithCatalog(c *catalog.Catalog) OptimizerServiceOption {
	return func(s *OptimizerService) {
		s.catalog = c
	}
}

// OptimizerWithMetrics sets the metrics sink
func OptimizerWithMetrics(m *metrics.Metrics) OptimizerServiceOption {
	return func(s *OptimizerService) {
		s.metrics = m
	}
}

// OptimizerWithLogger sets the logger
func OptimizerWithLogger(l *zap.Logger) OptimizerServiceOption {
	return func(s *OptimizerService) {
		s.logger = l
	}
}

// OptimizerWithBatchConcurrency bounds parallel work in BatchOptimize
func OptimizerWithBatchConcurrency(n int) OptimizerServiceOption {
	return func(s *OptimizerService) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// NewOptimizerService creates a new optimizer service
func NewOptimizerService(opts ...OptimizerServiceOption) *OptimizerService {
	s := &OptimizerService{
		logger:           zap.NewNop(),
		batchConcurrency: defaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OptimizeRequest represents a request to optimize one prompt
type OptimizeRequest struct {
	Components models.Components
	Mode       models.Mode
	Format     models.OutputFormat
}

// OptimizeResult carries the prompt and how the mode was resolved
type OptimizeResult struct {
	Prompt     models.OptimizedPrompt `json:"prompt"`
	Requested  models.Mode            `json:"requestedMode"`
	Applied    models.Mode            `json:"appliedMode"`
	Resolution Resolution             `json:"resolution"`
}

// IsFallback reports whether a substitute mode or preset was used
func (r OptimizeResult) IsFallback() bool {
	return r.Resolution == ResolutionFallback
}

// Optimize applies a mode to the components. Unknown modes resolve to CRISPE
// and are reported as a fallback; nothing here returns an error.
func (s *OptimizerService) Optimize(req OptimizeRequest) OptimizeResult {
	applied := req.Mode
	resolution := ResolutionExact
	spec, ok := modeTable[req.Mode]
	if !ok {
		applied = models.ModeCRISPE
		resolution = ResolutionFallback
		spec = modeTable[applied]
		s.logger.Debug("unknown optimization mode, using CRISPE", zap.String("mode", string(req.Mode)))
	}

	prompt := applyMode(spec, applied, req.Components, req.Format.Resolve())
	s.metrics.RecordOptimization(string(applied), string(resolution), prompt.QualityScore)

	return OptimizeResult{
		Prompt:     prompt,
		Requested:  req.Mode,
		Applied:    applied,
		Resolution: resolution,
	}
}

func applyMode(spec *modeSpec, mode models.Mode, c models.Components, format models.OutputFormat) models.OptimizedPrompt {
	fields, original := spec.bind(extractInputs(c, format))
	optimized := spec.skeleton.Render(fields)
	if original == "" {
		original = optimized
	}
	score, _ := QualityScore(optimized, c)

	return models.OptimizedPrompt{
		Original:           original,
		Optimized:          optimized,
		Mode:               mode,
		EnhancementNotes:   append([]string(nil), spec.notes...),
		SALegalAdaptations: append([]string(nil), spec.adaptations...),
		ReasoningStructure: spec.reasoning,
		QualityScore:       score,
		TokenEstimate:      EstimateTokens(optimized),
	}
}

// PresetRequest represents a request to optimize with a practice preset
type PresetRequest struct {
	Components models.Components
	Preset     string
}

// OptimizeWithPreset enriches the components from a practice-area preset
// and optimizes with the preset's recommended mode and format. Unknown
// presets use LITIGATION and are reported as a fallback.
func (s *OptimizerService) OptimizeWithPreset(req PresetRequest) (OptimizeResult, error) {
	if s.catalog == nil {
		return OptimizeResult{}, errors.New("catalog not set")
	}

	resolution := ResolutionExact
	preset, ok := s.catalog.Preset(req.Preset)
	if !ok {
		preset, ok = s.catalog.Preset(fallbackPreset)
		if !ok {
			return OptimizeResult{}, fmt.Errorf("fallback preset %s missing from catalog", fallbackPreset)
		}
		resolution = ResolutionFallback
	}

	c := req.Components
	if c.Role == "" {
		c.Role = preset.RoleTemplate
	}
	if len(preset.KeyLegislation) > 0 {
		c.Context += "\n\nRelevant Legislation: " + strings.Join(firstN(preset.KeyLegislation, 2), ", ")
	}
	if len(preset.KeyCases) > 0 {
		c.Context += "\nKey Precedents to consider: " + strings.Join(firstN(preset.KeyCases, 2), ", ")
	}
	if len(preset.SpecialConsiderations) > 0 {
		lines := make([]string, len(preset.SpecialConsiderations))
		for i, sc := range preset.SpecialConsiderations {
			lines[i] = "- " + sc
		}
		c.Constraints += "\n" + strings.Join(lines, "\n")
	}

	result := s.Optimize(OptimizeRequest{
		Components: c,
		Mode:       preset.RecommendedMode,
		Format:     preset.RecommendedFormat,
	})
	result.Prompt.PracticeArea = preset.Name
	if resolution == ResolutionFallback {
		result.Resolution = ResolutionFallback
	}
	return result, nil
}

// DetectPracticeArea scores the catalog presets against free text
func (s *OptimizerService) DetectPracticeArea(text string) (Detection, error) {
	if s.catalog == nil {
		return Detection{}, errors.New("catalog not set")
	}
	return DetectPracticeArea(s.catalog.Presets(), text), nil
}

// PresetInfo describes a preset for listings
type PresetInfo struct {
	Key             string      `json:"key"`
	Name            string      `json:"name"`
	RecommendedMode models.Mode `json:"recommendedMode"`
	ModeName        string      `json:"modeName"`
}

// Presets lists the configured practice presets
func (s *OptimizerService) Presets() []PresetInfo {
	if s.catalog == nil {
		return nil
	}
	presets := s.catalog.Presets()
	out := make([]PresetInfo, 0, len(presets))
	for _, p := range presets {
		out = append(out, PresetInfo{
			Key:             p.Key,
			Name:            p.Name,
			RecommendedMode: p.RecommendedMode,
			ModeName:        p.RecommendedMode.DisplayName(),
		})
	}
	return out
}

var defaultCompareModes = []models.Mode{
	models.ModeCRISPE,
	models.ModeCoSTAR,
	models.ModeChainOfThought,
	models.ModeHybridLegal,
}

var compareBonus = map[models.Mode]int{
	models.ModeChainOfThought: 5,
	models.ModeHybridLegal:    3,
}

var recommendationReasons = map[models.Mode]string{
	models.ModeCRISPE:          "Best for structured professional outputs with clear role definition",
	models.ModeCoSTAR:          "Best for client-facing documents with audience consideration",
	models.ModeChainOfThought:  "Best for complex analysis requiring transparent reasoning",
	models.ModeHybridLegal:     "Best for high-stakes matters requiring maximum enhancement",
	models.ModeRISE:            "Best for iterative refinement of complex matters",
	models.ModeO1Style:         "Best for methodical step-by-step analysis",
	models.ModeExpertWitness:   "Best for technical expert opinions",
	models.ModeMediationADR:    "Best for dispute resolution contexts",
	models.ModeComplianceAudit: "Best for regulatory compliance reviews",
}

// CompareRequest represents a request to compare modes on one prompt
type CompareRequest struct {
	Components models.Components
	Modes      []models.Mode
	Format     models.OutputFormat
}

// ModeComparison is one mode's result within a comparison
type ModeComparison struct {
	Mode   models.Mode            `json:"mode"`
	Name   string                 `json:"name"`
	Result models.OptimizedPrompt `json:"result"`
}

// Comparison holds every compared version and the recommended one
type Comparison struct {
	Original             string           `json:"original"`
	Comparisons          []ModeComparison `json:"comparisons"`
	RecommendedMode      models.Mode      `json:"recommendedMode"`
	RecommendationReason string           `json:"recommendationReason"`
}

// CompareModes optimizes the same components with several modes and picks
// the best by quality score plus a small bonus for reasoning-heavy modes.
// The first mode reaching the top score wins.
func (s *OptimizerService) CompareModes(req CompareRequest) Comparison {
	modes := req.Modes
	if len(modes) == 0 {
		modes = defaultCompareModes
	}

	cmp := Comparison{
		Original:        ComponentsText(req.Components),
		RecommendedMode: models.ModeStandard,
	}
	best := 0
	for _, m := range modes {
		res := s.Optimize(OptimizeRequest{Components: req.Components, Mode: m, Format: req.Format})
		cmp.Comparisons = append(cmp.Comparisons, ModeComparison{
			Mode:   res.Applied,
			Name:   res.Applied.DisplayName(),
			Result: res.Prompt,
		})

		score := res.Prompt.QualityScore + compareBonus[res.Applied]
		if score > best {
			best = score
			cmp.RecommendedMode = res.Applied
		}
	}

	cmp.RecommendationReason = recommendationReasons[cmp.RecommendedMode]
	if cmp.RecommendationReason == "" {
		cmp.RecommendationReason = "Selected based on quality score"
	}
	return cmp
}

// ComponentsText lists the non-empty components as "name: value" lines
func ComponentsText(c models.Components) string {
	names := append([]string{}, models.ComponentOrder...)
	names = append(names, "instructions", "matter")
	extra := make([]string, 0, len(c.Extra))
	for k := range c.Extra {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	names = append(names, extra...)

	var lines []string
	for _, name := range names {
		if v := c.Get(name); v != "" {
			lines = append(lines, name+": "+v)
		}
	}
	return strings.Join(lines, "\n")
}

// BatchRequest represents a request to optimize many prompts alike
type BatchRequest struct {
	Prompts []models.Components
	Mode    models.Mode
	Format  models.OutputFormat
}

// BatchResult summarizes a batch run. Results keep input order.
type BatchResult struct {
	Total      int                      `json:"totalPrompts"`
	Successful int                      `json:"successful"`
	Failed     int                      `json:"failed"`
	Results    []models.OptimizedPrompt `json:"results"`
	Errors     []string                 `json:"errors"`
}

// BatchOptimize optimizes every prompt with the same mode and format. Work
// runs concurrently up to the configured limit; an item that has not started
// when ctx is cancelled is recorded as failed.
func (s *OptimizerService) BatchOptimize(ctx context.Context, req BatchRequest) BatchResult {
	n := len(req.Prompts)
	results := make([]*models.OptimizedPrompt, n)
	failures := make([]error, n)

	g := new(errgroup.Group)
	g.SetLimit(s.batchConcurrency)
	var mu sync.Mutex
	for i := range req.Prompts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				failures[i] = err
				mu.Unlock()
				return nil
			}
			res := s.Optimize(OptimizeRequest{Components: req.Prompts[i], Mode: req.Mode, Format: req.Format})
			mu.Lock()
			results[i] = &res.Prompt
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	out := BatchResult{
		Total:   n,
		Results: make([]models.OptimizedPrompt, 0, n),
		Errors:  []string{},
	}
	for i := 0; i < n; i++ {
		if failures[i] != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("Prompt %d: %v", i+1, failures[i]))
			continue
		}
		out.Results = append(out.Results, *results[i])
	}
	out.Successful = len(out.Results)
	out.Failed = len(out.Errors)

	s.logger.Debug("batch optimized",
		zap.Int("total", out.Total),
		zap.Int("successful", out.Successful),
		zap.Int("failed", out.Failed))
	return out
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
