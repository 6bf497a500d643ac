package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"legalprompt-backend/catalog"
	"legalprompt-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOptimizer(t *testing.T, opts ...OptimizerServiceOption) *OptimizerService {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return NewOptimizerService(append([]OptimizerServiceOption{OptimizerWithCatalog(cat)}, opts...)...)
}

func seniorCounsel() models.Components {
	return models.Components{
		Role:        "Senior Counsel at the Johannesburg Bar",
		Context:     "Client was dismissed after a protected strike at a Gauteng mine.",
		Task:        "Advise on prospects of an unfair dismissal claim",
		Constraints: "Cite Labour Court authority only",
	}
}

func TestSkeleton_RenderDoesNotRescanValues(t *testing.T) {
	s, err := ParseSkeleton("t", "Role: {{.role}}\nTask: {{.task}}")
	require.NoError(t, err)

	assert.Equal(t, []string{"role", "task"}, s.Fields())
	out := s.Render(map[string]string{"role": "{{.task}}", "task": "draft"})
	assert.Equal(t, "Role: {{.task}}\nTask: draft", out)
}

func TestSkeleton_MissingFieldsRenderEmpty(t *testing.T) {
	s := MustParseSkeleton("t", "[{{.role}}]")
	assert.Equal(t, "[]", s.Render(nil))
}

func TestParseSkeleton_InvalidTemplate(t *testing.T) {
	_, err := ParseSkeleton("bad", "{{.role")
	assert.Error(t, err)
}

func TestOptimize_EveryModeRendersWithEmptyComponents(t *testing.T) {
	opt := newTestOptimizer(t)
	for _, m := range models.AllModes {
		t.Run(string(m), func(t *testing.T) {
			res := opt.Optimize(OptimizeRequest{Mode: m})

			assert.Equal(t, m, res.Applied)
			assert.False(t, res.IsFallback())
			assert.NotEmpty(t, res.Prompt.Optimized)
			assert.NotContains(t, res.Prompt.Optimized, "{{")
			assert.NotEmpty(t, res.Prompt.Original)
			assert.Equal(t, EstimateTokens(res.Prompt.Optimized), res.Prompt.TokenEstimate)
		})
	}
}

func TestOptimize_EveryModeCarriesTheTask(t *testing.T) {
	opt := newTestOptimizer(t)
	c := models.Components{Task: "Review the lease for cancellation rights"}
	for _, m := range models.AllModes {
		res := opt.Optimize(OptimizeRequest{Components: c, Mode: m})
		assert.Contains(t, res.Prompt.Optimized, c.Task, m)
	}
}

func TestOptimize_EveryModeCarriesItsBoundComponents(t *testing.T) {
	c := models.Components{
		Role:        "Attorney of the High Court",
		Context:     "Tenant withheld rent after the geyser burst",
		Task:        "Assess the landlord's cancellation notice",
		Constraints: "Limit the answer to Western Cape authority",
		Examples:    "Compare Brisley v Drotsky",
		Extra: map[string]string{
			"parties":           "Landlord Pty Ltd and Ms Dlamini",
			"process_type":      "Rental Housing Tribunal mediation",
			"instructing_party": "Instructed by Smith Attorneys",
			"organization":      "Acme Property Managers",
			"regulations":       "Rental Housing Act 50 of 1999",
			"task_type":         "Lease dispute analysis",
			"audience":          "Junior associates",
			"subject_matter":    "Residential leases",
			"stage":             "Pre-litigation",
			"forum":             "Cape Town Magistrates' Court",
			"key_issues":        "Validity of the breach notice",
			"strengths":         "Written lease with breach clause",
			"weaknesses":        "No proof of delivery",
			"qa_examples":       "Q: Is notice required? A: Yes",
			"optimization_goal": "A tribunal-ready prompt",
		},
	}
	x := func(name string) string { return c.Extra[name] }

	tests := []struct {
		mode models.Mode
		want []string
	}{
		{models.ModeStandard, []string{c.Role, c.Task, c.Context, c.Constraints, c.Examples}},
		{models.ModeCRISPE, []string{c.Role, c.Task, c.Context, c.Constraints}},
		{models.ModeCoSTAR, []string{c.Context, c.Task}},
		{models.ModeChainOfThought, []string{c.Context, c.Task, c.Constraints}},
		{models.ModeRISE, []string{c.Context, c.Task}},
		{models.ModeO1Style, []string{c.Context, c.Task}},
		{models.ModeMetaPrompt, []string{c.Role, c.Task, c.Context}},
		{models.ModeHybridLegal, []string{c.Role, c.Task, c.Context, c.Constraints}},
		{models.ModeClaudeStyle, []string{c.Task, c.Context}},
		{models.ModeExpertWitness, []string{c.Context, c.Task, c.Role, c.Constraints, x("instructing_party")}},
		{models.ModeMediationADR, []string{c.Context, c.Task, c.Constraints, x("parties"), x("process_type")}},
		{models.ModeComplianceAudit, []string{c.Task, c.Constraints, x("organization"), x("regulations")}},
		{models.ModeVARIPlanning, []string{c.Context, c.Task, c.Constraints, x("task_type"), x("audience"), x("subject_matter")}},
		{models.ModeQStar, []string{c.Context, c.Task, c.Constraints, x("stage"), x("forum"), x("key_issues"), x("strengths"), x("weaknesses")}},
		{models.ModeMicroOpt, []string{c.Role, c.Task, c.Context, c.Constraints}},
		{models.ModeOpenAIOfficial, []string{c.Task, c.Context}},
		{models.ModeSPOSelfPlay, []string{c.Role, c.Task, c.Context, x("qa_examples")}},
		{models.ModeGuidedComplete, []string{c.Role, c.Task, c.Context, x("optimization_goal")}},
	}
	require.Len(t, tests, len(models.AllModes))

	opt := newTestOptimizer(t)
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			res := opt.Optimize(OptimizeRequest{Components: c, Mode: tt.mode, Format: models.FormatResearchMemo})
			require.False(t, res.IsFallback())
			for _, want := range tt.want {
				assert.Contains(t, res.Prompt.Optimized, want)
			}

			fields, _ := modeTable[tt.mode].bind(extractInputs(c, models.FormatResearchMemo))
			for name, value := range fields {
				if value != "" {
					assert.Contains(t, res.Prompt.Optimized, value, name)
				}
			}
		})
	}
}

func TestOptimize_CRISPESeniorCounsel(t *testing.T) {
	opt := newTestOptimizer(t)
	c := seniorCounsel()

	res := opt.Optimize(OptimizeRequest{Components: c, Mode: models.ModeCRISPE, Format: models.FormatAdviceLetter})

	assert.Equal(t, models.ModeCRISPE, res.Prompt.Mode)
	assert.Equal(t, ResolutionExact, res.Resolution)
	assert.Contains(t, res.Prompt.Optimized, "Senior Counsel at the Johannesburg Bar")
	assert.Contains(t, res.Prompt.Optimized, "SAFLII neutral citation format")
	assert.Contains(t, res.Prompt.Optimized, "Client Advice Letter")
	assert.Contains(t, res.Prompt.Optimized, "Cite Labour Court authority only")
	assert.Equal(t, "Role: "+c.Role+"\nTask: "+c.Task+"\nContext: "+c.Context, res.Prompt.Original)
	assert.Contains(t, res.Prompt.SALegalAdaptations, "SAFLII citation format requirement")
	assert.Greater(t, res.Prompt.QualityScore, 40)
}

func TestOptimize_CRISPEDismissalScenario(t *testing.T) {
	c := models.Components{
		Role:    "You are a Senior Counsel",
		Task:    "Analyse the dismissal",
		Context: "Employee dismissed after strike",
	}
	out := newTestOptimizer(t).Optimize(OptimizeRequest{Components: c, Mode: models.ModeCRISPE}).Prompt.Optimized

	for _, want := range []string{c.Role, c.Task, c.Context, "SAFLII neutral citation format"} {
		assert.Contains(t, out, want)
	}
}

func TestOptimize_DefaultRoleAndFormat(t *testing.T) {
	opt := newTestOptimizer(t)
	res := opt.Optimize(OptimizeRequest{Components: models.Components{Task: "x"}, Mode: models.ModeCRISPE})

	assert.Contains(t, res.Prompt.Optimized, "SA Legal Professional")
	assert.Contains(t, res.Prompt.Optimized, "Formal Legal Opinion")
}

func TestOptimize_UnknownModeFallsBackToCRISPE(t *testing.T) {
	opt := newTestOptimizer(t)
	res := opt.Optimize(OptimizeRequest{Components: seniorCounsel(), Mode: "QUANTUM_LEGAL"})

	assert.True(t, res.IsFallback())
	assert.Equal(t, models.Mode("QUANTUM_LEGAL"), res.Requested)
	assert.Equal(t, models.ModeCRISPE, res.Applied)
	assert.Equal(t, models.ModeCRISPE, res.Prompt.Mode)
}

func TestOptimizeWithPreset_EnrichesComponents(t *testing.T) {
	opt := newTestOptimizer(t)
	res, err := opt.OptimizeWithPreset(PresetRequest{
		Components: models.Components{Task: "Advise the employer on a retrenchment"},
		Preset:     "LABOUR",
	})
	require.NoError(t, err)

	assert.False(t, res.IsFallback())
	assert.Equal(t, models.ModeCRISPE, res.Applied)
	assert.Equal(t, "Labour & Employment", res.Prompt.PracticeArea)
	assert.Contains(t, res.Prompt.Optimized, "Labour Law Specialist")
	assert.Contains(t, res.Prompt.Optimized, "Relevant Legislation: Labour Relations Act 66 of 1995, Basic Conditions of Employment Act 75 of 1997")
	assert.Contains(t, res.Prompt.Optimized, "- Apply substantive and procedural fairness test")
	assert.NotContains(t, res.Prompt.Optimized, "Employment Equity Act 55 of 1998")
}

func TestOptimizeWithPreset_KeepsCallerRole(t *testing.T) {
	opt := newTestOptimizer(t)
	res, err := opt.OptimizeWithPreset(PresetRequest{
		Components: models.Components{Role: "Junior attorney", Task: "x"},
		Preset:     "LABOUR",
	})
	require.NoError(t, err)
	assert.Contains(t, res.Prompt.Optimized, "Junior attorney")
	assert.NotContains(t, res.Prompt.Optimized, "Labour Law Specialist")
}

func TestOptimizeWithPreset_UnknownPresetUsesLitigation(t *testing.T) {
	opt := newTestOptimizer(t)
	res, err := opt.OptimizeWithPreset(PresetRequest{Components: models.Components{Task: "x"}, Preset: "MARITIME"})
	require.NoError(t, err)

	assert.True(t, res.IsFallback())
	lit, ok := opt.catalog.Preset("LITIGATION")
	require.True(t, ok)
	assert.Equal(t, lit.Name, res.Prompt.PracticeArea)
	assert.Equal(t, lit.RecommendedMode, res.Applied)
}

func TestOptimizeWithPreset_NoCatalog(t *testing.T) {
	_, err := NewOptimizerService().OptimizeWithPreset(PresetRequest{Preset: "LABOUR"})
	assert.Error(t, err)
}

func TestPresets_ListsCatalogOrder(t *testing.T) {
	presets := newTestOptimizer(t).Presets()
	require.Len(t, presets, 8)
	assert.Equal(t, "CONSTITUTIONAL", presets[0].Key)
	assert.Equal(t, presets[0].RecommendedMode.DisplayName(), presets[0].ModeName)
}

func TestCompareModes_DefaultsAndRecommendation(t *testing.T) {
	opt := newTestOptimizer(t)
	cmp := opt.CompareModes(CompareRequest{Components: seniorCounsel()})

	require.Len(t, cmp.Comparisons, 4)
	var modes []models.Mode
	for _, c := range cmp.Comparisons {
		modes = append(modes, c.Mode)
	}
	assert.Equal(t, defaultCompareModes, modes)

	// Scores depend only on components and SA keywords, so the +5 bonus
	// decides between otherwise comparable modes.
	best, bestScore := models.Mode(""), -1
	for _, c := range cmp.Comparisons {
		if s := c.Result.QualityScore + compareBonus[c.Mode]; s > bestScore {
			best, bestScore = c.Mode, s
		}
	}
	assert.Equal(t, best, cmp.RecommendedMode)
	assert.Equal(t, recommendationReasons[best], cmp.RecommendationReason)
	assert.True(t, strings.HasPrefix(cmp.Original, "role: Senior Counsel"))
}

func TestCompareModes_UnknownReason(t *testing.T) {
	opt := newTestOptimizer(t)
	cmp := opt.CompareModes(CompareRequest{Components: seniorCounsel(), Modes: []models.Mode{models.ModeQStar}})

	assert.Equal(t, models.ModeQStar, cmp.RecommendedMode)
	assert.Equal(t, "Selected based on quality score", cmp.RecommendationReason)
}

func TestComponentsText_OrderAndExtras(t *testing.T) {
	c := models.Components{
		Task:  "draft",
		Role:  "advocate",
		Extra: map[string]string{"forum": "CCMA", "audience": "client"},
	}
	assert.Equal(t, "role: advocate\ntask: draft\naudience: client\nforum: CCMA", ComponentsText(c))
}

func TestBatchOptimize_KeepsInputOrder(t *testing.T) {
	opt := newTestOptimizer(t, OptimizerWithBatchConcurrency(3))

	var prompts []models.Components
	for i := 0; i < 10; i++ {
		prompts = append(prompts, models.Components{Task: fmt.Sprintf("task number %d", i)})
	}
	res := opt.BatchOptimize(context.Background(), BatchRequest{Prompts: prompts, Mode: models.ModeCoSTAR})

	assert.Equal(t, 10, res.Total)
	assert.Equal(t, 10, res.Successful)
	assert.Zero(t, res.Failed)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Results, 10)
	for i, r := range res.Results {
		assert.Contains(t, r.Optimized, fmt.Sprintf("task number %d", i))
		assert.Equal(t, models.ModeCoSTAR, r.Mode)
	}
}

func TestBatchOptimize_CancelledContext(t *testing.T) {
	opt := newTestOptimizer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := opt.BatchOptimize(ctx, BatchRequest{
		Prompts: []models.Components{{Task: "a"}, {Task: "b"}},
		Mode:    models.ModeCRISPE,
	})

	assert.Equal(t, 2, res.Total)
	assert.Zero(t, res.Successful)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, []string{"Prompt 1: context canceled", "Prompt 2: context canceled"}, res.Errors)
	assert.Empty(t, res.Results)
}

func TestBatchOptimize_Empty(t *testing.T) {
	res := newTestOptimizer(t).BatchOptimize(context.Background(), BatchRequest{})
	assert.Zero(t, res.Total)
	assert.NotNil(t, res.Results)
	assert.NotNil(t, res.Errors)
}

func TestModes_ListsEveryMode(t *testing.T) {
	modes := Modes()
	require.Len(t, modes, len(models.AllModes))
	for _, m := range modes {
		assert.NotEmpty(t, m.Description, m.Key)
		assert.Equal(t, m.Key.DisplayName(), m.Name)
	}
	assert.Empty(t, ModeDescription("NOPE"))
}
