package catalog

import (
	"strings"
	"testing"

	"legalprompt-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	require.NoError(t, err)
	return c
}

func TestLoad_Counts(t *testing.T) {
	c := loadCatalog(t)

	assert.Len(t, c.Frameworks(), 16)
	assert.Len(t, c.Courts(), 19)
	assert.Len(t, c.Legislation(), 5)
	assert.Len(t, c.Guidelines(), 7)
	assert.Len(t, c.Scenarios(), 8)
	assert.Len(t, c.PracticePrompts(), 7)
	assert.Len(t, c.DocumentTemplates(), 5)
	assert.Len(t, c.Workflows(), 3)
	assert.Len(t, c.Presets(), 8)
	assert.Len(t, c.QuickTemplates(), 16)
}

func TestLoad_FrameworksHaveComponents(t *testing.T) {
	c := loadCatalog(t)
	for _, fw := range c.Frameworks() {
		assert.NotEmpty(t, fw.Components, fw.Key)
	}
}

func TestLoad_PresetOrder(t *testing.T) {
	c := loadCatalog(t)
	var keys []string
	for _, p := range c.Presets() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{
		"CONSTITUTIONAL", "CRIMINAL", "LABOUR", "COMMERCIAL",
		"LITIGATION", "FAMILY", "PROPERTY", "ADMINISTRATIVE",
	}, keys)
}

func TestDefault_IsShared(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b := MustDefault()
	assert.Same(t, a, b)
}

func TestFramework(t *testing.T) {
	c := loadCatalog(t)

	fw, ok := c.Framework("rice")
	require.True(t, ok)
	assert.Equal(t, "RICE", fw.Acronym)
	assert.Equal(t, "R", fw.Components[0].Letter)

	_, ok = c.Framework("NOPE")
	assert.False(t, ok)

	for _, fw := range c.FrameworksByDifficulty("advanced") {
		assert.Equal(t, "Advanced", fw.Difficulty)
	}
	assert.Len(t, c.FrameworksByCategory("Verification & Safety"), 3)
}

func TestCourtsForMatter(t *testing.T) {
	c := loadCatalog(t)

	courts := c.CourtsForMatter("dismissal")
	require.NotEmpty(t, courts)
	assert.Equal(t, "LC", courts[0].Key)

	assert.Empty(t, c.CourtsForMatter(""))
	assert.Empty(t, c.CourtsForMatter("zzzqqq"))
}

func TestProvision(t *testing.T) {
	c := loadCatalog(t)

	p, ok := c.Provision("LRA", "s185")
	require.True(t, ok)
	assert.Equal(t, "s185", p.Section)

	_, ok = c.Provision("LRA", "s9999")
	assert.False(t, ok)
	_, ok = c.Provision("Missing Act", "s1")
	assert.False(t, ok)
}

func TestAssessAIUseRisk(t *testing.T) {
	c := loadCatalog(t)

	s, ok := c.AssessAIUseRisk("outcome prediction")
	require.True(t, ok)
	assert.Equal(t, "Case Outcome Prediction", s.Scenario)

	s, ok = c.AssessAIUseRisk("privileged")
	require.True(t, ok)
	assert.Equal(t, models.RiskHigh, s.RiskLevel)

	s, ok = c.AssessAIUseRisk("CLIENT INTAKE")
	require.True(t, ok)
	assert.Equal(t, models.RiskProhibited, s.RiskLevel)
	assert.Equal(t, "Prohibited - Do Not Use AI", s.RiskLevel.Label())

	_, ok = c.AssessAIUseRisk("space law")
	assert.False(t, ok)
}

func TestScenariosAtOrAbove(t *testing.T) {
	c := loadCatalog(t)

	high := c.ScenariosAtOrAbove(models.RiskHigh)
	require.NotEmpty(t, high)
	for _, s := range high {
		assert.GreaterOrEqual(t, s.RiskLevel, models.RiskHigh)
	}
	assert.Len(t, c.ScenariosAtOrAbove(models.RiskLow), len(c.Scenarios()))
}

func TestWorkflowSteps(t *testing.T) {
	c := loadCatalog(t)

	wf, ok := c.Workflow("contract_review")
	require.True(t, ok)

	step, ok := c.WorkflowStep("contract_review", 2)
	require.True(t, ok)
	assert.Equal(t, 2, step.StepNumber)

	_, ok = c.WorkflowStep("contract_review", 99)
	assert.False(t, ok)

	prereqs := Prerequisites(wf, 2)
	require.Len(t, prereqs, 1)
	assert.Equal(t, 1, prereqs[0].StepNumber)

	for _, s := range Dependents(wf, 2) {
		assert.Contains(t, s.Dependencies, 2)
	}
}

func TestPreset(t *testing.T) {
	c := loadCatalog(t)

	p, ok := c.Preset("labour")
	require.True(t, ok)
	assert.Equal(t, "Labour & Employment", p.Name)
	assert.True(t, p.RecommendedMode.Known())

	_, ok = c.Preset("CUSTOM")
	assert.False(t, ok)
}

func TestQuickTemplates(t *testing.T) {
	c := loadCatalog(t)

	tpl, ok := c.QuickTemplate("constitutional rights analysis")
	require.True(t, ok)
	assert.Equal(t, models.ModeChainOfThought, tpl.RecommendedMode)
	assert.NotEmpty(t, tpl.Components.Role)

	assert.NotEmpty(t, c.QuickTemplatesByCategory("labour"))
	assert.Empty(t, c.QuickTemplatesByCategory("Astronomy"))
}

func TestSearch(t *testing.T) {
	c := loadCatalog(t)

	t.Run("matches saflii code", func(t *testing.T) {
		results := c.Search("zalac")
		require.NotEmpty(t, results)
		assert.Equal(t, ResultCourt, results[0].Type)
		assert.Equal(t, "LAC", results[0].Key)
	})

	t.Run("case insensitive across catalogs", func(t *testing.T) {
		types := map[ResultType]bool{}
		for _, r := range c.Search("CONTRACT") {
			types[r.Type] = true
		}
		assert.True(t, types[ResultWorkflow])
	})

	t.Run("descriptions are truncated", func(t *testing.T) {
		for _, r := range c.Search("a") {
			assert.LessOrEqual(t, len([]rune(strings.TrimSuffix(r.Description, "..."))), snippetLength)
		}
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Empty(t, c.Search("   "))
	})
}
