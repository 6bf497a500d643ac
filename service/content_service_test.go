package service

import (
	"strings"
	"testing"

	"legalprompt-backend/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func TestCombinedPrompt(t *testing.T) {
	svc := NewContentService(ContentWithCatalog(testCatalog(t)))

	out, err := svc.CombinedPrompt(CombinedPromptRequest{
		Frameworks:   []string{"RICE", "NOT-A-FRAMEWORK", "ABCDE"},
		Context:      "Tenant holding over after lease expiry",
		Issue:        "Eviction under PIE",
		PracticeArea: "Property",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Combined SA Legal Prompt\nPractice Area: Property\n"))
	assert.Contains(t, out, "### RICE (Role, Instructions, Context, Examples)")
	assert.Contains(t, out, "### ABCDE (")
	assert.NotContains(t, out, "NOT-A-FRAMEWORK")
	assert.Less(t, strings.Index(out, "### RICE"), strings.Index(out, "### ABCDE"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "- Verify all citations independently"))
}

func TestCombinedPrompt_NoCatalog(t *testing.T) {
	_, err := NewContentService().CombinedPrompt(CombinedPromptRequest{})
	assert.Error(t, err)
}

func TestCourtGuidance(t *testing.T) {
	court, ok := testCatalog(t).Court("LC")
	require.True(t, ok)

	out, err := CourtGuidance(*court)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# "+court.Name+" ("+court.Abbreviation+") - Prompt Guidance"))
	assert.Contains(t, out, "➡️ "+court.AppealRoute)
	assert.Contains(t, out, "📝 "+court.CitationFormat)
}

func TestLegislationPrompt(t *testing.T) {
	act, ok := testCatalog(t).Act("LRA")
	require.True(t, ok)

	out, err := LegislationPrompt(*act, "Is a dismissal for refusing overtime fair?")
	require.NoError(t, err)
	assert.Contains(t, out, "## Issue\nIs a dismissal for refusing overtime fair?")
	assert.Contains(t, out, "**"+act.FullTitle+"**")
	assert.True(t, strings.HasSuffix(out, "IMPORTANT: Cite SAFLII neutral citations for all cases."))
}

func TestEthicsChecklistAndPreamble(t *testing.T) {
	g, ok := testCatalog(t).Guideline("verification")
	require.True(t, ok)

	out, err := EthicsChecklist(*g)
	require.NoError(t, err)
	assert.Contains(t, out, g.Title)
	assert.NotEmpty(t, EthicsPreamble())
}

func TestPracticeAndDocumentPrompts(t *testing.T) {
	cat := testCatalog(t)

	p, ok := cat.PracticePrompt("unfair_dismissal")
	require.True(t, ok)
	out, err := PracticePrompt(*p, "Dismissed for absenteeism after 12 years")
	require.NoError(t, err)
	assert.Contains(t, out, "Dismissed for absenteeism after 12 years")

	doc, ok := cat.DocumentTemplate("letter_of_demand")
	require.True(t, ok)
	structure, err := DocumentStructure(*doc)
	require.NoError(t, err)
	assert.False(t, strings.HasSuffix(structure, "\n"))

	full, err := DocumentPrompt(*doc, "Unpaid invoices of R85 000")
	require.NoError(t, err)
	assert.Contains(t, full, structure)
	assert.Contains(t, full, "Unpaid invoices of R85 000")
}

func TestWorkflowSummaryAndSteps(t *testing.T) {
	wf, ok := testCatalog(t).Workflow("contract_review")
	require.True(t, ok)

	summary, err := WorkflowSummary(*wf)
	require.NoError(t, err)
	assert.Contains(t, summary, "Commercial Contract Review Pipeline")
	for _, s := range wf.Steps {
		assert.Contains(t, summary, s.Title)
	}

	step, err := StepPrompt(*wf, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(step, "# Workflow: Commercial Contract Review Pipeline\n# Step 1: Initial Contract Assessment"))
	assert.Contains(t, step, "**Risk Level:** "+wf.Steps[0].RiskLevel.Label())

	missing, err := StepPrompt(*wf, 99)
	require.NoError(t, err)
	assert.Equal(t, "Step 99 not found in workflow Commercial Contract Review Pipeline", missing)
}
