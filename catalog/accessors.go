package catalog

import (
	"strings"

	"legalprompt-backend/models"
)

// Frameworks returns every prompting framework in catalog order
func (c *Catalog) Frameworks() []models.Framework { return c.frameworks }

// Framework looks a framework up by key, ignoring case
func (c *Catalog) Framework(key string) (*models.Framework, bool) {
	return find(c.frameworks, func(f models.Framework) bool { return strings.EqualFold(f.Key, key) })
}

// FrameworksByCategory returns frameworks whose category matches exactly
func (c *Catalog) FrameworksByCategory(category string) []models.Framework {
	return filter(c.frameworks, func(f models.Framework) bool { return f.Category == category })
}

// FrameworksByDifficulty matches difficulty case-insensitively
func (c *Catalog) FrameworksByDifficulty(difficulty string) []models.Framework {
	return filter(c.frameworks, func(f models.Framework) bool { return strings.EqualFold(f.Difficulty, difficulty) })
}

// Courts returns every court and tribunal in catalog order
func (c *Catalog) Courts() []models.Court { return c.courts }

// Court looks a court up by its key, e.g. "LC" or "CCMA"
func (c *Catalog) Court(key string) (*models.Court, bool) {
	return find(c.courts, func(ct models.Court) bool { return ct.Key == key })
}

func (c *Catalog) CourtsByCategory(category string) []models.Court {
	return filter(c.courts, func(ct models.Court) bool { return ct.Category == category })
}

// CourtsForMatter returns courts where any word of matter appears in one of
// their subject-matter descriptions
func (c *Catalog) CourtsForMatter(matter string) []models.Court {
	words := strings.Fields(strings.ToLower(matter))
	if len(words) == 0 {
		return nil
	}
	return filter(c.courts, func(ct models.Court) bool {
		for _, subject := range ct.SubjectMatter {
			subject = strings.ToLower(subject)
			for _, w := range words {
				if strings.Contains(subject, w) {
					return true
				}
			}
		}
		return false
	})
}

// Legislation returns every Act in catalog order
func (c *Catalog) Legislation() []models.Legislation { return c.legislation }

// Act looks legislation up by key, e.g. "LRA"
func (c *Catalog) Act(key string) (*models.Legislation, bool) {
	return find(c.legislation, func(l models.Legislation) bool { return l.Key == key })
}

func (c *Catalog) LegislationByCategory(category string) []models.Legislation {
	return filter(c.legislation, func(l models.Legislation) bool { return l.Category == category })
}

// Provision returns a section of an Act by exact section label, e.g. "s187"
func (c *Catalog) Provision(actKey, section string) (*models.Provision, bool) {
	act, ok := c.Act(actKey)
	if !ok {
		return nil, false
	}
	return find(act.KeyProvisions, func(p models.Provision) bool { return p.Section == section })
}

// Guidelines returns every ethics guideline in catalog order
func (c *Catalog) Guidelines() []models.EthicsGuideline { return c.guidelines }

func (c *Catalog) Guideline(key string) (*models.EthicsGuideline, bool) {
	return find(c.guidelines, func(g models.EthicsGuideline) bool { return g.Key == key })
}

func (c *Catalog) GuidelinesByCategory(category string) []models.EthicsGuideline {
	return filter(c.guidelines, func(g models.EthicsGuideline) bool { return g.Category == category })
}

// Scenarios returns the AI use scenarios in their fixed order
func (c *Catalog) Scenarios() []models.AIUseScenario { return c.scenarios }

// AssessAIUseRisk returns the first scenario whose name contains query,
// ignoring case
func (c *Catalog) AssessAIUseRisk(query string) (*models.AIUseScenario, bool) {
	q := strings.ToLower(query)
	return find(c.scenarios, func(s models.AIUseScenario) bool {
		return strings.Contains(strings.ToLower(s.Scenario), q)
	})
}

// ScenariosAtOrAbove returns scenarios graded at level or higher
func (c *Catalog) ScenariosAtOrAbove(level models.RiskLevel) []models.AIUseScenario {
	return filter(c.scenarios, func(s models.AIUseScenario) bool { return s.RiskLevel >= level })
}

// PracticePrompts returns every practice-area prompt in catalog order
func (c *Catalog) PracticePrompts() []models.PracticeAreaPrompt { return c.practicePrompts }

func (c *Catalog) PracticePrompt(key string) (*models.PracticeAreaPrompt, bool) {
	return find(c.practicePrompts, func(p models.PracticeAreaPrompt) bool { return p.Key == key })
}

func (c *Catalog) PracticePromptsByArea(area string) []models.PracticeAreaPrompt {
	return filter(c.practicePrompts, func(p models.PracticeAreaPrompt) bool { return p.PracticeArea == area })
}

func (c *Catalog) PracticePromptsByType(promptType string) []models.PracticeAreaPrompt {
	return filter(c.practicePrompts, func(p models.PracticeAreaPrompt) bool { return p.PromptType == promptType })
}

// DocumentTemplates returns every drafting template in catalog order
func (c *Catalog) DocumentTemplates() []models.DocumentTemplate { return c.documents }

func (c *Catalog) DocumentTemplate(key string) (*models.DocumentTemplate, bool) {
	return find(c.documents, func(d models.DocumentTemplate) bool { return d.Key == key })
}

func (c *Catalog) DocumentTemplatesByCategory(category string) []models.DocumentTemplate {
	return filter(c.documents, func(d models.DocumentTemplate) bool { return d.Category == category })
}

// Workflows returns every workflow in catalog order
func (c *Catalog) Workflows() []models.Workflow { return c.workflows }

func (c *Catalog) Workflow(key string) (*models.Workflow, bool) {
	return find(c.workflows, func(w models.Workflow) bool { return w.Key == key })
}

func (c *Catalog) WorkflowsByCategory(category string) []models.Workflow {
	return filter(c.workflows, func(w models.Workflow) bool { return w.Category == category })
}

// WorkflowStep returns the step with the given number
func (c *Catalog) WorkflowStep(key string, stepNumber int) (*models.WorkflowStep, bool) {
	wf, ok := c.Workflow(key)
	if !ok {
		return nil, false
	}
	return StepOf(wf, stepNumber)
}

// StepOf finds a step within a workflow by number
func StepOf(wf *models.Workflow, stepNumber int) (*models.WorkflowStep, bool) {
	return find(wf.Steps, func(s models.WorkflowStep) bool { return s.StepNumber == stepNumber })
}

// Prerequisites lists the steps a step declares it depends on. Dependencies
// are descriptive only; nothing enforces their order.
func Prerequisites(wf *models.Workflow, stepNumber int) []models.WorkflowStep {
	step, ok := StepOf(wf, stepNumber)
	if !ok {
		return nil
	}
	var out []models.WorkflowStep
	for _, dep := range step.Dependencies {
		if s, ok := StepOf(wf, dep); ok {
			out = append(out, *s)
		}
	}
	return out
}

// Dependents lists the steps that name stepNumber as a dependency
func Dependents(wf *models.Workflow, stepNumber int) []models.WorkflowStep {
	return filter(wf.Steps, func(s models.WorkflowStep) bool {
		for _, dep := range s.Dependencies {
			if dep == stepNumber {
				return true
			}
		}
		return false
	})
}

// Presets returns the practice-area presets in fixed order
func (c *Catalog) Presets() []models.PracticePreset { return c.presets }

// Preset looks a preset up by key. CUSTOM has no configuration and misses.
func (c *Catalog) Preset(key string) (*models.PracticePreset, bool) {
	return find(c.presets, func(p models.PracticePreset) bool { return strings.EqualFold(p.Key, key) })
}

// QuickTemplates returns the prefilled component sets
func (c *Catalog) QuickTemplates() []models.QuickTemplate { return c.quickTemplates }

// QuickTemplate matches the template name exactly, ignoring case
func (c *Catalog) QuickTemplate(name string) (*models.QuickTemplate, bool) {
	return find(c.quickTemplates, func(t models.QuickTemplate) bool { return strings.EqualFold(t.Name, name) })
}

func (c *Catalog) QuickTemplatesByCategory(category string) []models.QuickTemplate {
	return filter(c.quickTemplates, func(t models.QuickTemplate) bool { return strings.EqualFold(t.Category, category) })
}
