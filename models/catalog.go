package models

import (
	"fmt"
	"strings"
)

// FrameworkComponent is one lettered element of a prompting framework
type FrameworkComponent struct {
	Letter      string `yaml:"letter" json:"letter"`
	Component   string `yaml:"component" json:"component"`
	Description string `yaml:"description" json:"description"`
	Example     string `yaml:"example" json:"example"`
}

// Framework represents a named prompting methodology with SA adaptations
type Framework struct {
	Key           string               `yaml:"key" json:"key"`
	Name          string               `yaml:"name" json:"name"`
	Acronym       string               `yaml:"acronym" json:"acronym"`
	Category      string               `yaml:"category" json:"category"`
	Description   string               `yaml:"description" json:"description"`
	Components    []FrameworkComponent `yaml:"components" json:"components"`
	SAAdaptations []string             `yaml:"sa_adaptations" json:"saAdaptations"`
	ExamplePrompt string               `yaml:"example_prompt" json:"examplePrompt"`
	BestFor       []string             `yaml:"best_for" json:"bestFor"`
	Difficulty    string               `yaml:"difficulty" json:"difficulty"`
	Source        string               `yaml:"source" json:"source"`
}

// Court represents a South African court or tribunal
type Court struct {
	Key                     string   `yaml:"key" json:"key"`
	Name                    string   `yaml:"name" json:"name"`
	Abbreviation            string   `yaml:"abbreviation" json:"abbreviation"`
	SAFLIICode              string   `yaml:"saflii_code" json:"safliiCode"`
	Category                string   `yaml:"category" json:"category"`
	JurisdictionType        string   `yaml:"jurisdiction_type" json:"jurisdictionType"`
	EstablishingLegislation string   `yaml:"establishing_legislation" json:"establishingLegislation"`
	SubjectMatter           []string `yaml:"subject_matter" json:"subjectMatter"`
	MonetaryJurisdiction    string   `yaml:"monetary_jurisdiction,omitempty" json:"monetaryJurisdiction,omitempty"`
	GeographicJurisdiction  string   `yaml:"geographic_jurisdiction" json:"geographicJurisdiction"`
	Composition             string   `yaml:"composition" json:"composition"`
	PresidingOfficers       []string `yaml:"presiding_officers" json:"presidingOfficers"`
	AppealRoute             string   `yaml:"appeal_route" json:"appealRoute"`
	KeyProcedures           []string `yaml:"key_procedures" json:"keyProcedures"`
	CommonMatters           []string `yaml:"common_matters" json:"commonMatters"`
	PromptConsiderations    []string `yaml:"prompt_considerations" json:"promptConsiderations"`
	CitationFormat          string   `yaml:"citation_format" json:"citationFormat"`
}

// Institution is a body created or governed by an Act
type Institution struct {
	Name string `yaml:"name" json:"name"`
	Role string `yaml:"role" json:"role"`
}

// Provision is a key section of an Act
type Provision struct {
	Section            string   `yaml:"section" json:"section"`
	Title              string   `yaml:"title" json:"title"`
	Description        string   `yaml:"description" json:"description"`
	CommonApplications []string `yaml:"common_applications" json:"commonApplications"`
	KeyCases           []string `yaml:"key_cases" json:"keyCases"`
	PromptTips         []string `yaml:"prompt_tips" json:"promptTips"`
}

// LandmarkCase pairs a reported decision with the principle it stands for
type LandmarkCase struct {
	Case      string `yaml:"case" json:"case"`
	Principle string `yaml:"principle" json:"principle"`
}

// Legislation represents a South African statute
type Legislation struct {
	Key                   string         `yaml:"key" json:"key"`
	ShortTitle            string         `yaml:"short_title" json:"shortTitle"`
	ActNumber             string         `yaml:"act_number" json:"actNumber"`
	FullTitle             string         `yaml:"full_title" json:"fullTitle"`
	Category              string         `yaml:"category" json:"category"`
	CommencementDate      string         `yaml:"commencement_date" json:"commencementDate"`
	Purpose               []string       `yaml:"purpose" json:"purpose"`
	KeyInstitutions       []Institution  `yaml:"key_institutions" json:"keyInstitutions"`
	KeyProvisions         []Provision    `yaml:"key_provisions" json:"keyProvisions"`
	ImportantSchedules    []string       `yaml:"important_schedules" json:"importantSchedules"`
	RelatedRegulations    []string       `yaml:"related_regulations" json:"relatedRegulations"`
	LandmarkCases         []LandmarkCase `yaml:"landmark_cases" json:"landmarkCases"`
	PromptConsiderations  []string       `yaml:"prompt_considerations" json:"promptConsiderations"`
	CommonPromptTemplates []string       `yaml:"common_prompt_templates" json:"commonPromptTemplates"`
}

// RiskLevel grades the risk of an AI use scenario
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskProhibited
)

var riskLevelNames = []string{"LOW", "MEDIUM", "HIGH", "PROHIBITED"}

var riskLevelLabels = []string{
	"Low Risk - Standard Precautions",
	"Medium Risk - Proceed with Care",
	"High Risk - Exercise Extreme Caution",
	"Prohibited - Do Not Use AI",
}

func (r RiskLevel) String() string {
	if int(r) < len(riskLevelNames) && r >= 0 {
		return riskLevelNames[r]
	}
	return fmt.Sprintf("RiskLevel(%d)", int(r))
}

// Label returns the guidance text shown alongside the level
func (r RiskLevel) Label() string {
	if int(r) < len(riskLevelLabels) && r >= 0 {
		return riskLevelLabels[r]
	}
	return r.String()
}

// ParseRiskLevel parses a level name such as "HIGH"
func ParseRiskLevel(s string) (RiskLevel, error) {
	for i, name := range riskLevelNames {
		if strings.EqualFold(s, name) {
			return RiskLevel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown risk level: %q", s)
}

func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RiskLevel) UnmarshalText(text []byte) error {
	level, err := ParseRiskLevel(string(text))
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// EthicsExample is a worked scenario attached to a guideline
type EthicsExample struct {
	Situation  string `yaml:"situation" json:"situation"`
	Issue      string `yaml:"issue" json:"issue"`
	Resolution string `yaml:"resolution" json:"resolution"`
}

// EthicsGuideline represents a professional responsibility rule for AI use
type EthicsGuideline struct {
	Key                 string          `yaml:"key" json:"key"`
	Title               string          `yaml:"title" json:"title"`
	Category            string          `yaml:"category" json:"category"`
	Description         string          `yaml:"description" json:"description"`
	LPCRuleReference    string          `yaml:"lpc_rule_reference" json:"lpcRuleReference"`
	SAContext           string          `yaml:"sa_context" json:"saContext"`
	Requirements        []string        `yaml:"requirements" json:"requirements"`
	ProhibitedPractices []string        `yaml:"prohibited_practices" json:"prohibitedPractices"`
	BestPractices       []string        `yaml:"best_practices" json:"bestPractices"`
	Examples            []EthicsExample `yaml:"examples" json:"examples"`
	PromptGuidance      string          `yaml:"prompt_guidance" json:"promptGuidance"`
}

// AIUseScenario grades a category of AI use by risk
type AIUseScenario struct {
	Scenario            string    `yaml:"scenario" json:"scenario"`
	RiskLevel           RiskLevel `yaml:"risk_level" json:"riskLevel"`
	SafeguardsRequired  []string  `yaml:"safeguards_required" json:"safeguardsRequired"`
	RecommendedApproach string    `yaml:"recommended_approach" json:"recommendedApproach"`
	ProhibitedUses      []string  `yaml:"prohibited_uses" json:"prohibitedUses"`
}

// PracticeAreaPrompt is a ready-made prompt for a practice area
type PracticeAreaPrompt struct {
	Key               string   `yaml:"key" json:"key"`
	Title             string   `yaml:"title" json:"title"`
	PracticeArea      string   `yaml:"practice_area" json:"practiceArea"`
	PromptType        string   `yaml:"prompt_type" json:"promptType"`
	Description       string   `yaml:"description" json:"description"`
	Template          string   `yaml:"template" json:"template"`
	KeyLegislation    []string `yaml:"key_legislation" json:"keyLegislation"`
	KeyCases          []string `yaml:"key_cases" json:"keyCases"`
	PracticeTips      []string `yaml:"practice_tips" json:"practiceTips"`
	CommonIssues      []string `yaml:"common_issues" json:"commonIssues"`
	SAFLIISearchTerms []string `yaml:"saflii_search_terms" json:"safliiSearchTerms"`
}

// DocumentSection is one part of a document template's structure
type DocumentSection struct {
	Name            string `yaml:"name" json:"name"`
	Description     string `yaml:"description" json:"description"`
	Required        bool   `yaml:"required" json:"required"`
	ContentGuidance string `yaml:"content_guidance" json:"contentGuidance"`
	Example         string `yaml:"example" json:"example"`
}

// DocumentTemplate describes how to draft a legal document
type DocumentTemplate struct {
	Key              string            `yaml:"key" json:"key"`
	Title            string            `yaml:"title" json:"title"`
	Category         string            `yaml:"category" json:"category"`
	Description      string            `yaml:"description" json:"description"`
	UseCases         []string          `yaml:"use_cases" json:"useCases"`
	ApplicableCourts []string          `yaml:"applicable_courts" json:"applicableCourts"`
	Structure        []DocumentSection `yaml:"structure" json:"structure"`
	DraftingTips     []string          `yaml:"drafting_tips" json:"draftingTips"`
	CommonErrors     []string          `yaml:"common_errors" json:"commonErrors"`
	PromptTemplate   string            `yaml:"prompt_template" json:"promptTemplate"`
	KeyLegislation   []string          `yaml:"key_legislation" json:"keyLegislation"`
	TimeEstimate     string            `yaml:"time_estimate" json:"timeEstimate"`
}

// StepRisk grades a workflow step
type StepRisk int

const (
	StepRiskLow StepRisk = iota
	StepRiskMedium
	StepRiskHigh
	StepRiskCritical
)

var stepRiskNames = []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}

var stepRiskLabels = []string{
	"Low Risk - AI can lead",
	"Medium Risk - AI assists, human reviews",
	"High Risk - Human leads, AI supports",
	"Critical - Human only, AI verification",
}

// Label describes how much the step may rely on AI
func (r StepRisk) Label() string {
	if int(r) < len(stepRiskLabels) && r >= 0 {
		return stepRiskLabels[r]
	}
	return r.String()
}

func (r StepRisk) String() string {
	if int(r) < len(stepRiskNames) && r >= 0 {
		return stepRiskNames[r]
	}
	return fmt.Sprintf("StepRisk(%d)", int(r))
}

func (r StepRisk) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *StepRisk) UnmarshalText(text []byte) error {
	for i, name := range stepRiskNames {
		if strings.EqualFold(string(text), name) {
			*r = StepRisk(i)
			return nil
		}
	}
	return fmt.Errorf("unknown step risk: %q", string(text))
}

// WorkflowStep is one stage of a workflow. Dependencies are informational.
type WorkflowStep struct {
	StepNumber           int      `yaml:"step_number" json:"stepNumber"`
	Title                string   `yaml:"title" json:"title"`
	StepType             string   `yaml:"step_type" json:"stepType"`
	Description          string   `yaml:"description" json:"description"`
	AIPrompt             string   `yaml:"ai_prompt" json:"aiPrompt"`
	HumanActions         []string `yaml:"human_actions" json:"humanActions"`
	VerificationRequired []string `yaml:"verification_required" json:"verificationRequired"`
	RiskLevel            StepRisk `yaml:"risk_level" json:"riskLevel"`
	Outputs              []string `yaml:"outputs" json:"outputs"`
	EstimatedTime        string   `yaml:"estimated_time" json:"estimatedTime"`
	Dependencies         []int    `yaml:"dependencies" json:"dependencies"`
}

// Workflow is an ordered multi-step pipeline
type Workflow struct {
	Key                   string         `yaml:"key" json:"key"`
	Title                 string         `yaml:"title" json:"title"`
	Category              string         `yaml:"category" json:"category"`
	Description           string         `yaml:"description" json:"description"`
	UseCases              []string       `yaml:"use_cases" json:"useCases"`
	Steps                 []WorkflowStep `yaml:"steps" json:"steps"`
	KeyLegislation        []string       `yaml:"key_legislation" json:"keyLegislation"`
	EthicalConsiderations []string       `yaml:"ethical_considerations" json:"ethicalConsiderations"`
	QualityCheckpoints    []string       `yaml:"quality_checkpoints" json:"qualityCheckpoints"`
	TotalEstimatedTime    string         `yaml:"total_estimated_time" json:"totalEstimatedTime"`
	Complexity            string         `yaml:"complexity" json:"complexity"`
}

// PracticePreset configures optimization defaults for a practice area
type PracticePreset struct {
	Key                   string       `yaml:"key" json:"key"`
	Name                  string       `yaml:"name" json:"name"`
	RecommendedMode       Mode         `yaml:"recommended_mode" json:"recommendedMode"`
	RecommendedFormat     OutputFormat `yaml:"recommended_format" json:"recommendedFormat"`
	KeyLegislation        []string     `yaml:"key_legislation" json:"keyLegislation"`
	KeyCases              []string     `yaml:"key_cases" json:"keyCases"`
	SpecialConsiderations []string     `yaml:"special_considerations" json:"specialConsiderations"`
	RoleTemplate          string       `yaml:"role_template" json:"roleTemplate"`
	ContextHints          []string     `yaml:"context_hints" json:"contextHints"`
}

// QuickTemplate is a prefilled set of prompt components
type QuickTemplate struct {
	Name            string     `yaml:"name" json:"name"`
	Category        string     `yaml:"category" json:"category"`
	Description     string     `yaml:"description" json:"description"`
	Components      Components `yaml:"components" json:"components"`
	RecommendedMode Mode       `yaml:"recommended_mode" json:"recommendedMode"`
	Popularity      int        `yaml:"popularity" json:"popularity"`
}
