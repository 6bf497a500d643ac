package models

import (
	"strings"
)

// Mode identifies an optimization technique
type Mode string

const (
	ModeStandard        Mode = "STANDARD"
	ModeCRISPE          Mode = "CRISPE"
	ModeCoSTAR          Mode = "CO_STAR"
	ModeChainOfThought  Mode = "CHAIN_OF_THOUGHT"
	ModeRISE            Mode = "RISE"
	ModeO1Style         Mode = "O1_STYLE"
	ModeMetaPrompt      Mode = "META_PROMPT"
	ModeHybridLegal     Mode = "HYBRID_LEGAL"
	ModeClaudeStyle     Mode = "CLAUDE_STYLE"
	ModeExpertWitness   Mode = "EXPERT_WITNESS"
	ModeMediationADR    Mode = "MEDIATION_ADR"
	ModeComplianceAudit Mode = "COMPLIANCE_AUDIT"
	ModeVARIPlanning    Mode = "VARI_PLANNING"
	ModeQStar           Mode = "Q_STAR"
	ModeMicroOpt        Mode = "MICRO_OPT"
	ModeOpenAIOfficial  Mode = "OPENAI_OFFICIAL"
	ModeSPOSelfPlay     Mode = "SPO_SELF_PLAY"
	ModeGuidedComplete  Mode = "GUIDED_COMPLETE"
)

// AllModes lists every mode in display order
var AllModes = []Mode{
	ModeStandard, ModeCRISPE, ModeCoSTAR, ModeChainOfThought, ModeRISE,
	ModeO1Style, ModeMetaPrompt, ModeHybridLegal, ModeClaudeStyle,
	ModeExpertWitness, ModeMediationADR, ModeComplianceAudit,
	ModeVARIPlanning, ModeQStar, ModeMicroOpt, ModeOpenAIOfficial,
	ModeSPOSelfPlay, ModeGuidedComplete,
}

var modeDisplayNames = map[Mode]string{
	ModeStandard:        "Standard (No Enhancement)",
	ModeCRISPE:          "CRISPE (Role + Profile + Goals)",
	ModeCoSTAR:          "CO-STAR (Context + Objective + Style)",
	ModeChainOfThought:  "Chain of Thought Legal",
	ModeRISE:            "RISE (Recursive Introspection)",
	ModeO1Style:         "O1-Style (Structured Reasoning)",
	ModeMetaPrompt:      "Meta Prompt (Structure Optimization)",
	ModeHybridLegal:     "Hybrid Legal (CRISPE + CoT)",
	ModeClaudeStyle:     "Claude-Style (Task Instructions)",
	ModeExpertWitness:   "Expert Witness (Technical Opinion)",
	ModeMediationADR:    "Mediation/ADR (Dispute Resolution)",
	ModeComplianceAudit: "Compliance Audit (Regulatory Review)",
	ModeVARIPlanning:    "VARI (Variational Planning)",
	ModeQStar:           "Q* (Optimal Path Search)",
	ModeMicroOpt:        "Microsoft MicrOptimization",
	ModeOpenAIOfficial:  "OpenAI Official Method",
	ModeSPOSelfPlay:     "SPO (Self-Play Optimization)",
	ModeGuidedComplete:  "Guided Step-by-Step",
}

// DisplayName returns the human-readable mode name, or the raw tag when unknown
func (m Mode) DisplayName() string {
	if name, ok := modeDisplayNames[m]; ok {
		return name
	}
	return string(m)
}

// Known reports whether m is one of the defined modes
func (m Mode) Known() bool {
	_, ok := modeDisplayNames[m]
	return ok
}

// ParseMode accepts a mode key or display name, case-insensitively.
// The second return value is false when nothing matched.
func ParseMode(s string) (Mode, bool) {
	s = strings.TrimSpace(s)
	for _, m := range AllModes {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, modeDisplayNames[m]) {
			return m, true
		}
	}
	return Mode(s), false
}

// OutputFormat identifies the requested deliverable
type OutputFormat string

const (
	FormatLegalOpinion    OutputFormat = "LEGAL_OPINION"
	FormatHeadsOfArgument OutputFormat = "HEADS_OF_ARGUMENT"
	FormatAdviceLetter    OutputFormat = "ADVICE_LETTER"
	FormatCaseAnalysis    OutputFormat = "CASE_ANALYSIS"
	FormatContractReview  OutputFormat = "CONTRACT_REVIEW"
	FormatResearchMemo    OutputFormat = "RESEARCH_MEMO"
	FormatPleading        OutputFormat = "PLEADING"
	FormatBrief           OutputFormat = "BRIEF"
)

// AllFormats lists every output format in display order
var AllFormats = []OutputFormat{
	FormatLegalOpinion, FormatHeadsOfArgument, FormatAdviceLetter,
	FormatCaseAnalysis, FormatContractReview, FormatResearchMemo,
	FormatPleading, FormatBrief,
}

var formatDisplayNames = map[OutputFormat]string{
	FormatLegalOpinion:    "Formal Legal Opinion",
	FormatHeadsOfArgument: "Heads of Argument",
	FormatAdviceLetter:    "Client Advice Letter",
	FormatCaseAnalysis:    "Case Analysis Memorandum",
	FormatContractReview:  "Contract Review Summary",
	FormatResearchMemo:    "Legal Research Memorandum",
	FormatPleading:        "Draft Pleading",
	FormatBrief:           "Counsel Brief",
}

// Resolve returns f, or LEGAL_OPINION when f is empty or unknown
func (f OutputFormat) Resolve() OutputFormat {
	if _, ok := formatDisplayNames[f]; ok {
		return f
	}
	if parsed, ok := ParseOutputFormat(string(f)); ok {
		return parsed
	}
	return FormatLegalOpinion
}

// DisplayName returns the human-readable format name
func (f OutputFormat) DisplayName() string {
	return formatDisplayNames[f.Resolve()]
}

// ParseOutputFormat accepts a format key or display name, case-insensitively
func ParseOutputFormat(s string) (OutputFormat, bool) {
	s = strings.TrimSpace(s)
	for _, f := range AllFormats {
		if strings.EqualFold(s, string(f)) || strings.EqualFold(s, formatDisplayNames[f]) {
			return f, true
		}
	}
	return "", false
}

// Components holds the user's free-text prompt inputs. Extra carries
// mode-specific fields such as parties or forum.
type Components struct {
	Role         string            `yaml:"role" json:"role,omitempty"`
	Context      string            `yaml:"context" json:"context,omitempty"`
	Task         string            `yaml:"task" json:"task,omitempty"`
	Instructions string            `yaml:"instructions" json:"instructions,omitempty"`
	Matter       string            `yaml:"matter" json:"matter,omitempty"`
	Constraints  string            `yaml:"constraints" json:"constraints,omitempty"`
	OutputFormat string            `yaml:"output_format" json:"outputFormat,omitempty"`
	Examples     string            `yaml:"examples" json:"examples,omitempty"`
	Extra        map[string]string `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// Get returns a named component, looking at Extra for anything not modelled
// as a field
func (c Components) Get(name string) string {
	switch name {
	case "role":
		return c.Role
	case "context":
		return c.Context
	case "task":
		return c.Task
	case "instructions":
		return c.Instructions
	case "matter":
		return c.Matter
	case "constraints":
		return c.Constraints
	case "output_format":
		return c.OutputFormat
	case "examples":
		return c.Examples
	}
	return c.Extra[name]
}

// GetOr returns the named component or def when it is empty
func (c Components) GetOr(name, def string) string {
	if v := c.Get(name); v != "" {
		return v
	}
	return def
}

// ComponentOrder is the canonical order used when listing components
var ComponentOrder = []string{"role", "context", "task", "constraints", "output_format", "examples"}

// OptimizedPrompt is the result of applying a mode to a set of components
type OptimizedPrompt struct {
	Original           string   `json:"original"`
	Optimized          string   `json:"optimized"`
	Mode               Mode     `json:"mode"`
	EnhancementNotes   []string `json:"enhancementNotes"`
	SALegalAdaptations []string `json:"saLegalAdaptations"`
	ReasoningStructure string   `json:"reasoningStructure,omitempty"`
	QualityScore       int      `json:"qualityScore"`
	PracticeArea       string   `json:"practiceArea,omitempty"`
	TokenEstimate      int      `json:"tokenEstimate"`
}
