package service

import (
	"legalprompt-backend/models"
)

// defaultRole is used when the caller gives no role
const defaultRole = "SA Legal Professional"

// promptInputs are the components after defaults have been applied
type promptInputs struct {
	role        string
	task        string
	context     string
	matter      string
	constraints string
	examples    string
	format      string
	components  models.Components
}

func extractInputs(c models.Components, format models.OutputFormat) promptInputs {
	in := promptInputs{
		role:        c.GetOr("role", defaultRole),
		task:        c.GetOr("task", c.Instructions),
		context:     c.Context,
		constraints: c.Constraints,
		examples:    c.Examples,
		format:      format.DisplayName(),
		components:  c,
	}
	in.matter = c.GetOr("matter", in.context+"\n\n"+in.task)
	return in
}

func (in promptInputs) basicPrompt() string {
	return "Role: " + in.role + "\nTask: " + in.task + "\nContext: " + in.context
}

// modeSpec is the fixed configuration of one optimization mode
type modeSpec struct {
	skeleton    *Skeleton
	description string
	notes       []string
	adaptations []string
	reasoning   string
	// bind maps inputs to skeleton fields and returns the "original" text.
	// An empty original means the rendered prompt stands for itself.
	bind func(in promptInputs) (map[string]string, string)
}

// ModeInfo describes a mode for listings
type ModeInfo struct {
	Key         models.Mode `json:"key"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
}

var modeTable = map[models.Mode]*modeSpec{
	models.ModeStandard: {
		skeleton:    loadSkeleton("standard.tmpl"),
		description: "Basic formatting with SA legal standards. No advanced optimization.",
		notes:       []string{"Basic formatting applied"},
		adaptations: []string{"SAFLII citation reminder added"},
		bind: func(in promptInputs) (map[string]string, string) {
			fields := map[string]string{
				"role":          in.role,
				"task":          in.task,
				"context":       in.context,
				"output_format": in.format,
			}
			if in.constraints != "" {
				fields["constraints_line"] = "**Constraints:** " + in.constraints
			}
			if in.examples != "" {
				fields["examples_line"] = "**Examples/Precedents:** " + in.examples
			}
			return fields, ""
		},
	},
	models.ModeCRISPE: {
		skeleton:    loadSkeleton("crispe.tmpl"),
		description: "Comprehensive system prompt with role, profile, goals, skills, constraints, and workflow. Best for complex professional outputs.",
		notes: []string{
			"Added structured system context with XML tags",
			"Included SA-specific legal profile and skills",
			"Added constitutional interpretation constraints",
			"Structured workflow for consistent reasoning",
		},
		adaptations: []string{
			"SAFLII citation format requirement",
			"Ubuntu-infused legal reasoning",
			"Transformative constitutionalism principles",
			"Court hierarchy awareness",
			"Professional ethics compliance",
		},
		bind: func(in promptInputs) (map[string]string, string) {
			return map[string]string{
				"role":                   in.role,
				"task":                   in.task,
				"context":                in.context,
				"output_format":          in.format,
				"additional_constraints": in.constraints,
				"expertise":              "General SA Legal Practice",
				"goals":                  "Provide accurate, well-reasoned legal analysis",
			}, in.basicPrompt()
		},
	},
	models.ModeCoSTAR: {
		skeleton:    loadSkeleton("co_star.tmpl"),
		description: "Audience-focused optimization with context, objective, style, tone, audience, and result specifications. Best for client-facing documents.",
		notes: []string{
			"Structured with clear CO-STAR components",
			"Added SA jurisdictional context",
			"Included quality standards for output",
			"Specified audience for tailored communication",
		},
		adaptations: []string{
			"Mixed legal system acknowledgment",
			"Constitutional values as interpretive guides",
			"Ubuntu principle integration",
			"SAFLII citation standards",
			"Court hierarchy distinction",
		},
		bind: func(in promptInputs) (map[string]string, string) {
			return map[string]string{
				"context":        in.context,
				"objective":      in.task,
				"style_identity": "Senior SA Legal Practitioner",
				"tone":           "Professional, authoritative, yet accessible",
				"audience":       "Legal professionals with SA law knowledge",
				"result":         in.format,
			}, "Context: " + in.context + "\nObjective: " + in.task
		},
	},
	models.ModeChainOfThought: {
		skeleton:    loadSkeleton("chain_of_thought.tmpl"),
		description: "Step-by-step legal reasoning with self-validation. Best for complex legal analysis requiring transparent reasoning.",
		notes: []string{
			"Structured 6-step reasoning protocol",
			"Added self-validation check",
			"Included meta-cognition reflection",
			"Systematic issue-to-conclusion flow",
		},
		adaptations: []string{
			"SA court hierarchy for precedent binding force",
			"Constitutional provisions priority",
			"Section 36 limitations analysis integration",
			"Mixed legal system consideration",
			"SAFLII citation format embedded",
		},
		reasoning: "Step 1: Issue ID → Step 2: Law Framework → Step 3: Precedents → Step 4: Application → Step 5: Validation → Step 6: Conclusions",
		bind: func(in promptInputs) (map[string]string, string) {
			return map[string]string{
				"matter":                  in.matter,
				"additional_instructions": "Output Format: " + in.format + "\n" + in.constraints,
			}, in.matter
		},
	},
	models.ModeRISE: {
		skeleton:    loadSkeleton("rise.tmpl"),
		description: "Recursive self-improvement with 3 automatic iterations. Best for high-stakes matters requiring refined analysis.",
		notes: []string{
			"3-iteration self-improvement protocol",
			"Built-in self-critique mechanism",
			"Progressive confidence assessment",
			"Automatic weakness identification and remediation",
		},
		adaptations: []string{
			"SAFLII citation enforcement",
			"Transformative constitutionalism integration",
			"Ubuntu principle consideration",
			"Ratio/obiter distinction",
			"Precedent binding force analysis",
		},
		reasoning: "Initial Analysis → Self-Critique → Enhanced Analysis → Final Output",
		bind: func(in promptInputs) (map[string]string, string) {
			return map[string]string{
				"matter":             in.matter,
				"additional_context": "Required Output: " + in.format,
			}, in.matter
		},
	},
	models.ModeO1Style: {
		skeleton:    loadSkeleton("o1_style.tmpl"),
		description: "Structured reasoning with step budgets and quality scoring. Best for matters requiring careful, methodical analysis.",
		notes: []string{
			"Explicit thinking process with tags",
			"15-step budget for controlled reasoning depth",
			"Self-evaluation with quality scoring (0-1)",
			"Backtracking capability for low-quality reasoning",
			"Structured final answer synthesis",
		},
		adaptations: []string{
			"Constitutional Court precedent binding requirement",
			"SAFLII citation format mandate",
			"Section 36 limitations analysis",
			"Transformative constitutionalism lens",
			"Authority hierarchy awareness",
		},
		reasoning: "Thinking → Steps (with budget) → Reflections (with scores) → Answer",
		bind: func(in promptInputs) (map[string]string, string) {
			return map[string]string{
				"matter":                  in.matter,
				"additional_instructions": "Target Output Format: " + in.format,
			}, in.matter
		},
	},
	models.ModeMetaPrompt: {
		skeleton:    loadSkeleton("meta_prompt.tmpl"),
		description: "Prompt-about-prompt optimization. Use when you want AI to enhance your prompt structure.",
		notes: []string{
			"Self-referential prompt optimization",
			"Structural enhancement focus",
			"Preserves original intent",
			"Adds SA legal context automatically",
		},
		adaptations: []string{
			"SAFLII citation format embedding",
			"Constitutional values framework",
			"Court hierarchy reference",
			"Ubuntu principle integration",
			"SA Act citation format",
		},
		bind: func(in promptInputs) (map[string]string, string) {
			basic := in.basicPrompt()
			return map[string]string{"original_prompt": basic}, basic
		},
	},
	models.ModeHybridLegal: {
		skeleton:    loadSkeleton("hybrid_legal.tmpl"),
		description: "Maximum enhancement combining CRISPE structure with Chain of Thought reasoning. Best for complex high-stakes matters.",
		notes: []string{
			"Combined CRISPE structure with CoT reasoning",
			"6-step systematic analysis protocol",
			"Built-in self-validation checkpoint",
			"Confidence assessment requirement",
			"Maximum enhancement for complex matters",
		},
		adaptations: []string{
			"Constitutional supremacy framework",
			"Roman-Dutch common law integration",
			"Customary law consideration",
			"Ubuntu principle in reasoning",
			"Court hierarchy for precedent",
		},
		reasoning: "System Context → Task → Reasoning Protocol (6 steps) → Output",
		bind: func(in promptInputs) (map[string]string, string) {
			return map[string]string{
				"role":                   in.role,
				"expertise":              "SA Legal Practice",
				"task":                   in.task,
				"context":                in.context,
				"output_format":          in.format,
				"additional_constraints": in.constraints,
			}, in.basicPrompt()
		},
	},
	models.ModeClaudeStyle: {
		skeleton:    loadSkeleton("claude_style.tmpl"),
		description: "Detailed task instructions with explicit rules and structured output. Best for complex tasks requiring precise guidance.",
		notes: []string{
			"Detailed task instructions format",
			"Explicit rules for legal work",
			"Structured output with XML tags",
			"Built-in quality checks",
			"Clear reasoning requirements",
		},
		adaptations: []string{
			"SAFLII citation rules embedded",
			"Court hierarchy explained",
			"Constitutional interpretation guide",
			"Section 36 analysis framework",
			"Ratio/obiter distinction required",
		},
		reasoning: "Task Description → Context → Rules → Output Instructions → Execution",
		bind: func(in promptInputs) (map[string]string, string) {
			return map[string]string{
				"task":          in.task,
				"context":       in.context,
				"output_format": in.format,
			}, "Task: " + in.task + "\nContext: " + in.context
		},
	},
	models.ModeExpertWitness: {
		skeleton:    loadSkeleton("expert_witness.tmpl"),
		description: "Expert witness report format compliant with Uniform Rules Rule 36(9). Best for technical court opinions.",
		notes: []string{
			"Expert witness report structure",
			"Independence declaration included",
			"Methodology documentation",
			"Court-compliant format (Rule 36(9))",
			"Facts/opinion separation enforced",
		},
		adaptations: []string{
			"Uniform Rules Rule 36(9) compliance",
			"SA court evidentiary standards",
			"Independence and impartiality requirements",
			"Technical language accessibility requirements",
		},
		reasoning: "Qualifications → Brief → Methodology → Findings → Opinion → Declaration",
		bind: func(in promptInputs) (map[string]string, string) {
			return map[string]string{
				"matter":                  in.matter,
				"field_of_expertise":      in.role,
				"instructing_party":       in.components.GetOr("instructing_party", "Instructed by legal representatives of the Applicant/Defendant"),
				"additional_instructions": "Output Format: " + in.format + "\n" + in.constraints,
			}, in.matter
		},
	},
	models.ModeMediationADR: {
		skeleton:    loadSkeleton("mediation_adr.tmpl"),
		description: "5-phase ADR process structure with interest-based negotiation. Best for mediation prep and dispute resolution.",
		notes: []string{
			"5-phase ADR process structure",
			"Interest-based negotiation framework",
			"Caucus and joint session protocols",
			"Settlement agreement guidelines",
			"BATNA/WATNA analysis integration",
		},
		adaptations: []string{
			"SA ADR legislation framework",
			"CCMA process integration (LRA)",
			"Consumer dispute resolution (CPA)",
			"Customary dispute resolution recognition",
			"ADR practitioner ethics standards",
		},
		reasoning: "Opening → Storytelling → Exploration → Negotiation → Agreement",
		bind: func(in promptInputs) (map[string]string, string) {
			return map[string]string{
				"dispute":             in.matter,
				"parties":             in.components.GetOr("parties", "Party A and Party B"),
				"process_type":        in.components.GetOr("process_type", "Mediation"),
				"additional_guidance": "Output Format: " + in.format + "\n" + in.constraints,
			}, in.matter
		},
	},
	models.ModeComplianceAudit: {
		skeleton:    loadSkeleton("compliance_audit.tmpl"),
		description: "6-section regulatory compliance audit protocol. Best for POPIA, FICA, King IV, and general compliance reviews.",
		notes: []string{
			"6-section audit protocol",
			"Gap analysis with risk matrix",
			"Actionable recommendations format",
			"Finding categorization (Critical/Major/Minor)",
			"Board-ready executive summary",
		},
		adaptations: []string{
			"Key SA compliance legislation mapped",
			"King IV governance integration",
			"POPIA data protection requirements",
			"FICA/AML compliance",
			"Sector-specific regulatory requirements",
		},
		reasoning: "Framework → Policies → Controls → Risk → Gaps → Recommendations",
		bind: func(in promptInputs) (map[string]string, string) {
			scope := in.task
			if scope == "" {
				scope = in.context
			}
			return map[string]string{
				"organization":            in.components.GetOr("organization", "The organization under review"),
				"scope":                   scope,
				"regulations":             in.components.GetOr("regulations", "Applicable SA legislation"),
				"additional_requirements": "Output Format: " + in.format + "\n" + in.constraints,
			}, "Compliance audit for: " + scope
		},
	},
	models.ModeVARIPlanning: {
		skeleton:    loadSkeleton("vari_planning.tmpl"),
		description: "DeepMind VARI framework with explicit reasoning and self-reflection. Best for complex strategic planning and legal analysis.",
		notes: []string{
			"Variational planning methodology applied",
			"State-action space defined for legal reasoning",
			"Quality reward function with legal metrics",
			"Probabilistic decision weighting",
			"Iterative refinement process",
		},
		adaptations: []string{
			"SAFLII citation format required",
			"Constitutional Court precedent priority",
			"Transformative constitutionalism lens",
			"Ubuntu consideration in interpretation",
			"SA Act citation format",
		},
		reasoning: "State Definition → Action Selection → Reward Optimization → Generation",
		bind: func(in promptInputs) (map[string]string, string) {
			objective := in.task
			if objective == "" {
				objective = "Comprehensive legal analysis"
			}
			return map[string]string{
				"matter":         in.matter,
				"task_type":      in.components.GetOr("task_type", "Legal Analysis"),
				"audience":       in.components.GetOr("audience", "Legal professionals"),
				"objective":      objective,
				"subject_matter": in.components.GetOr("subject_matter", "As identified"),
				"constraints":    in.constraints,
			}, in.matter
		},
	},
	models.ModeQStar: {
		skeleton:    loadSkeleton("q_star.tmpl"),
		description: "A* + Q-Learning hybrid for legal strategy optimisation. Best for litigation strategy and case pathway analysis.",
		notes: []string{
			"Q* algorithm for optimal strategy paths",
			"A* search with Q-value heuristics",
			"Multi-phase strategy planning",
			"Contingency handling built-in",
			"Success probability estimation",
		},
		adaptations: []string{
			"SA court procedure integration",
			"SAFLII citation format",
			"Constitutional Court binding precedent",
			"Prescription Act consideration",
			"SA legal profession rules",
		},
		reasoning: "State → A* Search → Q-Value Estimation → Strategy Phases → Contingencies",
		bind: func(in promptInputs) (map[string]string, string) {
			return map[string]string{
				"matter":      in.matter,
				"stage":       in.components.GetOr("stage", "Initial assessment"),
				"forum":       in.components.GetOr("forum", "To be determined"),
				"key_issues":  in.components.GetOr("key_issues", "As identified"),
				"strengths":   in.components.GetOr("strengths", "To be analysed"),
				"weaknesses":  in.components.GetOr("weaknesses", "To be analysed"),
				"constraints": in.constraints,
			}, in.matter
		},
	},
	models.ModeMicroOpt: {
		skeleton:    loadSkeleton("micro_opt.tmpl"),
		description: "Microsoft-style iterative micro-enhancements. Best for refining existing prompts to near-optimal quality.",
		notes: []string{
			"Microsoft MicrOptimization applied",
			"30-50 word enhancement per element",
			"Complexity enrichment with coherence",
			"SA legal elements automatically added",
			"Quality assurance steps included",
		},
		adaptations: []string{
			"Constitutional framework integration",
			"SA legislation with Act numbers",
			"Court hierarchy awareness",
			"SAFLII citation format",
			"Ubuntu and transformative constitutionalism",
		},
		reasoning: "Analyse → Enhance Complexity → SA Enrichment → Quality Check → Output",
		bind: func(in promptInputs) (map[string]string, string) {
			basic := in.basicPrompt() + "\nConstraints: " + in.constraints
			return map[string]string{"original_prompt": basic}, basic
		},
	},
	models.ModeOpenAIOfficial: {
		skeleton:    loadSkeleton("openai_official.tmpl"),
		description: "OpenAI official prompt engineering best practices. Best for balanced, well-structured legal prompts.",
		notes: []string{
			"OpenAI official guidelines applied",
			"Reasoning-before-conclusions structure",
			"Example integration methodology",
			"Clear output format specification",
			"Structured prompt generation",
		},
		adaptations: []string{
			"SA jurisdiction embedded",
			"Court hierarchy specified",
			"SAFLII citation standard",
			"Constitutional considerations",
			"Professional ethics requirements",
		},
		reasoning: "Understand Task → Context → Requirements → Steps → Format → Examples → Notes",
		bind: func(in promptInputs) (map[string]string, string) {
			return map[string]string{
				"task":    in.task,
				"context": in.context,
			}, "Task: " + in.task + "\nContext: " + in.context
		},
	},
	models.ModeSPOSelfPlay: {
		skeleton:    loadSkeleton("spo_self_play.tmpl"),
		description: "HKUST/DeepWisdom self-play optimization. Best for prompts requiring iterative AI refinement.",
		notes: []string{
			"Self-Play Optimization (HKUST/DeepWisdom)",
			"3 self-play iterations",
			"Q&A example-based refinement",
			"Gap analysis and correction",
			"Pattern-based optimization",
		},
		adaptations: []string{
			"SAFLII citation format",
			"Constitutional Court methodology",
			"Ubuntu/transformative constitutionalism",
			"Proper Act references",
			"Court hierarchy awareness",
		},
		reasoning: "Baseline → Self-Play x3 → Finalization",
		bind: func(in promptInputs) (map[string]string, string) {
			basic := in.basicPrompt()
			return map[string]string{
				"initial_prompt": basic,
				"qa_examples":    in.components.GetOr("qa_examples", "No specific Q&A examples provided."),
			}, basic
		},
	},
	models.ModeGuidedComplete: {
		skeleton:    loadSkeleton("guided_complete.tmpl"),
		description: "Step-by-step guided optimization with component checklist. Best for learning and understanding prompt construction.",
		notes: []string{
			"Interactive guided optimization",
			"Progress tracking (0-100%)",
			"4 options per step",
			"7 focus areas covered",
			"JSON-structured responses",
		},
		adaptations: []string{
			"SA legal persona definition",
			"Jurisdictional context",
			"SAFLII citation format",
			"Constitutional values",
			"Ubuntu integration",
		},
		reasoning: "Role → Task → Context → Constraints → Format → Examples → Polish",
		bind: func(in promptInputs) (map[string]string, string) {
			basic := in.basicPrompt()
			return map[string]string{
				"current_prompt":    basic,
				"optimization_goal": in.components.GetOr("optimization_goal", "Create an effective SA legal prompt"),
			}, basic
		},
	},
}

// Modes lists every mode with its display name and description
func Modes() []ModeInfo {
	out := make([]ModeInfo, 0, len(models.AllModes))
	for _, m := range models.AllModes {
		out = append(out, ModeInfo{Key: m, Name: m.DisplayName(), Description: modeTable[m].description})
	}
	return out
}

// ModeDescription returns the listing text for a mode, or "" when unknown
func ModeDescription(m models.Mode) string {
	if spec, ok := modeTable[m]; ok {
		return spec.description
	}
	return ""
}
