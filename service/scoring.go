package service

import (
	"strconv"
	"strings"

	"legalprompt-backend/models"
)

const (
	maxSuggestions = 5
	maxStrengths   = 5
	saPointsCap    = 15
)

// QualityScore rates a prompt from 0 to 100 using the components the user
// supplied and SA keywords found in the prompt text. Suggestions are returned
// in fixed order, at most five.
func QualityScore(prompt string, c models.Components) (int, []string) {
	score := 0
	var suggestions []string

	switch {
	case len(c.Role) > 20:
		score += 15
	case c.Role != "":
		score += 7
		suggestions = append(suggestions, "Expand role definition with more specificity")
	default:
		suggestions = append(suggestions, "Add a clear role/persona definition")
	}

	switch {
	case len(c.Context) > 50:
		score += 20
	case c.Context != "":
		score += 10
		suggestions = append(suggestions, "Provide more detailed context")
	default:
		suggestions = append(suggestions, "Add background context for better results")
	}

	switch {
	case len(c.Task) > 30:
		score += 20
	case c.Task != "":
		score += 10
		suggestions = append(suggestions, "Make task instructions more specific")
	default:
		suggestions = append(suggestions, "Define clear task instructions")
	}

	if c.Constraints != "" {
		score += 10
	} else {
		suggestions = append(suggestions, "Consider adding constraints/limitations")
	}
	if c.OutputFormat != "" {
		score += 10
	} else {
		suggestions = append(suggestions, "Specify desired output format")
	}
	if c.Examples != "" {
		score += 10
	} else {
		suggestions = append(suggestions, "Add examples or precedents for better output")
	}

	sa := saKeywordPoints(prompt)
	score += min(sa, saPointsCap)
	if sa < 6 {
		suggestions = append(suggestions, "Add more SA-specific legal context (courts, legislation, citation format)")
	}

	return min(score, 100), capList(suggestions, maxSuggestions)
}

func saKeywordPoints(prompt string) int {
	lower := strings.ToLower(prompt)
	points := 0
	if strings.Contains(lower, "saflii") || strings.Contains(lower, "citation") {
		points += 3
	}
	if strings.Contains(lower, "constitution") {
		points += 3
	}
	if strings.Contains(lower, "ubuntu") {
		points += 3
	}
	if strings.Contains(lower, "act") && containsYear(prompt, 1990, 2029) {
		points += 3
	}
	if containsAny(lower, "constitutional court", "sca", "high court", "labour court") {
		points += 3
	}
	return points
}

func containsYear(text string, from, to int) bool {
	for y := from; y <= to; y++ {
		if strings.Contains(text, strconv.Itoa(y)) {
			return true
		}
	}
	return false
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	if items == nil {
		return []string{}
	}
	return items
}

// QualityDetails breaks a prompt's quality into four 0-25 dimensions
type QualityDetails struct {
	OverallScore     int      `json:"overallScore"`
	ClarityScore     int      `json:"clarityScore"`
	SpecificityScore int      `json:"specificityScore"`
	SAContextScore   int      `json:"saContextScore"`
	StructureScore   int      `json:"structureScore"`
	Suggestions      []string `json:"suggestions"`
	Strengths        []string `json:"strengths"`
}

var actionVerbs = []string{"analyse", "analyze", "draft", "review", "advise", "research", "compare", "identify"}

var saIndicators = []struct {
	term   string
	points int
}{
	{"saflii", 5},
	{"constitutional court", 5},
	{"supreme court of appeal", 4},
	{"sca", 3},
	{"high court", 3},
	{"labour court", 3},
	{"ccma", 3},
	{"ubuntu", 4},
	{"constitution", 4},
	{"bill of rights", 4},
	{"section 36", 4},
	{"transformative", 3},
}

// DetailedQualityScore scores clarity, specificity, SA context and structure
func DetailedQualityScore(prompt string, c models.Components) QualityDetails {
	var d QualityDetails
	var suggestions, strengths []string
	lower := strings.ToLower(prompt)

	if c.Task != "" {
		switch {
		case len(c.Task) > 50:
			d.ClarityScore += 15
			strengths = append(strengths, "Clear task definition")
		case len(c.Task) > 20:
			d.ClarityScore += 8
			suggestions = append(suggestions, "Expand task description for more clarity")
		default:
			suggestions = append(suggestions, "Task needs more detail for clarity")
		}
	}
	if containsAny(strings.ToLower(c.Task), actionVerbs...) {
		d.ClarityScore += 10
		strengths = append(strengths, "Uses clear action verbs")
	} else {
		suggestions = append(suggestions, "Add clear action verbs (analyse, draft, review, etc.)")
	}

	if containsAny(lower, "act", "section", "regulation", "rule") {
		d.SpecificityScore += 8
		strengths = append(strengths, "References specific legislation")
	} else {
		suggestions = append(suggestions, "Reference specific legislation (e.g., 'Section X of Act Y')")
	}
	if strings.Contains(prompt, " v ") || strings.Contains(lower, "case") {
		d.SpecificityScore += 7
		strengths = append(strengths, "Includes case references")
	} else {
		suggestions = append(suggestions, "Consider referencing relevant case law")
	}
	switch {
	case len(c.Context) > 100:
		d.SpecificityScore += 10
		strengths = append(strengths, "Detailed context provided")
	case c.Context != "":
		d.SpecificityScore += 5
		suggestions = append(suggestions, "Add more specific details to context")
	default:
		suggestions = append(suggestions, "Provide specific factual context")
	}

	for _, ind := range saIndicators {
		if strings.Contains(lower, ind.term) {
			d.SAContextScore += ind.points
		}
	}
	d.SAContextScore = min(d.SAContextScore, 25)
	switch {
	case d.SAContextScore >= 15:
		strengths = append(strengths, "Strong SA legal context integration")
	case d.SAContextScore >= 8:
		suggestions = append(suggestions, "Add more SA-specific references (courts, legislation)")
	default:
		suggestions = append(suggestions, "Include SA legal context (SAFLII, court names, relevant Acts)")
	}

	switch {
	case len(c.Role) > 30:
		d.StructureScore += 7
		strengths = append(strengths, "Clear role/persona defined")
	case c.Role != "":
		d.StructureScore += 3
		suggestions = append(suggestions, "Expand role definition with expertise details")
	default:
		suggestions = append(suggestions, "Add role/persona definition")
	}
	if c.Constraints != "" {
		d.StructureScore += 6
		strengths = append(strengths, "Constraints specified")
	} else {
		suggestions = append(suggestions, "Add constraints/limitations for focused output")
	}
	if c.OutputFormat != "" {
		d.StructureScore += 6
		strengths = append(strengths, "Output format specified")
	} else {
		suggestions = append(suggestions, "Specify desired output format")
	}
	if c.Examples != "" {
		d.StructureScore += 6
		strengths = append(strengths, "Examples/precedents included")
	} else {
		suggestions = append(suggestions, "Add examples or reference cases")
	}

	d.OverallScore = min(d.ClarityScore+d.SpecificityScore+d.SAContextScore+d.StructureScore, 100)
	d.Suggestions = capList(suggestions, maxSuggestions)
	d.Strengths = capList(strengths, maxStrengths)
	return d
}

// EstimateTokens approximates tokens at four bytes each
func EstimateTokens(text string) int {
	return len(text) / 4
}
