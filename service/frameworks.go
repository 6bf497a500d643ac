package service

import (
	"strings"

	"legalprompt-backend/catalog"
	"legalprompt-backend/models"
)

// RecommendRequest describes a task for framework recommendation
type RecommendRequest struct {
	TaskType     string `json:"taskType"`
	Complexity   string `json:"complexity"`
	Verification bool   `json:"verification"`
}

// RecommendFrameworks picks frameworks for a task. Positive framing is
// always included.
func RecommendFrameworks(c *catalog.Catalog, req RecommendRequest) []models.Framework {
	task := strings.ToLower(req.TaskType)
	var keys []string

	if strings.Contains(task, "research") {
		keys = append(keys, "JUST ASK")
	}
	if containsAny(task, "draft", "document") {
		keys = append(keys, "7 Ps")
	}
	if containsAny(task, "analysis", "opinion") {
		keys = append(keys, "RICE")
	}
	if containsAny(task, "client", "communication") {
		keys = append(keys, "ABCDE")
	}

	switch strings.ToLower(req.Complexity) {
	case "complex":
		keys = append(keys, "CoT-LEGAL", "CHAIN")
	case "simple":
		keys = append(keys, "C.A.S.E.")
	}

	if req.Verification {
		keys = append(keys, "HOSTILE", "FALSIFY")
	}

	hasPositive := false
	for _, k := range keys {
		if k == "POSITIVE" {
			hasPositive = true
		}
	}
	if !hasPositive {
		keys = append(keys, "POSITIVE")
	}

	out := make([]models.Framework, 0, len(keys))
	for _, k := range keys {
		if fw, ok := c.Framework(k); ok {
			out = append(out, *fw)
		}
	}
	return out
}

// FrameworkSuggestion is a framework key with a fit score
type FrameworkSuggestion struct {
	Framework string  `json:"framework"`
	Score     float64 `json:"score"`
}

type suggestionRule struct {
	terms []string
	picks []FrameworkSuggestion
}

var suggestionRules = []suggestionRule{
	{
		terms: []string{"constitutional", "rights", "bill of rights", "section 9", "equality"},
		picks: []FrameworkSuggestion{{"RICE", 0.9}, {"CoT-LEGAL", 0.85}},
	},
	{
		terms: []string{"contract", "commercial", "company", "business", "corporate"},
		picks: []FrameworkSuggestion{{"ABCDE", 0.9}, {"C.A.S.E.", 0.85}},
	},
	{
		terms: []string{"criminal", "accused", "prosecution", "defence", "bail"},
		picks: []FrameworkSuggestion{{"CoT-LEGAL", 0.9}, {"HOSTILE", 0.8}},
	},
	{
		terms: []string{"labour", "dismissal", "ccma", "unfair", "strike"},
		picks: []FrameworkSuggestion{{"RICE", 0.85}, {"7 Ps", 0.8}},
	},
}

var defaultSuggestions = []FrameworkSuggestion{{"RICE", 0.7}, {"JUST ASK", 0.65}}

// SuggestFramework scores frameworks against free-text context and returns
// the best one with every scored candidate. A later rule overwrites an
// earlier score for the same framework but keeps its position, and the
// first highest score wins.
func SuggestFramework(context string) (FrameworkSuggestion, []FrameworkSuggestion) {
	lower := strings.ToLower(context)
	var scores []FrameworkSuggestion
	index := map[string]int{}

	set := func(s FrameworkSuggestion) {
		if i, ok := index[s.Framework]; ok {
			scores[i].Score = s.Score
			return
		}
		index[s.Framework] = len(scores)
		scores = append(scores, s)
	}

	for _, rule := range suggestionRules {
		if containsAny(lower, rule.terms...) {
			for _, p := range rule.picks {
				set(p)
			}
		}
	}
	if len(scores) == 0 {
		for _, p := range defaultSuggestions {
			set(p)
		}
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, scores
}
