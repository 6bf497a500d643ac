package service

import (
	"math"
	"strings"
	"unicode"

	"legalprompt-backend/models"
)

// PresetCustom is reported when no preset scores above zero
const PresetCustom = "CUSTOM"

const (
	hintWeight        = 0.15
	legislationWeight = 0.1
	caseWeight        = 0.2
)

// PresetScore is the detector's confidence for one preset
type PresetScore struct {
	Preset     string  `json:"preset"`
	Confidence float64 `json:"confidence"`
}

// Detection is the outcome of practice-area detection
type Detection struct {
	Preset     string        `json:"preset"`
	Confidence float64       `json:"confidence"`
	Scores     []PresetScore `json:"scores"`
}

// titleStopWords never identify a statute on their own
var titleStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "act": true, "for": true,
	"in": true, "of": true, "on": true, "the": true, "to": true,
}

// DetectPracticeArea scores each preset against free text. Context hints
// match as substrings; legislation and case names match as whole words.
// Ties go to the earlier preset; all-zero scores yield CUSTOM.
func DetectPracticeArea(presets []models.PracticePreset, text string) Detection {
	lower := strings.ToLower(text)
	words := map[string]bool{}
	for _, w := range tokens(lower) {
		words[w] = true
	}

	det := Detection{Preset: PresetCustom, Scores: make([]PresetScore, 0, len(presets))}
	for _, p := range presets {
		score := 0.0
		for _, hint := range p.ContextHints {
			if strings.Contains(lower, strings.ToLower(hint)) {
				score += hintWeight
			}
		}
		for _, leg := range p.KeyLegislation {
			if anyWordPresent(words, legislationWords(leg)) {
				score += legislationWeight
			}
		}
		for _, c := range p.KeyCases {
			if w := caseWord(c); w != "" && words[w] {
				score += caseWeight
			}
		}
		score = math.Round(math.Min(score, 1.0)*100) / 100

		det.Scores = append(det.Scores, PresetScore{Preset: p.Key, Confidence: score})
		if score > det.Confidence {
			det.Preset = p.Key
			det.Confidence = score
		}
	}
	return det
}

// tokens splits s on whitespace and trims surrounding punctuation, so
// "employee's" stays one word
func tokens(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// legislationWords returns the distinctive words among the first three of an
// act's title
func legislationWords(title string) []string {
	words := tokens(strings.ToLower(title))
	if len(words) > 3 {
		words = words[:3]
	}
	out := words[:0:0]
	for _, w := range words {
		if len([]rune(w)) > 1 && !titleStopWords[w] && !isNumber(w) {
			out = append(out, w)
		}
	}
	return out
}

// caseWord returns the party name a case is recognised by. For criminal
// matters cited as "S v Name" that is the accused, not the State.
func caseWord(name string) string {
	words := tokens(strings.ToLower(name))
	if len(words) == 0 {
		return ""
	}
	if len([]rune(words[0])) == 1 {
		if len(words) > 2 && words[1] == "v" {
			return words[2]
		}
		return ""
	}
	return words[0]
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func anyWordPresent(words map[string]bool, candidates []string) bool {
	for _, c := range candidates {
		if words[c] {
			return true
		}
	}
	return false
}
