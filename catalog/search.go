package catalog

import (
	"strings"
	"unicode/utf8"
)

// ResultType labels the catalog a search hit came from
type ResultType string

const (
	ResultFramework        ResultType = "Framework"
	ResultCourt            ResultType = "Court"
	ResultLegislation      ResultType = "Legislation"
	ResultPracticePrompt   ResultType = "Practice Prompt"
	ResultDocumentTemplate ResultType = "Document Template"
	ResultWorkflow         ResultType = "Workflow"
)

// SearchResult is one catalog hit
type SearchResult struct {
	Type        ResultType `json:"type"`
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

const snippetLength = 100

// Search does a case-insensitive substring match over the titles and
// descriptions of the main catalogs. Results keep catalog order, grouped by
// type. An empty query matches nothing.
func (c *Catalog) Search(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	has := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}

	var results []SearchResult
	for _, fw := range c.frameworks {
		if has(fw.Name, fw.Description, fw.Acronym) {
			results = append(results, SearchResult{
				Type:        ResultFramework,
				Key:         fw.Key,
				Name:        fw.Name + " (" + fw.Acronym + ")",
				Description: snippet(fw.Description),
			})
		}
	}
	for _, ct := range c.courts {
		if has(ct.Name, ct.SAFLIICode) {
			results = append(results, SearchResult{
				Type:        ResultCourt,
				Key:         ct.Key,
				Name:        ct.Name,
				Description: "SAFLII: " + ct.SAFLIICode,
			})
		}
	}
	for _, leg := range c.legislation {
		if has(leg.ShortTitle, leg.FullTitle) {
			results = append(results, SearchResult{
				Type:        ResultLegislation,
				Key:         leg.Key,
				Name:        leg.ShortTitle,
				Description: snippet(strings.Join(leg.Purpose, ", ")),
			})
		}
	}
	for _, p := range c.practicePrompts {
		if has(p.Title, p.Description) {
			results = append(results, SearchResult{
				Type:        ResultPracticePrompt,
				Key:         p.Key,
				Name:        p.Title,
				Description: snippet(p.Description),
			})
		}
	}
	for _, d := range c.documents {
		if has(d.Title, d.Description) {
			results = append(results, SearchResult{
				Type:        ResultDocumentTemplate,
				Key:         d.Key,
				Name:        d.Title,
				Description: snippet(d.Description),
			})
		}
	}
	for _, wf := range c.workflows {
		if has(wf.Title, wf.Description) {
			results = append(results, SearchResult{
				Type:        ResultWorkflow,
				Key:         wf.Key,
				Name:        wf.Title,
				Description: snippet(wf.Description),
			})
		}
	}
	return results
}

func snippet(s string) string {
	if utf8.RuneCountInString(s) <= snippetLength {
		return s
	}
	return string([]rune(s)[:snippetLength]) + "..."
}
