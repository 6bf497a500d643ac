package service

import (
	"testing"

	"legalprompt-backend/catalog"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameworkKeys(t *testing.T, req RecommendRequest) []string {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	var keys []string
	for _, fw := range RecommendFrameworks(cat, req) {
		keys = append(keys, fw.Key)
	}
	return keys
}

func TestRecommendFrameworks(t *testing.T) {
	tests := []struct {
		name string
		req  RecommendRequest
		want []string
	}{
		{"positive only", RecommendRequest{}, []string{"POSITIVE"}},
		{"research", RecommendRequest{TaskType: "Legal Research"}, []string{"JUST ASK", "POSITIVE"}},
		{"complex drafting", RecommendRequest{TaskType: "document drafting", Complexity: "Complex"}, []string{"7 Ps", "CoT-LEGAL", "CHAIN", "POSITIVE"}},
		{"simple client letter", RecommendRequest{TaskType: "client communication", Complexity: "simple"}, []string{"ABCDE", "C.A.S.E.", "POSITIVE"}},
		{"verified opinion", RecommendRequest{TaskType: "opinion", Verification: true}, []string{"RICE", "HOSTILE", "FALSIFY", "POSITIVE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, frameworkKeys(t, tt.req)); diff != "" {
				t.Errorf("RecommendFrameworks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSuggestFramework(t *testing.T) {
	tests := []struct {
		name    string
		context string
		best    FrameworkSuggestion
		scores  []FrameworkSuggestion
	}{
		{
			name:    "constitutional",
			context: "An equality challenge under the Bill of Rights",
			best:    FrameworkSuggestion{"RICE", 0.9},
			scores:  []FrameworkSuggestion{{"RICE", 0.9}, {"CoT-LEGAL", 0.85}},
		},
		{
			name:    "commercial",
			context: "Breach of a supply contract",
			best:    FrameworkSuggestion{"ABCDE", 0.9},
			scores:  []FrameworkSuggestion{{"ABCDE", 0.9}, {"C.A.S.E.", 0.85}},
		},
		{
			name:    "later rule overwrites in place",
			context: "Accused's constitutional rights at the bail hearing",
			best:    FrameworkSuggestion{"RICE", 0.9},
			scores:  []FrameworkSuggestion{{"RICE", 0.9}, {"CoT-LEGAL", 0.9}, {"HOSTILE", 0.8}},
		},
		{
			name:    "labour",
			context: "Dismissal referred to the CCMA",
			best:    FrameworkSuggestion{"RICE", 0.85},
			scores:  []FrameworkSuggestion{{"RICE", 0.85}, {"7 Ps", 0.8}},
		},
		{
			name:    "default",
			context: "a general question",
			best:    FrameworkSuggestion{"RICE", 0.7},
			scores:  []FrameworkSuggestion{{"RICE", 0.7}, {"JUST ASK", 0.65}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, scores := SuggestFramework(tt.context)
			assert.Equal(t, tt.best, best)
			assert.Equal(t, tt.scores, scores)
		})
	}
}
