package ollama_test

import (
	"testing"

	"docsift/src/infrastructure/integrations/ollama"
)

func TestParseScoreResult(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTitle string
		wantScore float64
		wantErr   bool
	}{
		{
			name:      "plain json",
			raw:       `{"section_title": "RESULTS", "refined_text": "the excerpt", "relevance_score": 0.85}`,
			wantTitle: "RESULTS",
			wantScore: 0.85,
		},
		{
			name: "json fenced with language tag",
			raw: "```json\n" +
				`{"section_title": "RESULTS", "refined_text": "the excerpt", "relevance_score": 0.85}` +
				"\n```",
			wantTitle: "RESULTS",
			wantScore: 0.85,
		},
		{
			name: "json fenced without language tag",
			raw: "```\n" +
				`{"section_title": "RESULTS", "refined_text": "the excerpt", "relevance_score": 0.5}` +
				"\n```",
			wantTitle: "RESULTS",
			wantScore: 0.5,
		},
		{
			name:      "surrounding whitespace",
			raw:       "  \n" + `{"section_title": "Setup", "refined_text": "x", "relevance_score": 1.0}` + "\n  ",
			wantTitle: "Setup",
			wantScore: 1.0,
		},
		{
			name:    "not json",
			raw:     "I could not find a relevant section.",
			wantErr: true,
		},
		{
			name:    "missing section title",
			raw:     `{"refined_text": "the excerpt", "relevance_score": 0.85}`,
			wantErr: true,
		},
		{
			name:    "missing refined text",
			raw:     `{"section_title": "RESULTS", "relevance_score": 0.85}`,
			wantErr: true,
		},
		{
			name:    "score above one",
			raw:     `{"section_title": "RESULTS", "refined_text": "x", "relevance_score": 1.2}`,
			wantErr: true,
		},
		{
			name:    "negative score",
			raw:     `{"section_title": "RESULTS", "refined_text": "x", "relevance_score": -0.2}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ollama.ParseScoreResult(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseScoreResult() expected error, got %+v", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScoreResult() error = %v", err)
			}
			if result.SectionTitle != tt.wantTitle {
				t.Errorf("SectionTitle = %q, want %q", result.SectionTitle, tt.wantTitle)
			}
			if result.RelevanceScore != tt.wantScore {
				t.Errorf("RelevanceScore = %v, want %v", result.RelevanceScore, tt.wantScore)
			}
		})
	}
}
