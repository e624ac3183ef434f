package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"docsift/src/core/insight"
)

// Scorer asks an Ollama model to judge one chunk's relevance to a query.
type Scorer struct {
	client *Client
	model  string
}

// NewScorer creates a scorer using the given client and model
func NewScorer(client *Client, model string) *Scorer {
	return &Scorer{
		client: client,
		model:  model,
	}
}

// Score analyzes the chunk and returns the model's structured judgement
func (s *Scorer) Score(ctx context.Context, req insight.ScoreRequest) (*insight.ScoreResult, error) {
	system, prompt, err := executeTemplates(ScoreSystemMessageTmpl, ScorePromptTmpl, req)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare scoring templates: %w", err)
	}

	raw, err := s.client.GenerateJSON(ctx, s.model, system, prompt, map[string]interface{}{
		"temperature": 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get scoring response: %w", err)
	}

	return ParseScoreResult(raw)
}

// ParseScoreResult decodes and validates a model response. Responses wrapped
// in markdown code fences are unwrapped first.
func ParseScoreResult(raw string) (*insight.ScoreResult, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result insight.ScoreResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scoring response: %w", err)
	}

	if result.SectionTitle == "" {
		return nil, fmt.Errorf("scoring response missing section_title")
	}
	if result.RefinedText == "" {
		return nil, fmt.Errorf("scoring response missing refined_text")
	}
	if result.RelevanceScore < 0.0 || result.RelevanceScore > 1.0 {
		return nil, fmt.Errorf("relevance_score %v outside [0.0, 1.0]", result.RelevanceScore)
	}

	return &result, nil
}

func executeTemplates(systemTmpl, promptTmpl string, data insight.ScoreRequest) (string, string, error) {
	var systemBuf, promptBuf bytes.Buffer

	sysT := template.Must(template.New("system").Parse(systemTmpl))
	if err := sysT.Execute(&systemBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute system template: %w", err)
	}

	prmptT := template.Must(template.New("prompt").Parse(promptTmpl))
	if err := prmptT.Execute(&promptBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return systemBuf.String(), promptBuf.String(), nil
}
