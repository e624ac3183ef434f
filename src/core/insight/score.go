package insight

import (
	"context"
	"fmt"
	"sync"

	"docsift/src/log"
)

// fallbackSectionTitle is handed to the scorer when a document yielded no
// headings, so the chosen title is always drawn from a non-empty candidate
// list. It is not a stoplisted name.
const fallbackSectionTitle = "Untitled Section"

// scoreAll invokes the scoring capability for every candidate chunk
// concurrently. A failed unit leaves a nil slot; one chunk's error or timeout
// never aborts the others.
func (s *Service) scoreAll(ctx context.Context, query, persona string, chunks []Chunk) []*ScoredChunk {
	scored := make([]*ScoredChunk, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk Chunk) {
			defer wg.Done()
			scored[i] = s.scoreOne(ctx, query, persona, chunk)
		}(i, chunk)
	}
	wg.Wait()

	return scored
}

func (s *Service) scoreOne(ctx context.Context, query, persona string, chunk Chunk) *ScoredChunk {
	headings := []string{fallbackSectionTitle}
	if doc, ok := s.registry.Get(chunk.Document); ok && len(doc.Headings) > 0 {
		headings = doc.Headings
	}

	sctx, cancel := context.WithTimeout(ctx, s.cfg.ScoreTimeout)
	defer cancel()

	result, err := s.scorer.Score(sctx, ScoreRequest{
		Persona:  persona,
		Query:    query,
		Text:     chunk.Text,
		Page:     chunk.Page,
		Headings: headings,
	})
	if err != nil {
		log.Error(err, "scoring failed for chunk", "document", chunk.Document, "chunk", chunk.ID)
		return nil
	}
	if err := validateScore(result); err != nil {
		log.Error(err, "discarding invalid scorer response", "document", chunk.Document, "chunk", chunk.ID)
		return nil
	}

	// Provenance comes from the chunk itself; the capability's response is
	// never trusted for document or page.
	return &ScoredChunk{
		SectionTitle:   result.SectionTitle,
		RefinedText:    result.RefinedText,
		RelevanceScore: result.RelevanceScore,
		Document:       chunk.Document,
		Page:           chunk.Page + 1,
	}
}

func validateScore(result *ScoreResult) error {
	if result == nil {
		return fmt.Errorf("empty scorer result")
	}
	if result.SectionTitle == "" {
		return fmt.Errorf("missing section title")
	}
	if result.RefinedText == "" {
		return fmt.Errorf("missing refined text")
	}
	if result.RelevanceScore < 0.0 || result.RelevanceScore > 1.0 {
		return fmt.Errorf("relevance score %v out of range [0,1]", result.RelevanceScore)
	}
	return nil
}
