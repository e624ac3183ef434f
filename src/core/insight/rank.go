package insight

import (
	"sort"
	"strings"
)

// stopTitles are generic section names excluded from results regardless of score.
var stopTitles = map[string]struct{}{
	"introduction":      {},
	"conclusion":        {},
	"summary":           {},
	"abstract":          {},
	"table of contents": {},
	"preface":           {},
	"references":        {},
	"bibliography":      {},
}

// rank filters the scored pool and orders the survivors. Stages run strictly
// in order: drop failed units, drop stoplisted titles, drop scores not
// strictly above the threshold, stable-sort descending (ties keep encounter
// order), truncate to the result limit.
func (s *Service) rank(scored []*ScoredChunk) ([]ScoredChunk, error) {
	filtered := make([]ScoredChunk, 0, len(scored))
	for _, sc := range scored {
		if sc == nil {
			continue
		}
		title := strings.ToLower(strings.TrimSpace(sc.SectionTitle))
		if _, stopped := stopTitles[title]; stopped {
			continue
		}
		if sc.RelevanceScore <= s.cfg.ScoreThreshold {
			continue
		}
		filtered = append(filtered, *sc)
	}

	if len(filtered) == 0 {
		return nil, ErrNoneRelevant
	}

	sort.SliceStable(filtered, func(a, b int) bool {
		return filtered[a].RelevanceScore > filtered[b].RelevanceScore
	})

	if len(filtered) > s.cfg.ResultLimit {
		filtered = filtered[:s.cfg.ResultLimit]
	}

	return filtered, nil
}

// assemble projects the ranked chunks into the two rank-aligned output lists.
func assemble(ranked []ScoredChunk) *QueryResult {
	result := &QueryResult{
		ExtractedSections:  make([]ExtractedSection, 0, len(ranked)),
		SubsectionAnalysis: make([]SubsectionAnalysis, 0, len(ranked)),
	}

	for i, sc := range ranked {
		result.ExtractedSections = append(result.ExtractedSections, ExtractedSection{
			Document:       sc.Document,
			SectionTitle:   sc.SectionTitle,
			ImportanceRank: i + 1,
			PageNumber:     sc.Page,
		})
		result.SubsectionAnalysis = append(result.SubsectionAnalysis, SubsectionAnalysis{
			Document:    sc.Document,
			RefinedText: sc.RefinedText,
			PageNumber:  sc.Page,
		})
	}

	return result
}
