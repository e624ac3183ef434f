package insight

import (
	"context"
	"sync"

	"docsift/src/chunkindex"
	"docsift/src/log"
)

// retrieve fans the query out to every registered document index, merges the
// per-document top-k results into one pool and deduplicates it by exact chunk
// text. Lookups run concurrently with no ordering guarantee between documents;
// a failing document is logged and skipped, never failing its siblings.
func (s *Service) retrieve(ctx context.Context, query string) ([]Chunk, error) {
	docs := s.registry.Snapshot()
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	type lookup struct {
		entries []chunkindex.Entry
		err     error
	}
	lookups := make([]lookup, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc *DocumentIndex) {
			defer wg.Done()
			entries, err := doc.Chunks.Search(ctx, query, s.cfg.RetrievalK)
			lookups[i] = lookup{entries: entries, err: err}
		}(i, doc)
	}
	wg.Wait()

	// Merge and deduplicate. Duplicate texts keep the position of their first
	// occurrence but the provenance of the last, as if rebuilding a map keyed
	// by text.
	pool := make([]Chunk, 0)
	position := make(map[string]int)
	for i, l := range lookups {
		if l.err != nil {
			log.Error(l.err, "retrieval failed for document", "identifier", docs[i].Identifier)
			continue
		}
		for _, entry := range l.entries {
			chunk := Chunk{
				ID:       entry.ChunkID,
				Document: entry.Document,
				Page:     entry.Page,
				Text:     entry.Text,
			}
			if at, ok := position[entry.Text]; ok {
				pool[at] = chunk
				continue
			}
			position[entry.Text] = len(pool)
			pool = append(pool, chunk)
		}
	}

	if len(pool) == 0 {
		return nil, ErrNoCandidates
	}

	return pool, nil
}
