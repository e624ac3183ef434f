package memory

import (
	"context"
	"fmt"
	"math"
	"sort"

	"docsift/src/chunkindex"
)

// Builder creates in-memory brute-force cosine similarity indexes.
type Builder struct {
	embedder chunkindex.Embedder
}

func NewBuilder(embedder chunkindex.Embedder) *Builder {
	return &Builder{
		embedder: embedder,
	}
}

// Build embeds every entry and returns an immutable in-memory index.
func (b *Builder) Build(ctx context.Context, identifier string, entries []chunkindex.Entry) (chunkindex.Index, error) {
	vectors := make([][]float32, len(entries))
	for i, entry := range entries {
		vector, err := b.embedder.GetEmbedding(ctx, entry.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d of %s: %w", entry.ChunkID, identifier, err)
		}
		vectors[i] = vector
	}

	return &Index{
		embedder: b.embedder,
		entries:  entries,
		vectors:  vectors,
	}, nil
}

// Ping implements the health check; the in-memory backend is always reachable.
func (b *Builder) Ping(ctx context.Context) error {
	return nil
}

// Index holds one document's chunks and their vectors. Immutable after Build,
// so lookups need no locking.
type Index struct {
	embedder chunkindex.Embedder
	entries  []chunkindex.Entry
	vectors  [][]float32
}

func (idx *Index) Search(ctx context.Context, query string, k int) ([]chunkindex.Entry, error) {
	if k <= 0 {
		return nil, fmt.Errorf("invalid top-k: %d", k)
	}

	queryVector, err := idx.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	scores := make([]float64, len(idx.vectors))
	for i, vector := range idx.vectors {
		scores[i] = cosine(vector, queryVector)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	results := make([]chunkindex.Entry, 0, k)
	for i := 0; i < k; i++ {
		results = append(results, idx.entries[order[i]])
	}

	return results, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
