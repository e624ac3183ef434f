package chunkindex

import "context"

// Entry is a single indexed chunk of document text.
type Entry struct {
	ChunkID  int64
	Document string
	Page     int // 0-based page number from extraction
	Text     string
}

// Index serves top-k similarity lookups over one document's chunks.
type Index interface {
	Search(ctx context.Context, query string, k int) ([]Entry, error)
}

// Builder constructs an Index from a document's chunk entries. Building for an
// identifier that already has an index replaces the previous one.
type Builder interface {
	Build(ctx context.Context, identifier string, entries []Entry) (Index, error)
}

// Embedder generates an embedding vector for the given text.
type Embedder interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
}
