package weaviate

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/weaviate/weaviate/entities/models"

	"docsift/src/chunkindex"
	"docsift/src/log"
	storage "docsift/src/storage/weaviate"
)

// Builder creates Weaviate-backed chunk indexes, one class per document.
type Builder struct {
	sdk      *storage.SDK
	embedder chunkindex.Embedder
}

func NewBuilder(sdk *storage.SDK, embedder chunkindex.Embedder) *Builder {
	return &Builder{
		sdk:      sdk,
		embedder: embedder,
	}
}

// Build embeds all entries and stores them in a dedicated class. An existing
// class for the same identifier is dropped first, so re-ingestion replaces the
// previous index wholesale.
func (b *Builder) Build(ctx context.Context, identifier string, entries []chunkindex.Entry) (chunkindex.Index, error) {
	className := classNameFor(identifier)

	exists, err := b.sdk.ClassExists(ctx, className)
	if err != nil {
		return nil, fmt.Errorf("failed to check class %s: %w", className, err)
	}
	if exists {
		if err := b.sdk.DeleteSchema(ctx, className); err != nil {
			return nil, fmt.Errorf("failed to drop stale class %s: %w", className, err)
		}
	}

	properties := []*models.Property{
		{
			Name:        "content",
			DataType:    []string{"text"},
			Description: "The content of the chunk",
		},
		{
			Name:        "document",
			DataType:    []string{"text"},
			Description: "Identifier of the source document",
		},
		{
			Name:        "page",
			DataType:    []string{"int"},
			Description: "0-based page number of the chunk",
		},
		{
			Name:        "chunkId",
			DataType:    []string{"text"},
			Description: "ID of the chunk",
		},
	}
	if err := b.sdk.CreateSchema(ctx, className, properties, "none"); err != nil {
		return nil, fmt.Errorf("failed to initialize class %s: %w", className, err)
	}

	objects := make([]storage.VectorObject, 0, len(entries))
	for _, entry := range entries {
		vector, err := b.embedder.GetEmbedding(ctx, entry.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d of %s: %w", entry.ChunkID, identifier, err)
		}
		objects = append(objects, storage.VectorObject{
			Vector: vector,
			Properties: map[string]interface{}{
				"content":  entry.Text,
				"document": entry.Document,
				"page":     entry.Page,
				"chunkId":  strconv.FormatInt(entry.ChunkID, 10),
			},
		})
	}
	if err := b.sdk.BatchAddVectors(ctx, className, objects); err != nil {
		return nil, fmt.Errorf("failed to store vectors for %s: %w", identifier, err)
	}

	return &Index{
		sdk:       b.sdk,
		embedder:  b.embedder,
		className: className,
	}, nil
}

// Ping verifies the backing Weaviate endpoint is reachable.
func (b *Builder) Ping(ctx context.Context) error {
	return b.sdk.Ping(ctx)
}

// Index is a per-document chunk index backed by a Weaviate class.
type Index struct {
	sdk       *storage.SDK
	embedder  chunkindex.Embedder
	className string
}

func (idx *Index) Search(ctx context.Context, query string, k int) ([]chunkindex.Entry, error) {
	vector, err := idx.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	config := storage.QueryConfig{
		Fields: []string{"content", "document", "page", "chunkId"},
		Limit:  k,
	}
	results, err := idx.sdk.QueryVectors(ctx, idx.className, vector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to query class %s: %w", idx.className, err)
	}

	entries := make([]chunkindex.Entry, 0, len(results))
	for _, result := range results {
		entry := chunkindex.Entry{}
		if content, ok := result.Properties["content"].(string); ok {
			entry.Text = content
		}
		if document, ok := result.Properties["document"].(string); ok {
			entry.Document = document
		}
		if page, ok := result.Properties["page"].(float64); ok {
			entry.Page = int(page)
		}
		if chunkID, ok := result.Properties["chunkId"].(string); ok {
			id, err := strconv.ParseInt(chunkID, 10, 64)
			if err != nil {
				log.Error(err, "skipping result with malformed chunk id", "class", idx.className, "chunkId", chunkID)
				continue
			}
			entry.ChunkID = id
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// classNameFor derives a Weaviate class name from a document identifier.
// Weaviate class names must be alphanumeric, so everything else is stripped;
// a hash of the raw identifier keeps distinct identifiers on distinct classes
// even when they sanitize to the same string.
func classNameFor(identifier string) string {
	var sb strings.Builder
	for _, r := range identifier {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}

	h := fnv.New32a()
	h.Write([]byte(identifier))

	return fmt.Sprintf("DocumentChunks_%s_%08x", sb.String(), h.Sum32())
}
