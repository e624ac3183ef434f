package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"

	"docsift/src/chunkindex"
	"docsift/src/log"
)

// Service runs the ingestion and query pipelines against one corpus registry.
type Service struct {
	registry *Registry
	loader   PageLoader
	splitter Splitter
	builder  chunkindex.Builder
	scorer   ChunkScorer
	node     *snowflake.Node
	cfg      Config
}

func NewService(loader PageLoader, splitter Splitter, builder chunkindex.Builder, scorer ChunkScorer, cfg Config) (*Service, error) {
	if loader == nil {
		return nil, fmt.Errorf("page loader is required")
	}
	if splitter == nil {
		return nil, fmt.Errorf("splitter is required")
	}
	if builder == nil {
		return nil, fmt.Errorf("chunk index builder is required")
	}
	if scorer == nil {
		return nil, fmt.Errorf("chunk scorer is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %v", err)
	}

	return &Service{
		registry: NewRegistry(),
		loader:   loader,
		splitter: splitter,
		builder:  builder,
		scorer:   scorer,
		node:     node,
		cfg:      cfg,
	}, nil
}

// Registry exposes the corpus registry, mainly for inspection.
func (s *Service) Registry() *Registry {
	return s.registry
}

// IngestDocument extracts, chunks, heading-scans and indexes one document.
// Failure is scoped to this document; callers processing a batch continue
// with the remaining documents.
func (s *Service) IngestDocument(ctx context.Context, identifier string, content []byte) (*IngestOutcome, error) {
	pages, err := s.loader.LoadPages(ctx, identifier, content)
	if err != nil {
		return nil, fmt.Errorf("failed to extract pages from %s: %w", identifier, err)
	}

	entries := make([]chunkindex.Entry, 0)
	pageTexts := make([]string, 0, len(pages))
	for _, page := range pages {
		pageTexts = append(pageTexts, page.Text)

		pieces, err := s.splitter.Split(ctx, page.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to split page %d of %s: %w", page.Number, identifier, err)
		}
		for _, piece := range pieces {
			entries = append(entries, chunkindex.Entry{
				ChunkID:  s.node.Generate().Int64(),
				Document: identifier,
				Page:     page.Number,
				Text:     piece,
			})
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", identifier, ErrNoChunks)
	}

	headings := ExtractHeadings(strings.Join(pageTexts, "\n"))

	index, err := s.builder.Build(ctx, identifier, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build chunk index for %s: %w", identifier, err)
	}

	s.registry.Put(&DocumentIndex{
		Identifier: identifier,
		Chunks:     index,
		Headings:   headings,
	})
	log.Info("document indexed", "identifier", identifier, "chunks", len(entries), "headings", len(headings))

	return &IngestOutcome{
		Filename:     identifier,
		Status:       "Successfully processed and indexed.",
		HeadingCount: len(headings),
	}, nil
}

// Query answers a natural-language question against the ingested corpus.
// Distinct failures: ErrEmptyCorpus before any ingestion, ErrNoCandidates when
// retrieval comes back empty, ErrNoneRelevant when filtering removes everything.
func (s *Service) Query(ctx context.Context, query, persona string) (*QueryResult, error) {
	if persona == "" {
		persona = s.cfg.DefaultPersona
	}

	candidates, err := s.retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	scored := s.scoreAll(ctx, query, persona, candidates)

	ranked, err := s.rank(scored)
	if err != nil {
		return nil, err
	}

	return assemble(ranked), nil
}
