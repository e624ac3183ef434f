package insight

import (
	"context"
	"errors"
	"time"

	"docsift/src/chunkindex"
)

var (
	// ErrEmptyCorpus is returned when a query arrives before any document was ingested.
	ErrEmptyCorpus = errors.New("no documents ingested")
	// ErrNoCandidates is returned when similarity search finds nothing for a query.
	ErrNoCandidates = errors.New("no relevant chunks found")
	// ErrNoneRelevant is returned when candidates were retrieved but all of them
	// were removed by title or score filtering.
	ErrNoneRelevant = errors.New("matches found but none relevant enough after filtering")
	// ErrNoChunks is a per-document ingestion failure for documents that yield no text.
	ErrNoChunks = errors.New("document produced no text chunks")
)

// Page is one page of extracted document text.
type Page struct {
	Number int // 0-based
	Text   string
}

// PageLoader extracts ordered page texts from a raw document.
type PageLoader interface {
	LoadPages(ctx context.Context, filename string, content []byte) ([]Page, error)
}

// Splitter cuts page text into overlapping chunks.
type Splitter interface {
	Split(ctx context.Context, text string) ([]string, error)
}

// ScoreRequest is the input to the external relevance-scoring capability.
type ScoreRequest struct {
	Persona  string
	Query    string
	Text     string
	Page     int // 0-based, as recorded by extraction
	Headings []string
}

// ScoreResult is the validated response of the scoring capability.
type ScoreResult struct {
	SectionTitle   string  `json:"section_title"`
	RefinedText    string  `json:"refined_text"`
	RelevanceScore float64 `json:"relevance_score"`
}

// ChunkScorer scores one chunk for relevance to one query. Implementations
// wrap an unreliable remote capability; callers must treat any error as a
// per-chunk failure, not a pipeline failure.
type ChunkScorer interface {
	Score(ctx context.Context, req ScoreRequest) (*ScoreResult, error)
}

// Chunk is a candidate span of document text with its provenance.
type Chunk struct {
	ID       int64
	Document string
	Page     int // 0-based
	Text     string
}

// ScoredChunk is a chunk the scoring capability accepted, with provenance
// attached from the chunk itself rather than the capability's response.
type ScoredChunk struct {
	SectionTitle   string
	RefinedText    string
	RelevanceScore float64
	Document       string
	Page           int // 1-based for presentation
}

// DocumentIndex pairs a document's searchable chunk index with the headings
// extracted at ingestion time. Immutable after construction.
type DocumentIndex struct {
	Identifier string
	Chunks     chunkindex.Index
	Headings   []string
}

// IngestOutcome reports one document's ingestion result.
type IngestOutcome struct {
	Filename     string `json:"filename"`
	Status       string `json:"status"`
	HeadingCount int    `json:"extracted_headings_count"`
}

// ExtractedSection is one ranked section reference in a query response.
type ExtractedSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// SubsectionAnalysis is the refined excerpt aligned with an ExtractedSection.
type SubsectionAnalysis struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// QueryResult holds the two rank-aligned output lists of a query.
type QueryResult struct {
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis"`
}

// Config carries the pipeline tuning knobs.
type Config struct {
	RetrievalK     int           // per-document top-k fetch width
	ScoreThreshold float64       // results must score strictly above this
	ResultLimit    int           // maximum ranked results returned
	ScoreTimeout   time.Duration // per-chunk scoring call budget
	DefaultPersona string
}

// DefaultConfig returns the reference pipeline configuration.
func DefaultConfig() Config {
	return Config{
		RetrievalK:     5,
		ScoreThreshold: 0.4,
		ResultLimit:    7,
		ScoreTimeout:   30 * time.Second,
		DefaultPersona: "An expert document analyst.",
	}
}
