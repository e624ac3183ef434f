package ollama

import (
	"context"

	"github.com/tmc/langchaingo/textsplitter"
)

// Splitter cuts text into overlapping chunks sized in characters
type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

// NewSplitter creates a splitter with the given chunk size and overlap
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Split cuts the text into chunks
func (s *Splitter) Split(ctx context.Context, text string) ([]string, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.chunkSize),
		textsplitter.WithChunkOverlap(s.chunkOverlap),
	)

	return splitter.SplitText(text)
}
