package ollama

import (
	"context"
)

// Embedder binds a client to a fixed embedding model
type Embedder struct {
	client *Client
	model  string
}

// NewEmbedder creates an embedder using the given client and model
func NewEmbedder(client *Client, model string) *Embedder {
	return &Embedder{
		client: client,
		model:  model,
	}
}

// GetEmbedding generates an embedding vector for the given text
func (e *Embedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	return e.client.GetEmbedding(ctx, e.model, text)
}
