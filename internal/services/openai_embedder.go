package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

type openaiEmbedder struct {
	embedder embeddings.Embedder
}

// NewOpenAIEmbedder creates an Embedder for OpenAI-compatible embedding APIs
// (OpenAI itself, Ollama, LocalAI, vLLM). Token may be "none" for local
// services that don't require authentication.
func NewOpenAIEmbedder(host, token, model string) (Embedder, error) {
	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken(token),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &openaiEmbedder{embedder: embedder}, nil
}

// EmbedText implements Embedder.
func (o *openaiEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := o.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return vectors[0], nil
}
