package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini embedding model used when none is configured.
const DefaultModel = "text-embedding-004"

// DefaultDimension is the output size of DefaultModel.
const DefaultDimension = 768

// GeminiEmbedder implements Embedder for Google Gemini
type GeminiEmbedder struct {
	client    *genai.Client
	model     string
	dimension int
}

// NewGeminiEmbedder creates a new Gemini embedding client
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, dimension int) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if dimension <= 0 {
		dimension = DefaultDimension
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{
		client:    client,
		model:     model,
		dimension: dimension,
	}, nil
}

// Embed embeds text as a retrieval document.
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	em := g.client.EmbeddingModel(g.model)
	em.TaskType = genai.TaskTypeRetrievalDocument

	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &EmbeddingError{Model: g.model, Message: "failed to embed content", Cause: err}
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, &EmbeddingError{Model: g.model, Message: "no embedding in response"}
	}
	if len(resp.Embedding.Values) != g.dimension {
		return nil, &EmbeddingError{
			Model:   g.model,
			Message: fmt.Sprintf("expected %d values, got %d", g.dimension, len(resp.Embedding.Values)),
		}
	}
	return resp.Embedding.Values, nil
}

// Dimension returns the configured vector size.
func (g *GeminiEmbedder) Dimension() int {
	return g.dimension
}

// Model returns the embedding model name.
func (g *GeminiEmbedder) Model() string {
	return g.model
}

// Close releases resources held by the client
func (g *GeminiEmbedder) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
