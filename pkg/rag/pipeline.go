package rag

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"techgear-support-be/pkg/embedding"
	"techgear-support-be/pkg/llm"
)

// ScoredChunk is one retrieved catalog fragment with its cosine similarity.
type ScoredChunk struct {
	Content    string
	Similarity float64
}

// Retriever finds the catalog chunks nearest to a query embedding.
// Implemented by the pgvector-backed repository.
type Retriever interface {
	SearchSimilar(ctx context.Context, vector []float32, limit int, threshold float64) ([]ScoredChunk, error)
}

const (
	// chunks below this similarity are noise, not context
	similarityThreshold = 0.30

	cacheTTL     = 10 * time.Minute
	cacheCleanup = 15 * time.Minute
)

// Pipeline answers catalog questions by embedding the query, retrieving the
// nearest chunks and asking the model for a grounded answer. Answers are
// cached per normalized query.
type Pipeline struct {
	embedder  embedding.EmbeddingProvider
	provider  llm.LLMProvider
	retriever Retriever
	cache     *gocache.Cache
	topK      int
	timeout   time.Duration
	logger    *log.Logger
}

func NewPipeline(
	embedder embedding.EmbeddingProvider,
	provider llm.LLMProvider,
	retriever Retriever,
	topK int,
	timeout time.Duration,
	logger *log.Logger,
) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	if topK <= 0 {
		topK = 4
	}
	return &Pipeline{
		embedder:  embedder,
		provider:  provider,
		retriever: retriever,
		cache:     gocache.New(cacheTTL, cacheCleanup),
		topK:      topK,
		timeout:   timeout,
		logger:    logger,
	}
}

// Ready reports whether every dependency needed for generation is wired.
func (p *Pipeline) Ready() bool {
	return p.embedder != nil && p.provider != nil && p.retriever != nil
}

// Answer produces a grounded answer for the query or a typed error
// describing which stage failed.
func (p *Pipeline) Answer(ctx context.Context, query string) (string, error) {
	if !p.Ready() {
		return "", ErrUnavailable
	}

	cacheKey := strings.ToLower(strings.TrimSpace(query))
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached.(string), nil
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	embedded, err := p.embedder.Generate(ctx, query, "RETRIEVAL_QUERY")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	chunks, err := p.retriever.SearchSimilar(ctx, embedded.Embedding.Values, p.topK, similarityThreshold)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: no catalog chunks above threshold", ErrRetrieval)
	}

	answer, err := p.provider.Generate(ctx, buildPrompt(query, chunks), llm.WithTemperature(0.2))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("%w: model returned an empty answer", ErrGeneration)
	}

	p.cache.Set(cacheKey, answer, gocache.DefaultExpiration)
	return answer, nil
}
