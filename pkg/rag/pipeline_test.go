package rag

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techgear-support-be/pkg/embedding"
	"techgear-support-be/pkg/llm"
)

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Generate(_ context.Context, _ string, _ string) (*embedding.EmbeddingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

// hangingEmbedder blocks until its context is cancelled, like a stalled
// embedding endpoint.
type hangingEmbedder struct{}

func (hangingEmbedder) Generate(ctx context.Context, _ string, _ string) (*embedding.EmbeddingResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type stubRetriever struct {
	chunks []ScoredChunk
	err    error
}

func (s *stubRetriever) SearchSimilar(_ context.Context, _ []float32, _ int, _ float64) ([]ScoredChunk, error) {
	return s.chunks, s.err
}

type stubLLM struct {
	reply string
	err   error
	calls int
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newTestPipeline(e *stubEmbedder, r *stubRetriever, l *stubLLM) *Pipeline {
	return NewPipeline(e, l, r, 4, 5*time.Second, nil)
}

func TestAnswerHappyPath(t *testing.T) {
	llmStub := &stubLLM{reply: "  SmartWatch Pro X costs ₹15,999.  "}
	p := newTestPipeline(
		&stubEmbedder{},
		&stubRetriever{chunks: []ScoredChunk{{Content: "Product: SmartWatch Pro X\nPrice: ₹15,999", Similarity: 0.91}}},
		llmStub,
	)

	answer, err := p.Answer(context.Background(), "how much is the smartwatch")

	require.NoError(t, err)
	assert.Equal(t, "SmartWatch Pro X costs ₹15,999.", answer)
}

func TestAnswerCachesByNormalizedQuery(t *testing.T) {
	llmStub := &stubLLM{reply: "cached answer"}
	p := newTestPipeline(
		&stubEmbedder{},
		&stubRetriever{chunks: []ScoredChunk{{Content: "chunk", Similarity: 0.8}}},
		llmStub,
	)

	_, err := p.Answer(context.Background(), "How much is the SmartWatch?")
	require.NoError(t, err)
	_, err = p.Answer(context.Background(), "  how much is the smartwatch?  ")
	require.NoError(t, err)

	assert.Equal(t, 1, llmStub.calls)
}

func TestAnswerUnavailableWithoutDependencies(t *testing.T) {
	p := NewPipeline(nil, nil, nil, 4, time.Second, nil)

	_, err := p.Answer(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, p.Ready())
}

func TestAnswerEmbeddingFailure(t *testing.T) {
	p := newTestPipeline(&stubEmbedder{err: errors.New("quota exceeded")}, &stubRetriever{}, &stubLLM{})

	_, err := p.Answer(context.Background(), "q")

	assert.ErrorIs(t, err, ErrEmbedding)
}

func TestAnswerEmbeddingHonorsTimeout(t *testing.T) {
	p := NewPipeline(hangingEmbedder{}, &stubLLM{}, &stubRetriever{}, 4, 50*time.Millisecond, nil)

	start := time.Now()
	_, err := p.Answer(context.Background(), "how much is the smartwatch")

	assert.ErrorIs(t, err, ErrEmbedding)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestAnswerRetrievalFailure(t *testing.T) {
	p := newTestPipeline(&stubEmbedder{}, &stubRetriever{err: errors.New("db down")}, &stubLLM{})

	_, err := p.Answer(context.Background(), "q")

	assert.ErrorIs(t, err, ErrRetrieval)
}

func TestAnswerNoRelevantChunks(t *testing.T) {
	p := newTestPipeline(&stubEmbedder{}, &stubRetriever{chunks: nil}, &stubLLM{reply: "x"})

	_, err := p.Answer(context.Background(), "q")

	assert.ErrorIs(t, err, ErrRetrieval)
}

func TestAnswerGenerationFailure(t *testing.T) {
	p := newTestPipeline(
		&stubEmbedder{},
		&stubRetriever{chunks: []ScoredChunk{{Content: "chunk", Similarity: 0.7}}},
		&stubLLM{err: errors.New("model overloaded")},
	)

	_, err := p.Answer(context.Background(), "q")

	assert.ErrorIs(t, err, ErrGeneration)
}

func TestAnswerEmptyGeneration(t *testing.T) {
	p := newTestPipeline(
		&stubEmbedder{},
		&stubRetriever{chunks: []ScoredChunk{{Content: "chunk", Similarity: 0.7}}},
		&stubLLM{reply: "   \n"},
	)

	_, err := p.Answer(context.Background(), "q")

	assert.ErrorIs(t, err, ErrGeneration)
}

func TestBuildPromptJoinsChunks(t *testing.T) {
	prompt := buildPrompt("what is COD?", []ScoredChunk{
		{Content: "first chunk"},
		{Content: "second chunk"},
	})

	assert.Contains(t, prompt, "first chunk\n---\nsecond chunk")
	assert.Contains(t, prompt, "Customer question: what is COD?")
}
