package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohinisarkar2002/EduAssist/internal/config"
)

type fakeAIClient struct {
	chatResponse string
	chatErr      error
	embedErr     error
	chatCalls    int
}

func (f *fakeAIClient) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.chatCalls++
	return f.chatResponse, f.chatErr
}

func (f *fakeAIClient) ChatWithHistory(ctx context.Context, systemPrompt string, history []AIChatMessage, userPrompt string) (string, error) {
	f.chatCalls++
	return f.chatResponse, f.chatErr
}

func (f *fakeAIClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

type fakeVectorStore struct {
	upserted []Vector
	matches  []VectorMatch
	queryErr error
	deleted  []string
}

func (f *fakeVectorStore) Upsert(ctx context.Context, vectors []Vector) error {
	f.upserted = append(f.upserted, vectors...)
	return nil
}

func (f *fakeVectorStore) Query(ctx context.Context, values []float32, topK int, filter map[string]interface{}) ([]VectorMatch, error) {
	return f.matches, f.queryErr
}

func (f *fakeVectorStore) Delete(ctx context.Context, ids []string) error {
	f.deleted = append(f.deleted, ids...)
	return nil
}

func newTestRAG(store VectorStore, ai AIClient) *RAGService {
	return NewRAGService(ai, store, config.RAGConfig{
		ChunkSize:           512,
		ChunkOverlap:        50,
		TopK:                5,
		ConfidenceThreshold: 0.6,
	})
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "word"
	}
	return strings.Join(parts, " ")
}

func TestChunkTextShortTextSingleChunk(t *testing.T) {
	s := newTestRAG(&fakeVectorStore{}, &fakeAIClient{})

	chunks := s.ChunkText("hello world foo bar")

	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world foo bar", chunks[0])
}

func TestChunkTextEmpty(t *testing.T) {
	s := newTestRAG(&fakeVectorStore{}, &fakeAIClient{})

	assert.Nil(t, s.ChunkText(""))
	assert.Nil(t, s.ChunkText("   \n\t  "))
}

func TestChunkTextOverlapStride(t *testing.T) {
	s := newTestRAG(&fakeVectorStore{}, &fakeAIClient{})

	// 1000词: 块1=[0,512), 块2=[462,974), 块3=[924,1000)
	chunks := s.ChunkText(words(1000))

	require.Len(t, chunks, 3)
	assert.Len(t, strings.Fields(chunks[0]), 512)
	assert.Len(t, strings.Fields(chunks[1]), 512)
	assert.Len(t, strings.Fields(chunks[2]), 76)
}

func TestChunkTextExactBoundaryStops(t *testing.T) {
	s := newTestRAG(&fakeVectorStore{}, &fakeAIClient{})

	chunks := s.ChunkText(words(512))

	require.Len(t, chunks, 1)
	assert.Len(t, strings.Fields(chunks[0]), 512)
}

func TestIndexDocumentUpsertsAllChunks(t *testing.T) {
	store := &fakeVectorStore{}
	s := newTestRAG(store, &fakeAIClient{})

	ids, err := s.IndexDocument(context.Background(), 7, 1, "Lecture 1", words(600))

	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, "doc-7-chunk-0", ids[0])
	assert.Equal(t, "doc-7-chunk-1", ids[1])
	require.Len(t, store.upserted, 2)
	assert.Equal(t, "Lecture 1", store.upserted[0].Metadata["title"])
	assert.Equal(t, float64(7), store.upserted[0].Metadata["document_id"])
}

func TestRetrieveConfidenceIsMeanScore(t *testing.T) {
	store := &fakeVectorStore{matches: []VectorMatch{
		{ID: "doc-1-chunk-0", Score: 0.9, Metadata: map[string]interface{}{"document_id": float64(1), "title": "Doc", "content": "chunk text"}},
		{ID: "doc-1-chunk-1", Score: 0.5},
	}}
	s := newTestRAG(store, &fakeAIClient{})

	chunks, confidence, err := s.Retrieve(context.Background(), "what is X?", 0)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.InDelta(t, 0.7, confidence, 1e-9)
	assert.Equal(t, uint(1), chunks[0].DocumentID)
	assert.Equal(t, "chunk text", chunks[0].Content)
}

func TestRetrieveNoMatches(t *testing.T) {
	s := newTestRAG(&fakeVectorStore{}, &fakeAIClient{})

	chunks, confidence, err := s.Retrieve(context.Background(), "anything", 0)

	require.NoError(t, err)
	assert.Nil(t, chunks)
	assert.Equal(t, 0.0, confidence)
}

func TestRetrieveConfidenceClamped(t *testing.T) {
	store := &fakeVectorStore{matches: []VectorMatch{{ID: "a", Score: 1.4}}}
	s := newTestRAG(store, &fakeAIClient{})

	_, confidence, err := s.Retrieve(context.Background(), "q", 0)

	require.NoError(t, err)
	assert.Equal(t, 1.0, confidence)
}

func TestConfidentThreshold(t *testing.T) {
	s := newTestRAG(&fakeVectorStore{}, &fakeAIClient{})

	assert.True(t, s.Confident(0.6))
	assert.True(t, s.Confident(0.95))
	assert.False(t, s.Confident(0.59))
}
