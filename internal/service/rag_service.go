package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sohinisarkar2002/EduAssist/internal/config"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
	"go.uber.org/zap"
)

// RetrievedChunk 检索命中的一个文档分块
type RetrievedChunk struct {
	ChunkID    string  `json:"chunkId"`
	DocumentID uint    `json:"documentId"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
}

type RAGService struct {
	ai     AIClient
	store  VectorStore
	config config.RAGConfig
}

func NewRAGService(ai AIClient, store VectorStore, cfg config.RAGConfig) *RAGService {
	return &RAGService{ai: ai, store: store, config: cfg}
}

// ExtractText 按MIME类型抽取纯文本
func (s *RAGService) ExtractText(fileType string, r io.Reader) (string, error) {
	switch fileType {
	case util.MimePDF:
		data, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		return extractPDFText(data)
	case util.MimePlainText:
		data, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", util.ErrFileTypeNotAllowed
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ChunkText 按词切块, 相邻块之间保留重叠
func (s *RAGService) ChunkText(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	size := s.config.ChunkSize
	overlap := s.config.ChunkOverlap
	if size <= 0 {
		size = 512
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	stride := size - overlap
	var chunks []string
	for start := 0; start < len(words); start += stride {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}

// IndexDocument 切块向量化后写入索引, 返回分块ID
func (s *RAGService) IndexDocument(ctx context.Context, documentID, courseID uint, title, text string) ([]string, error) {
	chunks := s.ChunkText(text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document %d has no extractable text", documentID)
	}

	embeddings, err := s.ai.Embed(ctx, chunks)
	if err != nil {
		return nil, err
	}

	vectors := make([]Vector, 0, len(chunks))
	ids := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		id := fmt.Sprintf("doc-%d-chunk-%d", documentID, i)
		ids = append(ids, id)
		vectors = append(vectors, Vector{
			ID:     id,
			Values: embeddings[i],
			Metadata: map[string]interface{}{
				"document_id": float64(documentID),
				"course_id":   float64(courseID),
				"title":       title,
				"content":     chunk,
			},
		})
	}

	if err := s.store.Upsert(ctx, vectors); err != nil {
		return nil, err
	}

	logger.Log.Info("document indexed",
		zap.Uint("documentID", documentID),
		zap.Int("chunks", len(chunks)))
	return ids, nil
}

// Retrieve 检索相关分块并给出整体置信度(命中分数均值)
func (s *RAGService) Retrieve(ctx context.Context, question string, courseID uint) ([]RetrievedChunk, float64, error) {
	embeddings, err := s.ai.Embed(ctx, []string{question})
	if err != nil {
		return nil, 0, err
	}

	topK := s.config.TopK
	if topK <= 0 {
		topK = 5
	}

	var filter map[string]interface{}
	if courseID != 0 {
		filter = map[string]interface{}{"course_id": float64(courseID)}
	}

	matches, err := s.store.Query(ctx, embeddings[0], topK, filter)
	if err != nil {
		return nil, 0, err
	}
	if len(matches) == 0 {
		return nil, 0, nil
	}

	chunks := make([]RetrievedChunk, 0, len(matches))
	var total float64
	for _, m := range matches {
		c := RetrievedChunk{ChunkID: m.ID, Score: m.Score}
		if m.Metadata != nil {
			if v, ok := m.Metadata["document_id"].(float64); ok {
				c.DocumentID = uint(v)
			}
			if v, ok := m.Metadata["title"].(string); ok {
				c.Title = v
			}
			if v, ok := m.Metadata["content"].(string); ok {
				c.Content = v
			}
		}
		chunks = append(chunks, c)
		total += m.Score
	}

	confidence := total / float64(len(matches))
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return chunks, confidence, nil
}

// Confident 置信度达到阈值才直接作答
func (s *RAGService) Confident(confidence float64) bool {
	return confidence >= s.config.ConfidenceThreshold
}

func (s *RAGService) DeleteDocument(ctx context.Context, chunkIDs []string) error {
	return s.store.Delete(ctx, chunkIDs)
}
