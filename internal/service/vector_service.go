package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sohinisarkar2002/EduAssist/internal/config"
)

// VectorStore 向量索引的抽象
type VectorStore interface {
	Upsert(ctx context.Context, vectors []Vector) error
	Query(ctx context.Context, vector []float32, topK int, filter map[string]interface{}) ([]VectorMatch, error)
	Delete(ctx context.Context, ids []string) error
}

type Vector struct {
	ID       string                 `json:"id"`
	Values   []float32              `json:"values"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type VectorMatch struct {
	ID       string                 `json:"id"`
	Score    float64                `json:"score"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// VectorService Pinecone风格的HTTP索引客户端
type VectorService struct {
	config config.VectorConfig
	client *http.Client
}

func NewVectorService(cfg config.VectorConfig) *VectorService {
	return &VectorService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *VectorService) do(ctx context.Context, path string, payload interface{}, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.IndexHost+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("vector index error (status %d): %s", resp.StatusCode, string(body))
	}
	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}

func (s *VectorService) Upsert(ctx context.Context, vectors []Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	payload := map[string]interface{}{
		"vectors":   vectors,
		"namespace": s.config.Namespace,
	}
	return s.do(ctx, "/vectors/upsert", payload, nil)
}

type queryResponse struct {
	Matches []VectorMatch `json:"matches"`
}

func (s *VectorService) Query(ctx context.Context, vector []float32, topK int, filter map[string]interface{}) ([]VectorMatch, error) {
	payload := map[string]interface{}{
		"vector":          vector,
		"topK":            topK,
		"namespace":       s.config.Namespace,
		"includeMetadata": true,
	}
	if len(filter) > 0 {
		payload["filter"] = filter
	}

	var result queryResponse
	if err := s.do(ctx, "/query", payload, &result); err != nil {
		return nil, err
	}
	return result.Matches, nil
}

func (s *VectorService) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	payload := map[string]interface{}{
		"ids":       ids,
		"namespace": s.config.Namespace,
	}
	return s.do(ctx, "/vectors/delete", payload, nil)
}
