package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	assert.Equal(t, 512, cfg.RAG.ChunkSize)
	assert.Equal(t, 50, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 5, cfg.RAG.TopK)
	assert.Equal(t, 0.6, cfg.RAG.ConfidenceThreshold)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxFileSize)
	assert.Equal(t, []string{"application/pdf", "text/plain"}, cfg.Upload.AllowedTypes)
	assert.Equal(t, 4, cfg.Jobs.Workers)
	assert.Equal(t, 64, cfg.Jobs.QueueSize)
	assert.Equal(t, "eduassist", cfg.Vector.Namespace)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	var cfg Config
	cfg.RAG.ChunkSize = 256
	cfg.RAG.TopK = 3
	cfg.Jobs.Workers = 2

	ApplyDefaults(&cfg)

	assert.Equal(t, 256, cfg.RAG.ChunkSize)
	assert.Equal(t, 3, cfg.RAG.TopK)
	assert.Equal(t, 2, cfg.Jobs.Workers)
}

func TestApplyDefaultsRejectsOverlapLargerThanChunk(t *testing.T) {
	var cfg Config
	cfg.RAG.ChunkSize = 100
	cfg.RAG.ChunkOverlap = 150

	ApplyDefaults(&cfg)

	assert.Equal(t, 50, cfg.RAG.ChunkOverlap)
}
