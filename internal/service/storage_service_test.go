package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohinisarkar2002/EduAssist/internal/config"
)

func TestLocalStoragePutGetDelete(t *testing.T) {
	s := &LocalStorage{baseDir: t.TempDir()}
	ctx := context.Background()
	key := "documents/2026-08-30/file.txt"

	err := s.Put(ctx, key, strings.NewReader("hello"), 5, "text/plain")
	require.NoError(t, err)

	r, err := s.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	r.Close()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.Error(t, err)
}

func TestLocalStorageDeleteMissingIsNoop(t *testing.T) {
	s := &LocalStorage{baseDir: t.TempDir()}

	assert.NoError(t, s.Delete(context.Background(), "does/not/exist.txt"))
}

func TestLocalStorageRejectsPathTraversal(t *testing.T) {
	s := &LocalStorage{baseDir: t.TempDir()}
	ctx := context.Background()

	err := s.Put(ctx, "../escape.txt", strings.NewReader("x"), 1, "text/plain")
	assert.Error(t, err)

	err = s.Put(ctx, "a/../../escape.txt", strings.NewReader("x"), 1, "text/plain")
	assert.Error(t, err)

	_, err = s.Get(ctx, "/etc/passwd")
	assert.Error(t, err)
}

func TestNewStorageServiceDefaultsToLocal(t *testing.T) {
	s, err := NewStorageService(config.StorageConfig{LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)
}

func TestNewStorageServiceUnknownType(t *testing.T) {
	_, err := NewStorageService(config.StorageConfig{Type: "s3"})
	assert.Error(t, err)
}
