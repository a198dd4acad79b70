package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildChatSystemPromptWithoutContext(t *testing.T) {
	prompt := buildChatSystemPrompt(nil)

	assert.Contains(t, prompt, "teaching assistant")
	assert.NotContains(t, prompt, "Course Material")
}

func TestBuildChatSystemPromptNumbersSources(t *testing.T) {
	chunks := []RetrievedChunk{
		{Title: "Lecture 1", Content: "Slices are views over arrays."},
		{Title: "Lecture 2", Content: "Maps are hash tables."},
	}

	prompt := buildChatSystemPrompt(chunks)

	assert.Contains(t, prompt, "[Source 1: Lecture 1]")
	assert.Contains(t, prompt, "[Source 2: Lecture 2]")
	assert.Contains(t, prompt, "Slices are views over arrays.")
	assert.Contains(t, prompt, "ONLY the course material")
}

func TestSourceTitlesDeduplicates(t *testing.T) {
	chunks := []RetrievedChunk{
		{Title: "Lecture 1"},
		{Title: "Lecture 1"},
		{Title: ""},
		{Title: "Lecture 2"},
	}

	assert.Equal(t, []string{"Lecture 1", "Lecture 2"}, sourceTitles(chunks))
}

func TestSourceTitlesEmptyIsNotNil(t *testing.T) {
	// 序列化成JSON数组而不是null
	assert.Equal(t, []string{}, sourceTitles(nil))
}
