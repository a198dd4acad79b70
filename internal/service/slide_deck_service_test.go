package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneratedSlides(t *testing.T) {
	response := `Sure, here are the slides:
[
  {"title": "Introduction", "content_md": "- point A\n- point B", "notes_md": "Welcome the class.", "image_url": "https://example.com/intro.png"},
  {"title": "", "content_md": "- detail", "notes_md": "Second slide."}
]`

	slides, err := parseGeneratedSlides(response)

	require.NoError(t, err)
	require.Len(t, slides, 2)
	assert.Equal(t, "Introduction", slides[0].Title)
	assert.Equal(t, "- point A\n- point B", slides[0].Content)
	assert.Equal(t, "https://example.com/intro.png", slides[0].ImageURL)
	assert.Equal(t, 1, slides[0].Position)

	// 空标题按序号兜底
	assert.Equal(t, "Slide 2", slides[1].Title)
	assert.Equal(t, 2, slides[1].Position)
}

func TestParseGeneratedSlidesNoJSONList(t *testing.T) {
	_, err := parseGeneratedSlides("I could not generate slides for this topic.")
	assert.Error(t, err)
}

func TestParseGeneratedSlidesMalformedJSON(t *testing.T) {
	_, err := parseGeneratedSlides(`[{"title": "broken"`)
	assert.Error(t, err)
}

func TestParseGeneratedSlidesEmptyList(t *testing.T) {
	_, err := parseGeneratedSlides("[]")
	assert.Error(t, err)
}

func TestBuildSlideDeckPromptDefaultsReferenceText(t *testing.T) {
	prompt := buildSlideDeckPrompt("Go Basics", 8, "standard", "")

	assert.Contains(t, prompt, "generate 8 slides")
	assert.Contains(t, prompt, "'Go Basics'")
	assert.Contains(t, prompt, "No reference material provided")
}
