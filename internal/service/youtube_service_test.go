package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"http://youtube.com/watch?v=abc_123-XYZ", "abc_123-XYZ"},
	}
	for _, c := range cases {
		got, err := ExtractVideoID(c.url)
		require.NoError(t, err, c.url)
		assert.Equal(t, c.want, got, c.url)
	}
}

func TestExtractVideoIDRejectsUnknownURL(t *testing.T) {
	_, err := ExtractVideoID("https://vimeo.com/12345")
	assert.Error(t, err)

	_, err = ExtractVideoID("not a url at all")
	assert.Error(t, err)
}

func TestExtractSegmentText(t *testing.T) {
	transcript := []TranscriptEntry{
		{Text: "hello", Start: 0, Duration: 5},
		{Text: "world", Start: 5, Duration: 5},
		{Text: "goodbye", Start: 10, Duration: 5},
		{Text: "end", Start: 100, Duration: 5},
	}

	assert.Equal(t, "hello world", ExtractSegmentText(transcript, 0, 8))
	assert.Equal(t, "world goodbye", ExtractSegmentText(transcript, 6, 12))
	assert.Equal(t, "", ExtractSegmentText(transcript, 50, 60))
	// 条目与窗口边界重合也算在内
	assert.Equal(t, "hello", ExtractSegmentText(transcript, 5, 4))
}

func TestExtractSegmentTextFullRange(t *testing.T) {
	transcript := []TranscriptEntry{
		{Text: "a", Start: 0, Duration: 2},
		{Text: "b", Start: 2, Duration: 2},
	}

	assert.Equal(t, "a b", ExtractSegmentText(transcript, 0, 1000))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00", FormatTime(0))
	assert.Equal(t, "00:45", FormatTime(45.7))
	assert.Equal(t, "02:05", FormatTime(125))
	assert.Equal(t, "59:59", FormatTime(3599))
	assert.Equal(t, "01:00:00", FormatTime(3600))
	assert.Equal(t, "01:01:05", FormatTime(3665))
}
