package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
)

func TestParseSegmentAnalysis(t *testing.T) {
	response := `SUMMARY:
This segment introduces pointers and memory layout.

KEY POINTS:
- Pointers hold addresses
- The & operator takes an address
- Dereferencing with *
`

	summary, points := parseSegmentAnalysis(response)

	assert.Equal(t, "This segment introduces pointers and memory layout.", summary)
	require.Len(t, points, 3)
	assert.Equal(t, "Pointers hold addresses", points[0])
	assert.Equal(t, "Dereferencing with *", points[2])
}

func TestParseSegmentAnalysisWithoutMarkers(t *testing.T) {
	summary, points := parseSegmentAnalysis("Just a plain answer without any structure.")

	assert.Equal(t, "Just a plain answer without any structure.", summary)
	assert.Empty(t, points)
}

func TestParseSegmentAnalysisLongUnstructuredTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)

	summary, _ := parseSegmentAnalysis("KEY POINTS:" + "\n" + long)

	// 摘要为空时截取原文前200字符兜底
	assert.Len(t, summary, 200)
}

func TestParseSegmentAnalysisKeyPointsOnly(t *testing.T) {
	response := `KEY POINTS:
- only point`

	_, points := parseSegmentAnalysis(response)

	require.Len(t, points, 1)
	assert.Equal(t, "only point", points[0])
}

func segmentWithPoints(summary string, points ...string) model.VideoSegment {
	raw, _ := json.Marshal(points)
	return model.VideoSegment{Summary: summary, KeyPoints: raw}
}

func TestFallbackGuideConcatenatesSegments(t *testing.T) {
	segments := []model.VideoSegment{
		{StartSeconds: 0, EndSeconds: 60, Summary: "Intro to slices."},
		segmentWithPoints("Maps in depth.", "make", "delete"),
	}
	segments[1].StartSeconds = 60
	segments[1].EndSeconds = 180

	guide := fallbackGuide("Go Collections", segments)

	assert.Contains(t, guide, "# Go Collections")
	assert.Contains(t, guide, "## Segment 1 (00:00 - 01:00)")
	assert.Contains(t, guide, "Intro to slices.")
	assert.Contains(t, guide, "## Segment 2 (01:00 - 03:00)")
	assert.Contains(t, guide, "- make")
	assert.Contains(t, guide, "- delete")
}

func TestKeyTopicsFallbackUsesFirstWords(t *testing.T) {
	ai := &fakeAIClient{chatErr: assert.AnError}
	s := &StudyGuideService{ai: ai}

	segments := []model.VideoSegment{
		segmentWithPoints("s", "Pointers hold addresses", "Pointers are typed", "Slices grow dynamically"),
	}

	topics := s.keyTopics(context.Background(), segments)

	// 首词去重: Pointers只出现一次
	assert.Equal(t, []string{"Pointers", "Slices"}, topics)
}

func TestKeyTopicsParsesLLMLines(t *testing.T) {
	ai := &fakeAIClient{chatResponse: "- Memory management\n\nConcurrency\n- Type system\n"}
	s := &StudyGuideService{ai: ai}

	segments := []model.VideoSegment{segmentWithPoints("s", "point one")}

	topics := s.keyTopics(context.Background(), segments)

	assert.Equal(t, []string{"Memory management", "Concurrency", "Type system"}, topics)
}

func TestKeyTopicsNoPoints(t *testing.T) {
	s := &StudyGuideService{ai: &fakeAIClient{}}

	assert.Nil(t, s.keyTopics(context.Background(), []model.VideoSegment{{Summary: "no points"}}))
}
