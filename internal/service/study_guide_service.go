package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/repository"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"github.com/sohinisarkar2002/EduAssist/pkg/jobs"
	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
	"go.uber.org/zap"
)

// PrioritySegment 用户圈定的重点时间段
type PrioritySegment struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Priority string  `json:"priority"`
}

type StudyGuideService struct {
	repo    *repository.StudyGuideRepository
	youtube *YouTubeService
	ai      AIClient
	queue   *jobs.Queue
}

func NewStudyGuideService(repo *repository.StudyGuideRepository, youtube *YouTubeService, ai AIClient, queue *jobs.Queue) *StudyGuideService {
	return &StudyGuideService{repo: repo, youtube: youtube, ai: ai, queue: queue}
}

type VideoInfoResult struct {
	*VideoInfo
	CaptionsAvailable bool `json:"captionsAvailable"`
}

// VideoInfo 元数据加字幕可用性检查
func (s *StudyGuideService) VideoInfo(ctx context.Context, rawURL string) (*VideoInfoResult, error) {
	videoID, err := ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	info, err := s.youtube.GetVideoInfo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	captionsAvailable := true
	if _, err := s.youtube.GetTranscript(ctx, videoID); err != nil {
		captionsAvailable = false
	}

	return &VideoInfoResult{VideoInfo: info, CaptionsAvailable: captionsAvailable}, nil
}

// Transcript 可选时间窗口过滤
func (s *StudyGuideService) Transcript(ctx context.Context, videoID string, start, end float64) ([]TranscriptEntry, error) {
	entries, err := s.youtube.GetTranscript(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if end <= 0 {
		return entries, nil
	}

	var window []TranscriptEntry
	for _, e := range entries {
		if e.Start+e.Duration >= start && e.Start <= end {
			window = append(window, e)
		}
	}
	return window, nil
}

type CreateStudyGuideInput struct {
	Title            string            `json:"title" binding:"required"`
	YoutubeURL       string            `json:"youtubeUrl" binding:"required"`
	PrioritySegments []PrioritySegment `json:"prioritySegments" binding:"required,min=1"`
	CourseID         uint              `json:"courseId"`
}

// Create 校验链接和字幕后落库PROCESSING, 生成任务进队列
func (s *StudyGuideService) Create(ctx context.Context, input CreateStudyGuideInput, createdBy uint) (*model.StudyGuide, error) {
	videoID, err := ExtractVideoID(input.YoutubeURL)
	if err != nil {
		return nil, err
	}

	transcript, err := s.youtube.GetTranscript(ctx, videoID)
	if err != nil {
		return nil, err
	}

	info, err := s.youtube.GetVideoInfo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	duration := 0.0
	if n := len(transcript); n > 0 {
		duration = transcript[n-1].Start + transcript[n-1].Duration
	}

	rawSegments, _ := json.Marshal(input.PrioritySegments)
	guide := &model.StudyGuide{
		Title:            input.Title,
		YoutubeURL:       input.YoutubeURL,
		VideoID:          videoID,
		VideoTitle:       info.Title,
		VideoDuration:    int(duration),
		PrioritySegments: rawSegments,
		Status:           model.GuideProcessing,
		CourseID:         input.CourseID,
		CreatedBy:        createdBy,
	}
	if err := s.repo.Create(guide); err != nil {
		return nil, err
	}

	id := guide.ID
	segments := input.PrioritySegments
	title := input.Title
	if err := s.queue.Enqueue("study_guide_generation", func() error {
		return s.generate(id, videoID, title, segments)
	}); err != nil {
		_ = s.repo.MarkFailed(id, "generation queue unavailable")
		return nil, err
	}

	return guide, nil
}

func (s *StudyGuideService) generate(guideID uint, videoID, title string, priorities []PrioritySegment) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	transcript, err := s.youtube.GetTranscript(ctx, videoID)
	if err != nil {
		_ = s.repo.MarkFailed(guideID, err.Error())
		return err
	}

	segments := make([]model.VideoSegment, 0, len(priorities))
	for i, p := range priorities {
		text := ExtractSegmentText(transcript, p.Start, p.End)
		summary, keyPoints := s.analyzeSegment(ctx, text, p.Priority)
		rawPoints, _ := json.Marshal(keyPoints)
		segments = append(segments, model.VideoSegment{
			StartSeconds: p.Start,
			EndSeconds:   p.End,
			Transcript:   text,
			Priority:     p.Priority,
			Summary:      summary,
			KeyPoints:    rawPoints,
			Position:     i + 1,
		})
	}

	content, err := s.comprehensiveGuide(ctx, title, segments)
	if err != nil {
		// 整体生成失败退回简单拼接
		logger.Log.Warn("guide generation fell back to concatenation",
			zap.Uint("guideID", guideID), zap.Error(err))
		content = fallbackGuide(title, segments)
	}

	topics := s.keyTopics(ctx, segments)
	rawTopics, _ := json.Marshal(topics)

	return s.repo.MarkCompleted(guideID, content, rawTopics, segments)
}

// analyzeSegment 单段字幕的摘要与要点, 失败时给占位摘要
func (s *StudyGuideService) analyzeSegment(ctx context.Context, text, priority string) (string, []string) {
	prompt := fmt.Sprintf(`Analyze this educational video segment and provide:
1. A concise summary (2-3 sentences)
2. 3-5 key points or concepts covered

Segment transcript:
%s

Priority level: %s

Format response as:
SUMMARY:
[your summary]

KEY POINTS:
- [point 1]
- [point 2]
- [point 3]
`, text, priority)

	response, err := s.ai.Chat(ctx, "", prompt)
	if err != nil {
		logger.Log.Warn("segment analysis failed", zap.Error(err))
		return "Error generating summary", nil
	}
	return parseSegmentAnalysis(response)
}

func parseSegmentAnalysis(response string) (string, []string) {
	parts := strings.SplitN(response, "KEY POINTS:", 2)
	summary := strings.TrimSpace(strings.Replace(parts[0], "SUMMARY:", "", 1))

	var keyPoints []string
	if len(parts) > 1 {
		for _, line := range strings.Split(parts[1], "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "-") {
				keyPoints = append(keyPoints, strings.TrimSpace(strings.TrimLeft(line, "- ")))
			}
		}
	}

	if summary == "" && len(response) > 0 {
		if len(response) > 200 {
			response = response[:200]
		}
		summary = response
	}
	return summary, keyPoints
}

func (s *StudyGuideService) comprehensiveGuide(ctx context.Context, title string, segments []model.VideoSegment) (string, error) {
	var combined []string
	for i, seg := range segments {
		timeRange := fmt.Sprintf("%s - %s", FormatTime(seg.StartSeconds), FormatTime(seg.EndSeconds))
		combined = append(combined, fmt.Sprintf("Segment %d (%s):\n%s", i+1, timeRange, seg.Summary))
	}

	prompt := fmt.Sprintf(`Create a comprehensive study guide for: "%s"

Based on these video segment analyses:

%s

Generate a well-structured study guide with:
1. Introduction/Overview
2. Main Topics (organized logically)
3. Key Concepts (explained clearly)
4. Important Points to Remember
5. Summary/Conclusion

Format in Markdown. Be educational, clear, and concise.
`, title, strings.Join(combined, "\n\n"))

	return s.ai.Chat(ctx, "", prompt)
}

// keyTopics 汇总各段要点归纳主题, 失败时取要点首词去重
func (s *StudyGuideService) keyTopics(ctx context.Context, segments []model.VideoSegment) []string {
	var allPoints []string
	for _, seg := range segments {
		var points []string
		if err := json.Unmarshal(seg.KeyPoints, &points); err == nil {
			allPoints = append(allPoints, points...)
		}
	}
	if len(allPoints) == 0 {
		return nil
	}

	var list strings.Builder
	for _, p := range allPoints {
		fmt.Fprintf(&list, "- %s\n", p)
	}
	prompt := fmt.Sprintf(`Given these key points from a video, identify the 5-10 main topics/themes:

%s
Return only the topic names, one per line.
`, list.String())

	response, err := s.ai.Chat(ctx, "", prompt)
	if err != nil {
		seen := make(map[string]struct{})
		var topics []string
		for _, p := range allPoints {
			fields := strings.Fields(p)
			if len(fields) == 0 {
				continue
			}
			if _, ok := seen[fields[0]]; ok {
				continue
			}
			seen[fields[0]] = struct{}{}
			topics = append(topics, fields[0])
			if len(topics) == 10 {
				break
			}
		}
		return topics
	}

	var topics []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "- "))
		if line != "" {
			topics = append(topics, line)
		}
		if len(topics) == 10 {
			break
		}
	}
	return topics
}

func fallbackGuide(title string, segments []model.VideoSegment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for i, seg := range segments {
		fmt.Fprintf(&b, "## Segment %d (%s - %s)\n\n%s\n\n",
			i+1, FormatTime(seg.StartSeconds), FormatTime(seg.EndSeconds), seg.Summary)
		var points []string
		if err := json.Unmarshal(seg.KeyPoints, &points); err == nil && len(points) > 0 {
			b.WriteString("**Key Points:**\n")
			for _, p := range points {
				fmt.Fprintf(&b, "- %s\n", p)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Get 学生只能看自己的指南
func (s *StudyGuideService) Get(id uint, viewer *util.Claims) (*model.StudyGuide, error) {
	guide, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if viewer.Role == model.Student && guide.CreatedBy != viewer.UserID {
		return nil, util.ErrPermissionDenied
	}
	return guide, nil
}

func (s *StudyGuideService) List(viewer *util.Claims, courseID uint) ([]model.StudyGuide, error) {
	if viewer.Role == model.Student {
		return s.repo.FindByCreator(viewer.UserID)
	}
	return s.repo.FindAll(courseID)
}

func (s *StudyGuideService) Delete(id uint, viewer *util.Claims) error {
	guide, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if guide.CreatedBy != viewer.UserID && viewer.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.repo.Delete(id)
}
