package service

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
	"go.uber.org/zap"
)

const transcriptCacheTTL = 24 * time.Hour

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([\w-]+)`),
	regexp.MustCompile(`youtu\.be/([\w-]+)`),
	regexp.MustCompile(`youtube\.com/embed/([\w-]+)`),
}

// ExtractVideoID 支持watch/短链/embed三种URL形态
func ExtractVideoID(rawURL string) (string, error) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("could not extract video ID from URL: %s", rawURL)
}

// TranscriptEntry 一条字幕, 时间单位秒
type TranscriptEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type VideoInfo struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

type YouTubeService struct {
	client *http.Client
	redis  *redis.Client
}

func NewYouTubeService(redisClient *redis.Client) *YouTubeService {
	return &YouTubeService{
		client: &http.Client{Timeout: 30 * time.Second},
		redis:  redisClient,
	}
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// GetVideoInfo 通过oEmbed接口取视频元数据, 失败时返回占位信息
func (s *YouTubeService) GetVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID
	oembedURL := "https://www.youtube.com/oembed?format=json&url=" + url.QueryEscape(watchURL)

	req, err := http.NewRequestWithContext(ctx, "GET", oembedURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		logger.Log.Warn("oembed request failed", zap.String("videoID", videoID), zap.Error(err))
		return &VideoInfo{VideoID: videoID, Title: "Unknown"}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &VideoInfo{VideoID: videoID, Title: "Unknown"}, nil
	}

	var meta oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return &VideoInfo{VideoID: videoID, Title: "Unknown"}, nil
	}

	return &VideoInfo{
		VideoID:      videoID,
		Title:        meta.Title,
		Author:       meta.AuthorName,
		ThumbnailURL: meta.ThumbnailURL,
	}, nil
}

type timedText struct {
	Texts []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Body     string  `xml:",chardata"`
	} `xml:"text"`
}

// GetTranscript 拉取英文字幕, 结果缓存到redis
func (s *YouTubeService) GetTranscript(ctx context.Context, videoID string) ([]TranscriptEntry, error) {
	cacheKey := "transcript:" + videoID
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []TranscriptEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	timedtextURL := "https://video.google.com/timedtext?lang=en&v=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, "GET", timedtextURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, util.ErrNoCaptions
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, util.ErrNoCaptions
	}

	var parsed timedText
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, util.ErrNoCaptions
	}
	if len(parsed.Texts) == 0 {
		return nil, util.ErrNoCaptions
	}

	entries := make([]TranscriptEntry, 0, len(parsed.Texts))
	for _, t := range parsed.Texts {
		entries = append(entries, TranscriptEntry{
			Text:     html.UnescapeString(strings.TrimSpace(t.Body)),
			Start:    t.Start,
			Duration: t.Duration,
		})
	}

	if s.redis != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.redis.Set(ctx, cacheKey, raw, transcriptCacheTTL).Err(); err != nil {
				logger.Log.Warn("transcript cache write failed", zap.String("videoID", videoID), zap.Error(err))
			}
		}
	}

	return entries, nil
}

// ExtractSegmentText 按时间窗口拼接字幕文本
func ExtractSegmentText(transcript []TranscriptEntry, startSeconds, endSeconds float64) string {
	var parts []string
	for _, entry := range transcript {
		entryEnd := entry.Start + entry.Duration
		if entryEnd >= startSeconds && entry.Start <= endSeconds {
			parts = append(parts, entry.Text)
		}
	}
	return strings.Join(parts, " ")
}

// FormatTime 秒数转 MM:SS, 超过一小时转 HH:MM:SS
func FormatTime(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
