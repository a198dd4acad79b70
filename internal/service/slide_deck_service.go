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

type SlideDeckService struct {
	repo    *repository.SlideDeckRepository
	docRepo *repository.DocumentRepository
	rag     *RAGService
	storage StorageService
	ai      AIClient
	queue   *jobs.Queue
}

func NewSlideDeckService(
	repo *repository.SlideDeckRepository,
	docRepo *repository.DocumentRepository,
	rag *RAGService,
	storage StorageService,
	ai AIClient,
	queue *jobs.Queue,
) *SlideDeckService {
	return &SlideDeckService{
		repo:    repo,
		docRepo: docRepo,
		rag:     rag,
		storage: storage,
		ai:      ai,
		queue:   queue,
	}
}

type CreateSlideDeckInput struct {
	Title       string `json:"title" binding:"required"`
	NumSlides   int    `json:"numSlides"`
	Depth       string `json:"depth"`
	DocumentIDs []uint `json:"documentIds"`
}

// Create PENDING占位后整副幻灯片由一次LLM调用异步生成
func (s *SlideDeckService) Create(input CreateSlideDeckInput, ownerID uint) (*model.SlideDeck, error) {
	if input.NumSlides <= 0 {
		input.NumSlides = 8
	}
	if input.Depth == "" {
		input.Depth = "standard"
	}

	rawDocIDs, _ := json.Marshal(input.DocumentIDs)
	deck := &model.SlideDeck{
		Title:           input.Title,
		Status:          model.DeckPending,
		NumSlides:       input.NumSlides,
		Depth:           input.Depth,
		ReferenceDocIDs: rawDocIDs,
		OwnerID:         ownerID,
	}
	if err := s.repo.Create(deck); err != nil {
		return nil, err
	}

	id := deck.ID
	if err := s.queue.Enqueue("slide_deck_generation", func() error {
		return s.generate(id, input)
	}); err != nil {
		_ = s.repo.MarkFailed(id)
		return nil, err
	}

	return deck, nil
}

func (s *SlideDeckService) generate(deckID uint, input CreateSlideDeckInput) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.repo.UpdateStatus(deckID, model.DeckGenerating); err != nil {
		return err
	}

	referenceText, err := s.referenceText(ctx, input.DocumentIDs)
	if err != nil {
		logger.Log.Warn("reference load failed, generating from title only",
			zap.Uint("deckID", deckID), zap.Error(err))
	}

	prompt := buildSlideDeckPrompt(input.Title, input.NumSlides, input.Depth, referenceText)
	response, err := s.ai.Chat(ctx, "", prompt)
	if err != nil {
		_ = s.repo.MarkFailed(deckID)
		return err
	}

	slides, err := parseGeneratedSlides(response)
	if err != nil {
		_ = s.repo.MarkFailed(deckID)
		return err
	}

	return s.repo.MarkComplete(deckID, slides)
}

func (s *SlideDeckService) referenceText(ctx context.Context, documentIDs []uint) (string, error) {
	var texts []string
	for _, id := range documentIDs {
		doc, err := s.docRepo.FindByID(id)
		if err != nil {
			return strings.Join(texts, "\n---\n"), err
		}
		reader, err := s.storage.Get(ctx, doc.ObjectKey)
		if err != nil {
			return strings.Join(texts, "\n---\n"), err
		}
		text, err := s.rag.ExtractText(doc.FileType, reader)
		reader.Close()
		if err != nil {
			return strings.Join(texts, "\n---\n"), err
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n---\n"), nil
}

func buildSlideDeckPrompt(title string, numSlides int, depth, referenceText string) string {
	if referenceText == "" {
		referenceText = "No reference material provided. Use general knowledge of the topic."
	}
	return fmt.Sprintf(`You are an expert lecture material summarizer.
Given the following material, generate %d slides for a presentation titled '%s'.
Each slide should have:
- A short slide title
- Slide content as markdown (concise bullets/phrases with NO paragraph prose)
- Speaker notes (1-2 sentences explanation as markdown)
- Optionally, suggest an illustrative image URL or description (where relevant)
Aim for %s level of detail.
Output:
- For each slide, a dict: {"title":..., "content_md":..., "notes_md":..., "image_url":...}
Only output JSON list, no commentary.
-----
MATERIAL TO SUMMARIZE:
%s
`, numSlides, title, depth, referenceText)
}

type generatedSlide struct {
	Title     string `json:"title"`
	ContentMD string `json:"content_md"`
	NotesMD   string `json:"notes_md"`
	ImageURL  string `json:"image_url"`
}

func parseGeneratedSlides(response string) ([]model.Slide, error) {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]") + 1
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON list in slide response")
	}

	var parsed []generatedSlide
	if err := json.Unmarshal([]byte(response[start:end]), &parsed); err != nil {
		return nil, fmt.Errorf("parse slide response: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("slide response contained no slides")
	}

	slides := make([]model.Slide, 0, len(parsed))
	for i, p := range parsed {
		if p.Title == "" {
			p.Title = fmt.Sprintf("Slide %d", i+1)
		}
		slides = append(slides, model.Slide{
			Title:    p.Title,
			Content:  p.ContentMD,
			Notes:    p.NotesMD,
			ImageURL: p.ImageURL,
			Position: i + 1,
		})
	}
	return slides, nil
}

// Get 仅所有者可见
func (s *SlideDeckService) Get(id uint, viewer *util.Claims) (*model.SlideDeck, error) {
	deck, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if deck.OwnerID != viewer.UserID && viewer.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}
	return deck, nil
}

func (s *SlideDeckService) List(ownerID uint, status model.DeckStatus) ([]model.SlideDeck, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("invalid deck status: %s", status)
	}
	return s.repo.FindByOwner(ownerID, status)
}

type UpdateSlideInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Notes   *string `json:"notes"`
}

func (s *SlideDeckService) UpdateSlide(deckID, slideID uint, viewer *util.Claims, input UpdateSlideInput) (*model.Slide, error) {
	deck, err := s.repo.FindByID(deckID)
	if err != nil {
		return nil, err
	}
	if deck.OwnerID != viewer.UserID && viewer.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	slide, err := s.repo.FindSlide(deckID, slideID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		slide.Title = *input.Title
	}
	if input.Content != nil {
		slide.Content = *input.Content
	}
	if input.Notes != nil {
		slide.Notes = *input.Notes
	}
	if err := s.repo.UpdateSlide(slide); err != nil {
		return nil, err
	}
	return slide, nil
}

func (s *SlideDeckService) Delete(id uint, viewer *util.Claims) error {
	deck, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if deck.OwnerID != viewer.UserID && viewer.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.repo.Delete(id)
}
