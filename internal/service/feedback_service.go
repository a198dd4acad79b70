package service

import (
	"encoding/json"
	"fmt"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/repository"
)

type FeedbackService struct {
	repo *repository.FeedbackRepository
}

func NewFeedbackService(repo *repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

type CreateFeedbackInput struct {
	TargetType    model.FeedbackTarget `json:"targetType" binding:"required"`
	TargetID      uint                 `json:"targetId" binding:"required"`
	Rating        int                  `json:"rating" binding:"required,min=1,max=5"`
	AspectRatings map[string]int       `json:"aspectRatings"`
	Comment       string               `json:"comment"`
}

func (s *FeedbackService) Create(input CreateFeedbackInput, userID uint) (*model.Feedback, error) {
	if !input.TargetType.Valid() {
		return nil, fmt.Errorf("invalid feedback target: %s", input.TargetType)
	}
	for aspect, rating := range input.AspectRatings {
		if rating < 1 || rating > 5 {
			return nil, fmt.Errorf("aspect rating out of range: %s=%d", aspect, rating)
		}
	}

	var rawAspects json.RawMessage
	if len(input.AspectRatings) > 0 {
		rawAspects, _ = json.Marshal(input.AspectRatings)
	}

	fb := &model.Feedback{
		TargetType:    input.TargetType,
		TargetID:      input.TargetID,
		Rating:        input.Rating,
		AspectRatings: rawAspects,
		Comment:       input.Comment,
		UserID:        userID,
	}
	if err := s.repo.Create(fb); err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *FeedbackService) ListByTarget(targetType model.FeedbackTarget, targetID uint) ([]model.Feedback, error) {
	if targetType != "" && !targetType.Valid() {
		return nil, fmt.Errorf("invalid feedback target: %s", targetType)
	}
	return s.repo.FindByTarget(targetType, targetID)
}

func (s *FeedbackService) ListByUser(userID uint) ([]model.Feedback, error) {
	return s.repo.FindByUser(userID)
}

type FeedbackSummary struct {
	TargetType    model.FeedbackTarget `json:"targetType"`
	AverageRating float64              `json:"averageRating"`
	Count         int64                `json:"count"`
}

func (s *FeedbackService) Summary(targetType model.FeedbackTarget) (*FeedbackSummary, error) {
	avg, count, err := s.repo.AverageRating(targetType)
	if err != nil {
		return nil, err
	}
	return &FeedbackSummary{TargetType: targetType, AverageRating: avg, Count: count}, nil
}
