package repository

import (
	"encoding/json"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"gorm.io/gorm"
)

type StudyGuideRepository struct {
	DB *gorm.DB
}

func NewStudyGuideRepository(db *gorm.DB) *StudyGuideRepository {
	return &StudyGuideRepository{DB: db}
}

func (r *StudyGuideRepository) Create(guide *model.StudyGuide) error {
	return r.DB.Create(guide).Error
}

func (r *StudyGuideRepository) FindByID(id uint) (*model.StudyGuide, error) {
	var guide model.StudyGuide
	err := r.DB.Preload("Segments", func(db *gorm.DB) *gorm.DB {
		return db.Order("video_segments.position")
	}).First(&guide, id).Error
	return &guide, err
}

func (r *StudyGuideRepository) FindAll(courseID uint) ([]model.StudyGuide, error) {
	var guides []model.StudyGuide
	q := r.DB.Order("created_at DESC")
	if courseID != 0 {
		q = q.Where("course_id = ?", courseID)
	}
	err := q.Find(&guides).Error
	return guides, err
}

func (r *StudyGuideRepository) FindByCreator(userID uint) ([]model.StudyGuide, error) {
	var guides []model.StudyGuide
	err := r.DB.Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&guides).Error
	return guides, err
}

func (r *StudyGuideRepository) Update(guide *model.StudyGuide) error {
	return r.DB.Save(guide).Error
}

// MarkCompleted 指南正文/主题/片段分析在同一事务内落库
func (r *StudyGuideRepository) MarkCompleted(id uint, content string, keyTopics json.RawMessage, segments []model.VideoSegment) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.StudyGuide{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     model.GuideCompleted,
				"content":    content,
				"key_topics": keyTopics,
			}).Error; err != nil {
			return err
		}
		for i := range segments {
			segments[i].StudyGuideID = id
		}
		if len(segments) == 0 {
			return nil
		}
		return tx.Create(&segments).Error
	})
}

// MarkFailed 失败原因写进正文, 方便前端轮询时直接展示
func (r *StudyGuideRepository) MarkFailed(id uint, errMsg string) error {
	return r.DB.Model(&model.StudyGuide{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  model.GuideFailed,
			"content": "Study guide generation failed: " + errMsg,
		}).Error
}

func (r *StudyGuideRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("study_guide_id = ?", id).Delete(&model.VideoSegment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.StudyGuide{}, id).Error
	})
}
