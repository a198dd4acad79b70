package repository

import (
	"encoding/json"
	"time"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) FindByIDWithQuestions(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position")
	}).First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) FindAll(courseID uint) ([]model.Assessment, error) {
	var list []model.Assessment
	q := r.DB.Order("created_at DESC")
	if courseID != 0 {
		q = q.Where("course_id = ?", courseID)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

// MarkCompleted 题目与总分在同一事务内落库
func (r *AssessmentRepository) MarkCompleted(id uint, questions []model.Question, totalMarks float64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range questions {
			questions[i].AssessmentID = id
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Assessment{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":      model.AssessmentCompleted,
				"total_marks": totalMarks,
			}).Error
	})
}

func (r *AssessmentRepository) MarkFailed(id uint) error {
	return r.DB.Model(&model.Assessment{}).
		Where("id = ?", id).
		Update("status", model.AssessmentFailed).
		Error
}

func (r *AssessmentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assessment{}, id).Error
	})
}

func (r *AssessmentRepository) CreateAttempt(attempt *model.AssessmentAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AssessmentRepository) FindAttempt(id uint) (*model.AssessmentAttempt, error) {
	var attempt model.AssessmentAttempt
	err := r.DB.First(&attempt, id).Error
	return &attempt, err
}

// FindOpenAttempt 学生在同一测验下未提交的答卷
func (r *AssessmentRepository) FindOpenAttempt(assessmentID, studentID uint) (*model.AssessmentAttempt, error) {
	var attempt model.AssessmentAttempt
	err := r.DB.Where("assessment_id = ? AND student_id = ? AND submitted_at IS NULL",
		assessmentID, studentID).
		Order("started_at DESC").
		First(&attempt).Error
	return &attempt, err
}

func (r *AssessmentRepository) FindAttemptsByStudent(studentID uint) ([]model.AssessmentAttempt, error) {
	var attempts []model.AssessmentAttempt
	err := r.DB.Preload("Assessment").
		Where("student_id = ?", studentID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AssessmentRepository) FindAttemptsByAssessment(assessmentID uint) ([]model.AssessmentAttempt, error) {
	var attempts []model.AssessmentAttempt
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

// SubmitAttempt 用条件更新保证一份答卷只能提交一次,
// submitted_at 不为空时 RowsAffected 为0
func (r *AssessmentRepository) SubmitAttempt(attemptID uint, answers json.RawMessage, score, percentage float64, timeTakenMins int) error {
	now := time.Now()
	res := r.DB.Model(&model.AssessmentAttempt{}).
		Where("id = ? AND submitted_at IS NULL", attemptID).
		Updates(map[string]interface{}{
			"submitted_at":    now,
			"answers":         answers,
			"score":           score,
			"percentage":      percentage,
			"time_taken_mins": timeTakenMins,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrAttemptAlreadySubmitted
	}
	return nil
}
