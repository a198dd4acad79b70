package repository

import (
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	return r.DB.Create(doc).Error
}

func (r *DocumentRepository) FindByID(id uint) (*model.Document, error) {
	var doc model.Document
	err := r.DB.Preload("Uploader").First(&doc, id).Error
	return &doc, err
}

func (r *DocumentRepository) FindByCourse(courseID uint) ([]model.Document, error) {
	var docs []model.Document
	q := r.DB.Preload("Uploader").Order("created_at DESC")
	if courseID != 0 {
		q = q.Where("course_id = ?", courseID)
	}
	err := q.Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) Update(doc *model.Document) error {
	return r.DB.Save(doc).Error
}

func (r *DocumentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Document{}, id).Error
}
