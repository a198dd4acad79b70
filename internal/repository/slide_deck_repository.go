package repository

import (
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"gorm.io/gorm"
)

type SlideDeckRepository struct {
	DB *gorm.DB
}

func NewSlideDeckRepository(db *gorm.DB) *SlideDeckRepository {
	return &SlideDeckRepository{DB: db}
}

func (r *SlideDeckRepository) Create(deck *model.SlideDeck) error {
	return r.DB.Create(deck).Error
}

func (r *SlideDeckRepository) FindByID(id uint) (*model.SlideDeck, error) {
	var deck model.SlideDeck
	err := r.DB.Preload("Slides", func(db *gorm.DB) *gorm.DB {
		return db.Order("slides.position")
	}).First(&deck, id).Error
	return &deck, err
}

// FindByOwner 可选按状态过滤
func (r *SlideDeckRepository) FindByOwner(ownerID uint, status model.DeckStatus) ([]model.SlideDeck, error) {
	var decks []model.SlideDeck
	q := r.DB.Where("owner_id = ?", ownerID).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&decks).Error
	return decks, err
}

func (r *SlideDeckRepository) UpdateStatus(id uint, status model.DeckStatus) error {
	return r.DB.Model(&model.SlideDeck{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *SlideDeckRepository) MarkComplete(id uint, slides []model.Slide) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range slides {
			slides[i].SlideDeckID = id
		}
		if len(slides) > 0 {
			if err := tx.Create(&slides).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.SlideDeck{}).
			Where("id = ?", id).
			Update("status", model.DeckComplete).
			Error
	})
}

func (r *SlideDeckRepository) MarkFailed(id uint) error {
	return r.UpdateStatus(id, model.DeckFailed)
}

func (r *SlideDeckRepository) FindSlide(deckID, slideID uint) (*model.Slide, error) {
	var slide model.Slide
	err := r.DB.Where("id = ? AND slide_deck_id = ?", slideID, deckID).First(&slide).Error
	return &slide, err
}

func (r *SlideDeckRepository) UpdateSlide(slide *model.Slide) error {
	return r.DB.Save(slide).Error
}

func (r *SlideDeckRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slide_deck_id = ?", id).Delete(&model.Slide{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SlideDeck{}, id).Error
	})
}
