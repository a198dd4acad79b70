package model

import "encoding/json"

type DeckStatus string

const (
	DeckPending    DeckStatus = "PENDING"
	DeckGenerating DeckStatus = "GENERATING"
	DeckComplete   DeckStatus = "COMPLETE"
	DeckFailed     DeckStatus = "FAILED"
)

func (s DeckStatus) Valid() bool {
	switch s {
	case DeckPending, DeckGenerating, DeckComplete, DeckFailed:
		return true
	}
	return false
}

// swagger:model SlideDeck
type SlideDeck struct {
	BaseModel
	Title           string          `gorm:"size:255;not null" json:"title"`
	Status          DeckStatus      `gorm:"size:20;default:'PENDING'" json:"status"`
	NumSlides       int             `gorm:"default:8" json:"numSlides"`
	Depth           string          `gorm:"size:20;default:'standard'" json:"depth"`
	ReferenceDocIDs json.RawMessage `gorm:"type:json" json:"referenceDocIds,omitempty"`
	OwnerID         uint            `gorm:"index;type:bigint unsigned" json:"ownerId"`
	Slides          []Slide         `gorm:"foreignKey:SlideDeckID" json:"slides,omitempty"`
}

func (SlideDeck) TableName() string {
	return "slide_decks"
}

// swagger:model Slide
type Slide struct {
	BaseModel
	SlideDeckID uint   `gorm:"index;type:bigint unsigned" json:"slideDeckId"`
	Title       string `gorm:"size:500;not null" json:"title"`
	Content     string `gorm:"type:text" json:"content"` // Markdown正文
	Notes       string `gorm:"type:text" json:"notes"`   // 演讲备注
	ImageURL    string `gorm:"size:500" json:"imageUrl,omitempty"`
	Position    int    `gorm:"not null" json:"position"`
}

func (Slide) TableName() string {
	return "slides"
}
