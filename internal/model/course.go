package model

// swagger:model Course
type Course struct {
	BaseModel
	Code        string `gorm:"size:20;unique;not null" json:"code"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Course) TableName() string {
	return "courses"
}
