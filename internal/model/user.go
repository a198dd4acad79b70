package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Email               string     `gorm:"size:100;unique;not null" json:"email"`
	Username            string     `gorm:"size:100;unique;not null" json:"username"`
	Password            string     `gorm:"size:100;not null" json:"-"`
	FullName            string     `gorm:"size:255" json:"fullName"`
	Role                UserRole   `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	IsActive            bool       `gorm:"default:true" json:"isActive"`
	PasswordResetToken  string     `gorm:"size:100;index" json:"-"`
	PasswordResetExpiry *time.Time `json:"-"`
	LastLogin           time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen            time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
