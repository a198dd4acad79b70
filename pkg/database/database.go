package database

import (
	"fmt"
	"log"

	"github.com/sohinisarkar2002/EduAssist/internal/config"
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Document{},
		&model.Conversation{},
		&model.Message{},
		&model.StudyGuide{},
		&model.VideoSegment{},
		&model.Assessment{},
		&model.Question{},
		&model.AssessmentAttempt{},
		&model.SlideDeck{},
		&model.Slide{},
		&model.WorkflowRequest{},
		&model.Feedback{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认课程（空库时插入，便于前端直接联调）
	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count == 0 {
		db.Create(&model.Course{
			Code:        "GEN-101",
			Name:        "General",
			Description: "Default course for uploaded materials",
		})
	}

	return db, nil
}
