package database

import (
	"fmt"
	"log"

	"wrongbook_backend/internal/config"
	"wrongbook_backend/internal/model"

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
		&model.StudentProfile{},
		&model.ParentStudentLink{},
		&model.Subject{},
		&model.WrongQuestionCategory{},
		&model.ErrorReason{},
		&model.WrongQuestion{},
		&model.WrongQuestionErrorReason{},
		&model.StudyRecord{},
		&model.Paper{},
		&model.Question{},
		&model.QuestionImage{},
		&model.Variant{},
		&model.Export{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认学科字典
	var count int64
	db.Model(&model.Subject{}).Count(&count)
	if count == 0 {
		defaultSubjects := []model.Subject{
			{Code: "math", Name: "数学", IsActive: true},
			{Code: "chinese", Name: "语文", IsActive: true},
			{Code: "english", Name: "英语", IsActive: true},
			{Code: "science", Name: "科学", IsActive: true},
		}
		for i := range defaultSubjects {
			db.Create(&defaultSubjects[i])
		}
	}

	return db, nil
}
