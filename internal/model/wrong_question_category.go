package model

import "time"

// WrongQuestionCategory 错题分类字典
type WrongQuestionCategory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (WrongQuestionCategory) TableName() string {
	return "wrong_question_categories"
}
