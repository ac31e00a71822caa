package model

import "time"

// Variant 大模型生成的变式题
type Variant struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"questionId"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Sequence   int       `gorm:"not null" json:"sequence"`
	Grade      string    `gorm:"size:50" json:"grade"`
	Subject    string    `gorm:"size:50" json:"subject"`
	Status     string    `gorm:"size:50;default:'active'" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Variant) TableName() string {
	return "variants"
}
