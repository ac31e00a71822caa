package model

import "time"

// QuestionImage 从原图裁剪出的题目插图
type QuestionImage struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"questionId"`
	ImageURL   string    `gorm:"size:512;not null" json:"imageUrl"`
	Ymin       int       `gorm:"not null" json:"ymin"` // 原始图片坐标
	Xmin       int       `gorm:"not null" json:"xmin"`
	Ymax       int       `gorm:"not null" json:"ymax"`
	Xmax       int       `gorm:"not null" json:"xmax"`
	Width      *int      `json:"width"` // 裁剪后的宽高
	Height     *int      `json:"height"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (QuestionImage) TableName() string {
	return "question_images"
}
