package model

// Question OCR 识别出的单道题目
type Question struct {
	BaseModel
	PaperID    uint   `gorm:"not null;index" json:"paperId"`
	QuestionNo int    `gorm:"not null" json:"questionNo"`
	Text       string `gorm:"type:text;not null" json:"text"` // 题干文本（去手写）
	HasImage   bool   `gorm:"default:false" json:"hasImage"`
	Status     string `gorm:"size:50;default:'active'" json:"status"`

	Images []QuestionImage `gorm:"foreignKey:QuestionID" json:"images,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
