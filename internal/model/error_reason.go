package model

import "time"

// ErrorReason 错误原因字典，名称在所属分类内唯一
type ErrorReason struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;" json:"id"`
	Name        string    `gorm:"size:100;not null;index;uniqueIndex:uq_error_reason_name_category" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CategoryID  *uint     `gorm:"index;uniqueIndex:uq_error_reason_name_category" json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`

	Category *WrongQuestionCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (ErrorReason) TableName() string {
	return "error_reasons"
}
