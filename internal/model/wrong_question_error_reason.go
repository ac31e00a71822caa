package model

import "time"

// WrongQuestionErrorReason 错题与错误原因多对多关系，随任一端删除而级联删除
type WrongQuestionErrorReason struct {
	WrongQuestionID uint      `gorm:"primaryKey" json:"wrongQuestionId"`
	ErrorReasonID   uint      `gorm:"primaryKey" json:"errorReasonId"`
	CreatedAt       time.Time `json:"createdAt"`

	ErrorReason *ErrorReason `gorm:"foreignKey:ErrorReasonID" json:"errorReason,omitempty"`
}

func (WrongQuestionErrorReason) TableName() string {
	return "wrong_question_error_reasons"
}
