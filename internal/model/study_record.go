package model

import "time"

type StudyResult string

const (
	ResultCorrect   StudyResult = "correct"
	ResultIncorrect StudyResult = "incorrect"
	ResultSkipped   StudyResult = "skipped"
)

func ValidStudyResult(r string) bool {
	switch StudyResult(r) {
	case ResultCorrect, ResultIncorrect, ResultSkipped:
		return true
	}
	return false
}

// StudyRecord 错题练习记录，只增不改；提交时原子地更新父错题的派生字段
type StudyRecord struct {
	ID               uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	WrongQuestionID  uint        `gorm:"not null;index" json:"wrongQuestionId"`
	StudentID        uint        `gorm:"not null;index" json:"studentId"`
	ReviewerUserID   *uint       `gorm:"index" json:"reviewerUserId"`
	StudyDate        time.Time   `gorm:"type:date;index" json:"studyDate"`
	Result           StudyResult `gorm:"type:varchar(20);not null" json:"result"`
	TimeSpentSeconds *int        `json:"timeSpentSeconds"`
	MasteryLevel     *int        `json:"masteryLevel"` // 1-5，仅对 correct 有意义
	Notes            string      `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time   `json:"createdAt"`
}

func (StudyRecord) TableName() string {
	return "study_records"
}
