package model

import "time"

type WrongQuestionStatus string

const (
	StatusNew       WrongQuestionStatus = "new"
	StatusReviewing WrongQuestionStatus = "reviewing"
	StatusMastered  WrongQuestionStatus = "mastered"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ValidWrongQuestionStatus(s string) bool {
	switch WrongQuestionStatus(s) {
	case StatusNew, StatusReviewing, StatusMastered:
		return true
	}
	return false
}

func ValidDifficulty(d string) bool {
	switch Difficulty(d) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// WrongQuestion 学生错题主表，错题生命周期的聚合根。
// 状态机只由练习记录提交驱动：new → reviewing → mastered，
// 答错会使已掌握的错题退回 reviewing。
type WrongQuestion struct {
	BaseModel
	StudentID          uint                `gorm:"not null;index" json:"studentId"`
	CreatedByUserID    *uint               `gorm:"index" json:"createdByUserId"`
	PaperID            *uint               `gorm:"index" json:"paperId"`
	QuestionID         *uint               `gorm:"index" json:"questionId"`
	Title              string              `gorm:"size:255" json:"title"`
	Content            string              `gorm:"type:text;not null" json:"content"`
	SubjectID          *uint               `gorm:"index" json:"subjectId"`
	Grade              string              `gorm:"size:20;not null;index" json:"grade"`
	QuestionType       string              `gorm:"size:50" json:"questionType"`
	Difficulty         Difficulty          `gorm:"type:varchar(20);default:'medium'" json:"difficulty"`
	CategoryID         *uint               `gorm:"index" json:"categoryId"`
	Status             WrongQuestionStatus `gorm:"type:varchar(20);default:'new';index" json:"status"`
	Source             string              `gorm:"size:50;default:'manual'" json:"source"`
	ErrorCount         int                 `gorm:"default:1" json:"errorCount"`
	IsBookmarked       bool                `gorm:"default:false" json:"isBookmarked"`
	Notes              string              `gorm:"type:text" json:"notes"`
	FirstErrorDate     time.Time           `gorm:"type:date" json:"firstErrorDate"`
	LastReviewDate     *time.Time          `gorm:"type:date" json:"lastReviewDate"`
	LastPracticeResult string              `gorm:"size:20" json:"lastPracticeResult"`

	Student     *User                    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Subject     *Subject                 `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Category    *WrongQuestionCategory   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ReasonLinks []WrongQuestionErrorReason `gorm:"foreignKey:WrongQuestionID" json:"reasonLinks,omitempty"`
}

func (WrongQuestion) TableName() string {
	return "wrong_questions"
}
