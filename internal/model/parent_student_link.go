package model

import "time"

// ParentStudentLink 家长与学生绑定关系，(parent_id, student_id) 唯一
type ParentStudentLink struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ParentID     uint      `gorm:"not null;index;uniqueIndex:uq_parent_student_link" json:"parentId"`
	StudentID    uint      `gorm:"not null;index;uniqueIndex:uq_parent_student_link" json:"studentId"`
	RelationType string    `gorm:"size:50;default:'parent'" json:"relationType"`
	CreatedAt    time.Time `json:"createdAt"`

	Parent  *User `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (ParentStudentLink) TableName() string {
	return "parent_student_links"
}
