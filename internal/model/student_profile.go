package model

// StudentProfile 学生扩展资料，仅 role=student 的用户拥有
type StudentProfile struct {
	BaseModel
	UserID       uint   `gorm:"not null;uniqueIndex" json:"userId"`
	StudentNo    string `gorm:"size:64" json:"studentNo"`
	Grade        string `gorm:"size:20;not null;index" json:"grade"`
	ClassName    string `gorm:"size:50" json:"className"`
	SchoolName   string `gorm:"size:255" json:"schoolName"`
	GuardianNote string `gorm:"type:text" json:"guardianNote"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
