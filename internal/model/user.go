package model

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleParent  UserRole = "parent"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

func ValidRole(r string) bool {
	switch UserRole(r) {
	case RoleStudent, RoleParent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

func ValidUserStatus(s string) bool {
	return UserStatus(s) == UserActive || UserStatus(s) == UserInactive
}

// swagger:model User
type User struct {
	BaseModel
	Name   string     `gorm:"size:100;not null;index" json:"name"`
	Email  *string    `gorm:"size:255;uniqueIndex" json:"email"`
	Phone  *string    `gorm:"size:32;uniqueIndex" json:"phone"`
	Role   UserRole   `gorm:"type:varchar(20);not null;index" json:"role"`
	Status UserStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`

	StudentProfile *StudentProfile `gorm:"foreignKey:UserID" json:"studentProfile,omitempty"`
}

func (User) TableName() string {
	return "users"
}
