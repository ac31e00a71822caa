package model

import "time"

// Subject 学科字典
type Subject struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	IsActive  bool      `gorm:"default:true;not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Subject) TableName() string {
	return "subjects"
}
