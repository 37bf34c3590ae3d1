package models

import (
	"time"

	"gorm.io/gorm"
)

// AcademySession is a weekly recurring training block on a field.
// Weekday follows time.Weekday (0 = Sunday).
type AcademySession struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	FieldID   uint           `gorm:"not null;index" json:"field_id"`
	Weekday   int            `gorm:"not null;index" json:"weekday"`
	StartTime string         `gorm:"size:8;not null" json:"start_time"`
	EndTime   string         `gorm:"size:8;not null" json:"end_time"`
	Coach     string         `gorm:"size:100" json:"coach"`
	Active    bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Field Field `gorm:"foreignKey:FieldID;references:ID" json:"field,omitempty"`
}

func (AcademySession) TableName() string {
	return "academy_sessions"
}

// DTOs

type CreateAcademySessionRequest struct {
	FieldID   uint   `json:"field_id" binding:"required"`
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Coach     string `json:"coach,omitempty"`
}

type UpdateAcademySessionRequest struct {
	FieldID   *uint   `json:"field_id,omitempty"`
	Weekday   *int    `json:"weekday,omitempty" binding:"omitempty,min=0,max=6"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Coach     *string `json:"coach,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}
