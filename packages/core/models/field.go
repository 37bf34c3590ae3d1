package models

import (
	"time"

	"gorm.io/gorm"
)

// Sport formats.
const (
	FormatF5 = "F5"
	FormatF7 = "F7"
)

// Field is a playable surface. An F7 field physically spans two F5
// sub-fields; that relationship is expressed through field groups, not
// on the field itself.
type Field struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string         `gorm:"size:100;not null;unique" json:"name"`
	Format     string         `gorm:"size:2;not null" json:"format"` // F5, F7
	HourlyRate float64        `gorm:"not null;default:0" json:"hourly_rate"`
	Active     bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Field) TableName() string {
	return "fields"
}

// FieldGroup binds fields that share physical space: booking any member
// blocks every other member for the same window.
type FieldGroup struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null;unique" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Members []FieldGroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

func (FieldGroup) TableName() string {
	return "field_groups"
}

type FieldGroupMember struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID uint `gorm:"not null;index;uniqueIndex:idx_group_field" json:"group_id"`
	FieldID uint `gorm:"not null;index;uniqueIndex:idx_group_field" json:"field_id"`

	// Relationships
	Field Field `gorm:"foreignKey:FieldID;references:ID" json:"field,omitempty"`
}

func (FieldGroupMember) TableName() string {
	return "field_group_members"
}

// DTOs

type CreateFieldRequest struct {
	Name       string  `json:"name" binding:"required"`
	Format     string  `json:"format" binding:"required,oneof=F5 F7"`
	HourlyRate float64 `json:"hourly_rate" binding:"omitempty,min=0"`
}

type UpdateFieldRequest struct {
	Name       *string  `json:"name,omitempty"`
	Format     *string  `json:"format,omitempty" binding:"omitempty,oneof=F5 F7"`
	HourlyRate *float64 `json:"hourly_rate,omitempty" binding:"omitempty,min=0"`
	Active     *bool    `json:"active,omitempty"`
}

type CreateFieldGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	FieldIDs []uint `json:"field_ids,omitempty"`
}

type SetGroupMembersRequest struct {
	FieldIDs []uint `json:"field_ids" binding:"required"`
}
