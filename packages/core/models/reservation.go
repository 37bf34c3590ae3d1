package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationPaid      = "paid"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

// ActiveReservationStatuses are the states in which a reservation
// occupies its field for overlap purposes.
var ActiveReservationStatuses = []string{ReservationPending, ReservationPaid, ReservationCompleted}

// Reservation is a walk-in field booking. Times are stored as HH:MM:SS
// strings so they compare lexicographically.
type Reservation struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string         `gorm:"size:16;not null;unique" json:"code"`
	FieldID       uint           `gorm:"not null;index" json:"field_id"`
	Date          time.Time      `gorm:"type:date;not null;index" json:"date"`
	StartTime     string         `gorm:"size:8;not null" json:"start_time"`
	EndTime       string         `gorm:"size:8;not null" json:"end_time"`
	CustomerName  string         `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string         `gorm:"size:30" json:"customer_phone"`
	CustomerEmail string         `gorm:"size:100" json:"customer_email"`
	TotalPrice    float64        `gorm:"not null;default:0" json:"total_price"`
	Status        string         `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Field Field `gorm:"foreignKey:FieldID;references:ID" json:"field,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// ClosedDate marks a calendar date on which reservations are disallowed.
type ClosedDate struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Date      time.Time `gorm:"type:date;not null;unique" json:"date"`
	Reason    string    `gorm:"size:200" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ClosedDate) TableName() string {
	return "closed_dates"
}

// DTOs

type CreateReservationRequest struct {
	FieldID       uint   `json:"field_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty" binding:"omitempty,email"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid completed cancelled"`
}

type CloseDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason,omitempty"`
	Force  bool   `json:"force,omitempty"`
}

// CloseDateResult reports the outcome of a closure attempt. With
// Closed=false the conflicting reservations are returned untouched for
// the caller to confirm a forced retry.
type CloseDateResult struct {
	Closed                  bool          `json:"closed"`
	Closure                 *ClosedDate   `json:"closure,omitempty"`
	ConflictingReservations []Reservation `json:"conflicting_reservations,omitempty"`
	CancelledReservationIDs []uint        `json:"cancelled_reservation_ids,omitempty"`
}

type PaginatedReservationsResponse struct {
	Data       []Reservation `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}
