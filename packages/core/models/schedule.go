package models

import "time"

// Block status tags for calendar rendering. Reservations keep their own
// status; tournament and academy occupancy get coarse tags.
const (
	BlockTorneo   = "torneo"
	BlockAcademia = "academia"
)

// TimeBlock is the common shape every occupation of a field reduces to
// for overlap checks and calendar views.
type TimeBlock struct {
	FieldID   uint      `json:"field_id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"` // reservation status, "torneo" or "academia"
	Kind      string    `json:"kind"`   // reservation, academy, league_match, playoff_match
	RefID     uint      `json:"ref_id"` // id of the underlying row
	Label     string    `json:"label,omitempty"`
}

// Block kinds.
const (
	KindReservation  = "reservation"
	KindAcademy      = "academy"
	KindLeagueMatch  = "league_match"
	KindPlayoffMatch = "playoff_match"
)

type AvailabilityRequest struct {
	FieldID   uint   `form:"field_id" binding:"required"`
	Date      string `form:"date" binding:"required"`
	StartTime string `form:"start_time" binding:"required"`
	EndTime   string `form:"end_time" binding:"required"`
}

type AvailabilityResponse struct {
	Available bool        `json:"available"`
	Conflicts []TimeBlock `json:"conflicts,omitempty"`
}

// WeekScheduleResponse maps each ISO date of the requested week to the
// blocks occupying the field (and its peers) on that date.
type WeekScheduleResponse struct {
	FieldID uint                   `json:"field_id"`
	From    string                 `json:"from"`
	To      string                 `json:"to"`
	Days    map[string][]TimeBlock `json:"days"`
}
