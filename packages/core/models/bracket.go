package models

import (
	"time"

	"gorm.io/gorm"
)

// Series states and decision methods.
const (
	SeriesScheduled = "scheduled"
	SeriesDecided   = "decided"

	DecidedByGoals     = "goals"
	DecidedByAwayGoals = "away_goals"
	DecidedByPenalties = "penalties"
	DecidedByBye       = "bye"

	SlotHome = "home"
	SlotAway = "away"
)

// Bracket (eliminatoria) is the knockout phase of a tournament.
// At most one per tournament.
type Bracket struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint           `gorm:"not null;unique;constraint:OnDelete:CASCADE" json:"tournament_id"`
	RoundTrip    bool           `gorm:"not null;default:false" json:"round_trip"`
	AwayGoals    bool           `gorm:"not null;default:false" json:"away_goals"`
	StartDate    time.Time      `gorm:"type:date;not null" json:"start_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Rounds []BracketRound `gorm:"foreignKey:BracketID" json:"rounds,omitempty"`
}

func (Bracket) TableName() string {
	return "brackets"
}

// BracketRound is an ordered round of a bracket (QF, SF, F...).
type BracketRound struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	BracketID  uint   `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"bracket_id"`
	Position   int    `gorm:"not null" json:"position"` // 1-based, final is last
	RoundKey   string `gorm:"size:10;not null" json:"round_key"`
	MatchCount int    `gorm:"not null" json:"match_count"`
	RoundTrip  bool   `gorm:"not null;default:false" json:"round_trip"`
	AwayGoals  bool   `gorm:"not null;default:false" json:"away_goals"`

	// Relationships
	Matches []BracketMatch `gorm:"foreignKey:RoundID" json:"matches,omitempty"`
}

func (BracketRound) TableName() string {
	return "bracket_rounds"
}

// BracketMatch is one leg of a knockout series. A series is one row
// (single leg) or two rows linked by ParentMatchID (leg 2 points back
// to leg 1, with home/away swapped). The series winner, status and the
// next-match wiring live on leg 1.
type BracketMatch struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	RoundID       uint       `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"round_id"`
	Position      int        `gorm:"not null" json:"position"` // 1-based within round
	Leg           int        `gorm:"not null;default:1" json:"leg"`
	HomeTeamID    *uint      `json:"home_team_id"`
	AwayTeamID    *uint      `json:"away_team_id"`
	HomeGoals     *int       `json:"home_goals"`
	AwayGoals     *int       `json:"away_goals"`
	HomePens      *int       `json:"home_pens"`
	AwayPens      *int       `json:"away_pens"`
	FieldID       *uint      `gorm:"index" json:"field_id"`
	Date          *time.Time `gorm:"type:date;index" json:"date"`
	StartTime     *string    `gorm:"size:8" json:"start_time"`
	EndTime       *string    `gorm:"size:8" json:"end_time"`
	NextMatchID   *uint      `json:"next_match_id"`
	NextSlot      string     `gorm:"size:5" json:"next_slot"` // home, away
	ParentMatchID *uint      `gorm:"index" json:"parent_match_id"`
	WinnerID      *uint      `json:"winner_id"`
	DecidedBy     string     `gorm:"size:12" json:"decided_by"`
	Status        string     `gorm:"size:20;not null;default:scheduled" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relationships
	Round    BracketRound `gorm:"foreignKey:RoundID;references:ID" json:"round,omitempty"`
	HomeTeam *Team        `gorm:"foreignKey:HomeTeamID;references:ID" json:"home_team,omitempty"`
	AwayTeam *Team        `gorm:"foreignKey:AwayTeamID;references:ID" json:"away_team,omitempty"`
	Field    *Field       `gorm:"foreignKey:FieldID;references:ID" json:"field,omitempty"`
}

func (BracketMatch) TableName() string {
	return "bracket_matches"
}

// DTOs

type GenerateBracketRequest struct {
	StartDate string  `json:"start_date,omitempty"` // YYYY-MM-DD, defaults to tournament rules
	RoundTrip *bool   `json:"round_trip,omitempty"`
	AwayGoals *bool   `json:"away_goals,omitempty"`
	TeamIDs   []uint  `json:"team_ids,omitempty"` // explicit seeds; defaults to standings top-K
	Rounds    []Round `json:"rounds,omitempty"`   // explicit round config; defaults by size
}

// Round describes one round of an explicit bracket configuration.
type Round struct {
	RoundKey   string `json:"round_key" binding:"required"`
	MatchCount int    `json:"match_count" binding:"required,min=1"`
	RoundTrip  *bool  `json:"round_trip,omitempty"`
	AwayGoals  *bool  `json:"away_goals,omitempty"`
}

type CloseSeriesRequest struct {
	HomePens *int `json:"home_pens,omitempty"`
	AwayPens *int `json:"away_pens,omitempty"`
}

type UpdateLegRequest struct {
	HomeGoals *int    `json:"home_goals,omitempty" binding:"omitempty,min=0"`
	AwayGoals *int    `json:"away_goals,omitempty" binding:"omitempty,min=0"`
	HomePens  *int    `json:"home_pens,omitempty" binding:"omitempty,min=0"`
	AwayPens  *int    `json:"away_pens,omitempty" binding:"omitempty,min=0"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	FieldID   *uint   `json:"field_id,omitempty"`
}

type AssignSlotRequest struct {
	Slot   string `json:"slot" binding:"required,oneof=home away"`
	TeamID uint   `json:"team_id" binding:"required"`
}

// BracketResponse is the read model of a full bracket tree.
type BracketResponse struct {
	Bracket Bracket        `json:"bracket"`
	Rounds  []BracketRound `json:"rounds"`
}
