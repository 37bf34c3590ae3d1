package models

import (
	"time"

	"gorm.io/gorm"
)

// Tournament types and phases. Phase transitions are monotonic:
// league -> playoffs -> finished.
const (
	TournamentLeague   = "league"
	TournamentKnockout = "knockout"
	TournamentMixed    = "mixed"

	PhaseLeague   = "league"
	PhasePlayoffs = "playoffs"
	PhaseFinished = "finished"
)

// League match statuses.
const (
	MatchScheduled = "scheduled"
	MatchPlayed    = "played"
)

type Tournament struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string         `gorm:"size:255;unique;not null" json:"name"`
	Format          string         `gorm:"size:5;not null;default:F7" json:"format"` // F5, F7
	Type            string         `gorm:"size:20;not null;default:league" json:"type"`
	Phase           string         `gorm:"size:20;not null;default:league" json:"phase"`
	RoundTrip       bool           `gorm:"not null;default:false" json:"round_trip"`
	Weekday         int            `gorm:"not null;default:0" json:"weekday"` // time.Weekday
	StartDate       time.Time      `gorm:"type:date;not null" json:"start_date"`
	QualifyingCount int            `gorm:"not null;default:0" json:"qualifying_count"`
	InscriptionCost float64        `gorm:"not null;default:0" json:"inscription_cost"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	TimeSlots []TournamentTimeSlot `gorm:"foreignKey:TournamentID" json:"time_slots,omitempty"`
	Fields    []TournamentField    `gorm:"foreignKey:TournamentID" json:"fields,omitempty"`
	Teams     []Team               `gorm:"foreignKey:TournamentID" json:"teams,omitempty"`
	Matchdays []Matchday           `gorm:"foreignKey:TournamentID" json:"matchdays,omitempty"`
}

func (Tournament) TableName() string {
	return "tournaments"
}

// TournamentTimeSlot is one weekly time franja of a tournament's agenda.
type TournamentTimeSlot struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint   `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"tournament_id"`
	StartTime    string `gorm:"size:8;not null" json:"start_time"`
	EndTime      string `gorm:"size:8;not null" json:"end_time"`
}

func (TournamentTimeSlot) TableName() string {
	return "tournament_time_slots"
}

// TournamentField reserves a field for the tournament's weekly agenda.
type TournamentField struct {
	ID           uint `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"tournament_id"`
	FieldID      uint `gorm:"not null;index" json:"field_id"`
	Position     int  `gorm:"not null;default:0" json:"position"` // stable scheduling order

	// Relationships
	Field Field `gorm:"foreignKey:FieldID;references:ID" json:"field,omitempty"`
}

func (TournamentField) TableName() string {
	return "tournament_fields"
}

type Team struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"size:150;not null;uniqueIndex:idx_teams_name_tournament" json:"name"`
	TournamentID uint           `gorm:"not null;uniqueIndex:idx_teams_name_tournament;constraint:OnDelete:CASCADE" json:"tournament_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Team) TableName() string {
	return "teams"
}

// Matchday (jornada) is one numbered round of the league phase.
type Matchday struct {
	ID           uint `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"tournament_id"`
	Number       int  `gorm:"not null" json:"number"`

	// Relationships
	Matches []LeagueMatch `gorm:"foreignKey:MatchdayID" json:"matches,omitempty"`
}

func (Matchday) TableName() string {
	return "matchdays"
}

// LeagueMatch (partido) belongs to exactly one matchday.
type LeagueMatch struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchdayID uint       `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"matchday_id"`
	HomeTeamID uint       `gorm:"not null" json:"home_team_id"`
	AwayTeamID uint       `gorm:"not null" json:"away_team_id"`
	HomeGoals  *int       `json:"home_goals"`
	AwayGoals  *int       `json:"away_goals"`
	FieldID    *uint      `gorm:"index" json:"field_id"`
	Date       *time.Time `gorm:"type:date;index" json:"date"`
	StartTime  *string    `gorm:"size:8" json:"start_time"`
	EndTime    *string    `gorm:"size:8" json:"end_time"`
	Status     string     `gorm:"size:20;not null;default:scheduled" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relationships
	Matchday Matchday `gorm:"foreignKey:MatchdayID;references:ID" json:"matchday,omitempty"`
	HomeTeam Team     `gorm:"foreignKey:HomeTeamID;references:ID" json:"home_team,omitempty"`
	AwayTeam Team     `gorm:"foreignKey:AwayTeamID;references:ID" json:"away_team,omitempty"`
	Field    *Field   `gorm:"foreignKey:FieldID;references:ID" json:"field,omitempty"`
}

func (LeagueMatch) TableName() string {
	return "league_matches"
}

// DTOs

type CreateTournamentRequest struct {
	Name            string   `json:"name" binding:"required"`
	Format          string   `json:"format" binding:"required,oneof=F5 F7"`
	Type            string   `json:"type" binding:"required,oneof=league knockout mixed"`
	RoundTrip       bool     `json:"round_trip"`
	Weekday         int      `json:"weekday" binding:"min=0,max=6"`
	StartDate       string   `json:"start_date" binding:"required"` // YYYY-MM-DD
	QualifyingCount int      `json:"qualifying_count" binding:"omitempty,min=2,max=32"`
	InscriptionCost float64  `json:"inscription_cost"`
	TimeSlots       []Franja `json:"time_slots" binding:"required,min=1,dive"`
	FieldIDs        []uint   `json:"field_ids" binding:"required,min=1"`
}

// Franja is a weekly time range of the tournament agenda.
type Franja struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateTournamentRequest struct {
	Name            *string  `json:"name,omitempty"`
	InscriptionCost *float64 `json:"inscription_cost,omitempty"`
	QualifyingCount *int     `json:"qualifying_count,omitempty" binding:"omitempty,min=2,max=32"`
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateMatchResultRequest struct {
	HomeGoals int `json:"home_goals" binding:"min=0"`
	AwayGoals int `json:"away_goals" binding:"min=0"`
}

// TeamStanding is one row of the league table.
type TeamStanding struct {
	TeamID       uint   `json:"team_id"`
	TeamName     string `json:"team_name"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

type PaginatedTournamentsResponse struct {
	Data       []Tournament `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}
