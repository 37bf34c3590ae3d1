package services

import (
	"testing"
	"time"

	"core/models"
	"core/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full core schema.
// The pool is pinned to one connection so every query sees the same
// in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Field{},
		&models.FieldGroup{},
		&models.FieldGroupMember{},
		&models.Reservation{},
		&models.ClosedDate{},
		&models.AcademySession{},
		&models.Tournament{},
		&models.TournamentTimeSlot{},
		&models.TournamentField{},
		&models.Team{},
		&models.Matchday{},
		&models.LeagueMatch{},
		&models.Bracket{},
		&models.BracketRound{},
		&models.BracketMatch{},
	))

	return db
}

func createField(t *testing.T, db *gorm.DB, name, format string) models.Field {
	t.Helper()

	field := models.Field{Name: name, Format: format, HourlyRate: 40, Active: true}
	require.NoError(t, db.Create(&field).Error)
	return field
}

// groupFields binds fields into one named group, making them peers.
func groupFields(t *testing.T, db *gorm.DB, name string, fieldIDs ...uint) models.FieldGroup {
	t.Helper()

	group := models.FieldGroup{Name: name}
	require.NoError(t, db.Create(&group).Error)
	for _, id := range fieldIDs {
		member := models.FieldGroupMember{GroupID: group.ID, FieldID: id}
		require.NoError(t, db.Create(&member).Error)
	}
	return group
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()

	date, err := utils.ParseDate(s)
	require.NoError(t, err)
	return date
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
