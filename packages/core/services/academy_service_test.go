package services

import (
	"testing"
	"time"

	"core/apperrors"
	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAcademySession(t *testing.T) {
	db := newTestDB(t)
	svc := NewAcademyService(db)

	field := createField(t, db, "Cancha 1", models.FormatF5)

	session, err := svc.CreateSession(models.CreateAcademySessionRequest{
		FieldID:   field.ID,
		Weekday:   int(time.Monday),
		StartTime: "17:00",
		EndTime:   "19:00",
		Coach:     "Diego",
	})
	require.NoError(t, err)
	assert.Equal(t, "17:00:00", session.StartTime)
	assert.True(t, session.Active)

	_, err = svc.CreateSession(models.CreateAcademySessionRequest{
		FieldID:   9999,
		Weekday:   int(time.Monday),
		StartTime: "17:00",
		EndTime:   "19:00",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCreateAcademySessionRejectsWeekdayOverlapOnPeers(t *testing.T) {
	db := newTestDB(t)
	svc := NewAcademyService(db)

	f7 := createField(t, db, "Grande", models.FormatF7)
	f5 := createField(t, db, "Mitad", models.FormatF5)
	groupFields(t, db, "G", f7.ID, f5.ID)

	_, err := svc.CreateSession(models.CreateAcademySessionRequest{
		FieldID:   f5.ID,
		Weekday:   int(time.Monday),
		StartTime: "17:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	// Overlapping window on a peer field, same weekday.
	_, err = svc.CreateSession(models.CreateAcademySessionRequest{
		FieldID:   f7.ID,
		Weekday:   int(time.Monday),
		StartTime: "18:00",
		EndTime:   "20:00",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	// Same window on another weekday is fine.
	_, err = svc.CreateSession(models.CreateAcademySessionRequest{
		FieldID:   f7.ID,
		Weekday:   int(time.Tuesday),
		StartTime: "18:00",
		EndTime:   "20:00",
	})
	assert.NoError(t, err)

	// Back-to-back on the same weekday is fine too.
	_, err = svc.CreateSession(models.CreateAcademySessionRequest{
		FieldID:   f7.ID,
		Weekday:   int(time.Monday),
		StartTime: "19:00",
		EndTime:   "20:00",
	})
	assert.NoError(t, err)
}

func TestUpdateAcademySession(t *testing.T) {
	db := newTestDB(t)
	svc := NewAcademyService(db)

	field := createField(t, db, "Cancha 1", models.FormatF5)

	session, err := svc.CreateSession(models.CreateAcademySessionRequest{
		FieldID:   field.ID,
		Weekday:   int(time.Monday),
		StartTime: "17:00",
		EndTime:   "19:00",
		Coach:     "Diego",
	})
	require.NoError(t, err)

	coach := "Ana"
	updated, err := svc.UpdateSession(session.ID, models.UpdateAcademySessionRequest{Coach: &coach})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Coach)

	bad := "19:30"
	_, err = svc.UpdateSession(session.ID, models.UpdateAcademySessionRequest{StartTime: &bad})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDeactivatedSessionStopsBlocking(t *testing.T) {
	db := newTestDB(t)
	svc := NewAcademyService(db)

	field := createField(t, db, "Cancha 1", models.FormatF5)

	session, err := svc.CreateSession(models.CreateAcademySessionRequest{
		FieldID:   field.ID,
		Weekday:   int(time.Monday),
		StartTime: "17:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	_, err = svc.UpdateSession(session.ID, models.UpdateAcademySessionRequest{Active: boolPtr(false)})
	require.NoError(t, err)

	// The window is free again.
	_, err = svc.CreateSession(models.CreateAcademySessionRequest{
		FieldID:   field.ID,
		Weekday:   int(time.Monday),
		StartTime: "17:00",
		EndTime:   "19:00",
	})
	assert.NoError(t, err)
}

func TestGetSessionsByWeekday(t *testing.T) {
	db := newTestDB(t)
	svc := NewAcademyService(db)

	field := createField(t, db, "Cancha 1", models.FormatF5)

	for _, weekday := range []int{int(time.Monday), int(time.Friday)} {
		_, err := svc.CreateSession(models.CreateAcademySessionRequest{
			FieldID:   field.ID,
			Weekday:   weekday,
			StartTime: "10:00",
			EndTime:   "11:00",
		})
		require.NoError(t, err)
	}

	monday := int(time.Monday)
	sessions, err := svc.GetSessions(&monday)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	all, err := svc.GetSessions(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteAcademySession(t *testing.T) {
	db := newTestDB(t)
	svc := NewAcademyService(db)

	field := createField(t, db, "Cancha 1", models.FormatF5)
	session, err := svc.CreateSession(models.CreateAcademySessionRequest{
		FieldID:   field.ID,
		Weekday:   int(time.Monday),
		StartTime: "17:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(session.ID))
	assert.True(t, apperrors.IsKind(svc.DeleteSession(session.ID), apperrors.KindNotFound))
}
