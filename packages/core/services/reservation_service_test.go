package services

import (
	"strings"
	"testing"
	"time"

	"core/apperrors"
	"core/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservationFixture(t *testing.T) (*ReservationService, *clockwork.FakeClock, models.Field) {
	t.Helper()

	db := newTestDB(t)
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := NewReservationService(db, NewLogEmailService(), clock)
	field := createField(t, db, "Cancha 1", models.FormatF5)
	return svc, clock, field
}

func TestCreateReservation(t *testing.T) {
	svc, _, field := reservationFixture(t)

	reservation, err := svc.CreateReservation(models.CreateReservationRequest{
		FieldID:      field.ID,
		Date:         "2025-06-10",
		StartTime:    "18:00",
		EndTime:      "19:30",
		CustomerName: "Carlos",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ReservationPending, reservation.Status)
	assert.Equal(t, "18:00:00", reservation.StartTime)
	assert.Equal(t, "19:30:00", reservation.EndTime)
	assert.True(t, strings.HasPrefix(reservation.Code, "R-"))
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), reservation.CreatedAt)

	// 90 minutes at 40/h.
	assert.InDelta(t, 60.0, reservation.TotalPrice, 0.001)
}

func TestCreateReservationRejectsOverlap(t *testing.T) {
	svc, _, field := reservationFixture(t)

	req := models.CreateReservationRequest{
		FieldID:      field.ID,
		Date:         "2025-06-10",
		StartTime:    "18:00",
		EndTime:      "19:00",
		CustomerName: "Carlos",
	}
	_, err := svc.CreateReservation(req)
	require.NoError(t, err)

	req.StartTime = "18:30"
	req.EndTime = "19:30"
	_, err = svc.CreateReservation(req)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	// A back-to-back booking is fine.
	req.StartTime = "19:00"
	req.EndTime = "20:00"
	_, err = svc.CreateReservation(req)
	assert.NoError(t, err)
}

func TestCreateReservationRejectsClosedDate(t *testing.T) {
	svc, _, field := reservationFixture(t)

	closures := NewClosureService(svc.db)
	result, err := closures.CloseDate("2025-06-10", "maintenance", false)
	require.NoError(t, err)
	require.True(t, result.Closed)

	_, err = svc.CreateReservation(models.CreateReservationRequest{
		FieldID:      field.ID,
		Date:         "2025-06-10",
		StartTime:    "18:00",
		EndTime:      "19:00",
		CustomerName: "Carlos",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestCreateReservationValidation(t *testing.T) {
	svc, _, field := reservationFixture(t)

	cases := []models.CreateReservationRequest{
		{FieldID: field.ID, Date: "10/06/2025", StartTime: "18:00", EndTime: "19:00", CustomerName: "C"},
		{FieldID: field.ID, Date: "2025-06-10", StartTime: "25:00", EndTime: "26:00", CustomerName: "C"},
		{FieldID: field.ID, Date: "2025-06-10", StartTime: "19:00", EndTime: "18:00", CustomerName: "C"},
		{FieldID: field.ID, Date: "2025-06-10", StartTime: "18:00", EndTime: "18:00", CustomerName: "C"},
	}
	for _, req := range cases {
		_, err := svc.CreateReservation(req)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "%+v", req)
	}
}

func TestCreateReservationInactiveField(t *testing.T) {
	svc, _, field := reservationFixture(t)

	require.NoError(t, svc.db.Model(&models.Field{}).Where("id = ?", field.ID).Update("active", false).Error)

	_, err := svc.CreateReservation(models.CreateReservationRequest{
		FieldID:      field.ID,
		Date:         "2025-06-10",
		StartTime:    "18:00",
		EndTime:      "19:00",
		CustomerName: "Carlos",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindState))
}

func TestUpdateStatusLifecycle(t *testing.T) {
	svc, _, field := reservationFixture(t)

	reservation, err := svc.CreateReservation(models.CreateReservationRequest{
		FieldID:      field.ID,
		Date:         "2025-06-10",
		StartTime:    "18:00",
		EndTime:      "19:00",
		CustomerName: "Carlos",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(reservation.ID, models.ReservationPaid)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationPaid, updated.Status)

	// Paid cannot go back to pending.
	_, err = svc.UpdateStatus(reservation.ID, models.ReservationPending)
	assert.True(t, apperrors.IsKind(err, apperrors.KindState))

	updated, err = svc.UpdateStatus(reservation.ID, models.ReservationCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCompleted, updated.Status)

	// Cancelled is terminal.
	_, err = svc.CancelReservation(reservation.ID)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(reservation.ID, models.ReservationPaid)
	assert.True(t, apperrors.IsKind(err, apperrors.KindState))
}

func TestCancelledReservationFreesTheSlot(t *testing.T) {
	svc, _, field := reservationFixture(t)

	req := models.CreateReservationRequest{
		FieldID:      field.ID,
		Date:         "2025-06-10",
		StartTime:    "18:00",
		EndTime:      "19:00",
		CustomerName: "Carlos",
	}
	reservation, err := svc.CreateReservation(req)
	require.NoError(t, err)

	_, err = svc.CancelReservation(reservation.ID)
	require.NoError(t, err)

	_, err = svc.CreateReservation(req)
	assert.NoError(t, err)
}

func TestDeleteReservationGuardsActiveRows(t *testing.T) {
	svc, _, field := reservationFixture(t)

	reservation, err := svc.CreateReservation(models.CreateReservationRequest{
		FieldID:      field.ID,
		Date:         "2025-06-10",
		StartTime:    "18:00",
		EndTime:      "19:00",
		CustomerName: "Carlos",
	})
	require.NoError(t, err)

	err = svc.DeleteReservation(reservation.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindState))

	_, err = svc.CancelReservation(reservation.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteReservation(reservation.ID))

	_, err = svc.GetReservationByID(reservation.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestExpireStalePending(t *testing.T) {
	svc, clock, field := reservationFixture(t)

	stale, err := svc.CreateReservation(models.CreateReservationRequest{
		FieldID:      field.ID,
		Date:         "2025-06-10",
		StartTime:    "18:00",
		EndTime:      "19:00",
		CustomerName: "Carlos",
	})
	require.NoError(t, err)

	paid, err := svc.CreateReservation(models.CreateReservationRequest{
		FieldID:      field.ID,
		Date:         "2025-06-10",
		StartTime:    "19:00",
		EndTime:      "20:00",
		CustomerName: "Lucia",
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(paid.ID, models.ReservationPaid)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)

	expired, err := svc.ExpireStalePending(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	got, err := svc.GetReservationByID(stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, got.Status)

	got, err = svc.GetReservationByID(paid.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationPaid, got.Status)
}

func TestGetReservationsFilters(t *testing.T) {
	svc, _, field := reservationFixture(t)
	other := createField(t, svc.db, "Cancha 2", models.FormatF5)

	for i, req := range []models.CreateReservationRequest{
		{FieldID: field.ID, Date: "2025-06-10", StartTime: "18:00", EndTime: "19:00", CustomerName: "A"},
		{FieldID: field.ID, Date: "2025-06-11", StartTime: "18:00", EndTime: "19:00", CustomerName: "B"},
		{FieldID: other.ID, Date: "2025-06-10", StartTime: "18:00", EndTime: "19:00", CustomerName: "C"},
	} {
		_, err := svc.CreateReservation(req)
		require.NoError(t, err, i)
	}

	page, err := svc.GetReservations(ReservationFilters{FieldID: &field.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	date := mustDate(t, "2025-06-10")
	page, err = svc.GetReservations(ReservationFilters{Date: &date, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = svc.GetReservations(ReservationFilters{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.TotalPages)
}

func TestGetReservationByCode(t *testing.T) {
	svc, _, field := reservationFixture(t)

	reservation, err := svc.CreateReservation(models.CreateReservationRequest{
		FieldID:      field.ID,
		Date:         "2025-06-10",
		StartTime:    "18:00",
		EndTime:      "19:00",
		CustomerName: "Carlos",
	})
	require.NoError(t, err)

	got, err := svc.GetReservationByCode(reservation.Code)
	require.NoError(t, err)
	assert.Equal(t, reservation.ID, got.ID)

	_, err = svc.GetReservationByCode("R-NOPE")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
