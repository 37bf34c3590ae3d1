package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"core/apperrors"
	"core/models"
	"core/utils"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

type ReservationService struct {
	db           *gorm.DB
	availability *AvailabilityService
	fieldService *FieldService
	emailService EmailService
	clock        clockwork.Clock
}

func NewReservationService(db *gorm.DB, emailService EmailService, clock clockwork.Clock) *ReservationService {
	return &ReservationService{
		db:           db,
		availability: NewAvailabilityService(db),
		fieldService: NewFieldService(db),
		emailService: emailService,
		clock:        clock,
	}
}

// CreateReservation validates the window, rejects closed dates, and
// runs the conflict scan and the insert in a single transaction so two
// concurrent requests for peer fields cannot both succeed.
func (s *ReservationService) CreateReservation(req models.CreateReservationRequest) (*models.Reservation, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.Validation("%v", err)
	}
	startTime, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return nil, apperrors.Validation("%v", err)
	}
	endTime, err := utils.ParseClock(req.EndTime)
	if err != nil {
		return nil, apperrors.Validation("%v", err)
	}
	if startTime >= endTime {
		return nil, apperrors.Validation("start time %s must be before end time %s", req.StartTime, req.EndTime)
	}

	field, err := s.fieldService.GetFieldByID(req.FieldID)
	if err != nil {
		return nil, err
	}
	if !field.Active {
		return nil, apperrors.State("field %s is not active", field.Name)
	}

	durationMinutes := utils.ClockMinutes(endTime) - utils.ClockMinutes(startTime)
	totalPrice := field.HourlyRate * float64(durationMinutes) / 60.0

	reservation := &models.Reservation{
		FieldID:       req.FieldID,
		Date:          date,
		StartTime:     startTime,
		EndTime:       endTime,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		TotalPrice:    totalPrice,
		Status:        models.ReservationPending,
		// Stamped from the service clock so pending expiry measures
		// age against the same time source.
		CreatedAt: s.clock.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var closure models.ClosedDate
		if err := tx.Where("date = ?", date).First(&closure).Error; err == nil {
			return apperrors.Conflict("date is closed for reservations", closure)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Storage(err)
		}

		conflict, conflicts, err := s.availability.hasConflictTx(tx, req.FieldID, date, startTime, endTime, 0)
		if err != nil {
			return err
		}
		if conflict {
			return apperrors.Conflict("time window is already occupied", conflicts)
		}

		code, err := s.generateUniqueCode(tx)
		if err != nil {
			return err
		}
		reservation.Code = code

		if err := tx.Create(reservation).Error; err != nil {
			return apperrors.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reservation.CustomerEmail != "" {
		if err := s.emailService.SendReservationConfirmation(reservation, field); err != nil {
			log.Printf("Failed to send confirmation for %s: %v", reservation.Code, err)
		}
	}

	reservation.Field = *field
	return reservation, nil
}

func (s *ReservationService) GetReservationByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation

	if err := s.db.Preload("Field").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reservation %d not found", id)
		}
		return nil, apperrors.Storage(err)
	}

	return &reservation, nil
}

func (s *ReservationService) GetReservationByCode(code string) (*models.Reservation, error) {
	var reservation models.Reservation

	if err := s.db.Preload("Field").Where("code = ?", code).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reservation %s not found", code)
		}
		return nil, apperrors.Storage(err)
	}

	return &reservation, nil
}

type ReservationFilters struct {
	FieldID  *uint
	Date     *time.Time
	Status   *string
	Page     int
	PageSize int
}

func (s *ReservationService) GetReservations(filters ReservationFilters) (*models.PaginatedReservationsResponse, error) {
	var reservations []models.Reservation
	var total int64

	query := s.db.Model(&models.Reservation{})

	if filters.FieldID != nil {
		query = query.Where("field_id = ?", *filters.FieldID)
	}
	if filters.Date != nil {
		query = query.Where("date = ?", *filters.Date)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	offset := (filters.Page - 1) * filters.PageSize

	if err := query.
		Preload("Field").
		Order("date DESC, start_time DESC").
		Offset(offset).
		Limit(filters.PageSize).
		Find(&reservations).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))

	return &models.PaginatedReservationsResponse{
		Data:       reservations,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus applies the reservation lifecycle: pending -> paid ->
// completed, with cancellation allowed from any active state.
func (s *ReservationService) UpdateStatus(id uint, status string) (*models.Reservation, error) {
	reservation, err := s.GetReservationByID(id)
	if err != nil {
		return nil, err
	}

	if reservation.Status == models.ReservationCancelled {
		return nil, apperrors.State("reservation %s is cancelled", reservation.Code)
	}

	allowed := map[string][]string{
		models.ReservationPending:   {models.ReservationPaid, models.ReservationCompleted, models.ReservationCancelled},
		models.ReservationPaid:      {models.ReservationCompleted, models.ReservationCancelled},
		models.ReservationCompleted: {models.ReservationCancelled},
	}

	valid := false
	for _, next := range allowed[reservation.Status] {
		if next == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, apperrors.State("cannot change status from %s to %s", reservation.Status, status)
	}

	if err := s.db.Model(&models.Reservation{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	return s.GetReservationByID(id)
}

func (s *ReservationService) CancelReservation(id uint) (*models.Reservation, error) {
	return s.UpdateStatus(id, models.ReservationCancelled)
}

// DeleteReservation hard-deletes a historical row. Admin only; active
// reservations must be cancelled first.
func (s *ReservationService) DeleteReservation(id uint) error {
	reservation, err := s.GetReservationByID(id)
	if err != nil {
		return err
	}

	if reservation.Status != models.ReservationCancelled && reservation.Status != models.ReservationCompleted {
		return apperrors.State("reservation %s is still active, cancel it first", reservation.Code)
	}

	if err := s.db.Unscoped().Delete(&models.Reservation{}, id).Error; err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// ExpireStalePending cancels pending reservations created more than ttl
// ago. Invoked hourly by the cron scheduler.
func (s *ReservationService) ExpireStalePending(ttl time.Duration) (int64, error) {
	cutoff := s.clock.Now().Add(-ttl)

	result := s.db.Model(&models.Reservation{}).
		Where("status = ? AND created_at < ?", models.ReservationPending, cutoff).
		Update("status", models.ReservationCancelled)

	if result.Error != nil {
		return 0, apperrors.Storage(result.Error)
	}
	return result.RowsAffected, nil
}

// generateUniqueCode builds a short human-readable reservation code and
// retries on the unlikely collision.
func (s *ReservationService) generateUniqueCode(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		raw := make([]byte, 4)
		if _, err := rand.Read(raw); err != nil {
			return "", apperrors.Storage(err)
		}
		code := "R-" + strings.ToUpper(hex.EncodeToString(raw))

		var existing models.Reservation
		err := tx.Where("code = ?", code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", apperrors.Storage(err)
		}
	}
	return "", apperrors.Storage(errors.New("could not generate a unique reservation code"))
}
