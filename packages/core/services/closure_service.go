package services

import (
	"errors"

	"core/apperrors"
	"core/models"
	"core/utils"

	"gorm.io/gorm"
)

// ClosureService closes calendar dates for reservations. Tournament and
// academy occupancy is untouched by a closure; only reservations are
// cancellable.
type ClosureService struct {
	db *gorm.DB
}

func NewClosureService(db *gorm.DB) *ClosureService {
	return &ClosureService{
		db: db,
	}
}

// CloseDate marks a date closed. When active reservations exist on the
// date and force is false, nothing is persisted and the conflicts are
// returned for the caller to confirm. With force, the closure upsert
// and every cancellation commit or roll back together.
func (s *ClosureService) CloseDate(dateStr, reason string, force bool) (*models.CloseDateResult, error) {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return nil, apperrors.Validation("%v", err)
	}

	var conflicting []models.Reservation
	if err := s.db.Where("date = ? AND status IN ?", date, models.ActiveReservationStatuses).
		Find(&conflicting).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	if len(conflicting) > 0 && !force {
		return &models.CloseDateResult{
			Closed:                  false,
			ConflictingReservations: conflicting,
		}, nil
	}

	closure := &models.ClosedDate{Date: date, Reason: reason}
	cancelledIDs := make([]uint, 0, len(conflicting))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ClosedDate
		err := tx.Where("date = ?", date).First(&existing).Error
		switch {
		case err == nil:
			existing.Reason = reason
			if err := tx.Save(&existing).Error; err != nil {
				return apperrors.Storage(err)
			}
			closure = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(closure).Error; err != nil {
				return apperrors.Storage(err)
			}
		default:
			return apperrors.Storage(err)
		}

		for _, r := range conflicting {
			if err := tx.Model(&models.Reservation{}).Where("id = ?", r.ID).
				Update("status", models.ReservationCancelled).Error; err != nil {
				return apperrors.Storage(err)
			}
			cancelledIDs = append(cancelledIDs, r.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.CloseDateResult{
		Closed:                  true,
		Closure:                 closure,
		CancelledReservationIDs: cancelledIDs,
	}, nil
}

func (s *ClosureService) GetClosures() ([]models.ClosedDate, error) {
	var closures []models.ClosedDate

	if err := s.db.Order("date ASC").Find(&closures).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	return closures, nil
}

// ReopenDate removes a closure. Reservations cancelled by the closure
// stay cancelled; customers rebook explicitly.
func (s *ClosureService) ReopenDate(dateStr string) error {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return apperrors.Validation("%v", err)
	}

	result := s.db.Where("date = ?", date).Delete(&models.ClosedDate{})
	if result.Error != nil {
		return apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("no closure on %s", dateStr)
	}
	return nil
}
