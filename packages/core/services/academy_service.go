package services

import (
	"errors"

	"core/apperrors"
	"core/models"
	"core/utils"

	"gorm.io/gorm"
)

type AcademyService struct {
	db           *gorm.DB
	fieldService *FieldService
}

func NewAcademyService(db *gorm.DB) *AcademyService {
	return &AcademyService{
		db:           db,
		fieldService: NewFieldService(db),
	}
}

// CreateSession registers a weekly recurring training block. The
// weekday window must not overlap another academy session on the field
// or any of its peers.
func (s *AcademyService) CreateSession(req models.CreateAcademySessionRequest) (*models.AcademySession, error) {
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

	if _, err := s.fieldService.GetFieldByID(req.FieldID); err != nil {
		return nil, err
	}

	session := &models.AcademySession{
		FieldID:   req.FieldID,
		Weekday:   req.Weekday,
		StartTime: startTime,
		EndTime:   endTime,
		Coach:     req.Coach,
		Active:    true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkWeekdayConflict(tx, session, 0); err != nil {
			return err
		}
		if err := tx.Create(session).Error; err != nil {
			return apperrors.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *AcademyService) GetSessionByID(id uint) (*models.AcademySession, error) {
	var session models.AcademySession

	if err := s.db.Preload("Field").First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("academy session %d not found", id)
		}
		return nil, apperrors.Storage(err)
	}

	return &session, nil
}

func (s *AcademyService) GetSessions(weekday *int) ([]models.AcademySession, error) {
	var sessions []models.AcademySession

	query := s.db.Preload("Field").Order("weekday ASC, start_time ASC")
	if weekday != nil {
		query = query.Where("weekday = ?", *weekday)
	}

	if err := query.Find(&sessions).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	return sessions, nil
}

func (s *AcademyService) UpdateSession(id uint, req models.UpdateAcademySessionRequest) (*models.AcademySession, error) {
	session, err := s.GetSessionByID(id)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		normalized, err := utils.ParseClock(*req.StartTime)
		if err != nil {
			return nil, apperrors.Validation("%v", err)
		}
		session.StartTime = normalized
	}
	if req.EndTime != nil {
		normalized, err := utils.ParseClock(*req.EndTime)
		if err != nil {
			return nil, apperrors.Validation("%v", err)
		}
		session.EndTime = normalized
	}
	if session.StartTime >= session.EndTime {
		return nil, apperrors.Validation("start time %s must be before end time %s", session.StartTime, session.EndTime)
	}
	if req.Coach != nil {
		session.Coach = *req.Coach
	}
	if req.Active != nil {
		session.Active = *req.Active
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if session.Active {
			if err := s.checkWeekdayConflict(tx, session, session.ID); err != nil {
				return err
			}
		}
		if err := tx.Save(session).Error; err != nil {
			return apperrors.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *AcademyService) DeleteSession(id uint) error {
	result := s.db.Delete(&models.AcademySession{}, id)
	if result.Error != nil {
		return apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("academy session %d not found", id)
	}
	return nil
}

func (s *AcademyService) checkWeekdayConflict(tx *gorm.DB, session *models.AcademySession, excludeID uint) error {
	peers, err := s.fieldService.peersOfTx(tx, session.FieldID)
	if err != nil {
		return err
	}

	var others []models.AcademySession
	query := tx.Where("field_id IN ? AND weekday = ? AND active = ?", peers, session.Weekday, true)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&others).Error; err != nil {
		return apperrors.Storage(err)
	}

	for _, other := range others {
		if utils.Overlaps(session.StartTime, session.EndTime, other.StartTime, other.EndTime) {
			return apperrors.Conflict("weekday window overlaps an existing academy session", other)
		}
	}
	return nil
}
