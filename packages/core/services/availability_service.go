package services

import (
	"fmt"
	"time"

	"core/apperrors"
	"core/models"
	"core/utils"

	"gorm.io/gorm"
)

// AvailabilityService decides whether a time window can occupy a field
// without colliding with any existing block on the field or its peers.
type AvailabilityService struct {
	db           *gorm.DB
	fieldService *FieldService
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{
		db:           db,
		fieldService: NewFieldService(db),
	}
}

// HasConflict reports whether [startTime, endTime) on date collides
// with any block on the field or one of its peers. Intervals are
// half-open: touching endpoints do not conflict. excludeReservationID
// lets a reservation update skip itself; pass 0 otherwise.
func (s *AvailabilityService) HasConflict(fieldID uint, date time.Time, startTime, endTime string, excludeReservationID uint) (bool, []models.TimeBlock, error) {
	return s.hasConflictTx(s.db, fieldID, date, startTime, endTime, excludeReservationID)
}

// hasConflictTx runs the check inside the caller's transaction so the
// scan and the subsequent insert form one unit of work.
func (s *AvailabilityService) hasConflictTx(tx *gorm.DB, fieldID uint, date time.Time, startTime, endTime string, excludeReservationID uint) (bool, []models.TimeBlock, error) {
	if startTime >= endTime {
		return false, nil, apperrors.Validation("start time %s must be before end time %s", startTime, endTime)
	}

	peers, err := s.fieldService.peersOfTx(tx, fieldID)
	if err != nil {
		return false, nil, err
	}

	blocks, err := s.blocksForFields(tx, peers, date, excludeReservationID)
	if err != nil {
		return false, nil, err
	}

	var conflicts []models.TimeBlock
	for _, block := range blocks {
		if utils.Overlaps(startTime, endTime, block.StartTime, block.EndTime) {
			conflicts = append(conflicts, block)
		}
	}

	return len(conflicts) > 0, conflicts, nil
}

// WeekSchedule returns every block occupying the field (and its peers)
// across the 7 dates starting at startDate, keyed by ISO date. Blocks
// carry a coarse status tag for calendar rendering.
func (s *AvailabilityService) WeekSchedule(fieldID uint, startDate time.Time) (*models.WeekScheduleResponse, error) {
	peers, err := s.fieldService.PeersOf(fieldID)
	if err != nil {
		return nil, err
	}

	days := make(map[string][]models.TimeBlock, 7)
	for i := 0; i < 7; i++ {
		date := startDate.AddDate(0, 0, i)
		blocks, err := s.blocksForFields(s.db, peers, date, 0)
		if err != nil {
			return nil, err
		}
		days[date.Format(utils.DateLayout)] = blocks
	}

	return &models.WeekScheduleResponse{
		FieldID: fieldID,
		From:    startDate.Format(utils.DateLayout),
		To:      startDate.AddDate(0, 0, 6).Format(utils.DateLayout),
		Days:    days,
	}, nil
}

// blocksForFields collects every occupation of the given fields on one
// date: active reservations, weekday-recurring academy sessions, the
// weekly agenda of running tournaments, and individually scheduled
// league and playoff matches. Tournament occupancy is widened to the
// enclosing clock hours.
func (s *AvailabilityService) blocksForFields(tx *gorm.DB, fieldIDs []uint, date time.Time, excludeReservationID uint) ([]models.TimeBlock, error) {
	blocks := []models.TimeBlock{}

	// Reservations in active states.
	var reservations []models.Reservation
	query := tx.Where("field_id IN ? AND date = ? AND status IN ?", fieldIDs, date, models.ActiveReservationStatuses)
	if excludeReservationID != 0 {
		query = query.Where("id <> ?", excludeReservationID)
	}
	if err := query.Find(&reservations).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	for _, r := range reservations {
		blocks = append(blocks, models.TimeBlock{
			FieldID:   r.FieldID,
			Date:      date,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Status:    r.Status,
			Kind:      models.KindReservation,
			RefID:     r.ID,
			Label:     r.Code,
		})
	}

	// Academy sessions recur on their weekday.
	var sessions []models.AcademySession
	if err := tx.Where("field_id IN ? AND weekday = ? AND active = ?", fieldIDs, int(date.Weekday()), true).
		Find(&sessions).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	for _, a := range sessions {
		blocks = append(blocks, models.TimeBlock{
			FieldID:   a.FieldID,
			Date:      date,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Status:    models.BlockAcademia,
			Kind:      models.KindAcademy,
			RefID:     a.ID,
			Label:     a.Coach,
		})
	}

	// Weekly agenda of tournaments still running on this weekday. The
	// agenda reserves the whole clock hour of each franja.
	agenda, err := s.tournamentAgendaBlocks(tx, fieldIDs, date)
	if err != nil {
		return nil, err
	}
	blocks = append(blocks, agenda...)

	// League matches scheduled on this exact date (covers matches moved
	// off the weekly agenda).
	var leagueMatches []models.LeagueMatch
	if err := tx.Where("field_id IN ? AND date = ? AND status = ?", fieldIDs, date, models.MatchScheduled).
		Find(&leagueMatches).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	for _, m := range leagueMatches {
		if m.StartTime == nil || m.EndTime == nil || m.FieldID == nil {
			continue
		}
		blocks = append(blocks, models.TimeBlock{
			FieldID:   *m.FieldID,
			Date:      date,
			StartTime: utils.FloorHour(*m.StartTime),
			EndTime:   utils.CeilHour(*m.EndTime),
			Status:    models.BlockTorneo,
			Kind:      models.KindLeagueMatch,
			RefID:     m.ID,
		})
	}

	// Playoff legs scheduled on this exact date.
	var playoffMatches []models.BracketMatch
	if err := tx.Where("field_id IN ? AND date = ?", fieldIDs, date).
		Find(&playoffMatches).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	for _, m := range playoffMatches {
		if m.StartTime == nil || m.EndTime == nil || m.FieldID == nil {
			continue
		}
		blocks = append(blocks, models.TimeBlock{
			FieldID:   *m.FieldID,
			Date:      date,
			StartTime: utils.FloorHour(*m.StartTime),
			EndTime:   utils.CeilHour(*m.EndTime),
			Status:    models.BlockTorneo,
			Kind:      models.KindPlayoffMatch,
			RefID:     m.ID,
		})
	}

	return blocks, nil
}

func (s *AvailabilityService) tournamentAgendaBlocks(tx *gorm.DB, fieldIDs []uint, date time.Time) ([]models.TimeBlock, error) {
	var tournaments []models.Tournament
	if err := tx.Preload("TimeSlots").Preload("Fields").
		Where("weekday = ? AND phase <> ?", int(date.Weekday()), models.PhaseFinished).
		Find(&tournaments).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	wanted := make(map[uint]bool, len(fieldIDs))
	for _, id := range fieldIDs {
		wanted[id] = true
	}

	var blocks []models.TimeBlock
	for _, t := range tournaments {
		if date.Before(t.StartDate) {
			continue
		}
		for _, tf := range t.Fields {
			if !wanted[tf.FieldID] {
				continue
			}
			for _, slot := range t.TimeSlots {
				blocks = append(blocks, models.TimeBlock{
					FieldID:   tf.FieldID,
					Date:      date,
					StartTime: utils.FloorHour(slot.StartTime),
					EndTime:   utils.CeilHour(slot.EndTime),
					Status:    models.BlockTorneo,
					Kind:      models.KindLeagueMatch,
					RefID:     t.ID,
					Label:     fmt.Sprintf("%s (agenda)", t.Name),
				})
			}
		}
	}

	return blocks, nil
}
