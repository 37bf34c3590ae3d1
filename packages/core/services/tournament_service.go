package services

import (
	"errors"
	"sort"
	"time"

	"core/apperrors"
	"core/models"
	"core/utils"

	"gorm.io/gorm"
)

type TournamentService struct {
	db           *gorm.DB
	fieldService *FieldService
}

func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{
		db:           db,
		fieldService: NewFieldService(db),
	}
}

// CreateTournament registers a tournament and its weekly agenda
// (weekday, time franjas, fields). Every selected field is checked, via
// its peer set, against the agendas of other running tournaments,
// academy sessions on the same weekday and reservations already booked
// on matching future dates.
func (s *TournamentService) CreateTournament(req models.CreateTournamentRequest) (*models.Tournament, error) {
	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.Validation("%v", err)
	}

	franjas := make([]models.Franja, 0, len(req.TimeSlots))
	for _, f := range req.TimeSlots {
		start, err := utils.ParseClock(f.StartTime)
		if err != nil {
			return nil, apperrors.Validation("%v", err)
		}
		end, err := utils.ParseClock(f.EndTime)
		if err != nil {
			return nil, apperrors.Validation("%v", err)
		}
		if start >= end {
			return nil, apperrors.Validation("franja start %s must be before end %s", f.StartTime, f.EndTime)
		}
		franjas = append(franjas, models.Franja{StartTime: start, EndTime: end})
	}

	for _, fieldID := range req.FieldIDs {
		field, err := s.fieldService.GetFieldByID(fieldID)
		if err != nil {
			return nil, err
		}
		if !field.Active {
			return nil, apperrors.State("field %s is not active", field.Name)
		}
	}

	if err := s.checkAgendaConflicts(req.Weekday, startDate, franjas, req.FieldIDs, 0); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:            req.Name,
		Format:          req.Format,
		Type:            req.Type,
		Phase:           models.PhaseLeague,
		RoundTrip:       req.RoundTrip,
		Weekday:         req.Weekday,
		StartDate:       startDate,
		QualifyingCount: req.QualifyingCount,
		InscriptionCost: req.InscriptionCost,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tournament).Error; err != nil {
			return apperrors.Storage(err)
		}
		for _, f := range franjas {
			slot := models.TournamentTimeSlot{
				TournamentID: tournament.ID,
				StartTime:    f.StartTime,
				EndTime:      f.EndTime,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return apperrors.Storage(err)
			}
		}
		for i, fieldID := range req.FieldIDs {
			tf := models.TournamentField{
				TournamentID: tournament.ID,
				FieldID:      fieldID,
				Position:     i,
			}
			if err := tx.Create(&tf).Error; err != nil {
				return apperrors.Storage(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTournamentByID(tournament.ID)
}

func (s *TournamentService) GetTournamentByID(id uint) (*models.Tournament, error) {
	var tournament models.Tournament

	err := s.db.
		Preload("TimeSlots").
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Fields.Field").
		Preload("Teams").
		First(&tournament, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tournament %d not found", id)
		}
		return nil, apperrors.Storage(err)
	}

	return &tournament, nil
}

func (s *TournamentService) GetAllTournaments(page, pageSize int, phase, tournamentType *string) (*models.PaginatedTournamentsResponse, error) {
	var tournaments []models.Tournament
	var total int64

	query := s.db.Model(&models.Tournament{})

	if phase != nil {
		query = query.Where("phase = ?", *phase)
	}
	if tournamentType != nil {
		query = query.Where("type = ?", *tournamentType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	offset := (page - 1) * pageSize

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&tournaments).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedTournamentsResponse{
		Data:       tournaments,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *TournamentService) UpdateTournament(id uint, req models.UpdateTournamentRequest) (*models.Tournament, error) {
	if _, err := s.GetTournamentByID(id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.InscriptionCost != nil {
		updates["inscription_cost"] = *req.InscriptionCost
	}
	if req.QualifyingCount != nil {
		updates["qualifying_count"] = *req.QualifyingCount
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Tournament{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, apperrors.Storage(err)
		}
	}

	return s.GetTournamentByID(id)
}

func (s *TournamentService) DeleteTournament(id uint) error {
	result := s.db.Select("TimeSlots", "Fields", "Teams", "Matchdays").Delete(&models.Tournament{ID: id})
	if result.Error != nil {
		return apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("tournament %d not found", id)
	}
	return nil
}

// AddTeam registers a team. Registration closes once fixtures exist.
func (s *TournamentService) AddTeam(tournamentID uint, req models.CreateTeamRequest) (*models.Team, error) {
	tournament, err := s.GetTournamentByID(tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Phase != models.PhaseLeague {
		return nil, apperrors.State("tournament %s is not open for registration", tournament.Name)
	}

	count, err := s.matchdayCount(tournamentID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.State("fixtures already generated for tournament %s", tournament.Name)
	}

	var existing models.Team
	if err := s.db.Where("tournament_id = ? AND name = ?", tournamentID, req.Name).First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("team name already registered in this tournament", existing)
	}

	team := &models.Team{Name: req.Name, TournamentID: tournamentID}
	if err := s.db.Create(team).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	return team, nil
}

func (s *TournamentService) GetTeams(tournamentID uint) ([]models.Team, error) {
	if _, err := s.GetTournamentByID(tournamentID); err != nil {
		return nil, err
	}

	var teams []models.Team
	if err := s.db.Where("tournament_id = ?", tournamentID).Order("id ASC").Find(&teams).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	return teams, nil
}

func (s *TournamentService) RemoveTeam(tournamentID, teamID uint) error {
	count, err := s.matchdayCount(tournamentID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.State("fixtures already generated, teams can no longer be removed")
	}

	result := s.db.Where("tournament_id = ?", tournamentID).Delete(&models.Team{}, teamID)
	if result.Error != nil {
		return apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("team %d not found in tournament %d", teamID, tournamentID)
	}
	return nil
}

// GenerateFixtures builds the full league schedule: a round-robin over
// the registered teams (double legged when the tournament is round
// trip), with each jornada assigned to weekly agenda slots. Fixtures
// can only be generated once.
func (s *TournamentService) GenerateFixtures(tournamentID uint) ([]models.Matchday, error) {
	tournament, err := s.GetTournamentByID(tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Phase != models.PhaseLeague {
		return nil, apperrors.State("tournament %s is not in league phase", tournament.Name)
	}

	count, err := s.matchdayCount(tournamentID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.State("fixtures already generated for tournament %s", tournament.Name)
	}

	teams, err := s.GetTeams(tournamentID)
	if err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return nil, apperrors.Validation("at least 2 teams are required, got %d", len(teams))
	}

	teamIDs := make([]uint, len(teams))
	for i, t := range teams {
		teamIDs[i] = t.ID
	}

	rounds := utils.GenerateRoundRobin(teamIDs, tournament.RoundTrip)
	seq := s.agendaSequence(tournament)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i, pairings := range rounds {
			matchday := models.Matchday{TournamentID: tournamentID, Number: i + 1}
			if err := tx.Create(&matchday).Error; err != nil {
				return apperrors.Storage(err)
			}

			for _, p := range pairings {
				slot := seq.Next()
				date := slot.Date
				start := slot.Start
				end := slot.End
				fieldID := slot.FieldID

				match := models.LeagueMatch{
					MatchdayID: matchday.ID,
					HomeTeamID: p.Home,
					AwayTeamID: p.Away,
					FieldID:    &fieldID,
					Date:       &date,
					StartTime:  &start,
					EndTime:    &end,
					Status:     models.MatchScheduled,
				}
				if err := tx.Create(&match).Error; err != nil {
					return apperrors.Storage(err)
				}
			}

			// Jornadas never share a calendar week.
			seq.AdvanceWeek()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetMatchdays(tournamentID)
}

func (s *TournamentService) GetMatchdays(tournamentID uint) ([]models.Matchday, error) {
	if _, err := s.GetTournamentByID(tournamentID); err != nil {
		return nil, err
	}

	var matchdays []models.Matchday
	err := s.db.Where("tournament_id = ?", tournamentID).
		Preload("Matches", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Matches.HomeTeam").
		Preload("Matches.AwayTeam").
		Preload("Matches.Field").
		Order("number ASC").
		Find(&matchdays).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	return matchdays, nil
}

// UpdateMatchResult records the goals of a league match and marks it
// played in one operation.
func (s *TournamentService) UpdateMatchResult(matchID uint, req models.UpdateMatchResultRequest) (*models.LeagueMatch, error) {
	var match models.LeagueMatch
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("league match %d not found", matchID)
		}
		return nil, apperrors.Storage(err)
	}

	homeGoals := req.HomeGoals
	awayGoals := req.AwayGoals
	match.HomeGoals = &homeGoals
	match.AwayGoals = &awayGoals
	match.Status = models.MatchPlayed

	if err := s.db.Save(&match).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	if err := s.db.Preload("HomeTeam").Preload("AwayTeam").Preload("Field").First(&match, match.ID).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return &match, nil
}

// GetStandings computes the league table: 3 points per win, 1 per
// draw, ordered by points, then goal difference, then goals for, then
// team id for a stable ranking.
func (s *TournamentService) GetStandings(tournamentID uint) ([]models.TeamStanding, error) {
	teams, err := s.GetTeams(tournamentID)
	if err != nil {
		return nil, err
	}

	table := make(map[uint]*models.TeamStanding, len(teams))
	for _, t := range teams {
		table[t.ID] = &models.TeamStanding{TeamID: t.ID, TeamName: t.Name}
	}

	var matches []models.LeagueMatch
	err = s.db.Joins("JOIN matchdays ON matchdays.id = league_matches.matchday_id").
		Where("matchdays.tournament_id = ? AND league_matches.status = ?", tournamentID, models.MatchPlayed).
		Find(&matches).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	for _, m := range matches {
		if m.HomeGoals == nil || m.AwayGoals == nil {
			continue
		}
		home, away := table[m.HomeTeamID], table[m.AwayTeamID]
		if home == nil || away == nil {
			continue
		}

		home.Played++
		away.Played++
		home.GoalsFor += *m.HomeGoals
		home.GoalsAgainst += *m.AwayGoals
		away.GoalsFor += *m.AwayGoals
		away.GoalsAgainst += *m.HomeGoals

		switch {
		case *m.HomeGoals > *m.AwayGoals:
			home.Wins++
			home.Points += 3
			away.Losses++
		case *m.HomeGoals < *m.AwayGoals:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	standings := make([]models.TeamStanding, 0, len(table))
	for _, row := range table {
		row.GoalDiff = row.GoalsFor - row.GoalsAgainst
		standings = append(standings, *row)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamID < b.TeamID
	})

	return standings, nil
}

// LastPlayedDate returns the latest date of a played league match, or
// the zero time when none were played.
func (s *TournamentService) LastPlayedDate(tournamentID uint) (time.Time, error) {
	var match models.LeagueMatch
	err := s.db.Joins("JOIN matchdays ON matchdays.id = league_matches.matchday_id").
		Where("matchdays.tournament_id = ? AND league_matches.status = ? AND league_matches.date IS NOT NULL",
			tournamentID, models.MatchPlayed).
		Order("league_matches.date DESC").
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, apperrors.Storage(err)
	}
	if match.Date == nil {
		return time.Time{}, nil
	}
	return *match.Date, nil
}

// SetPhase enforces the monotonic league -> playoffs -> finished chain.
func (s *TournamentService) SetPhase(tx *gorm.DB, tournament *models.Tournament, phase string) error {
	valid := map[string]string{
		models.PhaseLeague:   models.PhasePlayoffs,
		models.PhasePlayoffs: models.PhaseFinished,
	}
	if valid[tournament.Phase] != phase {
		return apperrors.State("cannot change phase from %s to %s", tournament.Phase, phase)
	}

	if err := tx.Model(&models.Tournament{}).Where("id = ?", tournament.ID).Update("phase", phase).Error; err != nil {
		return apperrors.Storage(err)
	}
	tournament.Phase = phase
	return nil
}

// agendaSequence builds the weekly slot sequence of a tournament's
// scheduling config, starting at the given date (tournament start by
// default).
func (s *TournamentService) agendaSequence(tournament *models.Tournament) *utils.SlotSequence {
	return s.agendaSequenceFrom(tournament, tournament.StartDate)
}

func (s *TournamentService) agendaSequenceFrom(tournament *models.Tournament, from time.Time) *utils.SlotSequence {
	ranges := make([]utils.TimeRange, 0, len(tournament.TimeSlots))
	for _, slot := range tournament.TimeSlots {
		ranges = append(ranges, utils.TimeRange{Start: slot.StartTime, End: slot.EndTime})
	}

	fields := make([]uint, 0, len(tournament.Fields))
	for _, tf := range tournament.Fields {
		fields = append(fields, tf.FieldID)
	}

	return utils.NewSlotSequence(from, time.Weekday(tournament.Weekday), ranges, fields)
}

func (s *TournamentService) matchdayCount(tournamentID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Matchday{}).Where("tournament_id = ?", tournamentID).Count(&count).Error; err != nil {
		return 0, apperrors.Storage(err)
	}
	return count, nil
}

// checkAgendaConflicts verifies that a proposed weekly agenda does not
// collide, on any peer of the selected fields, with the agenda of
// another running tournament, an academy session on the same weekday,
// or an active reservation booked on a matching future date. Agendas
// block whole clock hours.
func (s *TournamentService) checkAgendaConflicts(weekday int, startDate time.Time, franjas []models.Franja, fieldIDs []uint, excludeTournamentID uint) error {
	peerSets, err := s.fieldService.PeersOfMany(fieldIDs)
	if err != nil {
		return err
	}

	peerSet := make(map[uint]bool)
	var peers []uint
	for _, set := range peerSets {
		for _, id := range set {
			if !peerSet[id] {
				peerSet[id] = true
				peers = append(peers, id)
			}
		}
	}

	var others []models.Tournament
	query := s.db.Preload("TimeSlots").Preload("Fields").
		Where("weekday = ? AND phase <> ?", weekday, models.PhaseFinished)
	if excludeTournamentID != 0 {
		query = query.Where("id <> ?", excludeTournamentID)
	}
	if err := query.Find(&others).Error; err != nil {
		return apperrors.Storage(err)
	}

	for _, f := range franjas {
		start := utils.FloorHour(f.StartTime)
		end := utils.CeilHour(f.EndTime)

		for _, other := range others {
			for _, tf := range other.Fields {
				if !peerSet[tf.FieldID] {
					continue
				}
				for _, slot := range other.TimeSlots {
					if utils.Overlaps(start, end, utils.FloorHour(slot.StartTime), utils.CeilHour(slot.EndTime)) {
						return apperrors.Conflict("weekly agenda overlaps tournament "+other.Name, slot)
					}
				}
			}
		}

		var sessions []models.AcademySession
		if err := s.db.Where("field_id IN ? AND weekday = ? AND active = ?", peers, weekday, true).
			Find(&sessions).Error; err != nil {
			return apperrors.Storage(err)
		}
		for _, session := range sessions {
			if utils.Overlaps(start, end, session.StartTime, session.EndTime) {
				return apperrors.Conflict("weekly agenda overlaps an academy session", session)
			}
		}

		var reservations []models.Reservation
		if err := s.db.Where("field_id IN ? AND date >= ? AND status IN ?",
			peers, startDate, models.ActiveReservationStatuses).
			Find(&reservations).Error; err != nil {
			return apperrors.Storage(err)
		}
		for _, r := range reservations {
			if int(r.Date.Weekday()) != weekday {
				continue
			}
			if utils.Overlaps(start, end, r.StartTime, r.EndTime) {
				return apperrors.Conflict("weekly agenda overlaps reservation "+r.Code, r)
			}
		}
	}

	return nil
}
