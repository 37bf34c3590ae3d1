package services

import (
	"errors"
	"fmt"
	"time"

	"core/apperrors"
	"core/models"
	"core/utils"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// bracketSizes are the supported bracket sizes, smallest first.
var bracketSizes = []int{2, 4, 8, 16, 32}

// roundKeysBySize maps a bracket size to its ordered default round keys.
var roundKeysBySize = map[int][]string{
	2:  {"F"},
	4:  {"SF", "F"},
	8:  {"QF", "SF", "F"},
	16: {"R16", "QF", "SF", "F"},
	32: {"R32", "R16", "QF", "SF", "F"},
}

// BracketSize returns the smallest supported bracket size that fits
// teamCount teams.
func BracketSize(teamCount int) (int, error) {
	for _, size := range bracketSizes {
		if teamCount <= size {
			return size, nil
		}
	}
	return 0, apperrors.Validation("at most 32 teams can enter a bracket, got %d", teamCount)
}

// DefaultRoundConfig is the standard round layout for a bracket size:
// match counts halve each round down to the final.
func DefaultRoundConfig(size int) ([]models.Round, error) {
	keys, ok := roundKeysBySize[size]
	if !ok {
		return nil, apperrors.Validation("unsupported bracket size %d", size)
	}

	rounds := make([]models.Round, len(keys))
	matches := size / 2
	for i, key := range keys {
		rounds[i] = models.Round{RoundKey: key, MatchCount: matches}
		matches /= 2
	}
	return rounds, nil
}

type BracketService struct {
	db                *gorm.DB
	tournamentService *TournamentService
	clock             clockwork.Clock
}

func NewBracketService(db *gorm.DB) *BracketService {
	return NewBracketServiceWithClock(db, clockwork.NewRealClock())
}

func NewBracketServiceWithClock(db *gorm.DB, clock clockwork.Clock) *BracketService {
	return &BracketService{
		db:                db,
		tournamentService: NewTournamentService(db),
		clock:             clock,
	}
}

// GenerateBracket builds the knockout phase of a tournament: seeds the
// first round, wires winner propagation between rounds, auto-advances
// byes and schedules every pending leg on the tournament's weekly
// agenda. Moves the tournament into the playoffs phase.
func (s *BracketService) GenerateBracket(tournamentID uint, req models.GenerateBracketRequest) (*models.BracketResponse, error) {
	tournament, err := s.tournamentService.GetTournamentByID(tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Phase != models.PhaseLeague {
		return nil, apperrors.State("tournament %s is not in league phase", tournament.Name)
	}

	var existing models.Bracket
	if err := s.db.Where("tournament_id = ?", tournamentID).First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("tournament already has a bracket", existing)
	}

	seeds, err := s.resolveSeeds(tournament, req.TeamIDs)
	if err != nil {
		return nil, err
	}

	size, err := BracketSize(len(seeds))
	if err != nil {
		return nil, err
	}

	roundTrip := tournament.RoundTrip
	if req.RoundTrip != nil {
		roundTrip = *req.RoundTrip
	}
	awayGoals := false
	if req.AwayGoals != nil {
		awayGoals = *req.AwayGoals
	}

	roundConfig, err := s.resolveRoundConfig(size, req.Rounds)
	if err != nil {
		return nil, err
	}

	startDate := tournament.StartDate
	if req.StartDate != "" {
		startDate, err = utils.ParseDate(req.StartDate)
		if err != nil {
			return nil, apperrors.Validation("%v", err)
		}
	}

	lastPlayed, err := s.tournamentService.LastPlayedDate(tournamentID)
	if err != nil {
		return nil, err
	}

	baseDate := s.clock.Now().UTC().Truncate(24 * time.Hour)
	if !lastPlayed.IsZero() && lastPlayed.AddDate(0, 0, 1).After(baseDate) {
		baseDate = lastPlayed.AddDate(0, 0, 1)
	}
	if startDate.After(baseDate) {
		baseDate = startDate
	}

	bracket := &models.Bracket{
		TournamentID: tournamentID,
		RoundTrip:    roundTrip,
		AwayGoals:    awayGoals,
		StartDate:    startDate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bracket).Error; err != nil {
			return apperrors.Storage(err)
		}

		rounds := make([]*models.BracketRound, len(roundConfig))
		for i, rc := range roundConfig {
			rt := roundTrip
			if rc.RoundTrip != nil {
				rt = *rc.RoundTrip
			}
			ag := awayGoals
			if rc.AwayGoals != nil {
				ag = *rc.AwayGoals
			}
			round := &models.BracketRound{
				BracketID:  bracket.ID,
				Position:   i + 1,
				RoundKey:   rc.RoundKey,
				MatchCount: rc.MatchCount,
				RoundTrip:  rt,
				AwayGoals:  ag,
			}
			if err := tx.Create(round).Error; err != nil {
				return apperrors.Storage(err)
			}
			rounds[i] = round
		}

		// Matches are created from the final backwards so each round
		// already knows the id of the match its winner feeds into.
		legs1 := make([][]*models.BracketMatch, len(rounds))
		legs2 := make([][]*models.BracketMatch, len(rounds))
		for i := len(rounds) - 1; i >= 0; i-- {
			round := rounds[i]
			legs1[i] = make([]*models.BracketMatch, round.MatchCount)
			legs2[i] = make([]*models.BracketMatch, round.MatchCount)

			for pos := 1; pos <= round.MatchCount; pos++ {
				var nextID *uint
				nextSlot := ""
				if i < len(rounds)-1 {
					next := legs1[i+1][(pos-1)/2]
					nextID = &next.ID
					if pos%2 == 1 {
						nextSlot = models.SlotHome
					} else {
						nextSlot = models.SlotAway
					}
				}

				leg1 := &models.BracketMatch{
					RoundID:     round.ID,
					Position:    pos,
					Leg:         1,
					NextMatchID: nextID,
					NextSlot:    nextSlot,
					Status:      models.SeriesScheduled,
				}
				if err := tx.Create(leg1).Error; err != nil {
					return apperrors.Storage(err)
				}
				legs1[i][pos-1] = leg1

				if round.RoundTrip {
					leg2 := &models.BracketMatch{
						RoundID:       round.ID,
						Position:      pos,
						Leg:           2,
						NextMatchID:   nextID,
						NextSlot:      nextSlot,
						ParentMatchID: &leg1.ID,
						Status:        models.SeriesScheduled,
					}
					if err := tx.Create(leg2).Error; err != nil {
						return apperrors.Storage(err)
					}
					legs2[i][pos-1] = leg2
				}
			}
		}

		// Seed the first round with consecutive slot pairs; unfilled
		// slots stay null and behave as byes.
		for i, teamID := range seeds {
			id := teamID
			pos := i / 2
			if i%2 == 0 {
				legs1[0][pos].HomeTeamID = &id
				if legs2[0][pos] != nil {
					legs2[0][pos].AwayTeamID = &id
				}
			} else {
				legs1[0][pos].AwayTeamID = &id
				if legs2[0][pos] != nil {
					legs2[0][pos].HomeTeamID = &id
				}
			}
		}

		dead := s.resolveByes(legs1, legs2)

		if err := s.scheduleRounds(tx, tournament, rounds, legs1, legs2, dead, baseDate); err != nil {
			return err
		}

		for i := range rounds {
			for pos := range legs1[i] {
				if err := tx.Save(legs1[i][pos]).Error; err != nil {
					return apperrors.Storage(err)
				}
				if legs2[i][pos] != nil {
					if err := tx.Save(legs2[i][pos]).Error; err != nil {
						return apperrors.Storage(err)
					}
				}
			}
		}

		return s.tournamentService.SetPhase(tx, tournament, models.PhasePlayoffs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetBracket(tournamentID)
}

// resolveByes decides, in memory and before persistence, every series
// with exactly one assigned team whose other slot can never be filled,
// propagating winners forward transitively. A series whose both slots
// are unfillable is dead: it stays scheduled and teamless forever.
// Returns the dead flags per round and position.
func (s *BracketService) resolveByes(legs1, legs2 [][]*models.BracketMatch) [][]bool {
	dead := make([][]bool, len(legs1))
	for i := range legs1 {
		dead[i] = make([]bool, len(legs1[i]))
	}

	for i := range legs1 {
		for pos := range legs1[i] {
			leg1 := legs1[i][pos]

			homeEmpty := leg1.HomeTeamID == nil && s.slotUnfillable(dead, i, pos, models.SlotHome)
			awayEmpty := leg1.AwayTeamID == nil && s.slotUnfillable(dead, i, pos, models.SlotAway)

			switch {
			case homeEmpty && awayEmpty:
				dead[i][pos] = true
			case awayEmpty && leg1.HomeTeamID != nil:
				s.decideByeInMemory(legs1, legs2, i, pos, *leg1.HomeTeamID)
			case homeEmpty && leg1.AwayTeamID != nil:
				s.decideByeInMemory(legs1, legs2, i, pos, *leg1.AwayTeamID)
			}
		}
	}

	return dead
}

// slotUnfillable reports whether a null slot of a series can never
// receive a team: in the first round every null slot is a bye; later
// a slot is unfillable only when the series feeding it is dead.
func (s *BracketService) slotUnfillable(dead [][]bool, round, pos int, slot string) bool {
	if round == 0 {
		return true
	}
	feeder := pos * 2
	if slot == models.SlotAway {
		feeder++
	}
	return dead[round-1][feeder]
}

func (s *BracketService) decideByeInMemory(legs1, legs2 [][]*models.BracketMatch, round, pos int, winnerID uint) {
	id := winnerID
	leg1 := legs1[round][pos]
	leg1.WinnerID = &id
	leg1.DecidedBy = models.DecidedByBye
	leg1.Status = models.SeriesDecided

	if round == len(legs1)-1 {
		return
	}

	nextPos := pos / 2
	next1 := legs1[round+1][nextPos]
	next2 := legs2[round+1][nextPos]
	if leg1.NextSlot == models.SlotHome {
		next1.HomeTeamID = &id
		if next2 != nil {
			next2.AwayTeamID = &id
		}
	} else {
		next1.AwayTeamID = &id
		if next2 != nil {
			next2.HomeTeamID = &id
		}
	}
}

// scheduleRounds assigns agenda slots to every undecided, non-dead leg.
// Rounds never share a week bucket, nor do the two legs of a round.
func (s *BracketService) scheduleRounds(tx *gorm.DB, tournament *models.Tournament, rounds []*models.BracketRound, legs1, legs2 [][]*models.BracketMatch, dead [][]bool, baseDate time.Time) error {
	if len(tournament.TimeSlots) == 0 || len(tournament.Fields) == 0 {
		return apperrors.State("tournament %s has no weekly agenda to schedule the bracket on", tournament.Name)
	}

	seq := s.tournamentService.agendaSequenceFrom(tournament, baseDate)

	for i, round := range rounds {
		for pos := range legs1[i] {
			if dead[i][pos] || legs1[i][pos].Status == models.SeriesDecided {
				continue
			}
			assignSlotToLeg(legs1[i][pos], seq.Next())
		}
		seq.AdvanceWeek()

		if round.RoundTrip {
			for pos := range legs2[i] {
				if legs2[i][pos] == nil || dead[i][pos] || legs1[i][pos].Status == models.SeriesDecided {
					continue
				}
				assignSlotToLeg(legs2[i][pos], seq.Next())
			}
			seq.AdvanceWeek()
		}
	}

	return nil
}

func assignSlotToLeg(leg *models.BracketMatch, slot utils.Slot) {
	date := slot.Date
	start := slot.Start
	end := slot.End
	fieldID := slot.FieldID
	leg.Date = &date
	leg.StartTime = &start
	leg.EndTime = &end
	leg.FieldID = &fieldID
}

// GetBracket returns the full bracket tree of a tournament.
func (s *BracketService) GetBracket(tournamentID uint) (*models.BracketResponse, error) {
	var bracket models.Bracket
	err := s.db.Where("tournament_id = ?", tournamentID).First(&bracket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tournament %d has no bracket", tournamentID)
		}
		return nil, apperrors.Storage(err)
	}

	var rounds []models.BracketRound
	err = s.db.Where("bracket_id = ?", bracket.ID).
		Preload("Matches", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, leg ASC") }).
		Preload("Matches.HomeTeam").
		Preload("Matches.AwayTeam").
		Preload("Matches.Field").
		Order("position ASC").
		Find(&rounds).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	return &models.BracketResponse{Bracket: bracket, Rounds: rounds}, nil
}

// UpdateLeg records goals, penalty scores or a schedule change on a
// single leg. The series must not be decided yet; undo it first.
func (s *BracketService) UpdateLeg(matchID uint, req models.UpdateLegRequest) (*models.BracketMatch, error) {
	leg, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}

	series, err := s.seriesLeg1(leg)
	if err != nil {
		return nil, err
	}
	if series.Status == models.SeriesDecided {
		return nil, apperrors.Conflict("series already decided, undo it before editing legs", series)
	}
	if leg.HomeTeamID == nil || leg.AwayTeamID == nil {
		return nil, apperrors.State("both teams must be assigned before editing the leg")
	}

	updates := make(map[string]interface{})
	if req.HomeGoals != nil {
		updates["home_goals"] = *req.HomeGoals
	}
	if req.AwayGoals != nil {
		updates["away_goals"] = *req.AwayGoals
	}
	if req.HomePens != nil {
		updates["home_pens"] = *req.HomePens
	}
	if req.AwayPens != nil {
		updates["away_pens"] = *req.AwayPens
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return nil, apperrors.Validation("%v", err)
		}
		updates["date"] = date
	}
	if req.StartTime != nil {
		start, err := utils.ParseClock(*req.StartTime)
		if err != nil {
			return nil, apperrors.Validation("%v", err)
		}
		updates["start_time"] = start
	}
	if req.EndTime != nil {
		end, err := utils.ParseClock(*req.EndTime)
		if err != nil {
			return nil, apperrors.Validation("%v", err)
		}
		updates["end_time"] = end
	}
	if req.FieldID != nil {
		updates["field_id"] = *req.FieldID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.BracketMatch{}).Where("id = ?", leg.ID).Updates(updates).Error; err != nil {
			return nil, apperrors.Storage(err)
		}
	}

	return s.getMatch(matchID)
}

// CloseSeries decides a series from its recorded leg results and
// propagates the winner into the next round. Penalty scores may be
// supplied inline; for a two-legged series they are recorded against
// leg 2. Deciding the final finishes the tournament.
func (s *BracketService) CloseSeries(matchID uint, req models.CloseSeriesRequest) (*models.BracketMatch, error) {
	leg1, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if leg1.Leg != 1 {
		leg1, err = s.seriesLeg1(leg1)
		if err != nil {
			return nil, err
		}
	}

	if leg1.Status == models.SeriesDecided {
		return nil, apperrors.Conflict("series already decided", leg1)
	}
	if leg1.HomeTeamID == nil || leg1.AwayTeamID == nil {
		return nil, apperrors.Validation("both teams must be assigned before closing the series")
	}

	round, err := s.getRound(leg1.RoundID)
	if err != nil {
		return nil, err
	}

	var leg2 *models.BracketMatch
	if round.RoundTrip {
		leg2, err = s.seriesLeg2(leg1.ID)
		if err != nil {
			return nil, err
		}
	}

	winnerID, decidedBy, pensLeg, err := s.decideWinner(leg1, leg2, round, req)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if pensLeg != nil && req.HomePens != nil && req.AwayPens != nil {
			updates := map[string]interface{}{
				"home_pens": *req.HomePens,
				"away_pens": *req.AwayPens,
			}
			if err := tx.Model(&models.BracketMatch{}).Where("id = ?", pensLeg.ID).Updates(updates).Error; err != nil {
				return apperrors.Storage(err)
			}
		}

		updates := map[string]interface{}{
			"winner_id":  winnerID,
			"decided_by": decidedBy,
			"status":     models.SeriesDecided,
		}
		if err := tx.Model(&models.BracketMatch{}).Where("id = ?", leg1.ID).Updates(updates).Error; err != nil {
			return apperrors.Storage(err)
		}

		if leg1.NextMatchID != nil {
			return s.propagateWinner(tx, leg1, winnerID)
		}

		return s.finishTournament(tx, round.BracketID)
	})
	if err != nil {
		return nil, err
	}

	return s.getMatch(leg1.ID)
}

// decideWinner applies the decision rule: goals, then aggregate with
// optional away-goals tie-break for two legs, then penalties.
func (s *BracketService) decideWinner(leg1, leg2 *models.BracketMatch, round *models.BracketRound, req models.CloseSeriesRequest) (uint, string, *models.BracketMatch, error) {
	if leg1.HomeGoals == nil || leg1.AwayGoals == nil {
		return 0, "", nil, apperrors.Validation("leg 1 goals are missing")
	}

	homeID := *leg1.HomeTeamID
	awayID := *leg1.AwayTeamID

	if leg2 == nil {
		switch {
		case *leg1.HomeGoals > *leg1.AwayGoals:
			return homeID, models.DecidedByGoals, nil, nil
		case *leg1.HomeGoals < *leg1.AwayGoals:
			return awayID, models.DecidedByGoals, nil, nil
		}
		winner, err := s.penaltyWinner(leg1, req, homeID, awayID)
		if err != nil {
			return 0, "", nil, err
		}
		return winner, models.DecidedByPenalties, leg1, nil
	}

	if leg2.HomeGoals == nil || leg2.AwayGoals == nil {
		return 0, "", nil, apperrors.Validation("leg 2 goals are missing")
	}

	// Leg 2 is played with home and away reversed.
	homeTotal := *leg1.HomeGoals + *leg2.AwayGoals
	awayTotal := *leg1.AwayGoals + *leg2.HomeGoals

	switch {
	case homeTotal > awayTotal:
		return homeID, models.DecidedByGoals, nil, nil
	case homeTotal < awayTotal:
		return awayID, models.DecidedByGoals, nil, nil
	}

	if round.AwayGoals {
		homeAwayGoals := *leg2.AwayGoals
		awayAwayGoals := *leg1.AwayGoals
		switch {
		case homeAwayGoals > awayAwayGoals:
			return homeID, models.DecidedByAwayGoals, nil, nil
		case homeAwayGoals < awayAwayGoals:
			return awayID, models.DecidedByAwayGoals, nil, nil
		}
	}

	winner, err := s.penaltyWinner(leg2, req, homeID, awayID)
	if err != nil {
		return 0, "", nil, err
	}
	// Penalty scores on leg 2 are recorded in that leg's home/away
	// orientation, so they refer to the reversed sides.
	if winner == homeID {
		winner = awayID
	} else {
		winner = homeID
	}
	return winner, models.DecidedByPenalties, leg2, nil
}

// penaltyWinner resolves a tied leg from penalty scores, preferring the
// ones supplied in the request over any stored on the leg.
func (s *BracketService) penaltyWinner(leg *models.BracketMatch, req models.CloseSeriesRequest, homeID, awayID uint) (uint, error) {
	homePens := leg.HomePens
	awayPens := leg.AwayPens
	if req.HomePens != nil && req.AwayPens != nil {
		homePens = req.HomePens
		awayPens = req.AwayPens
	}

	if homePens == nil || awayPens == nil {
		return 0, apperrors.Validation("series is tied, penalty scores are required")
	}
	if *homePens == *awayPens {
		return 0, apperrors.Validation("penalty scores cannot be tied")
	}
	if *homePens > *awayPens {
		return homeID, nil
	}
	return awayID, nil
}

// propagateWinner writes the winner into its slot on both legs of the
// next series.
func (s *BracketService) propagateWinner(tx *gorm.DB, leg1 *models.BracketMatch, winnerID uint) error {
	column := "home_team_id"
	swapped := "away_team_id"
	if leg1.NextSlot == models.SlotAway {
		column = "away_team_id"
		swapped = "home_team_id"
	}

	if err := tx.Model(&models.BracketMatch{}).Where("id = ?", *leg1.NextMatchID).
		Update(column, winnerID).Error; err != nil {
		return apperrors.Storage(err)
	}
	if err := tx.Model(&models.BracketMatch{}).Where("parent_match_id = ?", *leg1.NextMatchID).
		Update(swapped, winnerID).Error; err != nil {
		return apperrors.Storage(err)
	}

	return s.resolveDownstreamBye(tx, *leg1.NextMatchID)
}

// resolveDownstreamBye decides a series holding exactly one team whose
// open slot can never be filled because the whole feeder chain on that
// side is dead. Runs after a winner lands in a slot; the decision
// propagates onward, recursively, and finishes the tournament when it
// reaches the final.
func (s *BracketService) resolveDownstreamBye(tx *gorm.DB, matchID uint) error {
	var next models.BracketMatch
	if err := tx.First(&next, matchID).Error; err != nil {
		return apperrors.Storage(err)
	}
	if next.Status == models.SeriesDecided {
		return nil
	}

	var winnerID uint
	var openSlot string
	switch {
	case next.HomeTeamID != nil && next.AwayTeamID == nil:
		winnerID = *next.HomeTeamID
		openSlot = models.SlotAway
	case next.AwayTeamID != nil && next.HomeTeamID == nil:
		winnerID = *next.AwayTeamID
		openSlot = models.SlotHome
	default:
		return nil
	}

	unfillable, err := s.feederDead(tx, next.ID, openSlot)
	if err != nil || !unfillable {
		return err
	}

	updates := map[string]interface{}{
		"winner_id":  winnerID,
		"decided_by": models.DecidedByBye,
		"status":     models.SeriesDecided,
	}
	if err := tx.Model(&models.BracketMatch{}).Where("id = ?", next.ID).Updates(updates).Error; err != nil {
		return apperrors.Storage(err)
	}

	if next.NextMatchID != nil {
		return s.propagateWinner(tx, &next, winnerID)
	}

	var round models.BracketRound
	if err := tx.First(&round, next.RoundID).Error; err != nil {
		return apperrors.Storage(err)
	}
	return s.finishTournament(tx, round.BracketID)
}

// feederDead reports whether the series feeding a slot can never
// produce a winner.
func (s *BracketService) feederDead(tx *gorm.DB, matchID uint, slot string) (bool, error) {
	var feeder models.BracketMatch
	err := tx.Where("next_match_id = ? AND next_slot = ? AND leg = 1", matchID, slot).First(&feeder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, apperrors.Storage(err)
	}
	return s.seriesDeadTx(tx, &feeder)
}

// seriesDeadTx: a series is dead when it is undecided, holds no team in
// either slot, and every series feeding it is itself dead. First-round
// series with no feeders and no teams are the base case.
func (s *BracketService) seriesDeadTx(tx *gorm.DB, match *models.BracketMatch) (bool, error) {
	if match.Status == models.SeriesDecided || match.HomeTeamID != nil || match.AwayTeamID != nil {
		return false, nil
	}

	var feeders []models.BracketMatch
	if err := tx.Where("next_match_id = ? AND leg = 1", match.ID).Find(&feeders).Error; err != nil {
		return false, apperrors.Storage(err)
	}
	if len(feeders) == 0 {
		return true, nil
	}
	for i := range feeders {
		dead, err := s.seriesDeadTx(tx, &feeders[i])
		if err != nil {
			return false, err
		}
		if !dead {
			return false, nil
		}
	}
	return true, nil
}

// UndoSeries is the exact inverse of CloseSeries: it reverts the series
// to scheduled and clears whatever the decision propagated downstream.
// Undoing the final reopens the playoffs phase.
func (s *BracketService) UndoSeries(matchID uint) (*models.BracketMatch, error) {
	leg1, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if leg1.Leg != 1 {
		leg1, err = s.seriesLeg1(leg1)
		if err != nil {
			return nil, err
		}
	}
	if leg1.Status != models.SeriesDecided {
		return nil, apperrors.State("series %d is not decided", leg1.ID)
	}

	round, err := s.getRound(leg1.RoundID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.undoSeriesTx(tx, leg1, round)
	})
	if err != nil {
		return nil, err
	}

	return s.getMatch(leg1.ID)
}

func (s *BracketService) undoSeriesTx(tx *gorm.DB, leg1 *models.BracketMatch, round *models.BracketRound) error {
	winnerID := leg1.WinnerID

	if leg1.NextMatchID != nil && winnerID != nil {
		// A bye decision downstream that our winner caused gets undone
		// first, so the whole chain unwinds.
		var next models.BracketMatch
		if err := tx.First(&next, *leg1.NextMatchID).Error; err != nil {
			return apperrors.Storage(err)
		}
		if next.Status == models.SeriesDecided && next.DecidedBy == models.DecidedByBye &&
			next.WinnerID != nil && *next.WinnerID == *winnerID {
			var nextRound models.BracketRound
			if err := tx.First(&nextRound, next.RoundID).Error; err != nil {
				return apperrors.Storage(err)
			}
			if err := s.undoSeriesTx(tx, &next, &nextRound); err != nil {
				return err
			}
		}

		column := "home_team_id"
		swapped := "away_team_id"
		if leg1.NextSlot == models.SlotAway {
			column = "away_team_id"
			swapped = "home_team_id"
		}

		// Clear only slots still holding our winner; a decision the
		// next series reached on its own is left alone.
		if err := tx.Model(&models.BracketMatch{}).
			Where("id = ? AND "+column+" = ?", *leg1.NextMatchID, *winnerID).
			Update(column, nil).Error; err != nil {
			return apperrors.Storage(err)
		}
		if err := tx.Model(&models.BracketMatch{}).
			Where("parent_match_id = ? AND "+swapped+" = ?", *leg1.NextMatchID, *winnerID).
			Update(swapped, nil).Error; err != nil {
			return apperrors.Storage(err)
		}
	}

	updates := map[string]interface{}{
		"winner_id":  nil,
		"decided_by": "",
		"status":     models.SeriesScheduled,
	}
	if err := tx.Model(&models.BracketMatch{}).Where("id = ?", leg1.ID).Updates(updates).Error; err != nil {
		return apperrors.Storage(err)
	}

	if leg1.NextMatchID == nil {
		return s.reopenTournament(tx, round.BracketID)
	}
	return nil
}

// AssignSlot places a team into a currently empty home or away slot of
// a series (late entries, byes resolved outside seeding). A decided
// series is implicitly undone first; its decision must be redone.
func (s *BracketService) AssignSlot(matchID uint, req models.AssignSlotRequest) (*models.BracketMatch, error) {
	leg1, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if leg1.Leg != 1 {
		return nil, apperrors.Validation("slots are assigned on leg 1 of a series, match %d is leg %d", leg1.ID, leg1.Leg)
	}

	round, err := s.getRound(leg1.RoundID)
	if err != nil {
		return nil, err
	}

	bracket, err := s.getBracketByID(round.BracketID)
	if err != nil {
		return nil, err
	}

	var team models.Team
	if err := s.db.Where("id = ? AND tournament_id = ?", req.TeamID, bracket.TournamentID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("team %d not found in tournament %d", req.TeamID, bracket.TournamentID)
		}
		return nil, apperrors.Storage(err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if leg1.Status == models.SeriesDecided {
			if err := s.undoSeriesTx(tx, leg1, round); err != nil {
				return err
			}
			if err := tx.First(leg1, leg1.ID).Error; err != nil {
				return apperrors.Storage(err)
			}
		}

		occupied := leg1.HomeTeamID
		column := "home_team_id"
		swapped := "away_team_id"
		if req.Slot == models.SlotAway {
			occupied = leg1.AwayTeamID
			column = "away_team_id"
			swapped = "home_team_id"
		}
		if occupied != nil {
			return apperrors.Conflict(fmt.Sprintf("%s slot already has a team assigned", req.Slot), leg1)
		}

		if err := tx.Model(&models.BracketMatch{}).Where("id = ?", leg1.ID).
			Update(column, req.TeamID).Error; err != nil {
			return apperrors.Storage(err)
		}
		if err := tx.Model(&models.BracketMatch{}).Where("parent_match_id = ?", leg1.ID).
			Update(swapped, req.TeamID).Error; err != nil {
			return apperrors.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getMatch(leg1.ID)
}

// resolveSeeds returns the ordered team ids entering the bracket:
// explicit seeds when supplied, otherwise the standings top-K where K
// is the tournament's qualifying count.
func (s *BracketService) resolveSeeds(tournament *models.Tournament, teamIDs []uint) ([]uint, error) {
	if len(teamIDs) > 0 {
		seen := make(map[uint]bool, len(teamIDs))
		for _, id := range teamIDs {
			if seen[id] {
				return nil, apperrors.Validation("team %d appears more than once in the seed list", id)
			}
			seen[id] = true

			var team models.Team
			if err := s.db.Where("id = ? AND tournament_id = ?", id, tournament.ID).First(&team).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperrors.NotFound("team %d not found in tournament %d", id, tournament.ID)
				}
				return nil, apperrors.Storage(err)
			}
		}
		if len(teamIDs) < 2 {
			return nil, apperrors.Validation("at least 2 teams are required, got %d", len(teamIDs))
		}
		return teamIDs, nil
	}

	standings, err := s.tournamentService.GetStandings(tournament.ID)
	if err != nil {
		return nil, err
	}

	k := tournament.QualifyingCount
	if k <= 0 || k > len(standings) {
		k = len(standings)
	}
	if k < 2 {
		return nil, apperrors.Validation("at least 2 teams are required, got %d", k)
	}

	seeds := make([]uint, k)
	for i := 0; i < k; i++ {
		seeds[i] = standings[i].TeamID
	}
	return seeds, nil
}

func (s *BracketService) resolveRoundConfig(size int, explicit []models.Round) ([]models.Round, error) {
	if len(explicit) == 0 {
		return DefaultRoundConfig(size)
	}

	if explicit[0].MatchCount != size/2 {
		return nil, apperrors.Validation("first round must have %d matches for bracket size %d, got %d",
			size/2, size, explicit[0].MatchCount)
	}
	for i := 1; i < len(explicit); i++ {
		if explicit[i].MatchCount != explicit[i-1].MatchCount/2 {
			return nil, apperrors.Validation("round %s must have half the matches of the previous round", explicit[i].RoundKey)
		}
	}
	if explicit[len(explicit)-1].MatchCount != 1 {
		return nil, apperrors.Validation("last round must be a single-match final")
	}
	return explicit, nil
}

func (s *BracketService) finishTournament(tx *gorm.DB, bracketID uint) error {
	bracket, err := s.getBracketTx(tx, bracketID)
	if err != nil {
		return err
	}
	var tournament models.Tournament
	if err := tx.First(&tournament, bracket.TournamentID).Error; err != nil {
		return apperrors.Storage(err)
	}
	return s.tournamentService.SetPhase(tx, &tournament, models.PhaseFinished)
}

func (s *BracketService) reopenTournament(tx *gorm.DB, bracketID uint) error {
	bracket, err := s.getBracketTx(tx, bracketID)
	if err != nil {
		return err
	}
	if err := tx.Model(&models.Tournament{}).
		Where("id = ? AND phase = ?", bracket.TournamentID, models.PhaseFinished).
		Update("phase", models.PhasePlayoffs).Error; err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

func (s *BracketService) getMatch(id uint) (*models.BracketMatch, error) {
	var match models.BracketMatch
	if err := s.db.Preload("HomeTeam").Preload("AwayTeam").Preload("Field").First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("bracket match %d not found", id)
		}
		return nil, apperrors.Storage(err)
	}
	return &match, nil
}

func (s *BracketService) getRound(id uint) (*models.BracketRound, error) {
	var round models.BracketRound
	if err := s.db.First(&round, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("bracket round %d not found", id)
		}
		return nil, apperrors.Storage(err)
	}
	return &round, nil
}

func (s *BracketService) getBracketByID(id uint) (*models.Bracket, error) {
	return s.getBracketTx(s.db, id)
}

func (s *BracketService) getBracketTx(tx *gorm.DB, id uint) (*models.Bracket, error) {
	var bracket models.Bracket
	if err := tx.First(&bracket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("bracket %d not found", id)
		}
		return nil, apperrors.Storage(err)
	}
	return &bracket, nil
}

// seriesLeg1 returns leg 1 of the series a leg belongs to.
func (s *BracketService) seriesLeg1(leg *models.BracketMatch) (*models.BracketMatch, error) {
	if leg.Leg == 1 {
		return leg, nil
	}
	if leg.ParentMatchID == nil {
		return nil, apperrors.State("leg %d has no parent series", leg.ID)
	}
	return s.getMatch(*leg.ParentMatchID)
}

func (s *BracketService) seriesLeg2(leg1ID uint) (*models.BracketMatch, error) {
	var leg2 models.BracketMatch
	if err := s.db.Where("parent_match_id = ?", leg1ID).First(&leg2).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("series %d has no second leg", leg1ID)
		}
		return nil, apperrors.Storage(err)
	}
	return &leg2, nil
}
