package services

import (
	"testing"
	"time"

	"core/apperrors"
	"core/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// bracketFixture builds a league tournament with teamCount teams and a
// bracket service whose clock sits well before the tournament start, so
// scheduling anchors on the start date.
func bracketFixture(t *testing.T, teamCount int) (*gorm.DB, *BracketService, *models.Tournament, []uint) {
	t.Helper()

	db := newTestDB(t)
	tsvc := NewTournamentService(db)
	tournament := newLeagueTournament(t, db, tsvc, teamCount)

	clock := clockwork.NewFakeClockAt(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	svc := NewBracketServiceWithClock(db, clock)

	seeds := make([]uint, len(tournament.Teams))
	for i, team := range tournament.Teams {
		seeds[i] = team.ID
	}
	return db, svc, tournament, seeds
}

func findLeg(t *testing.T, rounds []models.BracketRound, roundIdx, pos, leg int) *models.BracketMatch {
	t.Helper()
	require.Less(t, roundIdx, len(rounds))
	for i := range rounds[roundIdx].Matches {
		m := &rounds[roundIdx].Matches[i]
		if m.Position == pos && m.Leg == leg {
			return m
		}
	}
	t.Fatalf("round %d has no leg %d at position %d", roundIdx, leg, pos)
	return nil
}

func TestBracketSize(t *testing.T) {
	cases := map[int]int{2: 2, 3: 4, 4: 4, 5: 8, 8: 8, 9: 16, 16: 16, 17: 32, 32: 32}
	for teams, want := range cases {
		got, err := BracketSize(teams)
		require.NoError(t, err)
		assert.Equal(t, want, got, "teams=%d", teams)
	}

	_, err := BracketSize(33)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDefaultRoundConfig(t *testing.T) {
	rounds, err := DefaultRoundConfig(8)
	require.NoError(t, err)
	require.Len(t, rounds, 3)
	assert.Equal(t, "QF", rounds[0].RoundKey)
	assert.Equal(t, 4, rounds[0].MatchCount)
	assert.Equal(t, "SF", rounds[1].RoundKey)
	assert.Equal(t, 2, rounds[1].MatchCount)
	assert.Equal(t, "F", rounds[2].RoundKey)
	assert.Equal(t, 1, rounds[2].MatchCount)

	_, err = DefaultRoundConfig(6)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestGenerateBracketFourTeams(t *testing.T) {
	db, svc, tournament, seeds := bracketFixture(t, 4)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds})
	require.NoError(t, err)
	require.Len(t, resp.Rounds, 2)
	assert.Equal(t, "SF", resp.Rounds[0].RoundKey)
	assert.Equal(t, "F", resp.Rounds[1].RoundKey)

	final := findLeg(t, resp.Rounds, 1, 1, 1)
	sf1 := findLeg(t, resp.Rounds, 0, 1, 1)
	sf2 := findLeg(t, resp.Rounds, 0, 2, 1)

	// Seeds pair up in order; winners feed the final's home and away.
	require.NotNil(t, sf1.HomeTeamID)
	assert.Equal(t, seeds[0], *sf1.HomeTeamID)
	assert.Equal(t, seeds[1], *sf1.AwayTeamID)
	assert.Equal(t, seeds[2], *sf2.HomeTeamID)
	assert.Equal(t, seeds[3], *sf2.AwayTeamID)

	require.NotNil(t, sf1.NextMatchID)
	assert.Equal(t, final.ID, *sf1.NextMatchID)
	assert.Equal(t, models.SlotHome, sf1.NextSlot)
	assert.Equal(t, final.ID, *sf2.NextMatchID)
	assert.Equal(t, models.SlotAway, sf2.NextSlot)

	// Both semifinals share the first agenda Saturday, the final moves
	// to the following week.
	require.NotNil(t, sf1.Date)
	assert.True(t, sf1.Date.Equal(mustDate(t, "2025-06-07")))
	assert.True(t, sf2.Date.Equal(mustDate(t, "2025-06-07")))
	require.NotNil(t, final.Date)
	assert.True(t, final.Date.Equal(mustDate(t, "2025-06-14")))

	assert.Nil(t, final.HomeTeamID)
	assert.Nil(t, final.AwayTeamID)

	tournament, err = NewTournamentService(db).GetTournamentByID(tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhasePlayoffs, tournament.Phase)
}

func TestGenerateBracketFiveTeamsResolvesByes(t *testing.T) {
	_, svc, tournament, seeds := bracketFixture(t, 5)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds})
	require.NoError(t, err)
	require.Len(t, resp.Rounds, 3)

	qf3 := findLeg(t, resp.Rounds, 0, 3, 1)
	qf4 := findLeg(t, resp.Rounds, 0, 4, 1)
	sf2 := findLeg(t, resp.Rounds, 1, 2, 1)
	final := findLeg(t, resp.Rounds, 2, 1, 1)

	// The fifth seed has no opponent: its series is a bye and the empty
	// one next to it stays dead.
	assert.Equal(t, models.SeriesDecided, qf3.Status)
	assert.Equal(t, models.DecidedByBye, qf3.DecidedBy)
	require.NotNil(t, qf3.WinnerID)
	assert.Equal(t, seeds[4], *qf3.WinnerID)
	assert.Nil(t, qf3.Date)

	assert.Equal(t, models.SeriesScheduled, qf4.Status)
	assert.Nil(t, qf4.HomeTeamID)
	assert.Nil(t, qf4.AwayTeamID)
	assert.Nil(t, qf4.Date)

	// The bye propagates transitively: the semifinal fed only by dead
	// and bye series is itself decided.
	assert.Equal(t, models.SeriesDecided, sf2.Status)
	assert.Equal(t, models.DecidedByBye, sf2.DecidedBy)
	require.NotNil(t, sf2.WinnerID)
	assert.Equal(t, seeds[4], *sf2.WinnerID)
	assert.Nil(t, sf2.Date)

	require.NotNil(t, final.AwayTeamID)
	assert.Equal(t, seeds[4], *final.AwayTeamID)
	assert.Nil(t, final.HomeTeamID)

	// The two real quarterfinals fill the first week, the remaining
	// semifinal the second, the final the third.
	qf1 := findLeg(t, resp.Rounds, 0, 1, 1)
	sf1 := findLeg(t, resp.Rounds, 1, 1, 1)
	require.NotNil(t, qf1.Date)
	assert.True(t, qf1.Date.Equal(mustDate(t, "2025-06-07")))
	require.NotNil(t, sf1.Date)
	assert.True(t, sf1.Date.Equal(mustDate(t, "2025-06-14")))
	require.NotNil(t, final.Date)
	assert.True(t, final.Date.Equal(mustDate(t, "2025-06-21")))
}

func TestGenerateBracketGuards(t *testing.T) {
	_, svc, tournament, seeds := bracketFixture(t, 4)

	// Duplicate and unknown seeds.
	_, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: []uint{seeds[0], seeds[0]}})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	_, err = svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: []uint{seeds[0], 9999}})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	_, err = svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds[:1]})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	// Explicit round config must halve down to a single final.
	_, err = svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{
		TeamIDs: seeds,
		Rounds:  []models.Round{{RoundKey: "SF", MatchCount: 3}, {RoundKey: "F", MatchCount: 1}},
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds})
	require.NoError(t, err)

	// Once the playoffs start a second bracket is out.
	_, err = svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds})
	assert.True(t, apperrors.IsKind(err, apperrors.KindState))
}

func TestCloseSeriesSingleLegPropagates(t *testing.T) {
	db, svc, tournament, seeds := bracketFixture(t, 4)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds})
	require.NoError(t, err)

	sf1 := findLeg(t, resp.Rounds, 0, 1, 1)
	sf2 := findLeg(t, resp.Rounds, 0, 2, 1)
	final := findLeg(t, resp.Rounds, 1, 1, 1)

	_, err = svc.UpdateLeg(sf1.ID, models.UpdateLegRequest{HomeGoals: intPtr(2), AwayGoals: intPtr(1)})
	require.NoError(t, err)
	closed, err := svc.CloseSeries(sf1.ID, models.CloseSeriesRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.SeriesDecided, closed.Status)
	assert.Equal(t, models.DecidedByGoals, closed.DecidedBy)
	require.NotNil(t, closed.WinnerID)
	assert.Equal(t, seeds[0], *closed.WinnerID)

	_, err = svc.UpdateLeg(sf2.ID, models.UpdateLegRequest{HomeGoals: intPtr(1), AwayGoals: intPtr(3)})
	require.NoError(t, err)
	_, err = svc.CloseSeries(sf2.ID, models.CloseSeriesRequest{})
	require.NoError(t, err)

	resp, err = svc.GetBracket(tournament.ID)
	require.NoError(t, err)
	final = findLeg(t, resp.Rounds, 1, 1, 1)
	require.NotNil(t, final.HomeTeamID)
	assert.Equal(t, seeds[0], *final.HomeTeamID)
	require.NotNil(t, final.AwayTeamID)
	assert.Equal(t, seeds[3], *final.AwayTeamID)

	// Closing the final finishes the tournament.
	_, err = svc.UpdateLeg(final.ID, models.UpdateLegRequest{HomeGoals: intPtr(1), AwayGoals: intPtr(0)})
	require.NoError(t, err)
	_, err = svc.CloseSeries(final.ID, models.CloseSeriesRequest{})
	require.NoError(t, err)

	tournament, err = NewTournamentService(db).GetTournamentByID(tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseFinished, tournament.Phase)
}

func TestCloseSeriesGuards(t *testing.T) {
	_, svc, tournament, seeds := bracketFixture(t, 4)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds})
	require.NoError(t, err)

	sf1 := findLeg(t, resp.Rounds, 0, 1, 1)
	final := findLeg(t, resp.Rounds, 1, 1, 1)

	// Goals missing.
	_, err = svc.CloseSeries(sf1.ID, models.CloseSeriesRequest{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	// Teams still missing on the final.
	_, err = svc.CloseSeries(final.ID, models.CloseSeriesRequest{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	_, err = svc.UpdateLeg(final.ID, models.UpdateLegRequest{HomeGoals: intPtr(1)})
	assert.True(t, apperrors.IsKind(err, apperrors.KindState))

	_, err = svc.UpdateLeg(sf1.ID, models.UpdateLegRequest{HomeGoals: intPtr(2), AwayGoals: intPtr(1)})
	require.NoError(t, err)
	_, err = svc.CloseSeries(sf1.ID, models.CloseSeriesRequest{})
	require.NoError(t, err)

	// Decided series reject edits and a second close.
	_, err = svc.CloseSeries(sf1.ID, models.CloseSeriesRequest{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	_, err = svc.UpdateLeg(sf1.ID, models.UpdateLegRequest{HomeGoals: intPtr(5)})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestCloseSeriesTiedSingleLegNeedsPenalties(t *testing.T) {
	_, svc, tournament, seeds := bracketFixture(t, 2)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds})
	require.NoError(t, err)
	final := findLeg(t, resp.Rounds, 0, 1, 1)

	_, err = svc.UpdateLeg(final.ID, models.UpdateLegRequest{HomeGoals: intPtr(1), AwayGoals: intPtr(1)})
	require.NoError(t, err)

	_, err = svc.CloseSeries(final.ID, models.CloseSeriesRequest{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	_, err = svc.CloseSeries(final.ID, models.CloseSeriesRequest{HomePens: intPtr(3), AwayPens: intPtr(3)})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	closed, err := svc.CloseSeries(final.ID, models.CloseSeriesRequest{HomePens: intPtr(5), AwayPens: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, models.DecidedByPenalties, closed.DecidedBy)
	require.NotNil(t, closed.WinnerID)
	assert.Equal(t, seeds[0], *closed.WinnerID)
	require.NotNil(t, closed.HomePens)
	assert.Equal(t, 5, *closed.HomePens)
}

func TestCloseSeriesTwoLegsAwayGoals(t *testing.T) {
	_, svc, tournament, seeds := bracketFixture(t, 2)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{
		TeamIDs:   seeds,
		RoundTrip: boolPtr(true),
		AwayGoals: boolPtr(true),
	})
	require.NoError(t, err)

	leg1 := findLeg(t, resp.Rounds, 0, 1, 1)
	leg2 := findLeg(t, resp.Rounds, 0, 1, 2)

	// Leg 2 swaps the sides and lands one week after leg 1.
	require.NotNil(t, leg2.HomeTeamID)
	assert.Equal(t, seeds[1], *leg2.HomeTeamID)
	assert.Equal(t, seeds[0], *leg2.AwayTeamID)
	require.NotNil(t, leg1.Date)
	require.NotNil(t, leg2.Date)
	assert.True(t, leg2.Date.Equal(leg1.Date.AddDate(0, 0, 7)))

	// 2-1 at home, 0-1 away: aggregate 2-2, the original away side
	// scored away and the home side did not.
	_, err = svc.UpdateLeg(leg1.ID, models.UpdateLegRequest{HomeGoals: intPtr(2), AwayGoals: intPtr(1)})
	require.NoError(t, err)
	_, err = svc.UpdateLeg(leg2.ID, models.UpdateLegRequest{HomeGoals: intPtr(1), AwayGoals: intPtr(0)})
	require.NoError(t, err)

	closed, err := svc.CloseSeries(leg1.ID, models.CloseSeriesRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.DecidedByAwayGoals, closed.DecidedBy)
	require.NotNil(t, closed.WinnerID)
	assert.Equal(t, seeds[1], *closed.WinnerID)
}

func TestCloseSeriesTwoLegsPenalties(t *testing.T) {
	_, svc, tournament, seeds := bracketFixture(t, 2)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{
		TeamIDs:   seeds,
		RoundTrip: boolPtr(true),
	})
	require.NoError(t, err)

	leg1 := findLeg(t, resp.Rounds, 0, 1, 1)
	leg2 := findLeg(t, resp.Rounds, 0, 1, 2)

	// Each side wins 1-0 at home; no away-goals rule on this round.
	_, err = svc.UpdateLeg(leg1.ID, models.UpdateLegRequest{HomeGoals: intPtr(1), AwayGoals: intPtr(0)})
	require.NoError(t, err)
	_, err = svc.UpdateLeg(leg2.ID, models.UpdateLegRequest{HomeGoals: intPtr(1), AwayGoals: intPtr(0)})
	require.NoError(t, err)

	// Penalty scores are taken in leg 2 orientation, where the original
	// away team is at home.
	closed, err := svc.CloseSeries(leg2.ID, models.CloseSeriesRequest{HomePens: intPtr(4), AwayPens: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, models.DecidedByPenalties, closed.DecidedBy)
	require.NotNil(t, closed.WinnerID)
	assert.Equal(t, seeds[1], *closed.WinnerID)

	resp, err = svc.GetBracket(tournament.ID)
	require.NoError(t, err)
	leg2 = findLeg(t, resp.Rounds, 0, 1, 2)
	require.NotNil(t, leg2.HomePens)
	assert.Equal(t, 4, *leg2.HomePens)
	assert.Equal(t, 3, *leg2.AwayPens)
}

func TestCloseSeriesAutoResolvesDownstreamBye(t *testing.T) {
	db, svc, tournament, seeds := bracketFixture(t, 6)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds})
	require.NoError(t, err)

	// Six seeds on a bracket of 8: quarterfinal 4 is dead, so the
	// winner of quarterfinal 3 has nobody left to meet in semifinal 2.
	qf3 := findLeg(t, resp.Rounds, 0, 3, 1)
	_, err = svc.UpdateLeg(qf3.ID, models.UpdateLegRequest{HomeGoals: intPtr(2), AwayGoals: intPtr(0)})
	require.NoError(t, err)
	_, err = svc.CloseSeries(qf3.ID, models.CloseSeriesRequest{})
	require.NoError(t, err)

	resp, err = svc.GetBracket(tournament.ID)
	require.NoError(t, err)
	sf2 := findLeg(t, resp.Rounds, 1, 2, 1)
	assert.Equal(t, models.SeriesDecided, sf2.Status)
	assert.Equal(t, models.DecidedByBye, sf2.DecidedBy)
	require.NotNil(t, sf2.WinnerID)
	assert.Equal(t, seeds[4], *sf2.WinnerID)
	final := findLeg(t, resp.Rounds, 2, 1, 1)
	require.NotNil(t, final.AwayTeamID)
	assert.Equal(t, seeds[4], *final.AwayTeamID)

	// Undoing the quarterfinal unwinds the bye it caused.
	_, err = svc.UndoSeries(qf3.ID)
	require.NoError(t, err)
	resp, err = svc.GetBracket(tournament.ID)
	require.NoError(t, err)
	sf2 = findLeg(t, resp.Rounds, 1, 2, 1)
	assert.Equal(t, models.SeriesScheduled, sf2.Status)
	assert.Nil(t, sf2.WinnerID)
	assert.Nil(t, sf2.HomeTeamID)
	assert.Nil(t, findLeg(t, resp.Rounds, 2, 1, 1).AwayTeamID)

	// With the bye auto-resolved the bracket runs to completion.
	for _, m := range []struct {
		round, pos int
	}{{0, 1}, {0, 2}, {0, 3}, {1, 1}, {2, 1}} {
		leg := findLeg(t, resp.Rounds, m.round, m.pos, 1)
		_, err = svc.UpdateLeg(leg.ID, models.UpdateLegRequest{HomeGoals: intPtr(1), AwayGoals: intPtr(0)})
		require.NoError(t, err)
		_, err = svc.CloseSeries(leg.ID, models.CloseSeriesRequest{})
		require.NoError(t, err)
		resp, err = svc.GetBracket(tournament.ID)
		require.NoError(t, err)
	}

	tournament, err = NewTournamentService(db).GetTournamentByID(tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseFinished, tournament.Phase)
}

func TestUndoSeriesClearsPropagation(t *testing.T) {
	db, svc, tournament, seeds := bracketFixture(t, 4)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds})
	require.NoError(t, err)
	sf1 := findLeg(t, resp.Rounds, 0, 1, 1)
	final := findLeg(t, resp.Rounds, 1, 1, 1)

	_, err = svc.UndoSeries(sf1.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindState))

	_, err = svc.UpdateLeg(sf1.ID, models.UpdateLegRequest{HomeGoals: intPtr(2), AwayGoals: intPtr(0)})
	require.NoError(t, err)
	_, err = svc.CloseSeries(sf1.ID, models.CloseSeriesRequest{})
	require.NoError(t, err)

	undone, err := svc.UndoSeries(sf1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SeriesScheduled, undone.Status)
	assert.Nil(t, undone.WinnerID)
	assert.Empty(t, undone.DecidedBy)
	// The recorded goals survive; only the decision is reverted.
	require.NotNil(t, undone.HomeGoals)
	assert.Equal(t, 2, *undone.HomeGoals)

	resp, err = svc.GetBracket(tournament.ID)
	require.NoError(t, err)
	assert.Nil(t, findLeg(t, resp.Rounds, 1, 1, 1).HomeTeamID)

	// A slot reassigned since the close is left alone by the undo.
	_, err = svc.CloseSeries(sf1.ID, models.CloseSeriesRequest{})
	require.NoError(t, err)
	err = db.Model(&models.BracketMatch{}).Where("id = ?", final.ID).
		Update("home_team_id", seeds[2]).Error
	require.NoError(t, err)

	_, err = svc.UndoSeries(sf1.ID)
	require.NoError(t, err)
	resp, err = svc.GetBracket(tournament.ID)
	require.NoError(t, err)
	final = findLeg(t, resp.Rounds, 1, 1, 1)
	require.NotNil(t, final.HomeTeamID)
	assert.Equal(t, seeds[2], *final.HomeTeamID)
}

func TestUndoFinalReopensTournament(t *testing.T) {
	db, svc, tournament, seeds := bracketFixture(t, 2)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds})
	require.NoError(t, err)
	final := findLeg(t, resp.Rounds, 0, 1, 1)

	_, err = svc.UpdateLeg(final.ID, models.UpdateLegRequest{HomeGoals: intPtr(3), AwayGoals: intPtr(1)})
	require.NoError(t, err)
	_, err = svc.CloseSeries(final.ID, models.CloseSeriesRequest{})
	require.NoError(t, err)

	tsvc := NewTournamentService(db)
	tournament, err = tsvc.GetTournamentByID(tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseFinished, tournament.Phase)

	_, err = svc.UndoSeries(final.ID)
	require.NoError(t, err)

	tournament, err = tsvc.GetTournamentByID(tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhasePlayoffs, tournament.Phase)
}

func TestAssignSlot(t *testing.T) {
	_, svc, tournament, seeds := bracketFixture(t, 5)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{TeamIDs: seeds})
	require.NoError(t, err)

	qf1 := findLeg(t, resp.Rounds, 0, 1, 1)
	qf3 := findLeg(t, resp.Rounds, 0, 3, 1)
	qf4 := findLeg(t, resp.Rounds, 0, 4, 1)

	// A dead series can receive a late entry.
	updated, err := svc.AssignSlot(qf4.ID, models.AssignSlotRequest{Slot: models.SlotHome, TeamID: seeds[1]})
	require.NoError(t, err)
	require.NotNil(t, updated.HomeTeamID)
	assert.Equal(t, seeds[1], *updated.HomeTeamID)

	// Occupied slots and foreign teams are rejected.
	_, err = svc.AssignSlot(qf1.ID, models.AssignSlotRequest{Slot: models.SlotHome, TeamID: seeds[4]})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	_, err = svc.AssignSlot(qf4.ID, models.AssignSlotRequest{Slot: models.SlotAway, TeamID: 9999})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	// Filling the empty slot of a bye implicitly undoes the decision.
	updated, err = svc.AssignSlot(qf3.ID, models.AssignSlotRequest{Slot: models.SlotAway, TeamID: seeds[3]})
	require.NoError(t, err)
	assert.Equal(t, models.SeriesScheduled, updated.Status)
	assert.Nil(t, updated.WinnerID)
	assert.Empty(t, updated.DecidedBy)
	require.NotNil(t, updated.HomeTeamID)
	assert.Equal(t, seeds[4], *updated.HomeTeamID)
	assert.Equal(t, seeds[3], *updated.AwayTeamID)
}

func TestAssignSlotLegOneOnly(t *testing.T) {
	_, svc, tournament, seeds := bracketFixture(t, 2)

	resp, err := svc.GenerateBracket(tournament.ID, models.GenerateBracketRequest{
		TeamIDs:   seeds,
		RoundTrip: boolPtr(true),
	})
	require.NoError(t, err)
	leg2 := findLeg(t, resp.Rounds, 0, 1, 2)

	_, err = svc.AssignSlot(leg2.ID, models.AssignSlotRequest{Slot: models.SlotHome, TeamID: seeds[0]})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
