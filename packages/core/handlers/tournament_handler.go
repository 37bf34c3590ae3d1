package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(tournamentService *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
	}
}

// CreateTournament creates a tournament with its weekly agenda
// @Summary Create a tournament
// @Description Create a tournament with weekday, time franjas and fields; the agenda is checked against other tournaments and academy sessions on peer fields
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournament body models.CreateTournamentRequest true "Tournament data"
// @Success 201 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Router /tournaments [post]
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	var req models.CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	tournament, err := h.tournamentService.CreateTournament(req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tournament)
}

// GetTournament retrieves a tournament by ID
// @Summary Get tournament by ID
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.Tournament
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [get]
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tournament, err := h.tournamentService.GetTournamentByID(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// GetTournaments lists tournaments with pagination and filters
// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Param phase query string false "Filter by phase"
// @Param type query string false "Filter by type"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedTournamentsResponse
// @Router /tournaments [get]
func (h *TournamentHandler) GetTournaments(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var phase, tournamentType *string
	if raw := c.Query("phase"); raw != "" {
		phase = &raw
	}
	if raw := c.Query("type"); raw != "" {
		tournamentType = &raw
	}

	tournaments, err := h.tournamentService.GetAllTournaments(page, pageSize, phase, tournamentType)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournaments)
}

// UpdateTournament updates tournament metadata
// @Summary Update a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param tournament body models.UpdateTournamentRequest true "Fields to update"
// @Success 200 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [put]
func (h *TournamentHandler) UpdateTournament(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	tournament, err := h.tournamentService.UpdateTournament(id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// DeleteTournament deletes a tournament and everything it owns
// @Summary Delete a tournament
// @Tags tournaments
// @Param id path int true "Tournament ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [delete]
func (h *TournamentHandler) DeleteTournament(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tournamentService.DeleteTournament(id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddTeam registers a team in a tournament
// @Summary Register a team
// @Description Register a team; closed once fixtures exist. Team names are unique per tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param team body models.CreateTeamRequest true "Team data"
// @Success 201 {object} models.Team
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /tournaments/{id}/teams [post]
func (h *TournamentHandler) AddTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	team, err := h.tournamentService.AddTeam(id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// GetTeams lists the teams of a tournament
// @Summary List teams
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {array} models.Team
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/teams [get]
func (h *TournamentHandler) GetTeams(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	teams, err := h.tournamentService.GetTeams(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// RemoveTeam unregisters a team from a tournament
// @Summary Remove a team
// @Tags tournaments
// @Param id path int true "Tournament ID"
// @Param teamId path int true "Team ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /tournaments/{id}/teams/{teamId} [delete]
func (h *TournamentHandler) RemoveTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "teamId")
	if !ok {
		return
	}

	if err := h.tournamentService.RemoveTeam(id, teamID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateFixtures builds the league schedule of a tournament
// @Summary Generate fixtures
// @Description Generate the full round-robin schedule and assign every match to a weekly agenda slot; can only run once per tournament
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 201 {array} models.Matchday
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /tournaments/{id}/fixtures [post]
func (h *TournamentHandler) GenerateFixtures(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	matchdays, err := h.tournamentService.GenerateFixtures(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, matchdays)
}

// GetMatchdays lists the matchdays of a tournament with their matches
// @Summary List matchdays
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {array} models.Matchday
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/matchdays [get]
func (h *TournamentHandler) GetMatchdays(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	matchdays, err := h.tournamentService.GetMatchdays(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, matchdays)
}

// GetStandings computes the league table of a tournament
// @Summary Get standings
// @Description League table: 3 points per win, 1 per draw; ordered by points, goal difference, goals for
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {array} models.TeamStanding
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/standings [get]
func (h *TournamentHandler) GetStandings(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	standings, err := h.tournamentService.GetStandings(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, standings)
}

// UpdateMatchResult records the result of a league match
// @Summary Record a match result
// @Description Set the goals of a league match and mark it played in one operation
// @Tags tournaments
// @Accept json
// @Produce json
// @Param matchId path int true "League match ID"
// @Param result body models.UpdateMatchResultRequest true "Match result"
// @Success 200 {object} models.LeagueMatch
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{matchId}/result [put]
func (h *TournamentHandler) UpdateMatchResult(c *gin.Context) {
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}

	var req models.UpdateMatchResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	match, err := h.tournamentService.UpdateMatchResult(matchID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}
