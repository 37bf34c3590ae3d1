package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type BracketHandler struct {
	bracketService *services.BracketService
}

func NewBracketHandler(bracketService *services.BracketService) *BracketHandler {
	return &BracketHandler{
		bracketService: bracketService,
	}
}

// GenerateBracket builds the knockout phase of a tournament
// @Summary Generate a bracket
// @Description Seed a single-elimination bracket from the standings top-K (or an explicit seed list), wire winner propagation, auto-advance byes and schedule every leg; moves the tournament into playoffs
// @Tags brackets
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param bracket body models.GenerateBracketRequest false "Bracket options"
// @Success 201 {object} models.BracketResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /tournaments/{id}/bracket [post]
func (h *BracketHandler) GenerateBracket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.GenerateBracketRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request body: " + err.Error(),
			})
			return
		}
	}

	bracket, err := h.bracketService.GenerateBracket(id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bracket)
}

// GetBracket retrieves the bracket tree of a tournament
// @Summary Get bracket
// @Tags brackets
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.BracketResponse
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/bracket [get]
func (h *BracketHandler) GetBracket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bracket, err := h.bracketService.GetBracket(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, bracket)
}

// UpdateLeg records goals, penalties or a schedule change on one leg
// @Summary Update a bracket leg
// @Description Edit a single leg of an undecided series (goals, penalty scores, date, time, field)
// @Tags brackets
// @Accept json
// @Produce json
// @Param matchId path int true "Bracket match ID"
// @Param leg body models.UpdateLegRequest true "Leg data"
// @Success 200 {object} models.BracketMatch
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Router /bracket-matches/{matchId} [put]
func (h *BracketHandler) UpdateLeg(c *gin.Context) {
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}

	var req models.UpdateLegRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	match, err := h.bracketService.UpdateLeg(matchID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// CloseSeries decides a series and propagates the winner
// @Summary Close a series
// @Description Decide a series from its leg results (aggregate, away goals, penalties) and propagate the winner into the next round; deciding the final finishes the tournament
// @Tags brackets
// @Accept json
// @Produce json
// @Param matchId path int true "Bracket match ID (any leg of the series)"
// @Param decision body models.CloseSeriesRequest false "Penalty scores when the series is tied"
// @Success 200 {object} models.BracketMatch
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Router /bracket-matches/{matchId}/close [post]
func (h *BracketHandler) CloseSeries(c *gin.Context) {
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}

	var req models.CloseSeriesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request body: " + err.Error(),
			})
			return
		}
	}

	match, err := h.bracketService.CloseSeries(matchID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// UndoSeries reverts a decided series
// @Summary Undo a series decision
// @Description Revert a series to scheduled and clear whatever its decision propagated downstream; undoing the final reopens the playoffs
// @Tags brackets
// @Produce json
// @Param matchId path int true "Bracket match ID"
// @Success 200 {object} models.BracketMatch
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bracket-matches/{matchId}/undo [post]
func (h *BracketHandler) UndoSeries(c *gin.Context) {
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}

	match, err := h.bracketService.UndoSeries(matchID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// AssignSlot places a team into an empty slot of a series
// @Summary Assign a bracket slot
// @Description Place a team into a currently empty home or away slot; a decided series is implicitly undone first
// @Tags brackets
// @Accept json
// @Produce json
// @Param matchId path int true "Bracket match ID (leg 1)"
// @Param assignment body models.AssignSlotRequest true "Slot assignment"
// @Success 200 {object} models.BracketMatch
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Router /bracket-matches/{matchId}/slot [put]
func (h *BracketHandler) AssignSlot(c *gin.Context) {
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}

	var req models.AssignSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	match, err := h.bracketService.AssignSlot(matchID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}
