package handlers

import (
	"net/http"
	"strconv"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type AcademyHandler struct {
	academyService *services.AcademyService
}

func NewAcademyHandler(academyService *services.AcademyService) *AcademyHandler {
	return &AcademyHandler{
		academyService: academyService,
	}
}

// CreateSession creates a weekly recurring academy session
// @Summary Create an academy session
// @Description Register a weekly training block; the window must not overlap another session on the field or its peers
// @Tags academy
// @Accept json
// @Produce json
// @Param session body models.CreateAcademySessionRequest true "Session data"
// @Success 201 {object} models.AcademySession
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Router /academy/sessions [post]
func (h *AcademyHandler) CreateSession(c *gin.Context) {
	var req models.CreateAcademySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	session, err := h.academyService.CreateSession(req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetSession retrieves an academy session by ID
// @Summary Get academy session by ID
// @Tags academy
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} models.AcademySession
// @Failure 404 {object} map[string]string
// @Router /academy/sessions/{id} [get]
func (h *AcademyHandler) GetSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.academyService.GetSessionByID(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetSessions lists academy sessions
// @Summary List academy sessions
// @Tags academy
// @Produce json
// @Param weekday query int false "Filter by weekday (0 = Sunday)"
// @Success 200 {array} models.AcademySession
// @Failure 400 {object} map[string]string
// @Router /academy/sessions [get]
func (h *AcademyHandler) GetSessions(c *gin.Context) {
	var weekday *int
	if raw := c.Query("weekday"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 6 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid weekday parameter",
			})
			return
		}
		weekday = &parsed
	}

	sessions, err := h.academyService.GetSessions(weekday)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// UpdateSession updates an academy session
// @Summary Update an academy session
// @Tags academy
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param session body models.UpdateAcademySessionRequest true "Fields to update"
// @Success 200 {object} models.AcademySession
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Router /academy/sessions/{id} [put]
func (h *AcademyHandler) UpdateSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateAcademySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	session, err := h.academyService.UpdateSession(id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// DeleteSession deletes an academy session
// @Summary Delete an academy session
// @Tags academy
// @Param id path int true "Session ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /academy/sessions/{id} [delete]
func (h *AcademyHandler) DeleteSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.academyService.DeleteSession(id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
