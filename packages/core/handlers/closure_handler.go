package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type ClosureHandler struct {
	closureService *services.ClosureService
}

func NewClosureHandler(closureService *services.ClosureService) *ClosureHandler {
	return &ClosureHandler{
		closureService: closureService,
	}
}

// CloseDate marks a date closed for reservations
// @Summary Close a date
// @Description Close a calendar date. Without force, existing reservations on the date are returned as conflicts (409) and nothing is persisted; with force, the closure and all cancellations commit atomically
// @Tags closures
// @Accept json
// @Produce json
// @Param closure body models.CloseDateRequest true "Closure data"
// @Success 200 {object} models.CloseDateResult
// @Success 409 {object} models.CloseDateResult
// @Failure 400 {object} map[string]string
// @Router /closures [post]
func (h *ClosureHandler) CloseDate(c *gin.Context) {
	var req models.CloseDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.closureService.CloseDate(req.Date, req.Reason, req.Force)
	if err != nil {
		handleError(c, err)
		return
	}

	if !result.Closed {
		c.JSON(http.StatusConflict, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetClosures lists all closed dates
// @Summary List closures
// @Tags closures
// @Produce json
// @Success 200 {array} models.ClosedDate
// @Router /closures [get]
func (h *ClosureHandler) GetClosures(c *gin.Context) {
	closures, err := h.closureService.GetClosures()
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, closures)
}

// ReopenDate removes a closure
// @Summary Reopen a date
// @Tags closures
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /closures/{date} [delete]
func (h *ClosureHandler) ReopenDate(c *gin.Context) {
	date := c.Param("date")

	if err := h.closureService.ReopenDate(date); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
