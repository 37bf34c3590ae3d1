package handlers

import (
	"net/http"
	"strconv"

	"core/models"
	"core/services"
	"core/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityService *services.AvailabilityService
}

func NewAvailabilityHandler(availabilityService *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityService: availabilityService,
	}
}

// CheckAvailability checks whether a time window is free on a field
// @Summary Check availability
// @Description Check a (field, date, window) against every occupation on the field and its peers; touching endpoints do not conflict
// @Tags availability
// @Produce json
// @Param field_id query int true "Field ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Start time (HH:MM)"
// @Param end_time query string true "End time (HH:MM)"
// @Param exclude_reservation_id query int false "Reservation to ignore (self-exclusion during update)"
// @Success 200 {object} models.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	var req models.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters: " + err.Error(),
		})
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	startTime, err := utils.ParseClock(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	endTime, err := utils.ParseClock(req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	if startTime >= endTime {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "start_time must be before end_time",
		})
		return
	}

	var excludeID uint
	if raw := c.Query("exclude_reservation_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid exclude_reservation_id parameter",
			})
			return
		}
		excludeID = uint(parsed)
	}

	conflict, conflicts, err := h.availabilityService.HasConflict(req.FieldID, date, startTime, endTime, excludeID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AvailabilityResponse{
		Available: !conflict,
		Conflicts: conflicts,
	})
}

// GetWeekSchedule returns every block on a field over 7 days
// @Summary Get week schedule
// @Description Calendar view: all blocks on the field and its peers across 7 consecutive dates, tagged with a coarse status
// @Tags availability
// @Produce json
// @Param id path int true "Field ID"
// @Param from query string true "First date of the week (YYYY-MM-DD)"
// @Success 200 {object} models.WeekScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /fields/{id}/schedule [get]
func (h *AvailabilityHandler) GetWeekSchedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	from, err := utils.ParseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	schedule, err := h.availabilityService.WeekSchedule(id, from)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}
