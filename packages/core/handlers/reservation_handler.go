package handlers

import (
	"net/http"
	"strconv"

	"core/models"
	"core/services"
	"core/utils"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationService *services.ReservationService
}

func NewReservationHandler(reservationService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
	}
}

// CreateReservation creates a new reservation
// @Summary Create a reservation
// @Description Book a field for a time window; rejected if the date is closed or the window overlaps any occupation on the field or its peers
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservation body models.CreateReservationRequest true "Reservation data"
// @Success 201 {object} models.Reservation
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	reservation, err := h.reservationService.CreateReservation(req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetReservation retrieves a reservation by ID
// @Summary Get reservation by ID
// @Tags reservations
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} models.Reservation
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservationByID(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// GetReservationByCode retrieves a reservation by its human-readable code
// @Summary Get reservation by code
// @Tags reservations
// @Produce json
// @Param code path string true "Reservation code"
// @Success 200 {object} models.Reservation
// @Failure 404 {object} map[string]string
// @Router /reservations/code/{code} [get]
func (h *ReservationHandler) GetReservationByCode(c *gin.Context) {
	code := c.Param("code")

	reservation, err := h.reservationService.GetReservationByCode(code)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// GetReservations retrieves reservations with optional filters and pagination
// @Summary List reservations
// @Tags reservations
// @Produce json
// @Param field_id query int false "Filter by field"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedReservationsResponse
// @Failure 400 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filters := services.ReservationFilters{
		Page:     page,
		PageSize: pageSize,
	}

	if raw := c.Query("field_id"); raw != "" {
		fieldID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid field_id parameter",
			})
			return
		}
		id := uint(fieldID)
		filters.FieldID = &id
	}
	if raw := c.Query("date"); raw != "" {
		date, err := utils.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		filters.Date = &date
	}
	if raw := c.Query("status"); raw != "" {
		filters.Status = &raw
	}

	reservations, err := h.reservationService.GetReservations(filters)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// UpdateReservationStatus changes the status of a reservation
// @Summary Update reservation status
// @Description Move a reservation through its lifecycle; cancelled is terminal
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param status body models.UpdateReservationStatusRequest true "New status"
// @Success 200 {object} models.Reservation
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/status [put]
func (h *ReservationHandler) UpdateReservationStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	reservation, err := h.reservationService.UpdateStatus(id, req.Status)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// CancelReservation cancels a reservation
// @Summary Cancel a reservation
// @Tags reservations
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} models.Reservation
// @Failure 404 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.CancelReservation(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation removes a historical reservation row
// @Summary Delete a reservation
// @Description Permanently remove a cancelled or completed reservation
// @Tags reservations
// @Param id path int true "Reservation ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reservationService.DeleteReservation(id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
