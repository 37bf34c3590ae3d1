package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"core/apperrors"

	"github.com/gin-gonic/gin"
)

// handleError maps a domain error to an HTTP status in one place.
// Conflict payloads keep their structured details so the client can
// offer a force/override re-submission.
func handleError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindState:
		status = http.StatusUnprocessableEntity
	}

	body := gin.H{"error": appErr.Message}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	c.JSON(status, body)
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idParam := c.Param(name)
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads page/pageSize query parameters with the usual
// defaults and a hard cap.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return page, pageSize
}
