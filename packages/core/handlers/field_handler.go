package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type FieldHandler struct {
	fieldService *services.FieldService
}

func NewFieldHandler(fieldService *services.FieldService) *FieldHandler {
	return &FieldHandler{
		fieldService: fieldService,
	}
}

// CreateField creates a new field
// @Summary Create a field
// @Description Create a playable field (F5 or F7)
// @Tags fields
// @Accept json
// @Produce json
// @Param field body models.CreateFieldRequest true "Field data"
// @Success 201 {object} models.Field
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /fields [post]
func (h *FieldHandler) CreateField(c *gin.Context) {
	var req models.CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	field, err := h.fieldService.CreateField(req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, field)
}

// GetField retrieves a field by ID
// @Summary Get field by ID
// @Tags fields
// @Produce json
// @Param id path int true "Field ID"
// @Success 200 {object} models.Field
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /fields/{id} [get]
func (h *FieldHandler) GetField(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	field, err := h.fieldService.GetFieldByID(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, field)
}

// GetFields retrieves all fields
// @Summary List fields
// @Tags fields
// @Produce json
// @Param active query bool false "Only active fields"
// @Success 200 {array} models.Field
// @Failure 500 {object} map[string]string
// @Router /fields [get]
func (h *FieldHandler) GetFields(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "false") == "true"

	fields, err := h.fieldService.GetAllFields(activeOnly)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, fields)
}

// GetFieldPeers retrieves the peer set of a field
// @Summary Get peer fields
// @Description Get all fields whose occupancy blocks this field, including itself
// @Tags fields
// @Produce json
// @Param id path int true "Field ID"
// @Success 200 {array} int
// @Failure 404 {object} map[string]string
// @Router /fields/{id}/peers [get]
func (h *FieldHandler) GetFieldPeers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	peers, err := h.fieldService.PeersOf(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, peers)
}

// UpdateField updates a field
// @Summary Update a field
// @Tags fields
// @Accept json
// @Produce json
// @Param id path int true "Field ID"
// @Param field body models.UpdateFieldRequest true "Fields to update"
// @Success 200 {object} models.Field
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /fields/{id} [put]
func (h *FieldHandler) UpdateField(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	field, err := h.fieldService.UpdateField(id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, field)
}

// DeleteField deletes a field
// @Summary Delete a field
// @Tags fields
// @Param id path int true "Field ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /fields/{id} [delete]
func (h *FieldHandler) DeleteField(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.fieldService.DeleteField(id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateGroup creates a field group
// @Summary Create a field group
// @Description Create a named group of fields sharing physical space
// @Tags field-groups
// @Accept json
// @Produce json
// @Param group body models.CreateFieldGroupRequest true "Group data"
// @Success 201 {object} models.FieldGroup
// @Failure 400 {object} map[string]string
// @Router /field-groups [post]
func (h *FieldHandler) CreateGroup(c *gin.Context) {
	var req models.CreateFieldGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	group, err := h.fieldService.CreateGroup(req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// GetGroups retrieves all field groups
// @Summary List field groups
// @Tags field-groups
// @Produce json
// @Success 200 {array} models.FieldGroup
// @Router /field-groups [get]
func (h *FieldHandler) GetGroups(c *gin.Context) {
	groups, err := h.fieldService.GetAllGroups()
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

// GetGroup retrieves a field group by ID
// @Summary Get field group by ID
// @Tags field-groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} models.FieldGroup
// @Failure 404 {object} map[string]string
// @Router /field-groups/{id} [get]
func (h *FieldHandler) GetGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := h.fieldService.GetGroupByID(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// SetGroupMembers replaces the members of a field group
// @Summary Replace group members
// @Description Replace the whole member set of a group in one transaction
// @Tags field-groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param members body models.SetGroupMembersRequest true "Member field IDs"
// @Success 200 {object} models.FieldGroup
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /field-groups/{id}/members [put]
func (h *FieldHandler) SetGroupMembers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.SetGroupMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	group, err := h.fieldService.SetGroupMembers(id, req.FieldIDs)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// DeleteGroup deletes a field group
// @Summary Delete a field group
// @Tags field-groups
// @Param id path int true "Group ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /field-groups/{id} [delete]
func (h *FieldHandler) DeleteGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.fieldService.DeleteGroup(id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
