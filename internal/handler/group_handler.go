package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

// GroupHandler exposes classroom group endpoints.
type GroupHandler struct {
	groups *service.GroupService
}

// NewGroupHandler constructs a GroupHandler.
func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// List godoc
// @Summary List groups within the caller's scope
// @Tags groups
// @Security BearerAuth
// @Produce json
// @Param campus_id query string false "filter by campus"
// @Success 200 {object} response.Envelope{data=[]models.GroupDetail}
// @Router /groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	filter := models.GroupFilter{
		CampusID:  c.Query("campus_id"),
		Search:    c.Query("search"),
		Active:    queryBool(c, "active"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "page_size", 20),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	groups, pagination, err := h.groups.List(c.Request.Context(), callerScope(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, pagination)
}

// Get godoc
// @Summary Fetch one group
// @Tags groups
// @Security BearerAuth
// @Produce json
// @Param id path string true "group id"
// @Success 200 {object} response.Envelope{data=models.GroupDetail}
// @Failure 404 {object} response.Envelope
// @Router /groups/{id} [get]
func (h *GroupHandler) Get(c *gin.Context) {
	group, err := h.groups.Get(c.Request.Context(), callerScope(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group, nil)
}

// Create godoc
// @Summary Open a group at a campus
// @Tags groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.CreateGroupRequest true "group fields"
// @Success 201 {object} response.Envelope{data=models.GroupDetail}
// @Router /groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	group, err := h.groups.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, group)
}

// Update godoc
// @Summary Edit a group
// @Tags groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "group id"
// @Param payload body service.UpdateGroupRequest true "changed fields"
// @Success 200 {object} response.Envelope{data=models.GroupDetail}
// @Router /groups/{id} [put]
func (h *GroupHandler) Update(c *gin.Context) {
	var req service.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	group, err := h.groups.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group, nil)
}

// Deactivate godoc
// @Summary Deactivate a group
// @Tags groups
// @Security BearerAuth
// @Param id path string true "group id"
// @Success 204
// @Router /groups/{id} [delete]
func (h *GroupHandler) Deactivate(c *gin.Context) {
	if err := h.groups.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
