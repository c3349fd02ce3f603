package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

// CampusHandler exposes campus administration endpoints.
type CampusHandler struct {
	campuses *service.CampusService
}

// NewCampusHandler constructs a CampusHandler.
func NewCampusHandler(campuses *service.CampusService) *CampusHandler {
	return &CampusHandler{campuses: campuses}
}

// List godoc
// @Summary List campuses
// @Tags campuses
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.Campus}
// @Router /campuses [get]
func (h *CampusHandler) List(c *gin.Context) {
	filter := models.CampusFilter{
		Search:    c.Query("search"),
		Active:    queryBool(c, "active"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "page_size", 20),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	campuses, pagination, err := h.campuses.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campuses, pagination)
}

// Get godoc
// @Summary Fetch one campus
// @Tags campuses
// @Security BearerAuth
// @Produce json
// @Param id path string true "campus id"
// @Success 200 {object} response.Envelope{data=models.Campus}
// @Failure 404 {object} response.Envelope
// @Router /campuses/{id} [get]
func (h *CampusHandler) Get(c *gin.Context) {
	campus, err := h.campuses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campus, nil)
}

// Create godoc
// @Summary Register a campus
// @Tags campuses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.CreateCampusRequest true "campus fields"
// @Success 201 {object} response.Envelope{data=models.Campus}
// @Router /campuses [post]
func (h *CampusHandler) Create(c *gin.Context) {
	var req service.CreateCampusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	campus, err := h.campuses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, campus)
}

// Update godoc
// @Summary Edit a campus
// @Tags campuses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "campus id"
// @Param payload body service.UpdateCampusRequest true "changed fields"
// @Success 200 {object} response.Envelope{data=models.Campus}
// @Router /campuses/{id} [put]
func (h *CampusHandler) Update(c *gin.Context) {
	var req service.UpdateCampusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	campus, err := h.campuses.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campus, nil)
}

// Deactivate godoc
// @Summary Deactivate a campus
// @Tags campuses
// @Security BearerAuth
// @Param id path string true "campus id"
// @Success 204
// @Router /campuses/{id} [delete]
func (h *CampusHandler) Deactivate(c *gin.Context) {
	if err := h.campuses.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
