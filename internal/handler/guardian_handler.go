package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

// GuardianHandler exposes guardian contact endpoints.
type GuardianHandler struct {
	guardians *service.GuardianService
}

// NewGuardianHandler constructs a GuardianHandler.
func NewGuardianHandler(guardians *service.GuardianService) *GuardianHandler {
	return &GuardianHandler{guardians: guardians}
}

// Create godoc
// @Summary Attach a guardian to a student
// @Tags guardians
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.CreateGuardianRequest true "guardian fields"
// @Success 201 {object} response.Envelope{data=models.Guardian}
// @Router /guardians [post]
func (h *GuardianHandler) Create(c *gin.Context) {
	var req service.CreateGuardianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	guardian, err := h.guardians.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, guardian)
}

// Update godoc
// @Summary Edit a guardian contact
// @Tags guardians
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "guardian id"
// @Param payload body service.UpdateGuardianRequest true "changed fields"
// @Success 200 {object} response.Envelope{data=models.Guardian}
// @Router /guardians/{id} [put]
func (h *GuardianHandler) Update(c *gin.Context) {
	var req service.UpdateGuardianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	guardian, err := h.guardians.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, guardian, nil)
}

// Delete godoc
// @Summary Remove a guardian contact
// @Tags guardians
// @Security BearerAuth
// @Param id path string true "guardian id"
// @Success 204
// @Router /guardians/{id} [delete]
func (h *GuardianHandler) Delete(c *gin.Context) {
	if err := h.guardians.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
