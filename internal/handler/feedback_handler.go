package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

// FeedbackHandler exposes feedback endpoints.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler constructs a FeedbackHandler.
func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Create godoc
// @Summary Submit feedback
// @Tags feedback
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.CreateFeedbackRequest true "feedback fields"
// @Success 201 {object} response.Envelope{data=models.Feedback}
// @Router /feedback [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req service.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	entry, err := h.feedback.Create(c.Request.Context(), callerID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// List godoc
// @Summary List feedback entries
// @Tags feedback
// @Security BearerAuth
// @Produce json
// @Param student_id query string false "filter by student"
// @Success 200 {object} response.Envelope{data=[]models.Feedback}
// @Router /feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	filter := models.FeedbackFilter{
		StudentID: c.Query("student_id"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "page_size", 20),
	}
	entries, pagination, err := h.feedback.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}
