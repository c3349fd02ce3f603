package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/dto"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

type summaryService interface {
	Summarize(ctx context.Context, scope models.AccessScope, query service.SummaryQuery) (*dto.SummaryResponse, bool, error)
}

// SummaryHandler exposes the report completeness summary.
type SummaryHandler struct {
	summaries summaryService
}

// NewSummaryHandler constructs a SummaryHandler.
func NewSummaryHandler(summaries summaryService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

// Summary godoc
// @Summary Per-group report completeness for one date
// @Description Every active student in scope appears once. strict=true also
// @Description requires a behavior value for a report to count as complete.
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param date query string false "date (YYYY-MM-DD), defaults to today"
// @Param group_id query string false "restrict to one group"
// @Param campus_id query string false "restrict to one campus"
// @Param strict query bool false "strict completeness"
// @Success 200 {object} response.Envelope{data=dto.SummaryResponse}
// @Router /reports/summary [get]
func (h *SummaryHandler) Summary(c *gin.Context) {
	query := service.SummaryQuery{
		Date:     c.Query("date"),
		GroupID:  c.Query("group_id"),
		CampusID: c.Query("campus_id"),
		Strict:   c.Query("strict") == "true",
	}
	summary, cached, err := h.summaries.Summarize(c.Request.Context(), callerScope(c), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil, map[string]interface{}{"cache_hit": cached})
}
