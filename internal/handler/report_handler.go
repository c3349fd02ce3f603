package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/dto"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

type reportService interface {
	Upsert(ctx context.Context, scope models.AccessScope, req service.UpsertReportRequest) (*models.DailyReport, error)
	Get(ctx context.Context, scope models.AccessScope, id string) (*models.DailyReportDetail, error)
	List(ctx context.Context, scope models.AccessScope, filter models.DailyReportFilter) ([]models.DailyReportDetail, *models.Pagination, error)
	History(ctx context.Context, scope models.AccessScope, studentID, from, to string) ([]models.DailyReport, error)
	Delete(ctx context.Context, id string) error
}

type reportSender interface {
	SendReport(ctx context.Context, scope models.AccessScope, reportID string) (*dto.SendReportResponse, error)
}

// ReportHandler exposes daily-report endpoints.
type ReportHandler struct {
	reports       reportService
	notifications reportSender
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(reports reportService, notifications reportSender) *ReportHandler {
	return &ReportHandler{reports: reports, notifications: notifications}
}

// Upsert godoc
// @Summary Create or update the report for a student and date
// @Description Repeated submissions for the same student and date update the
// @Description single existing row. Omitted fields keep their stored values.
// @Tags reports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.UpsertReportRequest true "report fields"
// @Success 200 {object} response.Envelope{data=models.DailyReport}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) Upsert(c *gin.Context) {
	var req service.UpsertReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	report, err := h.reports.Upsert(c.Request.Context(), callerScope(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Get godoc
// @Summary Fetch one report
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param id path string true "report id"
// @Success 200 {object} response.Envelope{data=models.DailyReportDetail}
// @Failure 404 {object} response.Envelope
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.reports.Get(c.Request.Context(), callerScope(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// List godoc
// @Summary List reports within the caller's scope
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param date query string false "exact date (YYYY-MM-DD)"
// @Param date_from query string false "range start"
// @Param date_to query string false "range end"
// @Param student_id query string false "filter by student"
// @Param group_id query string false "filter by group"
// @Param campus_id query string false "filter by campus"
// @Success 200 {object} response.Envelope{data=[]models.DailyReportDetail}
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	filter := models.DailyReportFilter{
		Date:      c.Query("date"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		StudentID: c.Query("student_id"),
		GroupID:   c.Query("group_id"),
		CampusID:  c.Query("campus_id"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "page_size", 50),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	reports, pagination, err := h.reports.List(c.Request.Context(), callerScope(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, pagination)
}

// History godoc
// @Summary List a student's reports over a date range
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param id path string true "student id"
// @Param from query string false "range start"
// @Param to query string false "range end"
// @Success 200 {object} response.Envelope{data=[]models.DailyReport}
// @Router /students/{id}/reports [get]
func (h *ReportHandler) History(c *gin.Context) {
	reports, err := h.reports.History(c.Request.Context(), callerScope(c), c.Param("id"), c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// Delete godoc
// @Summary Delete a report
// @Tags reports
// @Security BearerAuth
// @Param id path string true "report id"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	if err := h.reports.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Send godoc
// @Summary Send a report summary to the student's guardians
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param id path string true "report id"
// @Success 200 {object} response.Envelope{data=dto.SendReportResponse}
// @Failure 404 {object} response.Envelope
// @Router /reports/{id}/send [post]
func (h *ReportHandler) Send(c *gin.Context) {
	result, err := h.notifications.SendReport(c.Request.Context(), callerScope(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
