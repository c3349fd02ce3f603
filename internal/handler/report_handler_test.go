package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/dto"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/middleware"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

type reportServiceMock struct {
	upsertResp  *models.DailyReport
	upsertErr   error
	upsertScope models.AccessScope
	getResp     *models.DailyReportDetail
	getErr      error
	listResp    []models.DailyReportDetail
	listFilter  models.DailyReportFilter
	historyResp []models.DailyReport
	deleteErr   error
}

func (m *reportServiceMock) Upsert(ctx context.Context, scope models.AccessScope, req service.UpsertReportRequest) (*models.DailyReport, error) {
	m.upsertScope = scope
	return m.upsertResp, m.upsertErr
}

func (m *reportServiceMock) Get(ctx context.Context, scope models.AccessScope, id string) (*models.DailyReportDetail, error) {
	return m.getResp, m.getErr
}

func (m *reportServiceMock) List(ctx context.Context, scope models.AccessScope, filter models.DailyReportFilter) ([]models.DailyReportDetail, *models.Pagination, error) {
	m.listFilter = filter
	return m.listResp, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: len(m.listResp)}, nil
}

func (m *reportServiceMock) History(ctx context.Context, scope models.AccessScope, studentID, from, to string) ([]models.DailyReport, error) {
	return m.historyResp, nil
}

func (m *reportServiceMock) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

type reportSenderMock struct {
	resp *dto.SendReportResponse
	err  error
}

func (m *reportSenderMock) SendReport(ctx context.Context, scope models.AccessScope, reportID string) (*dto.SendReportResponse, error) {
	return m.resp, m.err
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestReportHandlerUpsert(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mood := "happy"
	mockSvc := &reportServiceMock{
		upsertResp: &models.DailyReport{ID: "r1", StudentID: "s1", ReportDate: "2026-03-02", Mood: "happy", LunchIntake: "all", IsComplete: true},
	}
	handler := NewReportHandler(mockSvc, nil)

	payload, _ := json.Marshal(service.UpsertReportRequest{StudentID: "s1", Date: "2026-03-02", Mood: &mood})
	c, w := newGinContext(http.MethodPost, "/reports", payload)
	c.Set(middleware.ContextScope, models.AccessScope{GroupID: "g1"})

	handler.Upsert(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "g1", mockSvc.upsertScope.GroupID)

	envelope := decodeEnvelope(t, w)
	require.Nil(t, envelope.Error)
	data := envelope.Data.(map[string]interface{})
	require.Equal(t, "r1", data["id"])
	require.Equal(t, true, data["is_complete"])
}

func TestReportHandlerUpsertInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&reportServiceMock{}, nil)

	c, w := newGinContext(http.MethodPost, "/reports", []byte("{not json"))
	c.Set(middleware.ContextScope, models.AccessScope{})

	handler.Upsert(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	require.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestReportHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &reportServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "report not found")}
	handler := NewReportHandler(mockSvc, nil)

	c, w := newGinContext(http.MethodGet, "/reports/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Set(middleware.ContextScope, models.AccessScope{})

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	require.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestReportHandlerListFilterFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &reportServiceMock{listResp: []models.DailyReportDetail{}}
	handler := NewReportHandler(mockSvc, nil)

	c, w := newGinContext(http.MethodGet, "/reports?date=2026-03-02&group_id=g1&page=2&page_size=10", nil)
	c.Set(middleware.ContextScope, models.AccessScope{})

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2026-03-02", mockSvc.listFilter.Date)
	require.Equal(t, "g1", mockSvc.listFilter.GroupID)
	require.Equal(t, 2, mockSvc.listFilter.Page)
	require.Equal(t, 10, mockSvc.listFilter.PageSize)
}

func TestReportHandlerListDefaultsPaging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &reportServiceMock{}
	handler := NewReportHandler(mockSvc, nil)

	c, w := newGinContext(http.MethodGet, "/reports?page=oops", nil)
	c.Set(middleware.ContextScope, models.AccessScope{})

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, mockSvc.listFilter.Page)
	require.Equal(t, 50, mockSvc.listFilter.PageSize)
}

func TestReportHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&reportServiceMock{}, nil)

	c, _ := newGinContext(http.MethodDelete, "/reports/r1", nil)
	c.Params = gin.Params{{Key: "id", Value: "r1"}}

	handler.Delete(c)
	// c.Status alone does not flush to the recorder outside a full engine,
	// so read the status off the context writer.
	require.Equal(t, http.StatusNoContent, c.Writer.Status())
}

func TestReportHandlerSendOutOfScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sender := &reportSenderMock{err: appErrors.ErrOutOfScope}
	handler := NewReportHandler(&reportServiceMock{}, sender)

	c, w := newGinContext(http.MethodPost, "/reports/r1/send", nil)
	c.Params = gin.Params{{Key: "id", Value: "r1"}}
	c.Set(middleware.ContextScope, models.AccessScope{GroupID: "g2"})

	handler.Send(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	require.Equal(t, "OUT_OF_SCOPE", envelope.Error.Code)
}

func TestReportHandlerSend(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sender := &reportSenderMock{resp: &dto.SendReportResponse{ReportID: "r1", Summary: "Daily report"}}
	handler := NewReportHandler(&reportServiceMock{}, sender)

	c, w := newGinContext(http.MethodPost, "/reports/r1/send", nil)
	c.Params = gin.Params{{Key: "id", Value: "r1"}}
	c.Set(middleware.ContextScope, models.AccessScope{})

	handler.Send(c)
	require.Equal(t, http.StatusOK, w.Code)
}
