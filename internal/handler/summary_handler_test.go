package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/dto"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/middleware"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type summaryServiceMock struct {
	resp   *dto.SummaryResponse
	cached bool
	err    error
	query  service.SummaryQuery
}

func (m *summaryServiceMock) Summarize(ctx context.Context, scope models.AccessScope, query service.SummaryQuery) (*dto.SummaryResponse, bool, error) {
	m.query = query
	return m.resp, m.cached, m.err
}

func TestSummaryHandlerQueryParsing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &summaryServiceMock{resp: &dto.SummaryResponse{Date: "2026-03-02"}}
	handler := NewSummaryHandler(mockSvc)

	c, w := newGinContext(http.MethodGet, "/reports/summary?date=2026-03-02&group_id=g1&strict=true", nil)
	c.Set(middleware.ContextScope, models.AccessScope{})

	handler.Summary(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2026-03-02", mockSvc.query.Date)
	require.Equal(t, "g1", mockSvc.query.GroupID)
	require.True(t, mockSvc.query.Strict)
}

func TestSummaryHandlerCacheHitMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &summaryServiceMock{resp: &dto.SummaryResponse{Date: "2026-03-02"}, cached: true}
	handler := NewSummaryHandler(mockSvc)

	c, w := newGinContext(http.MethodGet, "/reports/summary?date=2026-03-02", nil)
	c.Set(middleware.ContextScope, models.AccessScope{})

	handler.Summary(c)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	require.Equal(t, true, envelope.Meta["cache_hit"])
}

func TestSummaryHandlerOutOfScopeGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &summaryServiceMock{err: appErrors.ErrOutOfScope}
	handler := NewSummaryHandler(mockSvc)

	c, w := newGinContext(http.MethodGet, "/reports/summary?group_id=other", nil)
	c.Set(middleware.ContextScope, models.AccessScope{GroupID: "g1"})

	handler.Summary(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	require.Equal(t, "OUT_OF_SCOPE", envelope.Error.Code)
}
