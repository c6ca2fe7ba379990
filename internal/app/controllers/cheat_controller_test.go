package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/contestguard/internal/analysis"
	"github.com/yigit/contestguard/internal/app/models/dto"
	"github.com/yigit/contestguard/internal/app/services"
	"github.com/yigit/contestguard/internal/pkg/apperrors"
)

type stubCheatService struct {
	report  *dto.CheatReportResponse
	err     error
	gotID   int64
	gotOpts services.ReportOptions
}

func (s *stubCheatService) AnalyzeTest(_ context.Context, testID int64, opts services.ReportOptions) (*dto.CheatReportResponse, error) {
	s.gotID = testID
	s.gotOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	// Hand out a copy so pagination never mutates the fixture
	r := *s.report
	r.Metrics = append([]dto.CheatMetricsResponse(nil), s.report.Metrics...)
	return &r, nil
}

func threeTakerReport() *dto.CheatReportResponse {
	return &dto.CheatReportResponse{
		TestID: 4,
		RunID:  "run",
		Metrics: []dto.CheatMetricsResponse{
			{TakerID: 1}, {TakerID: 2}, {TakerID: 3},
		},
	}
}

// reportEnvelope mirrors dto.APIResponse with a typed payload
type reportEnvelope struct {
	Success bool                    `json:"success"`
	Data    dto.CheatReportResponse `json:"data"`
	Error   *dto.ErrorDetail        `json:"error"`
}

func serve(t *testing.T, svc services.CheatDetectionService, target string) (*httptest.ResponseRecorder, reportEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/tests/:testId/cheat-metrics", NewCheatController(svc).GetCheatMetrics)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	var env reportEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestGetCheatMetrics_OK(t *testing.T) {
	svc := &stubCheatService{report: threeTakerReport()}

	w, env := serve(t, svc, "/tests/4/cheat-metrics?sort=p_speed&order=DESC&page=2&size=2")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(4), svc.gotID)
	assert.Equal(t, analysis.SortBySpeed, svc.gotOpts.Sort)
	assert.True(t, svc.gotOpts.Desc)

	assert.True(t, env.Success)
	require.Len(t, env.Data.Metrics, 1)
	assert.Equal(t, int64(3), env.Data.Metrics[0].TakerID)
	require.NotNil(t, env.Data.Pagination)
	assert.Equal(t, 2, env.Data.Pagination.CurrentPage)
	assert.Equal(t, 2, env.Data.Pagination.TotalPages)
	assert.Equal(t, int64(3), env.Data.Pagination.TotalItems)
}

func TestGetCheatMetrics_Defaults(t *testing.T) {
	svc := &stubCheatService{report: threeTakerReport()}

	w, env := serve(t, svc, "/tests/4/cheat-metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, analysis.SortByTakerID, svc.gotOpts.Sort)
	assert.False(t, svc.gotOpts.Desc)
	assert.Len(t, env.Data.Metrics, 3)
}

func TestGetCheatMetrics_BadQuery(t *testing.T) {
	svc := &stubCheatService{report: threeTakerReport()}

	w, env := serve(t, svc, "/tests/4/cheat-metrics?sort=score&order=sideways")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
	details, ok := env.Error.Details.([]interface{})
	require.True(t, ok)
	assert.Len(t, details, 2)
	assert.Zero(t, svc.gotID, "service not called")
}

func TestGetCheatMetrics_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{"non numeric id", "/tests/abc/cheat-metrics", nil, http.StatusBadRequest},
		{"zero id", "/tests/0/cheat-metrics", nil, http.StatusBadRequest},
		{"missing test", "/tests/9/cheat-metrics", apperrors.ErrTestNotFound, http.StatusNotFound},
		{"fetch failure", "/tests/9/cheat-metrics", apperrors.NewDataSourceError("fetch answers", errors.New("reset")), http.StatusInternalServerError},
		{"timeout", "/tests/9/cheat-metrics", apperrors.NewDataSourceError("fetch answers", context.DeadlineExceeded), http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubCheatService{report: threeTakerReport(), err: tt.err}
			w, env := serve(t, svc, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, env.Success)
			assert.NotNil(t, env.Error)
		})
	}
}

func TestGetCheatMetrics_HugePage(t *testing.T) {
	svc := &stubCheatService{report: threeTakerReport()}

	var w *httptest.ResponseRecorder
	var env reportEnvelope
	require.NotPanics(t, func() {
		w, env = serve(t, svc, "/tests/4/cheat-metrics?page=184467440737095530&size=50")
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Data.Metrics)
	require.NotNil(t, env.Data.Pagination)
	assert.Equal(t, 1, env.Data.Pagination.TotalPages)
	assert.Equal(t, int64(3), env.Data.Pagination.TotalItems)
}
