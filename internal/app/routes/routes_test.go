package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/contestguard/internal/app/controllers"
	"github.com/yigit/contestguard/internal/app/models"
	"github.com/yigit/contestguard/internal/app/models/dto"
	"github.com/yigit/contestguard/internal/app/services"
	"github.com/yigit/contestguard/internal/middleware"
	"github.com/yigit/contestguard/internal/pkg/auth"
)

type okService struct{}

func (okService) AnalyzeTest(_ context.Context, testID int64, _ services.ReportOptions) (*dto.CheatReportResponse, error) {
	return &dto.CheatReportResponse{TestID: testID, Metrics: []dto.CheatMetricsResponse{}}, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour})

	router := gin.New()
	SetupRouter(router,
		controllers.NewCheatController(okService{}),
		controllers.NewHealthController(okPinger{}, "test"),
		middleware.NewAuthMiddleware(jwtService),
	)

	admin, _, err := jwtService.GenerateToken("admin", models.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
	}{
		{"ping", "/ping", "", http.StatusOK},
		{"health", "/api/v1/health", "", http.StatusOK},
		{"metrics need auth", "/api/v1/tests/1/cheat-metrics", "", http.StatusUnauthorized},
		{"metrics as admin", "/api/v1/tests/1/cheat-metrics", admin, http.StatusOK},
		{"unknown route", "/api/v1/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
