package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/contestguard/internal/app/models"
	"github.com/yigit/contestguard/internal/app/models/dto"
	"github.com/yigit/contestguard/internal/pkg/apperrors"
	"github.com/yigit/contestguard/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newAuthRouter(jwtService *auth.JWTService) *gin.Engine {
	m := NewAuthMiddleware(jwtService)
	r := gin.New()
	r.GET("/guarded", m.JWTAuth(), m.RolesRequired(models.RoleOrganizer, models.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextKeySubject))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "s3cret", AccessTokenExp: time.Hour})
	r := newAuthRouter(jwtService)

	organizer, _, err := jwtService.GenerateToken("org-1", models.RoleOrganizer)
	require.NoError(t, err)
	participant, _, err := jwtService.GenerateToken("p-1", models.RoleParticipant)
	require.NoError(t, err)
	expired, _, err := auth.NewJWTService(auth.JWTConfig{SecretKey: "s3cret", AccessTokenExp: -time.Minute}).
		GenerateToken("org-1", models.RoleOrganizer)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"missing header", "", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"malformed header", "Basic abc", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"garbage token", "Bearer a.b.c", http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"wrong role", "Bearer " + participant, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"organizer", "Bearer " + organizer, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode == "" {
				assert.Equal(t, "org-1", w.Body.String())
				return
			}
			resp := decode(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"test not found", apperrors.ErrTestNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"invalid id", apperrors.ErrInvalidTestID, http.StatusBadRequest, dto.ErrorCodeInvalidRequest},
		{"bad request", apperrors.NewBadRequestError("unknown sort field"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"deadline", apperrors.NewDataSourceError("fetch answers", context.DeadlineExceeded), http.StatusGatewayTimeout, dto.ErrorCodeTimeout},
		{"statement timeout", apperrors.NewDataSourceError("fetch answers", &pgconn.PgError{Code: "57014"}), http.StatusGatewayTimeout, dto.ErrorCodeTimeout},
		{"schema missing", apperrors.NewDataSourceError("fetch test", &pgconn.PgError{Code: "42P01"}), http.StatusServiceUnavailable, dto.ErrorCodeDatabaseError},
		{"data source", apperrors.NewDataSourceError("fetch takers", errors.New("conn reset")), http.StatusInternalServerError, dto.ErrorCodeDatabaseError},
		{"unknown", fmt.Errorf("wrapped: %w", errors.New("boom")), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	lgr := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID(), RequestLogger(lgr))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, generated)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, generated, line["requestId"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(HeaderRequestID))
}
