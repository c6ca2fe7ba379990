package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/contestguard/internal/app/models/dto"
	"github.com/yigit/contestguard/internal/pkg/apperrors"
	"github.com/yigit/contestguard/internal/pkg/dberrors"
)

// HandleAPIError maps a service error onto a status code and error envelope
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)
	c.JSON(status, dto.NewFailureResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrTestNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Test not found")
	case errors.Is(err, apperrors.ErrInvalidTestID):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid test ID").WithField("testId")
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, context.DeadlineExceeded), dberrors.IsQueryCanceled(err):
		return http.StatusGatewayTimeout, dto.NewErrorDetail(dto.ErrorCodeTimeout, "Analysis timed out")
	case dberrors.IsUndefinedTable(err):
		return http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database schema is not migrated")
	case errors.Is(err, apperrors.ErrDataSource):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Failed to load test data")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
