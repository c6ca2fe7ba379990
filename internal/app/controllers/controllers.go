package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/contestguard/internal/pkg/apperrors"
)

// parseIDParam parses a positive int64 path parameter
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidTestID
	}
	return id, nil
}
