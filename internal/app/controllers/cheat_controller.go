package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/contestguard/internal/analysis"
	"github.com/yigit/contestguard/internal/app/models/dto"
	"github.com/yigit/contestguard/internal/app/services"
	"github.com/yigit/contestguard/internal/middleware"
	"github.com/yigit/contestguard/internal/pkg/helpers"
)

// CheatController serves cheat-detection reports
type CheatController struct {
	cheatService services.CheatDetectionService
}

// NewCheatController creates a new CheatController
func NewCheatController(cheatService services.CheatDetectionService) *CheatController {
	return &CheatController{
		cheatService: cheatService,
	}
}

// GetCheatMetrics godoc
// @Summary Get cheat-detection metrics of a test
// @Description Computes per-taker suspicion signals from a fresh snapshot of the test
// @Tags cheat-metrics
// @Produce json
// @Security BearerAuth
// @Param testId path int true "Test ID"
// @Param sort query string false "Sort column (default: taker_id)"
// @Param order query string false "asc or desc (default: asc)"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 50, max: 500)"
// @Success 200 {object} dto.APIResponse{data=dto.CheatReportResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 504 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /tests/{testId}/cheat-metrics [get]
func (c *CheatController) GetCheatMetrics(ctx *gin.Context) {
	testID, err := parseIDParam(ctx, "testId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	opts, validationErrors := parseReportOptions(ctx)
	if validationErrors.HasErrors() {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters")
		errorDetail = errorDetail.WithDetails(validationErrors.Errors)
		ctx.JSON(http.StatusBadRequest, dto.NewFailureResponse(errorDetail))
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	report, err := c.cheatService.AnalyzeTest(ctx.Request.Context(), testID, opts)
	if err != nil {
		_ = ctx.Error(err)
		middleware.HandleAPIError(ctx, err)
		return
	}

	total := len(report.Metrics)
	start, end := helpers.CalculateSliceIndices(page, size, total)
	report.Metrics = report.Metrics[start:end]
	pagination := helpers.NewPaginationInfo(int64(total), page, size)
	report.Pagination = &pagination

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// parseReportOptions reads sort and order, collecting every invalid value
func parseReportOptions(ctx *gin.Context) (services.ReportOptions, *dto.ValidationErrors) {
	validationErrors := dto.NewValidationErrors()

	field, err := analysis.ParseSortField(ctx.Query("sort"))
	if err != nil {
		validationErrors.AddError("sort", err.Error())
	}

	desc := false
	switch strings.ToLower(ctx.DefaultQuery("order", "asc")) {
	case "asc":
	case "desc":
		desc = true
	default:
		validationErrors.AddError("order", "order must be one of: asc desc")
	}

	return services.ReportOptions{Sort: field, Desc: desc}, validationErrors
}
