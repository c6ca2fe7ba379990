package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/contestguard/internal/analysis"
	"github.com/yigit/contestguard/internal/app/models/dto"
	"github.com/yigit/contestguard/internal/metrics"
	"github.com/yigit/contestguard/internal/pkg/apperrors"
	"github.com/yigit/contestguard/internal/pkg/logger"
)

// ReportOptions controls presentation of a computed report. A zero Sort keeps
// the engine's taker order.
type ReportOptions struct {
	Sort analysis.SortField
	Desc bool
}

// CheatDetectionService defines the interface for cheat-detection operations
type CheatDetectionService interface {
	AnalyzeTest(ctx context.Context, testID int64, opts ReportOptions) (*dto.CheatReportResponse, error)
}

// cheatDetectionServiceImpl implements the CheatDetectionService interface
type cheatDetectionServiceImpl struct {
	loader   *SnapshotLoader
	params   analysis.Params
	logger   zerolog.Logger
	now      func() time.Time
	newRunID func() string
}

// NewCheatDetectionService creates a new cheat-detection service instance
func NewCheatDetectionService(loader *SnapshotLoader, params analysis.Params, lgr zerolog.Logger) CheatDetectionService {
	return &cheatDetectionServiceImpl{
		loader:   loader,
		params:   params,
		logger:   lgr,
		now:      time.Now,
		newRunID: func() string { return uuid.New().String() },
	}
}

// AnalyzeTest loads a fresh snapshot of testID and computes its report
func (s *cheatDetectionServiceImpl) AnalyzeTest(ctx context.Context, testID int64, opts ReportOptions) (*dto.CheatReportResponse, error) {
	if testID <= 0 {
		return nil, apperrors.ErrInvalidTestID
	}
	if opts.Sort != "" {
		if _, err := analysis.ParseSortField(string(opts.Sort)); err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
	}

	runID := s.newRunID()
	lgr := logger.ForRun(s.logger, testID, runID)
	started := s.now()

	snap, err := s.loader.Load(ctx, testID)
	if err != nil {
		elapsed := s.now().Sub(started)
		if errors.Is(err, apperrors.ErrTestNotFound) {
			metrics.ObserveAnalysisRun(metrics.ResultNotFound, elapsed, 0)
			lgr.Info().Msg("Test not found")
			return nil, err
		}
		metrics.ObserveAnalysisRun(metrics.ResultError, elapsed, 0)
		lgr.Error().Err(err).Dur("elapsed", elapsed).Msg("Snapshot load failed")
		return nil, err
	}

	lgr.Debug().
		Int("takers", len(snap.Takers)).
		Int("answers", len(snap.Answers)).
		Int("pastes", len(snap.Pastes)).
		Int("teams", len(snap.Teams)).
		Msg("Snapshot loaded")

	report := analysis.Run(snap, s.params)
	if opts.Sort != "" {
		analysis.SortMetrics(report.Metrics, opts.Sort, opts.Desc)
	}

	elapsed := s.now().Sub(started)
	metrics.ObserveAnalysisRun(metrics.ResultSuccess, elapsed, report.Summary.TotalTakers)

	lgr.Info().
		Int("takers", report.Summary.TotalTakers).
		Int("orphanAnswers", report.Summary.OrphanAnswers).
		Int("orphanPastes", report.Summary.OrphanPasteEvents).
		Int("teamRapidFlagged", report.Summary.TeamRapidFlagged).
		Int("teamMIAFlagged", report.Summary.TeamMIAFlagged).
		Dur("elapsed", elapsed).
		Msg("Analysis run completed")

	response := dto.FromReport(report)
	response.RunID = runID
	response.GeneratedAt = s.now().UTC()
	return &response, nil
}
