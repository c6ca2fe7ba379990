package dto

import (
	"time"

	"github.com/yigit/contestguard/internal/analysis"
)

// CheatMetricsResponse is the per-taker row of a cheat report
type CheatMetricsResponse struct {
	TakerID             int64   `json:"taker_id" example:"42"`
	ParticipantID       int64   `json:"participant_id" example:"7"`
	FullName            string  `json:"full_name" example:"Ada Lovelace"`
	TeamID              *int64  `json:"team_id" example:"3"`
	TeamDisplayCode     string  `json:"team_display_code" example:"T03"`
	TeamName            string  `json:"team_name" example:"Analytical Engines"`
	SpeedScore          float64 `json:"p_speed" example:"0.25"`
	GlobalTimingScore   float64 `json:"p_global_timing" example:"0.51"`
	TeamRapidFlag       bool    `json:"team_rapid_flag" example:"false"`
	TeamMIAFlag         bool    `json:"team_mia_flag" example:"true"`
	GlobalMIAScore      float64 `json:"p_global_mia" example:"0.33"`
	TestDurationSeconds float64 `json:"test_duration_seconds" example:"1260"`
	PasteCount          int     `json:"paste_count" example:"2"`
}

// AnalysisParamsResponse echoes the tunables a report was computed with
type AnalysisParamsResponse struct {
	GlobalTimingDecay float64 `json:"k_global_timing" example:"0.7"`
	GlobalMIADecay    float64 `json:"k_global_mia" example:"0.8"`
	TeamRapidWindowMs int64   `json:"team_rapid_window_ms" example:"30000"`
	TeamMIAThreshold  float64 `json:"team_mia_threshold" example:"0.1"`
}

// ReportSummaryResponse carries run-level counters of a report
type ReportSummaryResponse struct {
	TotalTakers          int     `json:"total_takers"`
	AnswersAnalyzed      int     `json:"answers_analyzed"`
	PasteEventsAnalyzed  int     `json:"paste_events_analyzed"`
	OrphanAnswers        int     `json:"orphan_answers"`
	OrphanPasteEvents    int     `json:"orphan_paste_events"`
	DuplicateTakers      int     `json:"duplicate_takers"`
	UntimedAnswers       int     `json:"untimed_answers"`
	DistinctAnswerValues int     `json:"distinct_answer_values"`
	Teams                int     `json:"teams"`
	TeamRapidFlagged     int     `json:"team_rapid_flagged"`
	TeamMIAFlagged       int     `json:"team_mia_flagged"`
	AverageDurationSec   float64 `json:"average_duration_seconds"`
}

// CheatReportResponse is the body of the cheat-metrics endpoint
type CheatReportResponse struct {
	TestID      int64                  `json:"test_id" example:"1"`
	EventID     int64                  `json:"event_id" example:"1"`
	RunID       string                 `json:"run_id" example:"6f1c1f8e-2b7a-4bb4-9b6f-6ad6f3d1c0de"`
	GeneratedAt time.Time              `json:"generated_at"`
	Params      AnalysisParamsResponse `json:"params"`
	Summary     ReportSummaryResponse  `json:"summary"`
	Metrics     []CheatMetricsResponse `json:"metrics"`
	Pagination  *PaginationInfo        `json:"pagination,omitempty"`
}

// FromCheatMetrics converts an engine row to its response form
func FromCheatMetrics(m analysis.CheatMetrics) CheatMetricsResponse {
	return CheatMetricsResponse{
		TakerID:             m.TakerID,
		ParticipantID:       m.ParticipantID,
		FullName:            m.FullName,
		TeamID:              m.TeamID,
		TeamDisplayCode:     m.TeamCode,
		TeamName:            m.TeamName,
		SpeedScore:          m.SpeedScore,
		GlobalTimingScore:   m.GlobalTimingScore,
		TeamRapidFlag:       m.TeamRapidFlag,
		TeamMIAFlag:         m.TeamMIAFlag,
		GlobalMIAScore:      m.GlobalMIAScore,
		TestDurationSeconds: m.TestDurationSeconds,
		PasteCount:          m.PasteCount,
	}
}

// FromCheatMetricsList converts a list of engine rows, never returning nil
func FromCheatMetricsList(metrics []analysis.CheatMetrics) []CheatMetricsResponse {
	out := make([]CheatMetricsResponse, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, FromCheatMetrics(m))
	}
	return out
}

// FromReport converts an engine report. The caller fills RunID and GeneratedAt.
func FromReport(r analysis.Report) CheatReportResponse {
	return CheatReportResponse{
		TestID:  r.TestID,
		EventID: r.EventID,
		Params: AnalysisParamsResponse{
			GlobalTimingDecay: r.Params.GlobalTimingDecay,
			GlobalMIADecay:    r.Params.GlobalMIADecay,
			TeamRapidWindowMs: r.Params.TeamRapidWindow.Milliseconds(),
			TeamMIAThreshold:  r.Params.TeamMIAThreshold,
		},
		Summary: ReportSummaryResponse{
			TotalTakers:          r.Summary.TotalTakers,
			AnswersAnalyzed:      r.Summary.AnswersAnalyzed,
			PasteEventsAnalyzed:  r.Summary.PasteEventsAnalyzed,
			OrphanAnswers:        r.Summary.OrphanAnswers,
			OrphanPasteEvents:    r.Summary.OrphanPasteEvents,
			DuplicateTakers:      r.Summary.DuplicateTakers,
			UntimedAnswers:       r.Summary.UntimedAnswers,
			DistinctAnswerValues: r.Summary.DistinctAnswerValues,
			Teams:                r.Summary.Teams,
			TeamRapidFlagged:     r.Summary.TeamRapidFlagged,
			TeamMIAFlagged:       r.Summary.TeamMIAFlagged,
			AverageDurationSec:   r.Summary.AverageDurationSec,
		},
		Metrics: FromCheatMetricsList(r.Metrics),
	}
}
