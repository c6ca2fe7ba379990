package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/yigit/contestguard/internal/app/models/dto"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

type renderFunc func(w io.Writer, report *dto.CheatReportResponse) error

func rendererFor(format string) (renderFunc, error) {
	switch format {
	case formatTable:
		return renderTable, nil
	case formatJSON:
		return renderJSON, nil
	case formatCSV:
		return renderCSV, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want table, json or csv)", format)
	}
}

var reportHeader = table.Row{
	"taker_id", "participant_id", "full_name", "team_id", "team_display_code",
	"p_speed", "p_global_timing", "team_rapid_flag", "team_mia_flag",
	"p_global_mia", "test_duration_seconds", "paste_count",
}

func metricsRow(m dto.CheatMetricsResponse, score func(float64) string) table.Row {
	teamID := ""
	if m.TeamID != nil {
		teamID = strconv.FormatInt(*m.TeamID, 10)
	}
	return table.Row{
		m.TakerID, m.ParticipantID, m.FullName, teamID, m.TeamDisplayCode,
		score(m.SpeedScore), score(m.GlobalTimingScore), m.TeamRapidFlag, m.TeamMIAFlag,
		score(m.GlobalMIAScore), strconv.FormatFloat(m.TestDurationSeconds, 'f', -1, 64), m.PasteCount,
	}
}

func newMetricsTable(w io.Writer, report *dto.CheatReportResponse, score func(float64) string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(reportHeader)
	for _, m := range report.Metrics {
		tbl.AppendRow(metricsRow(m, score))
	}
	return tbl
}

func renderTable(w io.Writer, report *dto.CheatReportResponse) error {
	tbl := newMetricsTable(w, report, func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) })
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(fmt.Sprintf("Test %d  run %s", report.TestID, report.RunID))
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Name: "p_speed", Align: text.AlignRight},
		{Name: "p_global_timing", Align: text.AlignRight},
		{Name: "p_global_mia", Align: text.AlignRight},
		{Name: "test_duration_seconds", Align: text.AlignRight},
	})
	s := report.Summary
	tbl.AppendFooter(table.Row{
		fmt.Sprintf("takers %d", s.TotalTakers),
		fmt.Sprintf("answers %d", s.AnswersAnalyzed),
		fmt.Sprintf("pastes %d", s.PasteEventsAnalyzed),
		fmt.Sprintf("teams %d", s.Teams),
		fmt.Sprintf("rapid %d", s.TeamRapidFlagged),
		fmt.Sprintf("mia %d", s.TeamMIAFlagged),
	})
	tbl.Render()
	return nil
}

// renderCSV writes scores at full precision
func renderCSV(w io.Writer, report *dto.CheatReportResponse) error {
	tbl := newMetricsTable(w, report, func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) })
	tbl.RenderCSV()
	return nil
}

func renderJSON(w io.Writer, report *dto.CheatReportResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
