// Package analysis computes per-taker cheat-detection signals from a single
// immutable snapshot of test telemetry. Run is a pure function: it builds fresh
// aggregates on every call and never keeps state between calls.
package analysis

import "time"

// Taker is one exam-participation slot being analyzed
type Taker struct {
	ID            int64
	ParticipantID int64
	FirstName     string
	LastName      string
	TeamID        *int64 // nil for teamless takers
	TeamCode      string
	TeamName      string
}

// FullName joins first and last name, dropping whichever part is missing
func (t Taker) FullName() string {
	switch {
	case t.FirstName == "":
		return t.LastName
	case t.LastName == "":
		return t.FirstName
	default:
		return t.FirstName + " " + t.LastName
	}
}

// hasTeam reports whether the taker carries a team reference
func (t Taker) hasTeam() bool {
	return t.TeamID != nil
}

// Answer is one submitted response
type Answer struct {
	TakerID    int64
	Content    string    // normalized, see NormalizeContent
	ModifiedAt time.Time // zero when the source row had no timestamp
}

// timed reports whether the answer can take part in timing computations
func (a Answer) timed() bool {
	return !a.ModifiedAt.IsZero()
}

// PasteEvent is one clipboard paste observed during the session
type PasteEvent struct {
	TakerID    int64
	OccurredAt time.Time
}

// Team is a roster entry referenced by takers
type Team struct {
	ID   int64
	Name string
}

// Snapshot is the full input of one analysis run.
// Answers and pastes may reference takers that are not in Takers, and takers
// may reference teams that are not in Teams; such references are skipped.
type Snapshot struct {
	TestID  int64
	EventID int64
	Takers  []Taker
	Answers []Answer
	Pastes  []PasteEvent
	Teams   []Team
}

// CheatMetrics is the computed record for one taker
type CheatMetrics struct {
	TakerID       int64
	ParticipantID int64
	FullName      string
	TeamID        *int64
	TeamCode      string
	TeamName      string

	SpeedScore          float64 // [0,1]
	GlobalTimingScore   float64 // [0,1)
	TeamRapidFlag       bool
	TeamMIAFlag         bool
	GlobalMIAScore      float64 // [0,1)
	TestDurationSeconds float64
	PasteCount          int
}

// Summary describes the population a report was computed over
type Summary struct {
	TotalTakers          int
	AnswersAnalyzed      int
	PasteEventsAnalyzed  int
	OrphanAnswers        int
	OrphanPasteEvents    int
	DuplicateTakers      int
	UntimedAnswers       int
	Teams                int
	TeamRapidFlagged     int
	TeamMIAFlagged       int
	AverageDurationSec   float64
	DistinctAnswerValues int
}

// Report is the output of one run. Metrics follow the order of the first
// occurrence of each taker in the snapshot; callers must not rely on it.
type Report struct {
	TestID  int64
	EventID int64
	Params  Params
	Summary Summary
	Metrics []CheatMetrics
}
