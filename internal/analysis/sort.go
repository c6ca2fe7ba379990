package analysis

import (
	"fmt"
	"sort"
)

// SortField names a column metrics can be ordered by
type SortField string

// Sortable columns
const (
	SortByTakerID      SortField = "taker_id"
	SortByFullName     SortField = "full_name"
	SortBySpeed        SortField = "p_speed"
	SortByGlobalTiming SortField = "p_global_timing"
	SortByGlobalMIA    SortField = "p_global_mia"
	SortByDuration     SortField = "test_duration_seconds"
	SortByPasteCount   SortField = "paste_count"
	SortByTeamRapid    SortField = "team_rapid_flag"
	SortByTeamMIA      SortField = "team_mia_flag"
)

// ParseSortField validates a user supplied column name. An empty name selects taker_id.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortByTakerID, nil
	}
	f := SortField(s)
	if _, ok := lessFuncs[f]; !ok {
		return "", fmt.Errorf("unknown sort field %q", s)
	}
	return f, nil
}

var lessFuncs = map[SortField]func(a, b *CheatMetrics) bool{
	SortByTakerID:      func(a, b *CheatMetrics) bool { return a.TakerID < b.TakerID },
	SortByFullName:     func(a, b *CheatMetrics) bool { return a.FullName < b.FullName },
	SortBySpeed:        func(a, b *CheatMetrics) bool { return a.SpeedScore < b.SpeedScore },
	SortByGlobalTiming: func(a, b *CheatMetrics) bool { return a.GlobalTimingScore < b.GlobalTimingScore },
	SortByGlobalMIA:    func(a, b *CheatMetrics) bool { return a.GlobalMIAScore < b.GlobalMIAScore },
	SortByDuration:     func(a, b *CheatMetrics) bool { return a.TestDurationSeconds < b.TestDurationSeconds },
	SortByPasteCount:   func(a, b *CheatMetrics) bool { return a.PasteCount < b.PasteCount },
	SortByTeamRapid:    func(a, b *CheatMetrics) bool { return !a.TeamRapidFlag && b.TeamRapidFlag },
	SortByTeamMIA:      func(a, b *CheatMetrics) bool { return !a.TeamMIAFlag && b.TeamMIAFlag },
}

// SortMetrics orders metrics in place. Ties are broken by taker id ascending so
// the result is stable across runs.
func SortMetrics(metrics []CheatMetrics, field SortField, desc bool) {
	less, ok := lessFuncs[field]
	if !ok {
		less = lessFuncs[SortByTakerID]
	}
	sort.SliceStable(metrics, func(i, j int) bool {
		a, b := &metrics[i], &metrics[j]
		switch {
		case less(a, b):
			return !desc
		case less(b, a):
			return desc
		}
		return a.TakerID < b.TakerID
	})
}
