package analysis

import (
	"math"
	"time"
)

// maxBelowOne is the largest float64 smaller than 1
var maxBelowOne = math.Nextafter(1, 0)

// saturate maps accumulated evidence x >= 0 onto [0,1) with decay constant k
func saturate(k, x float64) float64 {
	p := 1 - math.Exp(-k*x)
	switch {
	case p < 0 || math.IsNaN(p):
		return 0
	case p >= 1:
		return maxBelowOne
	}
	return p
}

// calculator derives the per-taker signals from completed aggregates
type calculator struct {
	agg    *aggregates
	params Params

	// per-team results, filled on first request
	rapid map[int64]bool
	mia   map[int64]bool
}

func newCalculator(agg *aggregates, params Params) *calculator {
	return &calculator{
		agg:    agg,
		params: params,
		rapid:  make(map[int64]bool),
		mia:    make(map[int64]bool),
	}
}

// speedScore compares the population average duration with the taker's own
func (c *calculator) speedScore(takerID int64) float64 {
	d := math.Max(c.agg.durationByTaker[takerID], 1)
	return math.Min(1, c.agg.avgDuration/d)
}

// globalTimingScore rewards answers identical in content and submitted at the
// exact same millisecond as another answer, weighted by how close they sit to
// the mean submission time of that content.
func (c *calculator) globalTimingScore(takerID int64) float64 {
	var total float64
	for _, a := range c.agg.answersByTaker[takerID] {
		if a.Content == "" || !a.timed() {
			continue
		}
		ms := a.ModifiedAt.UnixMilli()
		if c.agg.sameTimeCount[contentTime{a.Content, ms}] <= 1 {
			continue
		}
		avg, ok := c.agg.avgTimeMs(a.Content)
		if !ok {
			continue
		}
		dt := math.Abs(float64(ms)-avg) / 1000
		total += 1 / (dt + 1)
	}
	return saturate(c.params.GlobalTimingDecay, total)
}

// globalMIAScore accumulates how rare each shared answer of the taker is
func (c *calculator) globalMIAScore(takerID int64) float64 {
	if c.agg.totalTakers == 0 {
		return 0
	}
	var total float64
	for _, a := range c.agg.answersByTaker[takerID] {
		if a.Content == "" {
			continue
		}
		freq := c.agg.freq(a.Content)
		if freq <= 1 {
			continue
		}
		// answers repeated more often than there are takers carry no rarity
		total += math.Max(0, 1-float64(freq)/float64(c.agg.totalTakers))
	}
	return saturate(c.params.GlobalMIADecay, total*total)
}

// teamRapidFlag reports whether all answers of the taker's team were submitted
// inside the configured window.
func (c *calculator) teamRapidFlag(t Taker) bool {
	members, ok := c.teamOf(t)
	if !ok {
		return false
	}
	if flag, done := c.rapid[*t.TeamID]; done {
		return flag
	}

	var first, last time.Time
	n := 0
	for _, m := range members {
		for _, a := range c.agg.answersByTaker[m.ID] {
			if !a.timed() {
				continue
			}
			if n == 0 || a.ModifiedAt.Before(first) {
				first = a.ModifiedAt
			}
			if n == 0 || a.ModifiedAt.After(last) {
				last = a.ModifiedAt
			}
			n++
		}
	}
	flag := n >= 2 && last.Sub(first) <= c.params.TeamRapidWindow
	c.rapid[*t.TeamID] = flag
	return flag
}

// teamMIAFlag reports whether the taker's team shares an answer that is rare
// in the whole population.
func (c *calculator) teamMIAFlag(t Taker) bool {
	members, ok := c.teamOf(t)
	if !ok {
		return false
	}
	if flag, done := c.mia[*t.TeamID]; done {
		return flag
	}

	holders := make(map[string]map[int64]struct{})
	for _, m := range members {
		for _, a := range c.agg.answersByTaker[m.ID] {
			if a.Content == "" {
				continue
			}
			set, ok := holders[a.Content]
			if !ok {
				set = make(map[int64]struct{})
				holders[a.Content] = set
			}
			set[m.ID] = struct{}{}
		}
	}

	limit := c.params.TeamMIAThreshold * float64(c.agg.totalTakers)
	flag := false
	for content, set := range holders {
		if len(set) > 1 && float64(c.agg.freq(content)) < limit {
			flag = true
			break
		}
	}
	c.mia[*t.TeamID] = flag
	return flag
}

// teamOf returns the members of the taker's team, if the team is known
func (c *calculator) teamOf(t Taker) ([]Taker, bool) {
	if !t.hasTeam() {
		return nil, false
	}
	members, ok := c.agg.teamMembers[*t.TeamID]
	return members, ok
}

// metricsFor computes every signal of one taker
func (c *calculator) metricsFor(t Taker) CheatMetrics {
	return CheatMetrics{
		TakerID:             t.ID,
		ParticipantID:       t.ParticipantID,
		FullName:            t.FullName(),
		TeamID:              t.TeamID,
		TeamCode:            t.TeamCode,
		TeamName:            t.TeamName,
		SpeedScore:          c.speedScore(t.ID),
		GlobalTimingScore:   c.globalTimingScore(t.ID),
		TeamRapidFlag:       c.teamRapidFlag(t),
		TeamMIAFlag:         c.teamMIAFlag(t),
		GlobalMIAScore:      c.globalMIAScore(t.ID),
		TestDurationSeconds: c.agg.durationByTaker[t.ID],
		PasteCount:          c.agg.pasteCountByTaker[t.ID],
	}
}
