package analysis

import "time"

// contentTime keys answers by content and exact millisecond timestamp
type contentTime struct {
	content string
	ms      int64
}

// contentStats accumulates the global statistics of one answer content
type contentStats struct {
	freq   int
	timed  int
	meanMs float64 // running mean over timed answers
}

func (c *contentStats) add(a Answer) {
	c.freq++
	if !a.timed() {
		return
	}
	c.timed++
	c.meanMs += (float64(a.ModifiedAt.UnixMilli()) - c.meanMs) / float64(c.timed)
}

// aggregates holds every index the calculator reads. It is built once per run
// and never modified afterwards.
type aggregates struct {
	takers      []Taker // deduplicated, input order
	takerIndex  map[int64]int
	totalTakers int

	answersByTaker    map[int64][]Answer
	pasteCountByTaker map[int64]int
	durationByTaker   map[int64]float64
	avgDuration       float64

	byContent     map[string]*contentStats
	sameTimeCount map[contentTime]int

	teamMembers map[int64][]Taker

	summary Summary
}

// freq returns the global frequency of an answer content
func (g *aggregates) freq(content string) int {
	if s, ok := g.byContent[content]; ok {
		return s.freq
	}
	return 0
}

// avgTimeMs returns the mean millisecond timestamp of an answer content
func (g *aggregates) avgTimeMs(content string) (float64, bool) {
	s, ok := g.byContent[content]
	if !ok || s.timed == 0 {
		return 0, false
	}
	return s.meanMs, true
}

// buildAggregates scans every collection of the snapshot once
func buildAggregates(snap Snapshot) *aggregates {
	g := &aggregates{
		takerIndex:        make(map[int64]int, len(snap.Takers)),
		answersByTaker:    make(map[int64][]Answer, len(snap.Takers)),
		pasteCountByTaker: make(map[int64]int),
		durationByTaker:   make(map[int64]float64, len(snap.Takers)),
		byContent:         make(map[string]*contentStats),
		sameTimeCount:     make(map[contentTime]int),
		teamMembers:       make(map[int64][]Taker),
	}

	// Takers, first occurrence wins
	for _, t := range snap.Takers {
		if _, dup := g.takerIndex[t.ID]; dup {
			g.summary.DuplicateTakers++
			continue
		}
		g.takerIndex[t.ID] = len(g.takers)
		g.takers = append(g.takers, t)
	}
	g.totalTakers = len(g.takers)
	g.summary.TotalTakers = g.totalTakers

	// Answers
	for _, a := range snap.Answers {
		if _, ok := g.takerIndex[a.TakerID]; !ok {
			g.summary.OrphanAnswers++
			continue
		}
		g.summary.AnswersAnalyzed++
		if !a.timed() {
			g.summary.UntimedAnswers++
		}
		g.answersByTaker[a.TakerID] = append(g.answersByTaker[a.TakerID], a)

		// Blank answers are unanswered questions, not shared answers
		if a.Content == "" {
			continue
		}
		stats, ok := g.byContent[a.Content]
		if !ok {
			stats = &contentStats{}
			g.byContent[a.Content] = stats
		}
		stats.add(a)
		if a.timed() {
			g.sameTimeCount[contentTime{a.Content, a.ModifiedAt.UnixMilli()}]++
		}
	}
	g.summary.DistinctAnswerValues = len(g.byContent)

	// Paste events
	for _, p := range snap.Pastes {
		if _, ok := g.takerIndex[p.TakerID]; !ok {
			g.summary.OrphanPasteEvents++
			continue
		}
		g.summary.PasteEventsAnalyzed++
		g.pasteCountByTaker[p.TakerID]++
	}

	// Durations
	var total float64
	for _, t := range g.takers {
		d := answerSpan(g.answersByTaker[t.ID])
		g.durationByTaker[t.ID] = d
		total += d
	}
	if g.totalTakers > 0 {
		g.avgDuration = total / float64(g.totalTakers)
	}
	if g.avgDuration == 0 {
		g.avgDuration = 1
	}
	g.summary.AverageDurationSec = g.avgDuration

	// Teams; takers pointing at a team missing from the roster are left out
	known := make(map[int64]struct{}, len(snap.Teams))
	for _, team := range snap.Teams {
		known[team.ID] = struct{}{}
	}
	for _, t := range g.takers {
		if !t.hasTeam() {
			continue
		}
		if _, ok := known[*t.TeamID]; !ok {
			continue
		}
		g.teamMembers[*t.TeamID] = append(g.teamMembers[*t.TeamID], t)
	}
	g.summary.Teams = len(g.teamMembers)

	return g
}

// answerSpan returns the seconds between the earliest and latest timed answer,
// or 0 when fewer than two answers carry a timestamp.
func answerSpan(answers []Answer) float64 {
	var first, last time.Time
	n := 0
	for _, a := range answers {
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
	if n < 2 {
		return 0
	}
	return last.Sub(first).Seconds()
}
