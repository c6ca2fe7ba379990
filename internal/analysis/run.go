package analysis

// Run aggregates the snapshot and computes the metrics of every taker.
// Every distinct taker of the snapshot appears exactly once in the report.
func Run(snap Snapshot, params Params) Report {
	params = params.withDefaults()

	agg := buildAggregates(snap)
	calc := newCalculator(agg, params)

	metrics := make([]CheatMetrics, 0, len(agg.takers))
	summary := agg.summary
	for _, t := range agg.takers {
		m := calc.metricsFor(t)
		if m.TeamRapidFlag {
			summary.TeamRapidFlagged++
		}
		if m.TeamMIAFlag {
			summary.TeamMIAFlagged++
		}
		metrics = append(metrics, m)
	}

	return Report{
		TestID:  snap.TestID,
		EventID: snap.EventID,
		Params:  params,
		Summary: summary,
		Metrics: metrics,
	}
}
