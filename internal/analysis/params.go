package analysis

import "time"

// Default heuristic constants
const (
	DefaultGlobalTimingDecay = 0.7
	DefaultGlobalMIADecay    = 0.8
	DefaultTeamRapidWindow   = 30 * time.Second
	DefaultTeamMIAThreshold  = 0.10
)

// Params holds the tunable constants of the heuristics
type Params struct {
	// GlobalTimingDecay is k in 1-exp(-k*x) for the timing-similarity score
	GlobalTimingDecay float64
	// GlobalMIADecay is k in 1-exp(-k*x^2) for the identical-answer score
	GlobalMIADecay float64
	// TeamRapidWindow is the largest span of a team's answer timestamps that raises the rapid flag
	TeamRapidWindow time.Duration
	// TeamMIAThreshold is the global frequency, as a fraction of all takers, below which
	// an answer shared inside a team raises the team MIA flag
	TeamMIAThreshold float64
}

// DefaultParams returns the stock constants
func DefaultParams() Params {
	return Params{
		GlobalTimingDecay: DefaultGlobalTimingDecay,
		GlobalMIADecay:    DefaultGlobalMIADecay,
		TeamRapidWindow:   DefaultTeamRapidWindow,
		TeamMIAThreshold:  DefaultTeamMIAThreshold,
	}
}

// withDefaults replaces unset or non-positive values with the defaults
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.GlobalTimingDecay <= 0 {
		p.GlobalTimingDecay = d.GlobalTimingDecay
	}
	if p.GlobalMIADecay <= 0 {
		p.GlobalMIADecay = d.GlobalMIADecay
	}
	if p.TeamRapidWindow <= 0 {
		p.TeamRapidWindow = d.TeamRapidWindow
	}
	if p.TeamMIAThreshold <= 0 {
		p.TeamMIAThreshold = d.TeamMIAThreshold
	}
	return p
}
