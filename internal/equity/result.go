package equity

import "github.com/lox/equity-cli/internal/evaluator"

// Result accumulates trial outcomes. Wins[0]+Wins[1]+Ties == Trials
// always holds for a completed simulation.
type Result struct {
	Wins   [2]int
	Ties   int
	Trials int

	// Categories counts how often each hand made each category, one
	// row per hand. Only populated when Request.TrackCategories is set.
	Categories [2][evaluator.StraightFlush + 1]int
}

// WinPercent returns the percentage of trials the given hand (0 or 1)
// won outright, ties excluded.
func (r Result) WinPercent(hand int) float64 {
	return r.percent(float64(r.Wins[hand]))
}

// TiePercent returns the percentage of trials that chopped.
func (r Result) TiePercent() float64 {
	return r.percent(float64(r.Ties))
}

// Equity returns the split-adjusted equity percentage for the given
// hand: ties count half a win.
func (r Result) Equity(hand int) float64 {
	return r.percent(float64(r.Wins[hand]) + float64(r.Ties)/2)
}

// CategoryPercent returns how often the given hand made the given
// category, as a percentage of trials.
func (r Result) CategoryPercent(hand int, cat evaluator.Category) float64 {
	return r.percent(float64(r.Categories[hand][cat]))
}

func (r Result) percent(n float64) float64 {
	if r.Trials == 0 {
		return 0
	}
	return n / float64(r.Trials) * 100
}

// merge folds a worker's partial sums into r.
func (r *Result) merge(other Result) {
	r.Wins[0] += other.Wins[0]
	r.Wins[1] += other.Wins[1]
	r.Ties += other.Ties
	r.Trials += other.Trials
	for hand := range other.Categories {
		for cat, n := range other.Categories[hand] {
			r.Categories[hand][cat] += n
		}
	}
}
