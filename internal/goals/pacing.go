package goals

import (
	"math"
	"time"

	"github.com/aiotex/weighttracker/internal/period"
	"github.com/aiotex/weighttracker/internal/units"
)

// RequiredChangePerPeriod computes how much weight has to change per period
// to reach the goal's target by its target date. startWeightOverride re-paces
// mid-goal from the weight observed at the start of the current period; pass
// 0 to pace from the goal's recorded start weight.
//
// The second return is false when no pacing figure is meaningful: the target
// date has passed, is today, or the period has no day count.
func RequiredChangePerPeriod(
	goal Goal,
	p period.Period,
	today time.Time,
	startWeightOverride float64,
) (float64, bool) {
	startWeight := goal.StartWeightKg
	if startWeightOverride > 0 {
		startWeight = startWeightOverride
	}

	remaining := math.Ceil(period.RemainingPeriods(p, goal.TargetDate, today))
	if remaining <= 0 {
		return 0, false
	}

	totalChange := math.Abs(goal.TargetWeightKg - startWeight)
	return totalChange / remaining, true
}

// PaceResponse is the wire form of a pacing figure.
type PaceResponse struct {
	Period           period.Period `json:"period"`
	RequiredChangeKg float64       `json:"requiredChangePerPeriod"`
	Achievable       bool          `json:"achievable"`
	RemainingPeriods float64       `json:"remainingPeriods"`
}

// Pace bundles the pacing figure with the period it was computed for.
// The per-period change is rounded to 2 decimals for display.
func Pace(goal Goal, p period.Period, today time.Time, startWeightOverride float64) PaceResponse {
	change, ok := RequiredChangePerPeriod(goal, p, today, startWeightOverride)
	return PaceResponse{
		Period:           p,
		RequiredChangeKg: units.RoundTo(change, 2),
		Achievable:       ok,
		RemainingPeriods: math.Ceil(period.RemainingPeriods(p, goal.TargetDate, today)),
	}
}
