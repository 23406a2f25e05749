package period

import "time"

// RemainingPeriods returns the fractional number of periods left between
// today and end, measured in the period's nominal day count. Returns 0
// when the end has passed or the period has no day count (unresolved "all").
func RemainingPeriods(p Period, end, today time.Time) float64 {
	if p.DaysInPeriod == 0 {
		return 0
	}
	periodDuration := time.Duration(p.DaysInPeriod) * 24 * time.Hour
	remaining := end.Sub(today)
	if remaining <= 0 {
		return 0
	}
	return float64(remaining) / float64(periodDuration)
}
