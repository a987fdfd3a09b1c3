package utils

import "time"

// PointsPolicy converts a completed check-in/check-out pair into earned
// points. The source deployments disagreed on the curve, so the active policy
// is an explicit configuration choice rather than a hardcoded rule.
type PointsPolicy interface {
	Name() string
	// Settle returns the points for one session. It never returns a negative
	// value and yields 0 when out is not strictly after in; inverted pairs are
	// a data-quality condition, not an error.
	Settle(in, out time.Time) int
}

// Policy names accepted in configuration.
const (
	PolicyHourly        = "hourly"
	PolicyHalfHourBlock = "half_hour_block"
)

// HourlyPolicy awards one point per whole hour of attendance.
type HourlyPolicy struct{}

func (HourlyPolicy) Name() string { return PolicyHourly }

func (HourlyPolicy) Settle(in, out time.Time) int {
	return wholeMinutes(in, out) / 60
}

// HalfHourBlockPolicy awards five points per completed 30-minute block.
type HalfHourBlockPolicy struct{}

func (HalfHourBlockPolicy) Name() string { return PolicyHalfHourBlock }

func (HalfHourBlockPolicy) Settle(in, out time.Time) int {
	return (wholeMinutes(in, out) / 30) * 5
}

// PolicyFromName maps a configured name to a policy, defaulting to hourly.
func PolicyFromName(name string) PointsPolicy {
	if name == PolicyHalfHourBlock {
		return HalfHourBlockPolicy{}
	}
	return HourlyPolicy{}
}

func wholeMinutes(in, out time.Time) int {
	if !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Minutes())
}
