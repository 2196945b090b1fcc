// Package idle implements the pure idleness evaluation at the heart of the
// reminder engine. It has no I/O and no state: given a current time, a
// baseline activity time, and a threshold, it decides whether a plan is
// idle. Time arithmetic is whole-minute truncation to match the minute-based
// configuration semantics.
package idle

import "time"

// Evaluation is the result of one idleness check.
type Evaluation struct {
	// Idle is true when the elapsed time meets or exceeds the threshold.
	Idle bool

	// ElapsedMinutes is the whole number of minutes between the baseline
	// and now, truncated. Never negative.
	ElapsedMinutes int64
}

// Evaluate computes whether a plan is idle. The baseline is the plan's most
// recent recorded activity, or its creation time if it has never seen a
// check-in. thresholdMinutes is the user's configured idle threshold.
//
// If now is before the baseline (clock skew, future-dated baseline), the
// elapsed time is clamped to zero and the plan is not idle.
func Evaluate(now, baseline time.Time, thresholdMinutes int) Evaluation {
	if now.Before(baseline) {
		return Evaluation{Idle: false, ElapsedMinutes: 0}
	}

	elapsed := MinutesBetween(baseline, now)
	return Evaluation{
		Idle:           elapsed >= int64(thresholdMinutes),
		ElapsedMinutes: elapsed,
	}
}

// MinutesBetween returns the whole number of minutes from earlier to later,
// truncated toward zero. Negative when later precedes earlier.
func MinutesBetween(earlier, later time.Time) int64 {
	return int64(later.Sub(earlier) / time.Minute)
}
