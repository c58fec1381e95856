package authority

import (
	"math"
	"slices"
)

const (
	// the consistency factor needs more than this many timestamps
	MinConsistencySamples = 10
	secondsPerDay         = 24 * 60 * 60
)

// Returns a 0-100 regularity score from activity timestamps (UNIX seconds), and false when there are too few samples to judge.
//
// The score drops by two points for every day of mean gap between consecutive activities.
func consistencyScore(times []int64) (float64, bool) {
	if len(times) <= MinConsistencySamples {
		return 0, false
	}
	sorted := slices.Clone(times)
	slices.Sort(sorted)
	slices.Reverse(sorted)

	var gapSum float64
	for i := 1; i < len(sorted); i++ {
		gapSum += float64(sorted[i-1]-sorted[i]) / secondsPerDay
	}
	meanGap := gapSum / float64(len(sorted)-1)
	return math.Max(0, 100-2*meanGap), true
}
