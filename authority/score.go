package authority

import (
	"errors"
	"fmt"
	"math"

	"github.com/karmascope/karmascope/metrics"
)

var ErrInvalidMetrics = errors.New("invalid metrics snapshot")

const (
	// flat deduction when too many posts have a negative score
	ControversialPenalty = 5
	ControversialRatio   = 0.2
)

// Per-factor contributions, in points. When the consistency factor is not applied the base factors are already rescaled, so the factors always add up to the pre-penalty total.
type Factors struct {
	Age                float64 `json:"age"`
	Karma              float64 `json:"karma"`
	Activity           float64 `json:"activity"`
	Quality            float64 `json:"quality"`
	Verification       float64 `json:"verification"`
	Diversity          float64 `json:"diversity"`
	Consistency        float64 `json:"consistency"`
	ConsistencyApplied bool    `json:"consistency_applied"`
	Penalty            int     `json:"penalty"`
}

func (f Factors) Total() float64 {
	return f.Age + f.Karma + f.Activity + f.Quality + f.Verification + f.Diversity + f.Consistency
}

type Score struct {
	Value   int     `json:"value"`
	Factors Factors `json:"factors"`
}

// Computes authority scores from metrics snapshots. The zero value scores with the six base factors; set Consistency to also weigh how regularly the account is active.
//
// A Scorer holds no state between calls and can be shared between goroutines.
type Scorer struct {
	Consistency bool
}

// Scores a snapshot with the default Scorer.
func ComputeAuthorityScore(m *metrics.Snapshot) (*Score, error) {
	return Scorer{}.Score(m)
}

func (s Scorer) Score(m *metrics.Snapshot) (*Score, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}

	f := Factors{
		Age:          AgeTiers.Score(int64(m.AccountAgeDays)),
		Karma:        KarmaTiers.Score(m.TotalKarma),
		Activity:     ActivityTiers.Score(int64(m.TotalActivity)),
		Quality:      qualityScore(m),
		Verification: verificationScore(m.Flags),
		Diversity:    math.Min(float64(len(m.TopCommunities))/metrics.MaxTopCommunities, 1) * DiversityWeight,
	}

	consistency, ok := 0.0, false
	if s.Consistency {
		consistency, ok = consistencyScore(m.ActivityTimes)
	}
	if ok {
		f.Consistency = consistency / 100 * ConsistencyWeight
		f.ConsistencyApplied = true
	} else {
		// keep the addressable total at 100
		scale := float64(fullWeight) / float64(baseWeight)
		f.Age *= scale
		f.Karma *= scale
		f.Activity *= scale
		f.Quality *= scale
		f.Verification *= scale
		f.Diversity *= scale
	}

	if m.PostsCount > 0 && float64(m.ControversialPostCount) > float64(m.PostsCount)*ControversialRatio {
		f.Penalty = ControversialPenalty
	}

	val := int(math.Round(f.Total())) - f.Penalty
	return &Score{
		Value:   max(0, min(val, 100)),
		Factors: f,
	}, nil
}

// Checks that a snapshot can be scored: no negative counts, and no negative or non-finite rates.
func Validate(m *metrics.Snapshot) error {
	if m == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidMetrics)
	}
	counts := []struct {
		name string
		val  int
	}{
		{"account_age_days", m.AccountAgeDays},
		{"posts_count", m.PostsCount},
		{"comments_count", m.CommentsCount},
		{"total_activity", m.TotalActivity},
		{"high_quality_post_count", m.HighQualityPostCount},
		{"controversial_post_count", m.ControversialPostCount},
	}
	for _, c := range counts {
		if c.val < 0 {
			return fmt.Errorf("%w: negative %s (%d)", ErrInvalidMetrics, c.name, c.val)
		}
	}
	for _, c := range m.TopCommunities {
		if c.Activity < 0 {
			return fmt.Errorf("%w: negative activity for community %q", ErrInvalidMetrics, c.Name)
		}
	}
	rates := []struct {
		name string
		val  float64
	}{
		{"avg_post_score", m.AvgPostScore},
		{"avg_comment_score", m.AvgCommentScore},
		{"engagement_ratio", m.EngagementRatio},
	}
	for _, r := range rates {
		if r.val < 0 || math.IsNaN(r.val) || math.IsInf(r.val, 0) {
			return fmt.Errorf("%w: invalid %s (%v)", ErrInvalidMetrics, r.name, r.val)
		}
	}
	return nil
}

func qualityScore(m *metrics.Snapshot) float64 {
	post := math.Min(m.AvgPostScore/50, 1)
	comment := math.Min(m.AvgCommentScore/10, 1)
	engagement := math.Min(m.EngagementRatio/20, 1)
	highQuality := 0.0
	if m.PostsCount > 0 {
		highQuality = math.Min(float64(m.HighQualityPostCount)/float64(m.PostsCount), 1)
	}
	blend := 0.4*post + 0.3*comment + 0.2*engagement + 0.1*highQuality
	return blend * QualityWeight
}

func verificationScore(flags metrics.AccountFlags) float64 {
	score := 0.0
	if flags.Verified {
		score += 2
	}
	if flags.Premium {
		score += 1.5
	}
	if flags.Employee {
		score += 1
	}
	if flags.Moderator {
		score += 0.5
	}
	return score
}
