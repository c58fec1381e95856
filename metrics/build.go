package metrics

import (
	"errors"
	"math"
	"slices"
	"sort"
	"time"
)

var ErrInvalidAccountState = errors.New("account is missing or suspended")

const (
	// posts scoring above this are counted as high quality
	HighQualityScore  = 100
	MaxTopCommunities = 8
	MaxRecentPosts    = 5

	secondsPerDay = 24 * 60 * 60
)

// Aggregates account and activity records in to a Snapshot, using the current wall-clock time for account age.
func Build(acct *AccountRecord, posts, comments []ActivityRecord) (*Snapshot, error) {
	return BuildAt(time.Now(), acct, posts, comments)
}

// Same as Build, with an explicit "now" for the account age computation.
func BuildAt(now time.Time, acct *AccountRecord, posts, comments []ActivityRecord) (*Snapshot, error) {
	if acct == nil {
		return nil, ErrInvalidAccountState
	}
	if acct.Suspended {
		return nil, ErrInvalidAccountState
	}

	totalKarma := acct.TotalKarma
	if totalKarma == 0 {
		totalKarma = acct.LinkKarma + acct.CommentKarma
	}

	snap := &Snapshot{
		Username:       acct.Name,
		CreatedAt:      epochTime(acct.CreatedUTC),
		AccountAgeDays: accountAgeDays(now, acct.CreatedUTC),
		TotalKarma:     totalKarma,
		PostKarma:      acct.LinkKarma,
		CommentKarma:   acct.CommentKarma,
		PostsCount:     len(posts),
		CommentsCount:  len(comments),
		TotalActivity:  len(posts) + len(comments),
		Flags: AccountFlags{
			Verified:  acct.Verified,
			Premium:   acct.IsGold || acct.IsPremium,
			Employee:  acct.IsEmployee,
			Moderator: acct.IsMod,
		},
	}

	postSum, postN := nonNegativeSum(posts)
	commentSum, commentN := nonNegativeSum(comments)
	if postN > 0 {
		snap.AvgPostScore = float64(postSum) / float64(postN)
	}
	if commentN > 0 {
		snap.AvgCommentScore = float64(commentSum) / float64(commentN)
	}
	if snap.TotalActivity > 0 {
		// NOTE: divides by all activity, including the negative-score items left out of the sum
		snap.EngagementRatio = float64(postSum+commentSum) / float64(snap.TotalActivity)
	}

	for _, p := range posts {
		if p.Score > HighQualityScore {
			snap.HighQualityPostCount++
		}
		if p.Score < 0 {
			snap.ControversialPostCount++
		}
	}

	snap.TopCommunities = topCommunities(posts, comments, MaxTopCommunities)
	snap.RecentPosts = recentPosts(posts, MaxRecentPosts)
	snap.ActivityTimes = activityTimes(posts, comments)
	return snap, nil
}

func epochTime(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}

func accountAgeDays(now time.Time, createdUTC float64) int {
	elapsed := float64(now.Unix()) - createdUTC
	if elapsed <= 0 {
		return 0
	}
	return int(math.Floor(elapsed / secondsPerDay))
}

func nonNegativeSum(items []ActivityRecord) (int64, int) {
	var sum int64
	n := 0
	for _, it := range items {
		if it.Score < 0 {
			continue
		}
		sum += it.Score
		n++
	}
	return sum, n
}

// counts posts and comments per community, ordered by count with ties kept in first-seen order
func topCommunities(posts, comments []ActivityRecord, limit int) []CommunityActivity {
	idx := make(map[string]int)
	var out []CommunityActivity
	for _, list := range [][]ActivityRecord{posts, comments} {
		for _, it := range list {
			if it.Subreddit == "" {
				continue
			}
			i, ok := idx[it.Subreddit]
			if !ok {
				i = len(out)
				idx[it.Subreddit] = i
				out = append(out, CommunityActivity{Name: it.Subreddit})
			}
			out[i].Activity++
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Activity > out[j].Activity
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func recentPosts(posts []ActivityRecord, limit int) []PostSummary {
	n := min(len(posts), limit)
	out := make([]PostSummary, 0, n)
	for _, p := range posts[:n] {
		title := p.Title
		if title == "" {
			title = "Untitled"
		}
		community := p.Subreddit
		if community == "" {
			community = "unknown"
		}
		out = append(out, PostSummary{
			Title:     title,
			Score:     p.Score,
			Community: community,
			CreatedAt: epochTime(p.CreatedUTC),
		})
	}
	return out
}

func activityTimes(posts, comments []ActivityRecord) []int64 {
	out := make([]int64, 0, len(posts)+len(comments))
	for _, list := range [][]ActivityRecord{posts, comments} {
		for _, it := range list {
			out = append(out, int64(it.CreatedUTC))
		}
	}
	slices.Sort(out)
	slices.Reverse(out)
	return out
}
