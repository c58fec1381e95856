package metrics

import "time"

// Public account metadata, as returned by the upstream platform "about" endpoint. Field names and units (UNIX epoch seconds) match the upstream JSON.
type AccountRecord struct {
	Name         string  `json:"name"`
	CreatedUTC   float64 `json:"created_utc"`
	LinkKarma    int64   `json:"link_karma"`
	CommentKarma int64   `json:"comment_karma"`
	// zero or absent means "not supplied", and falls back to link plus comment karma
	TotalKarma int64 `json:"total_karma"`
	Verified   bool  `json:"verified"`
	IsGold     bool  `json:"is_gold"`
	IsPremium  bool  `json:"is_premium"`
	IsEmployee bool  `json:"is_employee"`
	IsMod      bool  `json:"is_mod"`
	Suspended  bool  `json:"is_suspended"`
}

// A single post or comment by the account.
type ActivityRecord struct {
	Subreddit  string  `json:"subreddit"`
	Score      int64   `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	// posts only
	Title       string `json:"title,omitempty"`
	SelfText    string `json:"selftext,omitempty"`
	NumComments int64  `json:"num_comments,omitempty"`
	// comments only
	Body string `json:"body,omitempty"`
}

type AccountFlags struct {
	Verified  bool `json:"verified"`
	Premium   bool `json:"premium"`
	Employee  bool `json:"employee"`
	Moderator bool `json:"moderator"`
}

type CommunityActivity struct {
	Name     string `json:"name"`
	Activity int    `json:"activity"`
}

type PostSummary struct {
	Title     string    `json:"title"`
	Score     int64     `json:"score"`
	Community string    `json:"community"`
	CreatedAt time.Time `json:"created_at"`
}

// Flat summary of an account and its recent activity. Built once by Build, and treated as read-only afterwards.
type Snapshot struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`

	AccountAgeDays int   `json:"account_age_days"`
	TotalKarma     int64 `json:"total_karma"`
	PostKarma      int64 `json:"post_karma"`
	CommentKarma   int64 `json:"comment_karma"`

	PostsCount    int `json:"posts_count"`
	CommentsCount int `json:"comments_count"`
	TotalActivity int `json:"total_activity"`

	AvgPostScore           float64 `json:"avg_post_score"`
	AvgCommentScore        float64 `json:"avg_comment_score"`
	HighQualityPostCount   int     `json:"high_quality_post_count"`
	ControversialPostCount int     `json:"controversial_post_count"`
	EngagementRatio        float64 `json:"engagement_ratio"`

	TopCommunities []CommunityActivity `json:"top_communities"`
	Flags          AccountFlags        `json:"flags"`

	RecentPosts []PostSummary `json:"recent_posts"`
	// UNIX epoch seconds of every post and comment, newest first
	ActivityTimes []int64 `json:"activity_times,omitempty"`
}
