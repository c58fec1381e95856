package compliance

import "github.com/karmascope/karmascope/setstore"

const (
	SetVideoDomains   = "video-domains"
	SetSocialDomains  = "social-domains"
	SetHighModeration = "high-moderation-communities"
)

var defaultSets = map[string][]string{
	SetVideoDomains: {
		"youtube.com",
		"youtu.be",
		"vimeo.com",
		"twitch.tv",
		"dailymotion.com",
		"streamable.com",
		"tiktok.com",
	},
	SetSocialDomains: {
		"twitter.com",
		"x.com",
		"facebook.com",
		"fb.com",
		"instagram.com",
		"threads.net",
		"bsky.app",
		"linkedin.com",
		"snapchat.com",
	},
	// communities with strict moderation, which add a flat amount to the risk score
	SetHighModeration: {
		"askreddit",
		"askscience",
		"askhistorians",
		"science",
		"worldnews",
		"news",
		"politics",
		"pics",
		"todayilearned",
		"til",
		"changemyview",
		"cmv",
		"explainlikeimfive",
		"eli5",
		"iama",
		"history",
	},
}

// Returns a fresh set store with the built-in platform domain and community sets. Callers may load overrides on top of it.
func DefaultSets() setstore.MemSetStore {
	sets := setstore.NewMemSetStore()
	for name, vals := range defaultSets {
		sets.Add(name, vals...)
	}
	return sets
}
