package compliance

import (
	"regexp"
	"strings"

	"github.com/karmascope/karmascope/keyword"
)

const cmvMinBodyLength = 500

var (
	yesNoQuestionPattern = regexp.MustCompile(`(?i)^\s*(is|are|am|was|were|do|does|did|can|could|will|would|should|shall|has|have|had)\s`)
	doesAnyoneElse       = regexp.MustCompile(`(?i)\bdoes\s+anyone\s+else\b`)
)

func titleHasPrefix(sub *Submission, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(sub.Title)), prefix)
}

var askRedditChecks = []Check{
	{
		Name:    "askreddit-question",
		Kind:    SeverityIssue,
		Message: "AskReddit requires posts to be questions",
		Test: func(sub *Submission) bool {
			return !strings.Contains(sub.Text, "?")
		},
	},
	{
		Name:    "askreddit-yes-no",
		Kind:    SeverityIssue,
		Message: "AskReddit questions must be open-ended, not yes/no",
		Test: func(sub *Submission) bool {
			return yesNoQuestionPattern.MatchString(sub.Title)
		},
	},
	{
		Name:    "askreddit-body",
		Kind:    SeverityIssue,
		Message: "AskReddit posts must be title-only (no text in body)",
		Test: func(sub *Submission) bool {
			return strings.TrimSpace(sub.Body) != ""
		},
	},
}

var todayILearnedChecks = []Check{
	{
		Name:    "til-prefix",
		Kind:    SeverityIssue,
		Message: `TIL posts must start with "TIL"`,
		Test: func(sub *Submission) bool {
			return !strings.HasPrefix(sub.Lower, "til")
		},
	},
	{
		Name:    "til-source",
		Kind:    SeverityIssue,
		Message: "TIL posts require a source link",
		Test: func(sub *Submission) bool {
			return len(sub.URLs) == 0
		},
	},
}

var showerThoughtsChecks = []Check{
	{
		Name:    "showerthoughts-question",
		Kind:    SeverityIssue,
		Message: "Shower Thoughts cannot be questions",
		Test: func(sub *Submission) bool {
			return strings.Contains(sub.Text, "?")
		},
	},
	{
		Name:    "showerthoughts-anyone-else",
		Kind:    SeverityIssue,
		Message: `Shower Thoughts does not allow "does anyone else" posts`,
		Test: func(sub *Submission) bool {
			return doesAnyoneElse.MatchString(sub.Text)
		},
	},
}

var changeMyViewChecks = []Check{
	{
		Name:    "cmv-prefix",
		Kind:    SeverityIssue,
		Message: `Change My View posts must include "CMV"`,
		Test: func(sub *Submission) bool {
			return !keyword.TokenInSet("cmv", sub.Tokens)
		},
	},
	{
		Name:    "cmv-body-length",
		Kind:    SeverityIssue,
		Message: "Change My View posts need at least 500 characters explaining the view",
		Test: func(sub *Submission) bool {
			return sub.BodyLength < cmvMinBodyLength
		},
	},
}

var picsChecks = []Check{
	{
		Name:    "pics-image",
		Kind:    SeverityIssue,
		Message: "Pics posts require a direct image link",
		Test: func(sub *Submission) bool {
			return !sub.HasImageURL()
		},
	},
}

var explainLikeImFiveChecks = []Check{
	{
		Name:    "eli5-prefix",
		Kind:    SeverityIssue,
		Message: `Explain Like I'm Five titles must start with "ELI5"`,
		Test: func(sub *Submission) bool {
			return !titleHasPrefix(sub, "eli5")
		},
	},
}

var tifuChecks = []Check{
	{
		Name:    "tifu-prefix",
		Kind:    SeverityIssue,
		Message: `TIFU titles must start with "TIFU"`,
		Test: func(sub *Submission) bool {
			return !titleHasPrefix(sub, "tifu")
		},
	},
}

// Fixed per-community checks, keyed by lower-case community name. Aliases share the same list.
var CommunityChecks = map[string][]Check{
	"askreddit":         askRedditChecks,
	"todayilearned":     todayILearnedChecks,
	"til":               todayILearnedChecks,
	"showerthoughts":    showerThoughtsChecks,
	"changemyview":      changeMyViewChecks,
	"cmv":               changeMyViewChecks,
	"pics":              picsChecks,
	"explainlikeimfive": explainLikeImFiveChecks,
	"eli5":              explainLikeImFiveChecks,
	"tifu":              tifuChecks,
}

// Lower-cases a community name and strips any "r/" or "/r/" prefix.
func NormalizeCommunityName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "/")
	return strings.TrimPrefix(name, "r/")
}

var CommunityStage = Stage{
	Name: "community",
	Checks: func(community *CommunityProfile) []Check {
		if community == nil {
			return nil
		}
		return CommunityChecks[NormalizeCommunityName(community.Name)]
	},
}
