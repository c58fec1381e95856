package compliance

import (
	"regexp"
	"strings"

	"github.com/karmascope/karmascope/helpers"
	"github.com/karmascope/karmascope/keyword"
	"github.com/karmascope/karmascope/setstore"
)

// A named group of checks. The community is nil-safe for stages which don't depend on it.
type Stage struct {
	Name   string
	Checks func(community *CommunityProfile) []Check
}

func staticStage(name string, checks ...Check) Stage {
	return Stage{
		Name: name,
		Checks: func(*CommunityProfile) []Check {
			return checks
		},
	}
}

const (
	MaxLinks          = 3
	MaxExclamations   = 3
	MaxUpperRatio     = 0.3
	upperRatioMinLen  = 50
	repeatedWordLimit = 3
)

var (
	voteManipulationPattern = regexp.MustCompile(`(?i)\b(up|down)[- ]?vot(e|es|ed|ing)\b|\bvote\s+(me\s+)?up\b|\bkarma\s+(please|pls|plz)\b`)
	awardBeggingPattern     = regexp.MustCompile(`(?i)\bgold\b|\bawards?\b`)
)

var StructureStage = staticStage("structure",
	Check{
		Name:    "empty-content",
		Kind:    SeverityIssue,
		Message: "Post content cannot be empty",
		Test: func(sub *Submission) bool {
			return strings.TrimSpace(sub.Text) == ""
		},
	},
	Check{
		Name:    "title-too-short",
		Kind:    SeverityIssue,
		Message: "Title too short (minimum 3 characters)",
		Test: func(sub *Submission) bool {
			return sub.TitleLength < MinTitleLength
		},
	},
	Check{
		Name:    "title-too-long",
		Kind:    SeverityIssue,
		Message: "Title exceeds the 300 character limit",
		Test: func(sub *Submission) bool {
			return sub.TitleLength > MaxTitleLength
		},
	},
	Check{
		Name:    "content-too-long",
		Kind:    SeverityIssue,
		Message: "Post exceeds the 40,000 character limit",
		Test: func(sub *Submission) bool {
			return sub.Length > MaxContentLength
		},
	},
)

var PolicyStage = staticStage("policy",
	Check{
		Name:    "vote-manipulation",
		Kind:    SeverityIssue,
		Message: "Vote manipulation detected - violates the content policy",
		Test: func(sub *Submission) bool {
			return voteManipulationPattern.MatchString(sub.Text)
		},
	},
	Check{
		Name:    "award-begging",
		Kind:    SeverityWarning,
		Message: "Requesting awards may be removed by moderators",
		Test: func(sub *Submission) bool {
			return awardBeggingPattern.MatchString(sub.Text)
		},
	},
)

var StyleStage = staticStage("style",
	Check{
		Name:    "excessive-caps",
		Kind:    SeverityWarning,
		Message: "Excessive capitalization may appear unprofessional",
		Test: func(sub *Submission) bool {
			return sub.UpperRatio > MaxUpperRatio && sub.Length > upperRatioMinLen
		},
	},
	Check{
		Name:    "excessive-exclamation",
		Kind:    SeverityWarning,
		Message: "Too many exclamation marks may reduce credibility",
		Test: func(sub *Submission) bool {
			return sub.Exclamations > MaxExclamations
		},
	},
	Check{
		Name:    "repeated-words",
		Kind:    SeverityWarning,
		Message: "Repeated words may be treated as spam",
		Test: func(sub *Submission) bool {
			word, _ := keyword.RepeatedRun(sub.Tokens, repeatedWordLimit)
			return word != ""
		},
	},
)

// A group of platform domains which communities commonly restrict. Each category warns at most once per submission.
type LinkCategory struct {
	Name    string
	Set     string
	Message string
}

var LinkCategories = []LinkCategory{
	{
		Name:    "video-link",
		Set:     SetVideoDomains,
		Message: "Video platform links are restricted in many communities",
	},
	{
		Name:    "social-link",
		Set:     SetSocialDomains,
		Message: "Social media links are often removed as low-effort content",
	},
}

// Builds the link stage: a spam-filter warning for many links, then one warning per matched platform category.
func LinkStage(sets setstore.MemSetStore) Stage {
	checks := []Check{
		{
			Name:    "too-many-links",
			Kind:    SeverityWarning,
			Message: "Multiple links may trigger spam filters",
			Test: func(sub *Submission) bool {
				return len(sub.URLs) > MaxLinks
			},
		},
	}
	for _, cat := range LinkCategories {
		checks = append(checks, Check{
			Name:    cat.Name,
			Kind:    SeverityWarning,
			Message: cat.Message,
			Test: func(sub *Submission) bool {
				for _, u := range sub.URLs {
					host, err := helpers.ParseHost(u)
					if err != nil {
						continue
					}
					if sets.InSetDomain(cat.Set, host) {
						return true
					}
				}
				return false
			},
		})
	}
	return staticStage("links", checks...)
}
