package compliance

import (
	"github.com/karmascope/karmascope/setstore"
)

const (
	suggestionLooksGood   = "Post looks good for submission!"
	suggestionPeakHours   = "Consider posting during peak hours for better visibility"
	suggestionFixIssues   = "Fix all critical issues before posting"
	suggestionReviewRules = "Review subreddit rules carefully"
	suggestionNSFW        = "Mark the post NSFW; this community is flagged for adult content"
)

// Runs an ordered list of stages over a submission. An Analyzer is not modified by Analyze, so a single instance can be shared between goroutines.
type Analyzer struct {
	Stages []Stage
	Sets   setstore.MemSetStore
}

func DefaultStages(sets setstore.MemSetStore) []Stage {
	return []Stage{
		StructureStage,
		PolicyStage,
		LinkStage(sets),
		StyleStage,
		CommunityStage,
		RemoteRuleStage,
	}
}

func NewAnalyzer(sets setstore.MemSetStore) *Analyzer {
	return &Analyzer{
		Stages: DefaultStages(sets),
		Sets:   sets,
	}
}

var defaultAnalyzer = NewAnalyzer(DefaultSets())

func (a *Analyzer) HighModeration(community *CommunityProfile) bool {
	return a.Sets.InSet(SetHighModeration, NormalizeCommunityName(community.Name))
}

func (a *Analyzer) Analyze(sub *Submission, community *CommunityProfile) (*Result, error) {
	if community == nil {
		return nil, ErrCommunityNotFound
	}

	var f findings
	for _, stage := range a.Stages {
		for _, c := range stage.Checks(community) {
			f.Apply(c, sub)
		}
	}

	if f.Clean() {
		f.AddSuggestion(suggestionLooksGood)
		f.AddSuggestion(suggestionPeakHours)
	} else {
		f.AddSuggestion(suggestionFixIssues)
		f.AddSuggestion(suggestionReviewRules)
	}
	if community.NSFW {
		f.AddSuggestion(suggestionNSFW)
	}

	res := &Result{
		Issues:       nonNil(f.Issues),
		Warnings:     nonNil(f.Warnings),
		Suggestions:  f.Suggestions,
		Community:    community.Name,
		Subscribers:  community.Subscribers,
		NSFW:         community.NSFW,
		Rules:        nonNil(append([]Rule(nil), community.Rules...)),
		TitlePreview: sub.TitlePreview(),
		HasBody:      sub.Body != "",
		LinkCount:    len(sub.URLs),
	}
	res.RiskScore, res.RiskLevel = ComputeRisk(len(res.Issues), len(res.Warnings), a.HighModeration(community))
	return res, nil
}

// Parses and analyzes text. Any rules passed in are appended to the community's own rules for this call only; the community itself is not modified.
func (a *Analyzer) AnalyzeText(text string, community *CommunityProfile, rules ...Rule) (*Result, error) {
	if community == nil {
		return nil, ErrCommunityNotFound
	}
	if len(rules) > 0 {
		merged := *community
		merged.Rules = append(append([]Rule(nil), community.Rules...), rules...)
		community = &merged
	}
	return a.Analyze(ParseSubmission(text), community)
}

// Analyzes text against a community using the default stages and domain sets.
func AnalyzePost(text string, community *CommunityProfile, rules ...Rule) (*Result, error) {
	return defaultAnalyzer.AnalyzeText(text, community, rules...)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
