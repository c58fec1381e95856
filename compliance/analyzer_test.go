package compliance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func community(name string, rules ...Rule) *CommunityProfile {
	return &CommunityProfile{Name: name, Subscribers: 1000, Rules: rules}
}

func TestAnalyzeSourcedTILPost(t *testing.T) {
	assert := assert.New(t)

	res, err := AnalyzePost("TIL that rust never sleeps http://example.com/source", community("todayilearned"))
	assert.NoError(err)
	assert.Empty(res.Issues)
	assert.Empty(res.Warnings)
	assert.Equal([]string{suggestionLooksGood, suggestionPeakHours}, res.Suggestions)
	// only the strict-moderation surcharge
	assert.Equal(10, res.RiskScore)
	assert.Equal(RiskLow, res.RiskLevel)
	assert.Equal(1, res.LinkCount)
	assert.False(res.HasBody)
}

func TestAnalyzeVoteBegging(t *testing.T) {
	assert := assert.New(t)

	res, err := AnalyzePost("UPVOTE this please!!!!", community("pics"))
	assert.NoError(err)
	assert.Equal([]string{
		"Vote manipulation detected - violates the content policy",
		"Pics posts require a direct image link",
	}, res.Issues)
	assert.Equal([]string{"Too many exclamation marks may reduce credibility"}, res.Warnings)
	assert.Equal([]string{suggestionFixIssues, suggestionReviewRules}, res.Suggestions)
	assert.Equal(95, res.RiskScore)
	assert.Equal(RiskHigh, res.RiskLevel)
	assert.Equal("UPVOTE this please!!!!", res.TitlePreview)
}

func TestAnalyzeEmptyContent(t *testing.T) {
	assert := assert.New(t)

	res, err := AnalyzePost("", community("somewhere"))
	assert.NoError(err)
	assert.Contains(res.Issues, "Post content cannot be empty")
	assert.GreaterOrEqual(res.RiskScore, 35)
	assert.NotEqual(RiskLow, res.RiskLevel)

	res, err = AnalyzePost("   \n\t", community("somewhere"))
	assert.NoError(err)
	assert.Contains(res.Issues, "Post content cannot be empty")
}

func TestAnalyzeUnknownCommunity(t *testing.T) {
	assert := assert.New(t)

	res, err := AnalyzePost("A perfectly ordinary post about gardening", community("SomeTinyCommunity"))
	assert.NoError(err)
	assert.Empty(res.Issues)
	assert.Empty(res.Warnings)
	assert.Zero(res.RiskScore)
	assert.Equal(RiskLow, res.RiskLevel)
	assert.NotNil(res.Rules)
	assert.Equal("SomeTinyCommunity", res.Community)
}

func TestAnalyzeNilCommunity(t *testing.T) {
	assert := assert.New(t)

	_, err := AnalyzePost("hello there", nil)
	assert.ErrorIs(err, ErrCommunityNotFound)

	_, err = NewAnalyzer(DefaultSets()).Analyze(ParseSubmission("hello there"), nil)
	assert.ErrorIs(err, ErrCommunityNotFound)
}

func TestAnalyzeStableOrdering(t *testing.T) {
	assert := assert.New(t)

	text := "Does anyone else think UPVOTE gold gold gold is silly?!!!! https://youtube.com/a https://x.com/b https://example.com/c https://example.org/d"
	c := community("showerthoughts", Rule{ShortName: "No self-promotion"})
	first, err := AnalyzePost(text, c)
	assert.NoError(err)
	for range 5 {
		again, err := AnalyzePost(text, c)
		assert.NoError(err)
		assert.Equal(first, again)
	}
	// stage order: policy, links, style, community, remote rules
	assert.Equal([]string{
		"Vote manipulation detected - violates the content policy",
		"Shower Thoughts cannot be questions",
		`Shower Thoughts does not allow "does anyone else" posts`,
	}, first.Issues)
	assert.Equal([]string{
		"Requesting awards may be removed by moderators",
		"Multiple links may trigger spam filters",
		"Video platform links are restricted in many communities",
		"Social media links are often removed as low-effort content",
		"Too many exclamation marks may reduce credibility",
		"Repeated words may be treated as spam",
		`Post contains links, which rule "No self-promotion" restricts`,
	}, first.Warnings)
}

func TestStructureStage(t *testing.T) {
	assert := assert.New(t)

	res, err := AnalyzePost("Hi", community("x"))
	assert.NoError(err)
	assert.Equal([]string{"Title too short (minimum 3 characters)"}, res.Issues)

	res, err = AnalyzePost(strings.Repeat("a", 301), community("x"))
	assert.NoError(err)
	assert.Equal([]string{"Title exceeds the 300 character limit"}, res.Issues)

	res, err = AnalyzePost("Fine title\n"+strings.Repeat("b ", 20001), community("x"))
	assert.NoError(err)
	assert.Contains(res.Issues, "Post exceeds the 40,000 character limit")
}

func TestStyleStage(t *testing.T) {
	assert := assert.New(t)

	res, err := AnalyzePost("THIS IS A VERY LOUD TITLE THAT KEEPS GOING AND GOING FOR A WHILE", community("x"))
	assert.NoError(err)
	assert.Equal([]string{"Excessive capitalization may appear unprofessional"}, res.Warnings)

	// short shouting is tolerated
	res, err = AnalyzePost("HELLO THERE", community("x"))
	assert.NoError(err)
	assert.Empty(res.Warnings)

	res, err = AnalyzePost("buy buy buy this now", community("x"))
	assert.NoError(err)
	assert.Equal([]string{"Repeated words may be treated as spam"}, res.Warnings)

	res, err = AnalyzePost("wow!!!", community("x"))
	assert.NoError(err)
	assert.Empty(res.Warnings)
}

func TestLinkStage(t *testing.T) {
	assert := assert.New(t)

	// two video links still produce one warning
	res, err := AnalyzePost("watch https://www.youtube.com/watch?v=1 and https://youtu.be/2", community("x"))
	assert.NoError(err)
	assert.Equal([]string{"Video platform links are restricted in many communities"}, res.Warnings)

	res, err = AnalyzePost("follow me https://mobile.twitter.com/someone", community("x"))
	assert.NoError(err)
	assert.Equal([]string{"Social media links are often removed as low-effort content"}, res.Warnings)

	// custom domain sets
	sets := DefaultSets()
	sets.Add(SetVideoDomains, "example.org")
	res, err = NewAnalyzer(sets).Analyze(ParseSubmission("clip https://example.org/v"), community("x"))
	assert.NoError(err)
	assert.Equal([]string{"Video platform links are restricted in many communities"}, res.Warnings)
}

func TestCommunityStage(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		community string
		text      string
		issues    []string
	}{
		{"AskReddit", "What is your favorite food?", nil},
		{"askreddit", "What is the best thing to cook", []string{"AskReddit requires posts to be questions"}},
		{"askreddit", "Is pizza good?", []string{"AskReddit questions must be open-ended, not yes/no"}},
		{"askreddit", "What should I cook?\nI have eggs", []string{"AskReddit posts must be title-only (no text in body)"}},
		{"r/TIL", "til octopuses have three hearts https://example.com/octo", nil},
		{"todayilearned", "Octopuses have three hearts", []string{`TIL posts must start with "TIL"`, "TIL posts require a source link"}},
		{"Showerthoughts", "Rain is just sky soup", nil},
		{"changemyview", "CMV: pineapple belongs on pizza\n" + strings.Repeat("argument ", 60), nil},
		{"cmv", "Pineapple belongs on pizza", []string{`Change My View posts must include "CMV"`, "Change My View posts need at least 500 characters explaining the view"}},
		{"pics", "my cat https://i.imgur.com/cat.png", nil},
		{"eli5", "ELI5: how do planes fly", nil},
		{"explainlikeimfive", "How do planes fly", []string{`Explain Like I'm Five titles must start with "ELI5"`}},
		{"tifu", "TIFU by locking myself out", nil},
		{"tifu", "Locked myself out today", []string{`TIFU titles must start with "TIFU"`}},
	}

	for _, f := range fixtures {
		res, err := AnalyzePost(f.text, community(f.community))
		assert.NoError(err)
		if f.issues == nil {
			assert.Empty(res.Issues, f.community+": "+f.text)
		} else {
			assert.Equal(f.issues, res.Issues, f.community+": "+f.text)
		}
	}
}

func TestNormalizeCommunityName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("askreddit", NormalizeCommunityName("AskReddit"))
	assert.Equal("askreddit", NormalizeCommunityName("r/AskReddit"))
	assert.Equal("askreddit", NormalizeCommunityName(" /r/askreddit "))
}

func TestRemoteRules(t *testing.T) {
	assert := assert.New(t)

	rules := []Rule{
		{ShortName: "No memes", Description: "Memes and image macros will be removed"},
		{ShortName: "", Description: "No personal stories or anecdotes"},
		{ShortName: "Be civil", Description: "Treat others with respect"},
		{ShortName: "No images or links"},
	}
	c := community("someplace", rules...)

	res, err := AnalyzePost("When you realize my code works https://i.redd.it/x1", c)
	assert.NoError(err)
	assert.Equal([]string{
		`Post may be a meme, which rule "No memes" prohibits`,
		`Post reads as a personal story, which rule "#2" prohibits`,
		`Post links an image, which rule "No images or links" prohibits`,
	}, res.Warnings)

	// nothing to flag
	res, err = AnalyzePost("Interesting facts about volcanoes", c)
	assert.NoError(err)
	assert.Empty(res.Warnings)
}

func TestAnalyzePostExtraRules(t *testing.T) {
	assert := assert.New(t)

	c := community("someplace")
	res, err := AnalyzePost("read this https://example.com/post", c, Rule{ShortName: "No links"})
	assert.NoError(err)
	assert.Equal([]string{`Post contains links, which rule "No links" restricts`}, res.Warnings)
	assert.Len(res.Rules, 1)
	// caller's community is not modified
	assert.Empty(c.Rules)
}

func TestAnalyzeNSFWCommunity(t *testing.T) {
	assert := assert.New(t)

	c := community("someplace")
	c.NSFW = true
	res, err := AnalyzePost("An ordinary post", c)
	assert.NoError(err)
	assert.True(res.NSFW)
	assert.Contains(res.Suggestions, suggestionNSFW)
}
