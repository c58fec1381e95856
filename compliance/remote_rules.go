package compliance

import (
	"fmt"
	"strings"

	"github.com/karmascope/karmascope/keyword"
)

var firstPersonTokens = []string{"i", "me", "my", "mine", "myself"}

// Keyword heuristic for a free-text community rule: when the rule text mentions any of the phrases, the test runs against the submission.
type RuleHeuristic struct {
	Name    string
	Phrases []string
	// formatted with the rule's short name
	Message string
	Test    func(sub *Submission) bool
}

var RuleHeuristics = []RuleHeuristic{
	{
		Name:    "memes",
		Phrases: []string{"no meme"},
		Message: "Post may be a meme, which rule %q prohibits",
		Test: func(sub *Submission) bool {
			return strings.Contains(sub.Lower, "meme") || strings.Contains(sub.Lower, "when you")
		},
	},
	{
		Name:    "images",
		Phrases: []string{"no image", "no picture", "no pics"},
		Message: "Post links an image, which rule %q prohibits",
		Test: func(sub *Submission) bool {
			return sub.HasImageURL()
		},
	},
	{
		Name:    "personal",
		Phrases: []string{"no personal"},
		Message: "Post reads as a personal story, which rule %q prohibits",
		Test: func(sub *Submission) bool {
			return keyword.AnyTokenInSet(sub.Tokens, firstPersonTokens)
		},
	},
	{
		Name:    "links",
		Phrases: []string{"no link", "no url", "no self-promotion", "no self promotion", "no advertis"},
		Message: "Post contains links, which rule %q restricts",
		Test: func(sub *Submission) bool {
			return len(sub.URLs) > 0
		},
	},
}

func ruleLabel(rule Rule, idx int) string {
	if name := strings.TrimSpace(rule.ShortName); name != "" {
		return name
	}
	return fmt.Sprintf("#%d", idx+1)
}

// Picks the first heuristic whose phrases appear in the rule text.
func matchHeuristic(rule Rule) (RuleHeuristic, bool) {
	text := strings.ToLower(rule.ShortName + " " + rule.Description)
	for _, h := range RuleHeuristics {
		for _, phrase := range h.Phrases {
			if strings.Contains(text, phrase) {
				return h, true
			}
		}
	}
	return RuleHeuristic{}, false
}

// One warning check per rule that matches a heuristic; rules in plain prose which match nothing are skipped.
func ruleChecks(rules []Rule) []Check {
	var out []Check
	for i, rule := range rules {
		h, ok := matchHeuristic(rule)
		if !ok {
			continue
		}
		label := ruleLabel(rule, i)
		out = append(out, Check{
			Name:    "rule-" + h.Name,
			Kind:    SeverityWarning,
			Message: fmt.Sprintf(h.Message, label),
			Test:    h.Test,
		})
	}
	return out
}

var RemoteRuleStage = Stage{
	Name: "remote-rules",
	Checks: func(community *CommunityProfile) []Check {
		if community == nil {
			return nil
		}
		return ruleChecks(community.Rules)
	},
}
