package compliance

import "errors"

var ErrCommunityNotFound = errors.New("community not found")

type Severity string

const (
	SeverityIssue   Severity = "issue"
	SeverityWarning Severity = "warning"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// A community-supplied moderation guideline, as returned by the upstream rules endpoint.
type Rule struct {
	ShortName   string `json:"short_name"`
	Description string `json:"description"`
}

// Community metadata, as returned by the upstream "about" endpoint, plus any rules which could be fetched.
type CommunityProfile struct {
	Name        string `json:"display_name"`
	Subscribers int64  `json:"subscribers"`
	NSFW        bool   `json:"over18"`
	Rules       []Rule `json:"rules,omitempty"`
}

// A single predicate over a submission, and the finding it produces when the predicate holds.
type Check struct {
	Name    string
	Kind    Severity
	Message string
	Test    func(sub *Submission) bool
}

// Outcome of analyzing one submission against one community. Built fresh by every call, and not modified afterwards.
type Result struct {
	Issues      []string  `json:"issues"`
	Warnings    []string  `json:"warnings"`
	Suggestions []string  `json:"suggestions"`
	RiskScore   int       `json:"risk_score"`
	RiskLevel   RiskLevel `json:"risk_level"`

	Community    string `json:"community"`
	Subscribers  int64  `json:"subscribers"`
	NSFW         bool   `json:"nsfw"`
	Rules        []Rule `json:"rules"`
	TitlePreview string `json:"title_preview"`
	HasBody      bool   `json:"has_body"`
	LinkCount    int    `json:"link_count"`
}
