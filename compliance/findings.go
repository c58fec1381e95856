package compliance

// Mutable container for everything the analysis stages produce. Only used while building a Result.
type findings struct {
	Issues      []string
	Warnings    []string
	Suggestions []string
}

func (f *findings) Apply(c Check, sub *Submission) {
	if !c.Test(sub) {
		return
	}
	switch c.Kind {
	case SeverityIssue:
		f.AddIssue(c.Message)
	case SeverityWarning:
		f.AddWarning(c.Message)
	}
}

func (f *findings) AddIssue(msg string) {
	f.Issues = append(f.Issues, msg)
}

func (f *findings) AddWarning(msg string) {
	f.Warnings = append(f.Warnings, msg)
}

func (f *findings) AddSuggestion(msg string) {
	f.Suggestions = append(f.Suggestions, msg)
}

func (f *findings) Clean() bool {
	return len(f.Issues) == 0 && len(f.Warnings) == 0
}
