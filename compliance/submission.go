package compliance

import (
	"strings"
	"unicode"

	"github.com/karmascope/karmascope/helpers"
	"github.com/karmascope/karmascope/keyword"

	"github.com/rivo/uniseg"
)

const (
	MaxTitleLength   = 300
	MinTitleLength   = 3
	MaxContentLength = 40000
	previewLength    = 100
)

// Candidate post text, split and measured once so that checks can share the work. Lengths count user-perceived characters (grapheme clusters).
type Submission struct {
	Text  string
	Lower string
	// first line of the text; when that line is empty, the first 300 characters
	Title string
	// text after the first newline, if any
	Body         string
	Length       int
	TitleLength  int
	BodyLength   int
	UpperRatio   float64
	Exclamations int
	URLs         []string
	Tokens       []string
}

func ParseSubmission(text string) *Submission {
	sub := &Submission{
		Text:  text,
		Lower: strings.ToLower(text),
	}

	if idx := strings.Index(text, "\n"); idx >= 0 {
		sub.Title = text[:idx]
		sub.Body = text[idx+1:]
	} else {
		sub.Title = text
	}
	if sub.Title == "" {
		sub.Title, _ = truncateGraphemes(text, MaxTitleLength)
	}

	sub.Length = uniseg.GraphemeClusterCount(text)
	sub.TitleLength = uniseg.GraphemeClusterCount(sub.Title)
	sub.BodyLength = uniseg.GraphemeClusterCount(sub.Body)

	upper := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if sub.Length > 0 {
		sub.UpperRatio = float64(upper) / float64(sub.Length)
	}
	sub.Exclamations = strings.Count(text, "!")
	sub.URLs = helpers.ExtractTextURLs(text)
	sub.Tokens = keyword.TokenizeText(text)
	return sub
}

func (s *Submission) HasImageURL() bool {
	for _, u := range s.URLs {
		if helpers.IsImageURL(u) {
			return true
		}
	}
	return false
}

// Short version of the title for display.
func (s *Submission) TitlePreview() string {
	preview, cut := truncateGraphemes(s.Title, previewLength)
	if cut {
		return preview + "..."
	}
	return preview
}

// returns the first n grapheme clusters of s, and whether anything was cut off
func truncateGraphemes(s string, n int) (string, bool) {
	gr := uniseg.NewGraphemes(s)
	count := 0
	end := 0
	for gr.Next() {
		if count == n {
			return s[:end], true
		}
		_, end = gr.Positions()
		count++
	}
	return s, false
}
