package compliance

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

// Random post text built from fake sentences, links, and shouting.
func fakePost(f *gofakeit.Faker) string {
	var sb strings.Builder
	sb.WriteString(f.Sentence(f.Number(1, 12)))
	for range f.Number(0, 3) {
		sb.WriteString("\n")
		sb.WriteString(f.Paragraph(1, f.Number(1, 4), f.Number(3, 20), " "))
	}
	for range f.Number(0, 5) {
		sb.WriteString(" ")
		sb.WriteString(f.URL())
	}
	if f.Bool() {
		sb.WriteString(strings.ToUpper(f.Sentence(f.Number(5, 15))))
	}
	sb.WriteString(strings.Repeat("!", f.Number(0, 6)))
	return sb.String()
}

func TestAnalyzeRandomPosts(t *testing.T) {
	assert := assert.New(t)
	f := gofakeit.New(42)

	names := []string{"askreddit", "til", "showerthoughts", "cmv", "pics", "eli5", "tifu", "golang"}
	rules := []Rule{{ShortName: "No memes"}, {ShortName: "No links"}, {Description: "No personal information"}}

	for range 500 {
		text := fakePost(f)
		c := community(names[f.Number(0, len(names)-1)], rules[:f.Number(0, len(rules))]...)

		res, err := AnalyzePost(text, c)
		assert.NoError(err)
		assert.GreaterOrEqual(res.RiskScore, 0)
		assert.LessOrEqual(res.RiskScore, 100)
		assert.Len(res.Suggestions, 2)

		switch {
		case res.RiskScore > HighRiskThreshold:
			assert.Equal(RiskHigh, res.RiskLevel)
		case res.RiskScore > MediumRiskThreshold:
			assert.Equal(RiskMedium, res.RiskLevel)
		default:
			assert.Equal(RiskLow, res.RiskLevel)
		}

		// at most one warning per supplied rule
		ruleWarnings := 0
		for _, w := range res.Warnings {
			if strings.Contains(w, "which rule") {
				ruleWarnings++
			}
		}
		assert.LessOrEqual(ruleWarnings, len(c.Rules))

		again, err := AnalyzePost(text, c)
		assert.NoError(err)
		assert.Equal(res, again)
	}
}
