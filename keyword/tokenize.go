package keyword

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonTokenChars = regexp.MustCompile(`[^\pL\pN\s]+`)

// Splits free-form text in to tokens, including lower-case, unicode normalization, and some unicode folding.
//
// Punctuation is treated as a separator, so "CMV: thing" yields ["cmv", "thing"] and "don't" yields ["don", "t"].
func TokenizeText(text string) []string {
	// the transformer is stateful, so it gets built per call
	normFunc := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	split := strings.ToLower(nonTokenChars.ReplaceAllString(text, " "))
	folded, _, err := transform.String(normFunc, split)
	if err != nil {
		slog.Warn("unicode normalization error", "err", err)
		folded = split
	}
	return strings.Fields(folded)
}

// Returns the first token which appears at least min times in a row, and the length of that run.
//
// Returns an empty string and zero if no run reaches min.
func RepeatedRun(tokens []string, min int) (string, int) {
	if min < 2 || len(tokens) < min {
		return "", 0
	}
	run := 1
	for i := 1; i < len(tokens); i++ {
		if tokens[i] == tokens[i-1] {
			run++
			continue
		}
		if run >= min {
			return tokens[i-1], run
		}
		run = 1
	}
	if run >= min {
		return tokens[len(tokens)-1], run
	}
	return "", 0
}
