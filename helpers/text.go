package helpers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spaolacci/murmur3"
)

func DedupeStrings(in []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range in {
		if !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	return out
}

// returns a fast, compact hash of a string
//
// current implementation uses murmur3, default seed, and hex encoding
func HashOfString(s string) string {
	val := murmur3.Sum64([]byte(s))
	return fmt.Sprintf("%016x", val)
}

// only explicit http(s) links count; bare domains ("e.g.", "example.com") are ignored
var urlRegex = regexp.MustCompile(`(?i)https?://[^\s<>"]+`)

// Extracts well-formed http(s) URLs from free-form text, in order of appearance. Trailing sentence punctuation is dropped, and matches without a parseable host are skipped.
func ExtractTextURLs(raw string) []string {
	var out []string
	for _, m := range urlRegex.FindAllString(raw, -1) {
		m = strings.TrimRight(m, ".,;:!?)]}'")
		if _, err := ParseHost(m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}
