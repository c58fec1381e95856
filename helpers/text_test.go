package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTextURLs(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		s   string
		out []string
	}{
		{
			s:   "this is a description with example.com mentioned in the middle",
			out: nil,
		},
		{
			s:   "TIL that rust never sleeps http://example.com/source",
			out: []string{"http://example.com/source"},
		},
		{
			s:   "see (https://en.wikipedia.org/wiki/Rust) and HTTPS://EFF.org/, or https://localhost/x.",
			out: []string{"https://en.wikipedia.org/wiki/Rust", "HTTPS://EFF.org/"},
		},
		{
			s:   "e.g. this is not a link",
			out: nil,
		},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.out, ExtractTextURLs(fix.s), fix.s)
	}
}

func TestDedupeStrings(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"b", "a"}, DedupeStrings([]string{"b", "a", "b", "a"}))
	assert.Nil(DedupeStrings(nil))
}

func TestHashOfString(t *testing.T) {
	assert := assert.New(t)

	// hashing function should be consistent over time
	assert.Equal("4e6f69c0e3d10992", HashOfString("dummy-value"))
}
