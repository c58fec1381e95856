package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeText(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		text string
		out  []string
	}{
		{text: "", out: []string{}},
		{text: "Hello, โลก!", out: []string{"hello", "โลก"}},
		{text: "Gdańsk", out: []string{"gdansk"}},
		{text: "CMV: pineapple belongs on pizza", out: []string{"cmv", "pineapple", "belongs", "on", "pizza"}},
		{text: "1 'Two' three!", out: []string{"1", "two", "three"}},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.out, TokenizeText(fix.text))
	}
}

func TestRepeatedRun(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		text string
		word string
		run  int
	}{
		{text: "", word: "", run: 0},
		{text: "buy buy now", word: "", run: 0},
		{text: "buy buy buy now", word: "buy", run: 3},
		{text: "now BUY buy, Buy! buy", word: "buy", run: 4},
		{text: "a b a b a b", word: "", run: 0},
	}

	for _, fix := range fixtures {
		word, run := RepeatedRun(TokenizeText(fix.text), 3)
		assert.Equal(fix.word, word, fix.text)
		assert.Equal(fix.run, run, fix.text)
	}
}

func TestAnyTokenInSet(t *testing.T) {
	assert := assert.New(t)

	assert.True(AnyTokenInSet([]string{"so", "my", "story"}, []string{"i", "my"}))
	assert.False(AnyTokenInSet([]string{"the", "story"}, []string{"i", "my"}))
	assert.False(AnyTokenInSet(nil, []string{"i"}))
}
