package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHost(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		url  string
		host string
		ok   bool
	}{
		{url: "https://www.YouTube.com/watch?v=abc", host: "youtube.com", ok: true},
		{url: "http://m.twitter.com:80/status/1", host: "m.twitter.com", ok: true},
		{url: "https://localhost/path", ok: false},
		{url: "https://", ok: false},
	}

	for _, fix := range fixtures {
		host, err := ParseHost(fix.url)
		if !fix.ok {
			assert.Error(err, fix.url)
			continue
		}
		assert.NoError(err, fix.url)
		assert.Equal(fix.host, host)
	}
}

func TestHostMatchesDomain(t *testing.T) {
	assert := assert.New(t)

	assert.True(HostMatchesDomain("youtube.com", "youtube.com"))
	assert.True(HostMatchesDomain("m.youtube.com", "youtube.com"))
	assert.False(HostMatchesDomain("notyoutube.com", "youtube.com"))
}

func TestIsImageURL(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsImageURL("https://example.com/cat.JPG"))
	assert.True(IsImageURL("https://i.redd.it/abc123"))
	assert.True(IsImageURL("https://example.com/a/b.webp#frag"))
	assert.False(IsImageURL("https://example.com/cat.html"))
	assert.False(IsImageURL("https://example.com/"))
}
