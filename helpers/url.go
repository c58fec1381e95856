package helpers

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/purell"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// image hosts which serve files without an extension in the path
var imageHosts = []string{"i.redd.it", "i.imgur.com"}

// normalizes URL for domain matching: lower-case scheme and host, no "www." prefix, no fragment
func NormalizeURL(raw string) string {
	clean, err := purell.NormalizeURLString(raw, purell.FlagsSafe|purell.FlagRemoveFragment|purell.FlagRemoveWWW)
	if err != nil {
		return raw
	}
	return clean
}

// Returns the normalized host name of the URL (lower-case, no port, no "www." prefix).
func ParseHost(raw string) (string, error) {
	u, err := url.Parse(NormalizeURL(raw))
	if err != nil {
		return "", err
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" || !strings.Contains(host, ".") {
		return "", fmt.Errorf("URL has no usable host: %s", raw)
	}
	return host, nil
}

// Checks if the host is the domain, or a sub-domain of it.
func HostMatchesDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// Checks if the URL points directly at an image file.
func IsImageURL(raw string) bool {
	u, err := url.Parse(NormalizeURL(raw))
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, h := range imageHosts {
		if host == h {
			return true
		}
	}
	return false
}
