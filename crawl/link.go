package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/siteask"
)

// ResolveLink turns an oracle link suggestion into a fetchable URL.
// Path-absolute links ("/faq") are appended to baseURL with its trailing
// slash removed; anything else is taken to be absolute already.
func ResolveLink(baseURL, link string) string {
	link = strings.TrimSpace(link)
	if strings.HasPrefix(link, "/") {
		return strings.TrimSuffix(baseURL, "/") + link
	}
	return link
}

// BaseURLOf returns the scheme and host of rawURL, e.g.
// "https://example.com/about" → "https://example.com".
func BaseURLOf(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", siteask.Errorf(siteask.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", siteask.Errorf(siteask.EINVALID, "URL %q must be absolute", rawURL)
	}
	return u.Scheme + "://" + u.Host, nil
}
