package jar

import (
	"fmt"
	"net/url"
	"strings"
)

// scopeURL derives the canonical URL used to query and expire c in the
// CookieSet: scheme from the Secure flag, host from the cookie domain with
// a single leading dot stripped. Callers must ensure c.Domain is non-empty.
func scopeURL(c *Cookie) (*url.URL, error) {
	host := strings.TrimPrefix(c.Domain, ".")

	scheme := "http"
	if c.Secure {
		scheme = "https"
	}

	u, err := url.Parse(scheme + "://" + host)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDomain, c.Domain, err)
	}
	// url.Parse is lenient; anything beyond a bare authority means the
	// domain was not a plain host.
	if u.Host == "" || u.Host != host {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDomain, c.Domain)
	}

	return u, nil
}

// parseURL parses a caller-supplied request URL, requiring an absolute URL
// with a host.
func parseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidURI, rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURI, rawURL)
	}

	return u, nil
}
