package cookieset

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/jarkit/pkg/jar"
)

// Memory implements jar.CookieSet with an in-memory entry list. It is safe
// for concurrent use, though a jar is meant to serve a single logical
// session.
type Memory struct {
	mu      sync.RWMutex
	entries []*jar.Cookie
	now     func() time.Time
}

var _ jar.CookieSet = (*Memory)(nil)

// NewMemory creates an empty in-memory cookie set.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// Add inserts a single cookie. Duplicates are kept; replacement is the
// jar's policy concern. An empty path defaults to "/".
func (m *Memory) Add(c *jar.Cookie) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(c)
}

// AddAll inserts a batch of cookies.
func (m *Memory) AddAll(cookies []*jar.Cookie) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range cookies {
		m.add(c)
	}
}

func (m *Memory) add(c *jar.Cookie) {
	if c.Path == "" {
		c.Path = "/"
	}
	m.entries = append(m.entries, c)
}

// Cookies returns the non-expired cookies visible at u, longest path first.
// The returned pointers are live; callers may flag them expired in place.
func (m *Memory) Cookies(u *url.URL) []*jar.Cookie {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	var out []*jar.Cookie
	for _, c := range m.entries {
		if visible(c, u, now) {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Path) > len(out[j].Path)
	})

	return out
}

// Header serializes the cookies visible at u as "name1=v1; name2=v2",
// empty when nothing matches.
func (m *Memory) Header(u *url.URL) string {
	cookies := m.Cookies(u)
	if len(cookies) == 0 {
		return ""
	}

	parts := make([]string, len(cookies))
	for i, c := range cookies {
		parts[i] = c.Name + "=" + c.Value
	}

	return strings.Join(parts, "; ")
}

// SetCookieString parses a raw Set-Cookie line and merges the cookie into
// the set, scoped to u. Domain and path default from u when the line does
// not carry its own attributes. An active cookie with the same domain, name
// and path is updated in place; otherwise a new entry is appended.
func (m *Memory) SetCookieString(u *url.URL, raw string) error {
	parsed, err := http.ParseSetCookie(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetCookie, err)
	}

	c := &jar.Cookie{
		Name:     parsed.Name,
		Value:    parsed.Value,
		Domain:   parsed.Domain,
		Path:     parsed.Path,
		Expires:  parsed.Expires,
		Secure:   parsed.Secure,
		HttpOnly: parsed.HttpOnly,
	}
	if c.Domain == "" {
		c.Domain = u.Hostname()
	}
	if c.Path == "" {
		c.Path = "/"
	}
	// Max-Age wins over Expires, matching net/http client behavior.
	if parsed.MaxAge > 0 {
		c.Expires = m.now().Add(time.Duration(parsed.MaxAge) * time.Second)
	} else if parsed.MaxAge < 0 {
		c.Expired = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.entries {
		if !existing.Expired && existing.Name == c.Name && existing.Domain == c.Domain && existing.Path == c.Path {
			existing.Value = c.Value
			existing.Expires = c.Expires
			existing.Secure = c.Secure
			existing.HttpOnly = c.HttpOnly
			existing.Expired = c.Expired
			return nil
		}
	}

	m.add(c)
	return nil
}

// All returns every stored cookie, expired ones included.
func (m *Memory) All() []*jar.Cookie {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.entries)
}

// Len reports the number of stored cookies, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Reset discards all cookies.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}

// Evict physically removes soft-expired and past-expiry cookies, returning
// the number removed. The jar never calls this; eviction timing belongs to
// the set's owner.
func (m *Memory) Evict() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	kept := m.entries[:0]
	for _, c := range m.entries {
		if c.Expired || (!c.Expires.IsZero() && c.Expires.Before(now)) {
			continue
		}
		kept = append(kept, c)
	}

	removed := len(m.entries) - len(kept)
	m.entries = kept
	return removed
}

// visible reports whether c applies to a request for u at the given time.
// A cookie without a domain is stored but never matched; callers normally
// let SetCookieString default the domain from the request URL.
func visible(c *jar.Cookie, u *url.URL, now time.Time) bool {
	if c.Expired {
		return false
	}
	if !c.Expires.IsZero() && c.Expires.Before(now) {
		return false
	}
	if c.Secure && u.Scheme != "https" {
		return false
	}
	return domainMatch(c.Domain, u.Hostname()) && pathMatch(c.Path, u.Path)
}

// domainMatch reports whether host falls under domain. Cookie domains cover
// the exact host and all subdomains; a leading dot is tolerated.
func domainMatch(domain, host string) bool {
	if domain == "" {
		return false
	}
	domain = strings.ToLower(strings.TrimPrefix(domain, "."))
	host = strings.ToLower(host)
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// pathMatch implements RFC 6265 path-match: the cookie path is a prefix of
// the request path ending at a path boundary.
func pathMatch(cookiePath, reqPath string) bool {
	if reqPath == "" {
		reqPath = "/"
	}
	if reqPath == cookiePath {
		return true
	}
	if strings.HasPrefix(reqPath, cookiePath) {
		return strings.HasSuffix(cookiePath, "/") || reqPath[len(cookiePath)] == '/'
	}
	return false
}
