package jar

import (
	"log/slog"
	"strings"

	"github.com/dmitrymomot/jarkit/pkg/sanitizer"
)

// Jar accumulates cookies for one logical HTTP session. It owns exactly one
// CookieSet, delegates all matching and storage to it, and enforces the
// expire-before-set replace policy on top.
type Jar struct {
	set             CookieSet
	store           SnapshotStore
	filter          FilterFunc
	log             *slog.Logger
	locked          bool
	expireBeforeSet bool
}

// New creates a jar around set. The set may be pre-populated. The replace
// policy defaults to enabled and raw Set-Cookie text is sanitized with
// sanitizer.SetCookie unless WithFilter overrides it.
func New(set CookieSet, opts ...Option) (*Jar, error) {
	if set == nil {
		return nil, ErrNoCookieSet
	}

	j := &Jar{
		set:             set,
		filter:          sanitizer.SetCookie,
		log:             slog.New(slog.DiscardHandler),
		expireBeforeSet: true,
	}

	for _, opt := range opts {
		opt(j)
	}

	return j, nil
}

// SetCookie stores c, first expiring any existing cookie that shares c's
// domain and name when the replace policy is enabled. A cookie without a
// domain has no derivable scope and skips the expire step entirely, even if
// it duplicates an existing slot.
func (j *Jar) SetCookie(c *Cookie) error {
	if err := j.expireMatching(c); err != nil {
		return err
	}

	j.set.Add(c)
	return nil
}

// SetCookies stores a batch. The expire step runs for every element before
// the batch is added in one call; a scope-derivation failure aborts the
// whole add, but expiries already applied for earlier elements are not
// rolled back.
func (j *Jar) SetCookies(cookies []*Cookie) error {
	for _, c := range cookies {
		if err := j.expireMatching(c); err != nil {
			return err
		}
	}

	j.set.AddAll(cookies)
	return nil
}

// SetCookieString applies a raw Set-Cookie line to the jar, scoped to
// rawURL. The text is sanitized first; parsing and merging are delegated to
// the CookieSet.
//
// When the replace policy is enabled the substring up to and including the
// first "=" is used as the comparison key, and every cookie at rawURL whose
// stored name=value form begins with that key is expired. Text without a
// separator yields no key, so the expire step is skipped and a duplicate
// slot may result.
func (j *Jar) SetCookieString(rawURL, raw string) error {
	u, err := parseURL(rawURL)
	if err != nil {
		return err
	}

	filtered := j.filter(raw)

	if j.expireBeforeSet {
		if i := strings.IndexByte(filtered, '='); i >= 0 {
			key := filtered[:i+1]
			for _, existing := range j.set.Cookies(u) {
				if strings.HasPrefix(existing.Name+"="+existing.Value, key) {
					existing.Expired = true
					j.log.Debug("expired cookie slot", "domain", existing.Domain, "name", existing.Name)
				}
			}
		}
	}

	return j.set.SetCookieString(u, filtered)
}

// SetNamed builds a cookie from its parts and stores it via SetCookie.
func (j *Jar) SetNamed(name, value, domain, path string) error {
	return j.SetCookie(&Cookie{
		Name:   name,
		Value:  value,
		Domain: domain,
		Path:   path,
	})
}

// Cookies returns the cookies visible at rawURL, possibly empty.
func (j *Jar) Cookies(rawURL string) ([]*Cookie, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return nil, err
	}

	return j.set.Cookies(u), nil
}

// CookieHeader returns the serialized Cookie header for rawURL, empty when
// nothing matches.
func (j *Jar) CookieHeader(rawURL string) (string, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return "", err
	}

	return j.set.Header(u), nil
}

// Contains reports whether a cookie named name is visible at rawURL. An
// empty jar answers false without consulting the set's matching rules, so
// it never fails on a fresh jar.
func (j *Jar) Contains(rawURL, name string) (bool, error) {
	if j.set.Len() == 0 {
		return false, nil
	}

	u, err := parseURL(rawURL)
	if err != nil {
		return false, err
	}

	for _, c := range j.set.Cookies(u) {
		if c.Name == name {
			return true, nil
		}
	}

	return false, nil
}

// Remove marks every cookie visible at rawURL as expired.
func (j *Jar) Remove(rawURL string) error {
	u, err := parseURL(rawURL)
	if err != nil {
		return err
	}

	for _, c := range j.set.Cookies(u) {
		c.Expired = true
	}

	return nil
}

// RemoveNamed marks only the cookies named name at rawURL as expired.
func (j *Jar) RemoveNamed(rawURL, name string) error {
	u, err := parseURL(rawURL)
	if err != nil {
		return err
	}

	for _, c := range j.set.Cookies(u) {
		if c.Name == name {
			c.Expired = true
		}
	}

	return nil
}

// Clear discards every cookie, leaving the jar empty. References to cookies
// obtained before Clear are detached from the jar afterwards.
func (j *Jar) Clear() {
	j.set.Reset()
}

// Len reports the number of stored cookies, including expired ones awaiting
// eviction.
func (j *Jar) Len() int {
	return j.set.Len()
}

// Locked reports the advisory locked flag. External pipelines read it to
// decide whether to apply server-sent cookies; the jar does not enforce it.
func (j *Jar) Locked() bool {
	return j.locked
}

// SetLocked sets the advisory locked flag.
func (j *Jar) SetLocked(locked bool) {
	j.locked = locked
}

// ExpireBeforeSet reports whether the replace policy is enabled.
func (j *Jar) ExpireBeforeSet() bool {
	return j.expireBeforeSet
}

// expireMatching soft-deletes every cookie occupying c's (domain, name)
// slot. Cookies without a domain are exempt.
func (j *Jar) expireMatching(c *Cookie) error {
	if !j.expireBeforeSet || c.Domain == "" {
		return nil
	}

	u, err := scopeURL(c)
	if err != nil {
		return err
	}

	for _, existing := range j.set.Cookies(u) {
		if existing.Name == c.Name {
			existing.Expired = true
			j.log.Debug("expired cookie slot", "domain", existing.Domain, "name", existing.Name)
		}
	}

	return nil
}
