package jar

import (
	"context"
	"net/url"
)

// CookieSet is the storage collaborator the jar delegates to. It owns the
// domain/path visibility rules; the jar only layers the expire-before-set
// policy on top and never reimplements matching itself.
//
// Cookies returns live pointers: the jar mutates the Expired flag in place
// so the set's own eviction timing is respected.
type CookieSet interface {
	// Add inserts a single cookie. Duplicate (domain, name) slots are
	// allowed; deduplication is the jar's policy concern, not the set's.
	Add(c *Cookie)

	// AddAll inserts a batch of cookies.
	AddAll(cookies []*Cookie)

	// Cookies returns the non-expired cookies visible at u.
	Cookies(u *url.URL) []*Cookie

	// Header returns the serialized Cookie header for u, empty if nothing
	// matches.
	Header(u *url.URL) string

	// SetCookieString parses a raw Set-Cookie line scoped to u and merges
	// the resulting cookie into the set.
	SetCookieString(u *url.URL, raw string) error

	// All enumerates every stored cookie, expired ones included.
	All() []*Cookie

	// Len reports the number of stored cookies, expired ones included.
	Len() int

	// Reset discards all cookies, leaving an empty set.
	Reset()
}

// SnapshotStore persists snapshots to durable storage. Save must refuse to
// replace an existing snapshot unless overwrite is set, and Load must
// report a missing snapshot distinctly from a corrupt one.
type SnapshotStore interface {
	Save(ctx context.Context, path string, snap Snapshot, overwrite bool) error
	Load(ctx context.Context, path string) (Snapshot, error)
}

// FilterFunc sanitizes raw Set-Cookie text before it reaches the CookieSet
// parser. Implementations must be pure string transforms.
type FilterFunc func(raw string) string
