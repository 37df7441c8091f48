package jar

import "time"

// Cookie is a single HTTP cookie as tracked by the jar. It mirrors the
// net/http.Cookie fields that matter for client-side storage plus an
// Expired flag used for soft deletion: an expired cookie stays in the
// CookieSet until the set's own eviction runs, but is excluded from
// visibility queries and header generation.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  time.Time
	Secure   bool
	HttpOnly bool
	Expired  bool
}

// Snapshot is a point-in-time copy of a jar's policy flags and every cookie
// it holds, expired ones included.
type Snapshot struct {
	Locked          bool
	ExpireBeforeSet bool
	Cookies         []Cookie
}
