// Package jar implements a per-client HTTP cookie jar: it accumulates
// cookies seen in responses and raw Set-Cookie text, matches them against
// request URLs and can persist its entire state as a snapshot.
//
// The jar itself carries only policy. Storage and the domain/path
// visibility rules ("which cookies apply to this URL") live in an injected
// CookieSet collaborator, and durable persistence lives behind the
// SnapshotStore interface. This keeps the policy logic independently
// testable against a fake set; a concurrent in-memory CookieSet ships in
// the cookieset package and file/Redis snapshot stores in the snapshot
// package.
//
// # Replace semantics
//
// The central policy is expire-before-set: when enabled (the default),
// storing a cookie first marks any existing cookie with the same domain and
// name as expired, so at most one active cookie occupies a (domain, name)
// slot at a time. Expiry is a soft delete — the flagged cookie stays in the
// CookieSet until the set's own eviction removes it, but it no longer
// matches queries or appears in generated headers. With the policy disabled
// old and new cookies coexist as duplicate slots.
//
// The slot a cookie conflicts with is found through its scope URL, derived
// from the cookie itself: "https" when the Secure flag is set, "http"
// otherwise, plus the cookie domain with a single leading dot stripped.
// A cookie without a domain has no derivable scope and is stored without
// any expire check.
//
// # Usage
//
//	set := cookieset.NewMemory()
//	j, err := jar.New(set)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = j.SetCookieString("http://example.com", "id=42; Path=/")
//	header, _ := j.CookieHeader("http://example.com") // "id=42"
//
// Persistence goes through a configured store:
//
//	store, _ := snapshot.NewFileStore()
//	j, _ = jar.New(set, jar.WithSnapshotStore(store))
//	_ = j.Save(ctx, "/var/lib/app/cookies.snap", true)
//
//	restored, _ := jar.Load(ctx, store, "/var/lib/app/cookies.snap", cookieset.NewMemory())
//
// # Concurrency
//
// A Jar serves one logical session and performs no internal locking;
// concurrent mutation of the same instance must be serialized by the
// caller. Only Save and Load block, on the underlying store.
//
// # Error Handling
//
// Package-level sentinel errors (ErrInvalidURI, ErrInvalidDomain,
// ErrNoCookieSet, ErrNoSnapshotStore) are returned for common failure
// scenarios so callers can use errors.Is. Store errors pass through
// unwrapped.
package jar
