package jar

import "errors"

var (
	// ErrNoCookieSet indicates the jar was constructed without a CookieSet.
	ErrNoCookieSet = errors.New("jar.no_cookie_set")

	// ErrNoSnapshotStore indicates Save or Load was called with no snapshot store configured.
	ErrNoSnapshotStore = errors.New("jar.no_snapshot_store")

	// ErrInvalidURI indicates a malformed URL string was passed where a request URL is required.
	ErrInvalidURI = errors.New("jar.invalid_uri")

	// ErrInvalidDomain indicates a cookie domain that does not form a valid URL authority.
	ErrInvalidDomain = errors.New("jar.invalid_domain")
)
