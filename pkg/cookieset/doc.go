// Package cookieset provides a concurrent in-memory implementation of the
// jar.CookieSet interface.
//
// Memory owns the visibility rules the jar delegates to: a cookie is
// visible at a URL when its domain covers the URL's host (exact match or
// subdomain, with a leading dot tolerated), its path covers the URL's path,
// its Secure flag is compatible with the scheme and it is neither
// soft-expired nor past its expiry time. Expired cookies remain enumerable
// via All until Evict removes them.
//
// Raw Set-Cookie lines are parsed with net/http.ParseSetCookie; domain and
// path default from the request URL when the line carries no attributes of
// its own.
package cookieset
