package cookieset_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jarkit/pkg/cookieset"
	"github.com/dmitrymomot/jarkit/pkg/jar"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestMemory_HeaderRoundTrip(t *testing.T) {
	t.Parallel()

	m := cookieset.NewMemory()
	u := mustURL(t, "http://a.com")

	require.NoError(t, m.SetCookieString(u, "id=42; Path=/"))

	assert.Equal(t, "id=42", m.Header(u))
}

func TestMemory_DomainMatching(t *testing.T) {
	t.Parallel()

	m := cookieset.NewMemory()
	m.Add(&jar.Cookie{Name: "sid", Value: "1", Domain: ".example.com"})

	tests := []struct {
		url     string
		visible bool
	}{
		{"http://example.com", true},
		{"http://sub.example.com", true},
		{"http://deep.sub.example.com", true},
		{"http://EXAMPLE.com", true},
		{"http://example.org", false},
		{"http://notexample.com", false},
	}

	for _, tt := range tests {
		got := m.Cookies(mustURL(t, tt.url))
		assert.Equal(t, tt.visible, len(got) == 1, "url %s", tt.url)
	}
}

func TestMemory_PathMatching(t *testing.T) {
	t.Parallel()

	m := cookieset.NewMemory()
	m.Add(&jar.Cookie{Name: "sid", Value: "1", Domain: "a.com", Path: "/foo"})

	tests := []struct {
		url     string
		visible bool
	}{
		{"http://a.com/foo", true},
		{"http://a.com/foo/bar", true},
		{"http://a.com/foobar", false},
		{"http://a.com/", false},
	}

	for _, tt := range tests {
		got := m.Cookies(mustURL(t, tt.url))
		assert.Equal(t, tt.visible, len(got) == 1, "url %s", tt.url)
	}
}

func TestMemory_SecureRequiresHTTPS(t *testing.T) {
	t.Parallel()

	m := cookieset.NewMemory()
	m.Add(&jar.Cookie{Name: "sid", Value: "1", Domain: "a.com", Secure: true})

	assert.Empty(t, m.Cookies(mustURL(t, "http://a.com")))
	assert.Len(t, m.Cookies(mustURL(t, "https://a.com")), 1)
}

func TestMemory_ExpiredExcluded(t *testing.T) {
	t.Parallel()

	m := cookieset.NewMemory()
	m.Add(&jar.Cookie{Name: "soft", Value: "1", Domain: "a.com", Expired: true})
	m.Add(&jar.Cookie{Name: "past", Value: "2", Domain: "a.com", Expires: time.Now().Add(-time.Hour)})
	m.Add(&jar.Cookie{Name: "live", Value: "3", Domain: "a.com"})

	u := mustURL(t, "http://a.com")
	cookies := m.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "live", cookies[0].Name)
	assert.Equal(t, "live=3", m.Header(u))

	// Low-level enumeration still sees everything.
	assert.Len(t, m.All(), 3)
	assert.Equal(t, 3, m.Len())
}

func TestMemory_LongestPathFirst(t *testing.T) {
	t.Parallel()

	m := cookieset.NewMemory()
	m.Add(&jar.Cookie{Name: "root", Value: "1", Domain: "a.com", Path: "/"})
	m.Add(&jar.Cookie{Name: "deep", Value: "2", Domain: "a.com", Path: "/docs/api"})

	assert.Equal(t, "deep=2; root=1", m.Header(mustURL(t, "http://a.com/docs/api/v1")))
}

func TestMemory_SetCookieString(t *testing.T) {
	t.Parallel()

	t.Run("defaults scope from url", func(t *testing.T) {
		t.Parallel()
		m := cookieset.NewMemory()
		require.NoError(t, m.SetCookieString(mustURL(t, "http://a.com/docs"), "id=42"))

		all := m.All()
		require.Len(t, all, 1)
		assert.Equal(t, "a.com", all[0].Domain)
		assert.Equal(t, "/", all[0].Path)
	})

	t.Run("explicit attributes win", func(t *testing.T) {
		t.Parallel()
		m := cookieset.NewMemory()
		require.NoError(t, m.SetCookieString(mustURL(t, "http://a.com"), "id=42; Domain=.a.com; Path=/docs; Secure"))

		all := m.All()
		require.Len(t, all, 1)
		assert.Equal(t, ".a.com", all[0].Domain)
		assert.Equal(t, "/docs", all[0].Path)
		assert.True(t, all[0].Secure)
	})

	t.Run("updates existing entry in place", func(t *testing.T) {
		t.Parallel()
		m := cookieset.NewMemory()
		u := mustURL(t, "http://a.com")
		require.NoError(t, m.SetCookieString(u, "id=41"))
		require.NoError(t, m.SetCookieString(u, "id=42"))

		assert.Equal(t, 1, m.Len())
		assert.Equal(t, "id=42", m.Header(u))
	})

	t.Run("negative max-age expires immediately", func(t *testing.T) {
		t.Parallel()
		m := cookieset.NewMemory()
		u := mustURL(t, "http://a.com")
		require.NoError(t, m.SetCookieString(u, "id=42; Max-Age=-1"))

		assert.Empty(t, m.Cookies(u))
		assert.Equal(t, 1, m.Len())
	})

	t.Run("positive max-age stays visible", func(t *testing.T) {
		t.Parallel()
		m := cookieset.NewMemory()
		u := mustURL(t, "http://a.com")
		require.NoError(t, m.SetCookieString(u, "id=42; Max-Age=3600"))

		require.Len(t, m.Cookies(u), 1)
		assert.False(t, m.Cookies(u)[0].Expires.IsZero())
	})

	t.Run("unparsable line", func(t *testing.T) {
		t.Parallel()
		m := cookieset.NewMemory()
		err := m.SetCookieString(mustURL(t, "http://a.com"), "")
		require.ErrorIs(t, err, cookieset.ErrInvalidSetCookie)
	})
}

func TestMemory_AddDefaultsPath(t *testing.T) {
	t.Parallel()

	m := cookieset.NewMemory()
	m.Add(&jar.Cookie{Name: "sid", Value: "1", Domain: "a.com"})

	all := m.All()
	require.Len(t, all, 1)
	assert.Equal(t, "/", all[0].Path)
}

func TestMemory_Evict(t *testing.T) {
	t.Parallel()

	m := cookieset.NewMemory()
	m.Add(&jar.Cookie{Name: "soft", Value: "1", Domain: "a.com", Expired: true})
	m.Add(&jar.Cookie{Name: "past", Value: "2", Domain: "a.com", Expires: time.Now().Add(-time.Hour)})
	m.Add(&jar.Cookie{Name: "live", Value: "3", Domain: "a.com"})

	assert.Equal(t, 2, m.Evict())
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Evict())
}

func TestMemory_Reset(t *testing.T) {
	t.Parallel()

	m := cookieset.NewMemory()
	m.AddAll([]*jar.Cookie{
		{Name: "a", Value: "1", Domain: "x.com"},
		{Name: "b", Value: "2", Domain: "x.com"},
	})
	require.Equal(t, 2, m.Len())

	m.Reset()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.All())
}
