package sanitizer_test

import (
	"testing"

	"github.com/dmitrymomot/jarkit/pkg/sanitizer"
)

func TestStripControl(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "id=42; Path=/", "id=42; Path=/"},
		{"crlf injection", "id=42\r\nSet-Cookie: admin=1", "id=42Set-Cookie: admin=1"},
		{"embedded nul", "id=\x0042", "id=42"},
		{"tab and del", "id=\t42\x7f", "id=42"},
		{"empty", "", ""},
		{"unicode kept", "name=börk", "name=börk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sanitizer.StripControl(tt.in); got != tt.want {
				t.Errorf("StripControl(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetCookie(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  id=42; Path=/  ", "id=42; Path=/"},
		{"strips newlines then trims", " id=42\r\n ", "id=42"},
		{"keeps attribute structure", "id=42; Domain=.a.com; Secure", "id=42; Domain=.a.com; Secure"},
		{"no separator passes through", "opaque", "opaque"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sanitizer.SetCookie(tt.in); got != tt.want {
				t.Errorf("SetCookie(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
