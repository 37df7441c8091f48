package sanitizer

import "strings"

// StripControl removes ASCII control characters from s, including CR and LF
// — the classic header-injection vectors.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// SetCookie cleans a raw Set-Cookie line for parsing: control characters
// are removed and surrounding whitespace is trimmed. The attribute
// structure of the line is left untouched.
func SetCookie(raw string) string {
	return strings.TrimSpace(StripControl(raw))
}
