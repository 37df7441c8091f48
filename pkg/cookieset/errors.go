package cookieset

import "errors"

// ErrInvalidSetCookie is returned when a raw Set-Cookie line cannot be parsed.
var ErrInvalidSetCookie = errors.New("cookieset.invalid_set_cookie")
