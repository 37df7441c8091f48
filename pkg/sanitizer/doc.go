// Package sanitizer provides pure string transforms for cleaning raw HTTP
// header text before it is parsed.
//
// The functions have no side effects and no configuration; they can be used
// directly or injected where a filter capability is expected (see
// jar.FilterFunc).
package sanitizer
