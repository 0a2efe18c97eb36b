package sanitize

import "strings"

// hasPrefixFold reports whether s begins with prefix, ignoring ASCII case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isHTTPURL(s string) bool {
	return hasPrefixFold(s, "http://") || hasPrefixFold(s, "https://")
}

// IsSafeLinkTarget reports whether href may be kept on an anchor.
// Only http(s), mailto, in-page fragments and site-relative paths pass.
func IsSafeLinkTarget(href string) bool {
	switch {
	case isHTTPURL(href):
		return true
	case hasPrefixFold(href, "mailto:"):
		return true
	case strings.HasPrefix(href, "#"), strings.HasPrefix(href, "/"):
		return true
	}
	return false
}

// IsSafeImageSource reports whether src may be kept on an image.
// Embedded data URLs are accepted only for image media types.
func IsSafeImageSource(src string) bool {
	return hasPrefixFold(src, "data:image/") || isHTTPURL(src) || strings.HasPrefix(src, "/")
}
