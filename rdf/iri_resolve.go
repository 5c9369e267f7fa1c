package rdf

import (
	"net/url"
	"strings"
)

// resolveIRI resolves a relative IRI against a base IRI according to RFC 3986.
// An empty base leaves the reference untouched.
func resolveIRI(baseStr, relative string) string {
	if baseStr == "" || hasScheme(relative) {
		return relative
	}
	baseURL, err := url.Parse(baseStr)
	if err != nil {
		return joinBase(baseStr, relative)
	}
	relURL, err := url.Parse(relative)
	if err != nil {
		return joinBase(baseStr, relative)
	}
	return baseURL.ResolveReference(relURL).String()
}

func joinBase(baseStr, relative string) string {
	if strings.HasSuffix(baseStr, "/") || strings.HasSuffix(baseStr, "#") {
		return baseStr + relative
	}
	if i := strings.LastIndex(baseStr, "/"); i >= 0 {
		return baseStr[:i+1] + relative
	}
	return baseStr + "/" + relative
}

// hasScheme reports whether value starts with an RFC 3986 scheme followed by ':'.
func hasScheme(value string) bool {
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z'):
		case i > 0 && ((ch >= '0' && ch <= '9') || ch == '+' || ch == '-' || ch == '.'):
		case i > 0 && ch == ':':
			return true
		default:
			return false
		}
	}
	return false
}
