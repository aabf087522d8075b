package validation

import (
	"net/url"
	"strings"
)

// NormalizeText trims surrounding whitespace from free text such as model
// replies and error messages.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// NormalizeQuery trims surrounding whitespace from a user query.
func NormalizeQuery(query string) string {
	return NormalizeText(query)
}

// IsBlankQuery reports whether a query is empty or whitespace-only.
func IsBlankQuery(query string) bool {
	return NormalizeQuery(query) == ""
}

// ValidateBaseURL checks an inference endpoint override. Empty means "use
// the provider default" and is valid. Otherwise the URL must be absolute
// and use http or https.
func ValidateBaseURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return true, ""
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	if u.RawQuery != "" || u.Fragment != "" {
		return false, "URL must not carry a query or fragment"
	}

	return true, ""
}
