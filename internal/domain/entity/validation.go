package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs.
const maxURLLength = 2048

// ValidateBaseURL checks that rawURL can serve as the root of the remote API:
// an absolute http(s) URL with a host and no query or fragment.
// Loopback hosts are accepted so that local fakes can stand in for the API.
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "base_url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "base_url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "base_url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "base_url", Message: "URL must have a valid host"}
	}

	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return &ValidationError{Field: "base_url", Message: "URL cannot carry a query or fragment"}
	}

	return nil
}

// JoinURL appends an endpoint path to a validated base URL without doubling slashes.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
