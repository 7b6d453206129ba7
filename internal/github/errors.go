package github

import "fmt"

// UpstreamError is a GitHub response with an unexpected status code.
// Body is the raw response text.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("github: unexpected status %d: %s", e.StatusCode, e.Body)
}

// TokenError is a 200 token endpoint response that carried no access token.
type TokenError struct {
	Message string
}

func (e *TokenError) Error() string {
	return "github: " + e.Message
}
