package server

import (
	"errors"
	"net/http"

	"github-issue-relay/internal/github"
)

// apiError is a failure already mapped to its HTTP status and client-facing
// detail text.
type apiError struct {
	status int
	detail string
}

func (e *apiError) Error() string {
	return e.detail
}

func badRequest(detail string) *apiError {
	return &apiError{status: http.StatusBadRequest, detail: detail}
}

func serverError(err error) *apiError {
	return &apiError{status: http.StatusInternalServerError, detail: "Server error: " + err.Error()}
}

var errCredentialsMissing = &apiError{
	status: http.StatusInternalServerError,
	detail: "GitHub OAuth credentials not configured",
}

// oauthError maps a token exchange failure. GitHub rejections are always
// reported as 400.
func oauthError(err error) *apiError {
	var upstream *github.UpstreamError
	var tokenErr *github.TokenError
	switch {
	case errors.As(err, &upstream):
		return badRequest("GitHub OAuth error: " + upstream.Body)
	case errors.As(err, &tokenErr):
		return badRequest("GitHub OAuth error: " + tokenErr.Message)
	}
	return serverError(err)
}

// issueError maps an issue creation failure, relaying GitHub's status code as is.
func issueError(err error) *apiError {
	var upstream *github.UpstreamError
	if errors.As(err, &upstream) {
		return &apiError{status: upstream.StatusCode, detail: "GitHub API error: " + upstream.Body}
	}
	return serverError(err)
}
