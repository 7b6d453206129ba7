// Package validate holds the input rules applied to browser payloads before
// anything is forwarded to GitHub. Every function is pure: it inspects a
// decoded JSON value and returns an error whose text is safe to show to the
// caller, or nil when the value is acceptable.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxRepoLength        = 100
	maxTitleLength       = 256
	maxBodyLength        = 65536
	maxCodeLength        = 100
	maxRedirectURILength = 500
)

var (
	repoPattern        = regexp.MustCompile(`^[a-zA-Z0-9._-]+/[a-zA-Z0-9._-]+$`)
	classicTokenRegex  = regexp.MustCompile(`^[a-f0-9]{40}$`)
	prefixedTokenRegex = regexp.MustCompile(`^gh[a-z]_[A-Za-z0-9_]{36,255}$`)
)

var (
	ErrRepoRequired       = errors.New("Repository name is required")
	ErrRepoFormat         = errors.New("Invalid repository format. Use 'owner/repo' format")
	ErrRepoTooLong        = errors.New("Repository name too long")
	ErrTitleRequired      = errors.New("Issue title is required")
	ErrTitleEmpty         = errors.New("Issue title cannot be empty")
	ErrTitleTooLong       = errors.New("Issue title too long (max 256 characters)")
	ErrTitleCharacters    = errors.New("Invalid characters in title")
	ErrBodyType           = errors.New("Issue body must be a string")
	ErrBodyTooLong        = errors.New("Issue body too long (max 65536 characters)")
	ErrTokenRequired      = errors.New("Access token is required")
	ErrTokenFormat        = errors.New("Invalid access token format")
	ErrInvalidCode        = errors.New("Invalid authorization code")
	ErrInvalidRedirectURI = errors.New("Invalid redirect URI")
)

// RepoName checks an "owner/repo" reference.
func RepoName(v any) error {
	repo, ok := nonEmptyString(v)
	if !ok {
		return ErrRepoRequired
	}
	if !repoPattern.MatchString(repo) {
		return ErrRepoFormat
	}
	if utf8.RuneCountInString(repo) > maxRepoLength {
		return ErrRepoTooLong
	}
	return nil
}

// IssueTitle checks the title after trimming surrounding whitespace.
func IssueTitle(v any) error {
	title, ok := nonEmptyString(v)
	if !ok {
		return ErrTitleRequired
	}

	title = strings.TrimSpace(title)
	n := utf8.RuneCountInString(title)
	if n < 1 {
		return ErrTitleEmpty
	}
	if n > maxTitleLength {
		return ErrTitleTooLong
	}

	lower := strings.ToLower(title)
	if strings.Contains(lower, "<script") || strings.Contains(lower, "javascript:") {
		return ErrTitleCharacters
	}
	return nil
}

// IssueBody accepts a missing body as empty.
func IssueBody(v any) error {
	if v == nil {
		return nil
	}
	body, ok := v.(string)
	if !ok {
		return ErrBodyType
	}
	if utf8.RuneCountInString(body) > maxBodyLength {
		return ErrBodyTooLong
	}
	return nil
}

// AccessToken accepts classic 40 character hex tokens and the prefixed
// gh?_ formats.
func AccessToken(v any) error {
	token, ok := nonEmptyString(v)
	if !ok {
		return ErrTokenRequired
	}
	if !classicTokenRegex.MatchString(token) && !prefixedTokenRegex.MatchString(token) {
		return ErrTokenFormat
	}
	return nil
}

func OAuthCode(v any) error {
	code, ok := nonEmptyString(v)
	if !ok || utf8.RuneCountInString(code) > maxCodeLength {
		return ErrInvalidCode
	}
	return nil
}

func RedirectURI(v any) error {
	uri, ok := nonEmptyString(v)
	if !ok || utf8.RuneCountInString(uri) > maxRedirectURILength {
		return ErrInvalidRedirectURI
	}
	return nil
}

// First runs the checks in order and returns the first failure.
func First(checks ...func() error) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
