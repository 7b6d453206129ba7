package server

import (
	"context"
	"net/http"
	"strings"

	"github-issue-relay/internal/github"
	"github-issue-relay/internal/models"
	"github-issue-relay/internal/validate"
)

func (s *Server) handleOAuthToken(w http.ResponseWriter, r *http.Request, data map[string]any) {
	err := validate.First(
		func() error { return validate.OAuthCode(data["code"]) },
		func() error { return validate.RedirectURI(data["redirect_uri"]) },
	)
	if err != nil {
		s.writeError(w, r, badRequest(err.Error()))
		return
	}

	if !s.cfg.HasOAuthCredentials() {
		s.log.Error().Msg("token exchange requested but GitHub OAuth credentials are not configured")
		s.writeError(w, r, errCredentialsMissing)
		return
	}

	result, err := s.oauth.ExchangeCode(upstreamContext(r), models.OAuthExchangeRequest{
		Code:        data["code"].(string),
		RedirectURI: data["redirect_uri"].(string),
	})
	if err != nil {
		s.logUpstreamFailure(r, err)
		s.writeError(w, r, oauthError(err))
		return
	}

	s.writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleCreateIssue(w http.ResponseWriter, r *http.Request, data map[string]any) {
	err := validate.First(
		func() error { return validate.AccessToken(data["access_token"]) },
		func() error { return validate.RepoName(data["repo"]) },
		func() error { return validate.IssueTitle(data["title"]) },
		func() error { return validate.IssueBody(data["body"]) },
	)
	if err != nil {
		s.writeError(w, r, badRequest(err.Error()))
		return
	}

	owner, repo, _ := strings.Cut(data["repo"].(string), "/")
	body, _ := data["body"].(string)

	result, err := s.issues.CreateIssue(upstreamContext(r), models.IssueCreationRequest{
		AccessToken: data["access_token"].(string),
		Owner:       owner,
		Repo:        repo,
		Title:       strings.TrimSpace(data["title"].(string)),
		Body:        body,
	})
	if err != nil {
		s.logUpstreamFailure(r, err)
		s.writeError(w, r, issueError(err))
		return
	}

	s.log.Info().Str("repo", owner+"/"+repo).Int("number", result.Number).Msg("issue created")
	s.writeJSON(w, r, http.StatusOK, result)
}

// upstreamContext keeps the request's values but not its cancellation: a
// browser that goes away does not abort a call already sent to GitHub.
func upstreamContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) logUpstreamFailure(r *http.Request, err error) {
	event := s.log.Error()
	if github.IsRejection(err) {
		event = s.log.Warn()
	}
	event.Err(err).Str("path", r.URL.Path).Msg("github request failed")
}
