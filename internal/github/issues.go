package github

import (
	"context"
	"net/http"

	"github-issue-relay/internal/models"

	gh "github.com/google/go-github/v80/github"
)

// CreateIssue opens an issue as the owner of req.AccessToken. Any status other
// than 201 is returned as *UpstreamError carrying GitHub's raw response body.
func (f *ClientFactory) CreateIssue(ctx context.Context, req models.IssueCreationRequest) (*models.IssueCreationResult, error) {
	rec := newRecordingTransport(f.Transport, "")
	client := f.userClient(ctx, req.AccessToken, rec)

	issue, _, err := client.Issues.Create(ctx, req.Owner, req.Repo, &gh.IssueRequest{
		Title: gh.Ptr(req.Title),
		Body:  gh.Ptr(req.Body),
	})
	if rec.status != 0 && rec.status != http.StatusCreated {
		return nil, &UpstreamError{StatusCode: rec.status, Body: string(rec.body)}
	}
	if err != nil {
		return nil, err
	}

	return &models.IssueCreationResult{
		Success: true,
		Number:  issue.GetNumber(),
		URL:     issue.GetHTMLURL(),
		Title:   issue.GetTitle(),
	}, nil
}
