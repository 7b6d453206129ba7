package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github-issue-relay/internal/config"
	"github-issue-relay/internal/models"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

const noAccessToken = "No access token received"

type OAuth struct {
	OAuthConfig *oauth2.Config
	Transport   http.RoundTripper
	Timeout     time.Duration
}

func NewOAuth(cfg config.Config) *OAuth {
	endpoint := githuboauth.Endpoint
	// Credentials go in the form body. Leaving the style unset makes oauth2
	// retry with a second request on failure.
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &OAuth{
		OAuthConfig: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			Endpoint:     endpoint,
		},
		Timeout: UpstreamTimeout,
	}
}

// ExchangeCode trades an authorization code for an access token. GitHub
// rejections come back as *UpstreamError (non-200) or *TokenError (200 with no
// token); any other error means the endpoint could not be reached or read.
func (o *OAuth) ExchangeCode(ctx context.Context, req models.OAuthExchangeRequest) (*models.OAuthTokenResult, error) {
	rec := newRecordingTransport(o.Transport, "application/json")
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: rec, Timeout: o.Timeout})

	token, err := o.OAuthConfig.Exchange(ctx, req.Code, oauth2.SetAuthURLParam("redirect_uri", req.RedirectURI))
	if rec.status == 0 {
		if err != nil {
			return nil, err
		}
		return &models.OAuthTokenResult{AccessToken: token.AccessToken}, nil
	}
	if rec.status != http.StatusOK {
		return nil, &UpstreamError{StatusCode: rec.status, Body: string(rec.body)}
	}
	if err == nil {
		return &models.OAuthTokenResult{AccessToken: token.AccessToken}, nil
	}
	return rec.tokenResult()
}

// tokenResult reads a 200 response that oauth2 refused. A present access_token
// field wins over any error fields next to it.
func (t *recordingTransport) tokenResult() (*models.OAuthTokenResult, error) {
	var payload struct {
		AccessToken      json.RawMessage `json:"access_token"`
		Error            string          `json:"error"`
		ErrorDescription string          `json:"error_description"`
	}
	if err := json.Unmarshal(t.body, &payload); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	if payload.AccessToken != nil {
		var token string
		if err := json.Unmarshal(payload.AccessToken, &token); err != nil {
			return nil, fmt.Errorf("decode access_token: %w", err)
		}
		return &models.OAuthTokenResult{AccessToken: token}, nil
	}

	switch {
	case payload.ErrorDescription != "":
		return nil, &TokenError{Message: payload.ErrorDescription}
	case payload.Error != "":
		return nil, &TokenError{Message: payload.Error}
	}
	return nil, &TokenError{Message: noAccessToken}
}

// IsRejection reports whether err is GitHub refusing the request rather than
// a failure to talk to it.
func IsRejection(err error) bool {
	var upstream *UpstreamError
	var tokenErr *TokenError
	return errors.As(err, &upstream) || errors.As(err, &tokenErr)
}
