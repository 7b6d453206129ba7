package github

import (
	"context"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

const (
	// UpstreamTimeout bounds every call made to GitHub.
	UpstreamTimeout = 30 * time.Second

	userAgent = "GitHub-Issue-Creator"
)

type ClientFactory struct {
	// BaseURL overrides https://api.github.com/ when set. It must end in a slash.
	BaseURL   *url.URL
	Transport http.RoundTripper
	Timeout   time.Duration
}

func NewClientFactory() *ClientFactory {
	return &ClientFactory{Timeout: UpstreamTimeout}
}

// GetUserClient builds a go-github client that acts with the caller's token.
// Every request it sends carries "Authorization: token <accessToken>".
func (f *ClientFactory) GetUserClient(ctx context.Context, accessToken string) *gh.Client {
	return f.userClient(ctx, accessToken, f.Transport)
}

func (f *ClientFactory) userClient(ctx context.Context, accessToken string, transport http.RoundTripper) *gh.Client {
	if transport != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: transport})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "token"})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = f.Timeout

	client := gh.NewClient(tc)
	client.UserAgent = userAgent
	if f.BaseURL != nil {
		client.BaseURL = f.BaseURL
	}
	return client
}
