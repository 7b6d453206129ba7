package github

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github-issue-relay/internal/config"
	"github-issue-relay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOAuth(t *testing.T, handler http.HandlerFunc) (*OAuth, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	o := NewOAuth(config.Config{GitHubClientID: "client-id", GitHubClientSecret: "client-secret"})
	o.OAuthConfig.Endpoint.TokenURL = srv.URL + "/login/oauth/access_token"
	return o, &calls
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

var exchangeRequest = models.OAuthExchangeRequest{Code: "the-code", RedirectURI: "http://localhost:3000/auth/callback"}

func TestExchangeCodeSuccess(t *testing.T) {
	o, calls := newTestOAuth(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "http://localhost:3000/auth/callback", r.PostForm.Get("redirect_uri"))
		writeJSON(w, http.StatusOK, `{"access_token":"abc123","token_type":"bearer","scope":"repo"}`)
	})

	result, err := o.ExchangeCode(t.Context(), exchangeRequest)
	require.NoError(t, err)
	assert.Equal(t, "abc123", result.AccessToken)
	assert.Equal(t, 1, *calls)
}

func TestExchangeCodeRejections(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantBody   string
		wantMsg    string
	}{
		{
			name:       "non-200 status",
			status:     http.StatusServiceUnavailable,
			body:       `{"message":"down for maintenance"}`,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"message":"down for maintenance"}`,
		},
		{
			name:       "2xx other than 200",
			status:     http.StatusCreated,
			body:       `{"access_token":"abc123"}`,
			wantStatus: http.StatusCreated,
			wantBody:   `{"access_token":"abc123"}`,
		},
		{
			name:    "error code only",
			status:  http.StatusOK,
			body:    `{"error":"bad_verification_code"}`,
			wantMsg: "bad_verification_code",
		},
		{
			name:    "description preferred",
			status:  http.StatusOK,
			body:    `{"error":"bad_verification_code","error_description":"The code passed is incorrect or expired."}`,
			wantMsg: "The code passed is incorrect or expired.",
		},
		{
			name:    "no token",
			status:  http.StatusOK,
			body:    `{}`,
			wantMsg: noAccessToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, calls := newTestOAuth(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := o.ExchangeCode(t.Context(), exchangeRequest)
			require.Error(t, err)
			assert.True(t, IsRejection(err))
			assert.Equal(t, 1, *calls, "token endpoint must be called exactly once")

			if tt.wantStatus != 0 {
				var upstream *UpstreamError
				require.True(t, errors.As(err, &upstream))
				assert.Equal(t, tt.wantStatus, upstream.StatusCode)
				assert.Equal(t, tt.wantBody, upstream.Body)
				return
			}

			var tokenErr *TokenError
			require.True(t, errors.As(err, &tokenErr))
			assert.Equal(t, tt.wantMsg, tokenErr.Message)
		})
	}
}

func TestExchangeCodeTokenBesideErrorField(t *testing.T) {
	o, calls := newTestOAuth(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"access_token":"abc123","error":"ignored"}`)
	})

	result, err := o.ExchangeCode(t.Context(), exchangeRequest)
	require.NoError(t, err)
	assert.Equal(t, "abc123", result.AccessToken)
	assert.Equal(t, 1, *calls)
}

func TestExchangeCodeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	o := NewOAuth(config.Config{GitHubClientID: "id", GitHubClientSecret: "secret"})
	o.OAuthConfig.Endpoint.TokenURL = srv.URL

	_, err := o.ExchangeCode(t.Context(), exchangeRequest)
	require.Error(t, err)
	assert.False(t, IsRejection(err))
	assert.NotContains(t, err.Error(), "secret")
}
