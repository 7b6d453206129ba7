package models

// OAuthExchangeRequest carries an authorization code from the browser callback.
type OAuthExchangeRequest struct {
	Code        string
	RedirectURI string
}

// OAuthTokenResult is returned to the browser after a successful code exchange.
type OAuthTokenResult struct {
	AccessToken string `json:"access_token"`
}

// IssueCreationRequest holds the validated fields of a create-issue call.
type IssueCreationRequest struct {
	AccessToken string
	Owner       string
	Repo        string
	Title       string
	Body        string
}

type IssueCreationResult struct {
	Success bool   `json:"success"`
	Number  int    `json:"number"`
	URL     string `json:"url"`
	Title   string `json:"title"`
}

type EnvStatus struct {
	GitHubClientID     string `json:"github_client_id"`
	GitHubClientSecret string `json:"github_client_secret"`
}

type InfoResponse struct {
	Message   string    `json:"message"`
	EnvStatus EnvStatus `json:"env_status"`
}

type ErrorDetail struct {
	Detail string `json:"detail"`
}

type NotFound struct {
	Error string `json:"error"`
}
