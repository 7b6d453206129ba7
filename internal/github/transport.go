package github

import (
	"bytes"
	"io"
	"net/http"
)

// recordingTransport keeps the status and raw body of the last response so
// failures can be relayed with GitHub's own text. It is built per call and
// never shared between requests.
type recordingTransport struct {
	base   http.RoundTripper
	accept string
	status int
	body   []byte
}

// newRecordingTransport wraps base, or http.DefaultTransport when base is nil.
// A non-empty accept overrides the request's Accept header.
func newRecordingTransport(base http.RoundTripper, accept string) *recordingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &recordingTransport{base: base, accept: accept}
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.accept != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept", t.accept)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	t.status = resp.StatusCode
	t.body = body
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
