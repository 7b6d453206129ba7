package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github-issue-relay/internal/config"
	"github-issue-relay/internal/models"

	"github.com/rs/zerolog"
)

const (
	RouteInfo        = "/api"
	RouteOAuthToken  = "/api/oauth/token"
	RouteCreateIssue = "/api/create-issue"

	allowedMethods = "GET, POST, OPTIONS"
	allowedHeaders = "Content-Type"
)

type TokenExchanger interface {
	ExchangeCode(ctx context.Context, req models.OAuthExchangeRequest) (*models.OAuthTokenResult, error)
}

type IssueCreator interface {
	CreateIssue(ctx context.Context, req models.IssueCreationRequest) (*models.IssueCreationResult, error)
}

// Server is safe for concurrent use; it holds no per-request state.
type Server struct {
	cfg     config.Config
	oauth   TokenExchanger
	issues  IssueCreator
	log     zerolog.Logger
	handler http.HandlerFunc
}

func New(cfg config.Config, oauth TokenExchanger, issues IssueCreator, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		oauth:  oauth,
		issues: issues,
		log:    logger,
	}
	s.handler = ChainMiddleware(s.dispatch, s.LoggingMiddleware, s.RecoverMiddleware)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler(w, r)
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		s.handlePreflight(w, r)
	case http.MethodGet:
		if r.URL.Path == RouteInfo {
			s.handleInfo(w, r)
			return
		}
		s.handleNotFound(w, r)
	case http.MethodPost:
		data, ok := s.readJSON(w, r)
		if !ok {
			return
		}
		switch r.URL.Path {
		case RouteOAuthToken:
			s.handleOAuthToken(w, r, data)
		case RouteCreateIssue:
			s.handleCreateIssue(w, r, data)
		default:
			s.handleNotFound(w, r)
		}
	default:
		s.handleNotFound(w, r)
	}
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	s.setHeaders(w, r)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, models.InfoResponse{
		Message: "GitHub OAuth API is running",
		EnvStatus: models.EnvStatus{
			GitHubClientID:     setStatus(s.cfg.GitHubClientID),
			GitHubClientSecret: setStatus(s.cfg.GitHubClientSecret),
		},
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusNotFound, models.NotFound{Error: "Not found"})
}

// readJSON decodes the request body as a JSON object. A body without a
// Content-Length, or with a zero one, is treated as {}.
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	if r.ContentLength <= 0 {
		return map[string]any{}, true
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, r.ContentLength))
	if err == nil && int64(len(raw)) == r.ContentLength {
		var v any
		if err = json.Unmarshal(raw, &v); err == nil {
			if data, ok := v.(map[string]any); ok {
				return data, true
			}
		}
	}

	s.writeError(w, r, badRequest("Invalid JSON"))
	return nil, false
}

// CorsOrigin echoes the request origin when it is on the allow-list, and
// otherwise answers with the first allowed origin.
func (s *Server) CorsOrigin(r *http.Request) string {
	origin := r.Header.Get("Origin")
	for _, allowed := range s.cfg.AllowedOrigins {
		if origin == strings.TrimSpace(allowed) {
			return origin
		}
	}
	if len(s.cfg.AllowedOrigins) == 0 {
		return ""
	}
	return strings.TrimSpace(s.cfg.AllowedOrigins[0])
}

func (s *Server) setHeaders(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", s.CorsOrigin(r))
	h.Set("Access-Control-Allow-Methods", allowedMethods)
	h.Set("Access-Control-Allow-Headers", allowedHeaders)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	s.setHeaders(w, r)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn().Err(err).Str("path", r.URL.Path).Msg("failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, e *apiError) {
	s.writeJSON(w, r, e.status, models.ErrorDetail{Detail: e.detail})
}

func setStatus(v string) string {
	if v != "" {
		return "Set"
	}
	return "NOT SET"
}
