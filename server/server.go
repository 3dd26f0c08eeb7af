package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidyplan/todo-gateway/internal/config"
	"github.com/tidyplan/todo-gateway/provider"
	"github.com/tidyplan/todo-gateway/server/authflowrepo"
	"github.com/tidyplan/todo-gateway/sessions"
	"github.com/tidyplan/todo-gateway/todos"
	"github.com/tidyplan/todo-gateway/token"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	provider *provider.Client
	tokens   *token.Manager
	sessions sessions.Repo
	todoAPI  *todos.Client
	flow     authflowrepo.Repo
}

func New(cfg config.Config, sessionRepo sessions.Repo, flowRepo authflowrepo.Repo) (*Server, error) {
	providerClient, err := provider.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create provider client: %w", err)
	}
	tokenManager := token.NewManager(providerClient, sessionRepo, cfg)
	todoClient := todos.NewClient(cfg.GetTodoAPIBaseURL(), nil, tokenManager)

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		provider: providerClient,
		tokens:   tokenManager,
		sessions: sessionRepo,
		todoAPI:  todoClient,
		flow:     flowRepo,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}
