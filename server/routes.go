package server

import (
	"fmt"
	"log"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteFunc("GET /", s.IndexHandler())

	// LOGIN / LOGOUT
	s.RegisterRouteFunc("GET "+RouteAuthLogin, s.LoginHandler())
	s.RegisterRouteFunc("GET "+RouteAuthLogout, s.LogoutHandler())
	s.RegisterRouteFunc("GET "+RouteCallback, s.OAuthCallbackHandler())
	s.RegisterRouteFunc("POST "+RouteCallback, s.OAuthCallbackHandler()) // For form_post response mode

	// API routes (require an authenticated session)
	s.RegisterRouteHandler("GET "+RouteAPIMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteAPITodos, ChainMiddleware(s.ListTodosHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteAPITodos, ChainMiddleware(s.CreateTodoHandler(), s.APIMiddleware(s.RequireSession())...))
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	log.Println("Registered routes:")
	for _, route := range s.routes {
		log.Println("  " + route)
	}
}

func logRoute(method, path string) {
	displayMethod := method
	if color, ok := methodColors[method]; ok {
		paddedMethod := fmt.Sprintf(" %-7s", method)
		displayMethod = color + paddedMethod + ResetColor
	}
	log.Println("["+displayMethod+"]", path)
}
