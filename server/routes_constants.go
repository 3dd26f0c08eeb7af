package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"
	RouteCallback   = "/callback"

	// API Routes
	RouteAPITodos = "/api/todos"
	RouteAPIMe    = "/api/me"

	// Health
	RouteHealth = "/health"
)
