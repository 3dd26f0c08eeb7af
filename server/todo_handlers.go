package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tidyplan/todo-gateway/todos"
)

// CreateTodoHandler proxies a todo creation to the downstream API using the
// session's bearer credential.
func (s *Server) CreateTodoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "No session", http.StatusUnauthorized)
			return
		}

		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Text) == "" {
			http.Error(w, "A non-empty 'text' field is required", http.StatusBadRequest)
			return
		}

		todo, err := s.todoAPI.CreateTodo(r.Context(), record, body.Text)
		if err != nil {
			writeDownstreamError(w, err, "Create todo failed")
			return
		}
		writeJSON(w, http.StatusCreated, todo)
	}
}

// ListTodosHandler fetches the user's todos from the downstream API.
func (s *Server) ListTodosHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "No session", http.StatusUnauthorized)
			return
		}

		list, err := s.todoAPI.ListTodos(r.Context(), record)
		if err != nil {
			writeDownstreamError(w, err, "List todos failed")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// writeDownstreamError relays the downstream status where one exists; the
// 401 case in particular must reach the end caller unchanged.
func writeDownstreamError(w http.ResponseWriter, err error, msg string) {
	log.Err(err).Msg(msg)
	var httpErr *todos.HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, msg, httpErr.StatusCode)
		return
	}
	http.Error(w, msg, http.StatusBadGateway)
}
