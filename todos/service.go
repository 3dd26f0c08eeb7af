package todos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidyplan/todo-gateway/sessions"
)

// Todo is the downstream API's todo representation.
type Todo struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Owner     string `json:"owner,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
	Done      bool   `json:"done,omitempty"`
}

// CreateTodo creates a todo on behalf of the session's user.
func (c *Client) CreateTodo(ctx context.Context, record *sessions.Record, text string) (*Todo, error) {
	payload, err := json.Marshal(Todo{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal todo: %w", err)
	}

	data, status, err := c.Do(ctx, http.MethodPost, "/todos", record, payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, &HTTPError{StatusCode: status, Body: data}
	}

	var todo Todo
	if err := json.Unmarshal(data, &todo); err != nil {
		return nil, fmt.Errorf("unmarshal todo response: %w", err)
	}
	return &todo, nil
}

// ListTodos fetches the user's todos.
func (c *Client) ListTodos(ctx context.Context, record *sessions.Record) ([]Todo, error) {
	data, status, err := c.Do(ctx, http.MethodGet, "/todos", record, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &HTTPError{StatusCode: status, Body: data}
	}

	var list []Todo
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("unmarshal todos response: %w", err)
	}
	return list, nil
}
