package superprod

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotSupportedOverHTTP marks capabilities the plugin's REST API does
// not expose (tag mutation and UI actions need the live socket).
var ErrNotSupportedOverHTTP = errors.New("not supported over the HTTP transport")

func fmtDecodeErr(what string, err error) error {
	return fmt.Errorf("decoding %s response: %w", what, err)
}

// HTTPClient implements Client against the plugin's companion REST API
// (or this server's own /api mirror). It is used by the inspection CLI
// commands and anywhere no socket bridge is available.
type HTTPClient struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewHTTPClient creates a REST-backed client. token is optional; when
// set it is sent as a bearer token on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope is the REST surface's uniform response shape.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	TaskID    string          `json:"taskId,omitempty"`
	ProjectID string          `json:"projectId,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, &RemoteHTTPError{Status: resp.StatusCode, Message: msg}
	}
	return &env, nil
}

// RemoteHTTPError is a failure the REST surface reported.
type RemoteHTTPError struct {
	Status  int
	Message string
}

func (e *RemoteHTTPError) Error() string { return e.Message }

func decodeData[T any](env *envelope, what string) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmtDecodeErr(what, err)
	}
	return out, nil
}

func (c *HTTPClient) GetTasks(ctx context.Context) ([]Task, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/tasks", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]Task](env, "tasks")
}

func (c *HTTPClient) GetCurrentContextTasks(ctx context.Context) ([]Task, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/tasks/current", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]Task](env, "current tasks")
}

func (c *HTTPClient) CreateTask(ctx context.Context, task NewTask) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/tasks", task)
	if err != nil {
		return "", err
	}
	return env.TaskID, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, taskID string, updates map[string]any) error {
	_, err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(taskID), updates)
	return err
}

func (c *HTTPClient) DeleteTask(ctx context.Context, taskID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(taskID), nil)
	return err
}

func (c *HTTPClient) BatchUpdate(ctx context.Context, projectID string, operations []BatchOperation) (json.RawMessage, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/tasks/batch", map[string]any{
		"projectId":  projectID,
		"operations": operations,
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *HTTPClient) GetProjects(ctx context.Context) ([]Project, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/projects", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]Project](env, "projects")
}

func (c *HTTPClient) CreateProject(ctx context.Context, project NewProject) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/projects", project)
	if err != nil {
		return "", err
	}
	return env.ProjectID, nil
}

func (c *HTTPClient) GetTags(ctx context.Context) ([]Tag, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]Tag](env, "tags")
}

func (c *HTTPClient) CreateTag(ctx context.Context, tag NewTag) (string, error) {
	return "", fmt.Errorf("create tag: %w", ErrNotSupportedOverHTTP)
}

func (c *HTTPClient) UpdateTag(ctx context.Context, tagID string, updates map[string]any) error {
	return fmt.Errorf("update tag: %w", ErrNotSupportedOverHTTP)
}

func (c *HTTPClient) Notify(ctx context.Context, config NotifyConfig) error {
	return fmt.Errorf("notify: %w", ErrNotSupportedOverHTTP)
}

func (c *HTTPClient) ShowSnack(ctx context.Context, config SnackConfig) error {
	return fmt.Errorf("show snack: %w", ErrNotSupportedOverHTTP)
}

func (c *HTTPClient) OpenDialog(ctx context.Context, config DialogConfig) (json.RawMessage, error) {
	return nil, fmt.Errorf("open dialog: %w", ErrNotSupportedOverHTTP)
}
