package superprod

import (
	"context"
	"encoding/json"
)

// Client is the full capability surface the bridge exposes on top of a
// running Super Productivity instance. Implementations add no failure
// modes of their own beyond transport errors.
type Client interface {
	GetTasks(ctx context.Context) ([]Task, error)
	GetCurrentContextTasks(ctx context.Context) ([]Task, error)
	CreateTask(ctx context.Context, task NewTask) (string, error)
	UpdateTask(ctx context.Context, taskID string, updates map[string]any) error
	DeleteTask(ctx context.Context, taskID string) error
	BatchUpdate(ctx context.Context, projectID string, operations []BatchOperation) (json.RawMessage, error)

	GetProjects(ctx context.Context) ([]Project, error)
	CreateProject(ctx context.Context, project NewProject) (string, error)

	GetTags(ctx context.Context) ([]Tag, error)
	CreateTag(ctx context.Context, tag NewTag) (string, error)
	UpdateTag(ctx context.Context, tagID string, updates map[string]any) error

	Notify(ctx context.Context, config NotifyConfig) error
	ShowSnack(ctx context.Context, config SnackConfig) error
	OpenDialog(ctx context.Context, config DialogConfig) (json.RawMessage, error)
}

// Invoker is the correlated request channel the socket client rides on.
// Satisfied by *bridge.Channel.
type Invoker interface {
	Invoke(ctx context.Context, command string, payload any) (json.RawMessage, error)
}

// Command names understood by the plugin's socket handler.
const (
	cmdTasksGet        = "tasks:get"
	cmdTasksGetCurrent = "tasks:getCurrent"
	cmdTasksCreate     = "tasks:create"
	cmdTasksUpdate     = "tasks:update"
	cmdTasksDelete     = "tasks:delete"
	cmdTasksBatch      = "tasks:batch"
	cmdProjectsGet     = "projects:get"
	cmdProjectsCreate  = "projects:create"
	cmdTagsGet         = "tags:get"
	cmdTagsCreate      = "tags:create"
	cmdTagsUpdate      = "tags:update"
	cmdUINotify        = "ui:notify"
	cmdUIShowSnack     = "ui:showSnack"
	cmdUIOpenDialog    = "ui:openDialog"
)

// SocketClient implements Client over the plugin bridge: every method
// is exactly one correlated channel call with a fixed command name.
type SocketClient struct {
	inv Invoker
}

func NewSocketClient(inv Invoker) *SocketClient {
	return &SocketClient{inv: inv}
}

func (c *SocketClient) GetTasks(ctx context.Context) ([]Task, error) {
	return invokeList[Task](ctx, c.inv, cmdTasksGet, nil)
}

func (c *SocketClient) GetCurrentContextTasks(ctx context.Context) ([]Task, error) {
	return invokeList[Task](ctx, c.inv, cmdTasksGetCurrent, nil)
}

func (c *SocketClient) CreateTask(ctx context.Context, task NewTask) (string, error) {
	return invokeID(ctx, c.inv, cmdTasksCreate, task)
}

func (c *SocketClient) UpdateTask(ctx context.Context, taskID string, updates map[string]any) error {
	_, err := c.inv.Invoke(ctx, cmdTasksUpdate, map[string]any{
		"taskId":  taskID,
		"updates": updates,
	})
	return err
}

func (c *SocketClient) DeleteTask(ctx context.Context, taskID string) error {
	_, err := c.inv.Invoke(ctx, cmdTasksDelete, map[string]any{"taskId": taskID})
	return err
}

func (c *SocketClient) BatchUpdate(ctx context.Context, projectID string, operations []BatchOperation) (json.RawMessage, error) {
	return c.inv.Invoke(ctx, cmdTasksBatch, map[string]any{
		"projectId":  projectID,
		"operations": operations,
	})
}

func (c *SocketClient) GetProjects(ctx context.Context) ([]Project, error) {
	return invokeList[Project](ctx, c.inv, cmdProjectsGet, nil)
}

func (c *SocketClient) CreateProject(ctx context.Context, project NewProject) (string, error) {
	return invokeID(ctx, c.inv, cmdProjectsCreate, project)
}

func (c *SocketClient) GetTags(ctx context.Context) ([]Tag, error) {
	return invokeList[Tag](ctx, c.inv, cmdTagsGet, nil)
}

func (c *SocketClient) CreateTag(ctx context.Context, tag NewTag) (string, error) {
	return invokeID(ctx, c.inv, cmdTagsCreate, tag)
}

func (c *SocketClient) UpdateTag(ctx context.Context, tagID string, updates map[string]any) error {
	_, err := c.inv.Invoke(ctx, cmdTagsUpdate, map[string]any{
		"tagId":   tagID,
		"updates": updates,
	})
	return err
}

func (c *SocketClient) Notify(ctx context.Context, config NotifyConfig) error {
	_, err := c.inv.Invoke(ctx, cmdUINotify, config)
	return err
}

func (c *SocketClient) ShowSnack(ctx context.Context, config SnackConfig) error {
	_, err := c.inv.Invoke(ctx, cmdUIShowSnack, config)
	return err
}

func (c *SocketClient) OpenDialog(ctx context.Context, config DialogConfig) (json.RawMessage, error) {
	return c.inv.Invoke(ctx, cmdUIOpenDialog, config)
}

// invokeList runs a command and decodes the acknowledgment as a slice.
// A null or absent result decodes to an empty slice, not an error.
func invokeList[T any](ctx context.Context, inv Invoker, command string, payload any) ([]T, error) {
	raw, err := inv.Invoke(ctx, command, payload)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmtDecodeErr(command, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// invokeID runs a create command whose acknowledgment is the new
// record's id as a JSON string.
func invokeID(ctx context.Context, inv Invoker, command string, payload any) (string, error) {
	raw, err := inv.Invoke(ctx, command, payload)
	if err != nil {
		return "", err
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmtDecodeErr(command, err)
	}
	return id, nil
}
