package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rochadelon/super-productivity-mcp/internal/superprod"
)

// fakeClient is an in-memory Client. Mutating calls change the stored
// state so list-after-update tests observe real effects. Setting err
// makes every method fail with it.
type fakeClient struct {
	err error

	tasks        []superprod.Task
	currentTasks []superprod.Task
	projects     []superprod.Project
	tags         []superprod.Tag

	created      []superprod.NewTask
	lastUpdates  map[string]any
	deleted      []string
	batchProject string
	batchOps     []superprod.BatchOperation
	batchResult  json.RawMessage
	notified     []superprod.NotifyConfig
	snacks       []superprod.SnackConfig
	dialogs      []superprod.DialogConfig
	dialogResult json.RawMessage
}

func (f *fakeClient) GetTasks(ctx context.Context) ([]superprod.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

func (f *fakeClient) GetCurrentContextTasks(ctx context.Context) ([]superprod.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.currentTasks, nil
}

func (f *fakeClient) CreateTask(ctx context.Context, task superprod.NewTask) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, task)
	id := fmt.Sprintf("task-%d", len(f.created))
	f.tasks = append(f.tasks, superprod.Task{
		ID:           id,
		Title:        task.Title,
		ProjectID:    task.ProjectID,
		Notes:        task.Notes,
		TimeEstimate: task.TimeEstimate,
	})
	return id, nil
}

func (f *fakeClient) UpdateTask(ctx context.Context, taskID string, updates map[string]any) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.tasks {
		if f.tasks[i].ID != taskID {
			continue
		}
		if v, ok := updates["title"].(string); ok {
			f.tasks[i].Title = v
		}
		if v, ok := updates["notes"].(string); ok {
			f.tasks[i].Notes = v
		}
		if v, ok := updates["isDone"].(bool); ok {
			f.tasks[i].IsDone = v
		}
		f.lastUpdates = updates
		return nil
	}
	return fmt.Errorf("task %s not found", taskID)
}

func (f *fakeClient) DeleteTask(ctx context.Context, taskID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, taskID)
	return nil
}

func (f *fakeClient) BatchUpdate(ctx context.Context, projectID string, operations []superprod.BatchOperation) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batchProject = projectID
	f.batchOps = operations
	return f.batchResult, nil
}

func (f *fakeClient) GetProjects(ctx context.Context) ([]superprod.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.projects, nil
}

func (f *fakeClient) CreateProject(ctx context.Context, project superprod.NewProject) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.projects = append(f.projects, superprod.Project{
		ID:    fmt.Sprintf("project-%d", len(f.projects)+1),
		Title: project.Title,
		Theme: project.Theme,
	})
	return f.projects[len(f.projects)-1].ID, nil
}

func (f *fakeClient) GetTags(ctx context.Context) ([]superprod.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tags, nil
}

func (f *fakeClient) CreateTag(ctx context.Context, tag superprod.NewTag) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.tags = append(f.tags, superprod.Tag{
		ID:    fmt.Sprintf("tag-%d", len(f.tags)+1),
		Title: tag.Title,
		Color: tag.Color,
		Icon:  tag.Icon,
	})
	return f.tags[len(f.tags)-1].ID, nil
}

func (f *fakeClient) UpdateTag(ctx context.Context, tagID string, updates map[string]any) error {
	if f.err != nil {
		return f.err
	}
	f.lastUpdates = updates
	return nil
}

func (f *fakeClient) Notify(ctx context.Context, config superprod.NotifyConfig) error {
	if f.err != nil {
		return f.err
	}
	f.notified = append(f.notified, config)
	return nil
}

func (f *fakeClient) ShowSnack(ctx context.Context, config superprod.SnackConfig) error {
	if f.err != nil {
		return f.err
	}
	f.snacks = append(f.snacks, config)
	return nil
}

func (f *fakeClient) OpenDialog(ctx context.Context, config superprod.DialogConfig) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.dialogs = append(f.dialogs, config)
	return f.dialogResult, nil
}

// --- request/result helpers ---

func callReq(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	tc, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("tool result content is %T, want text", res.Content[0])
	}
	return tc.Text
}

func decodeResult(t *testing.T, res *mcp.CallToolResult, into any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error: %s", resultText(t, res))
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), into); err != nil {
		t.Fatalf("decoding tool result %q: %v", resultText(t, res), err)
	}
}

func wantError(t *testing.T, res *mcp.CallToolResult, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("handler returned transport error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("result = %s, want a tool error", resultText(t, res))
	}
}
