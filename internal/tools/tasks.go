package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rochadelon/super-productivity-mcp/internal/superprod"
)

// taskSummary is the field subset list_tasks surfaces for each task.
type taskSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	IsDone       bool   `json:"isDone"`
	TimeEstimate int64  `json:"timeEstimate"`
	TimeSpent    int64  `json:"timeSpent"`
	ProjectID    string `json:"projectId,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// ListTasksTool handles list_tasks.
type ListTasksTool struct {
	client superprod.Client
}

func NewListTasksTool(client superprod.Client) *ListTasksTool {
	return &ListTasksTool{client: client}
}

func (t *ListTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks from Super Productivity, optionally filtered by project or limited to the current context."),
		mcp.WithString("projectId",
			mcp.Description("Only return tasks belonging to this project."),
		),
		mcp.WithBoolean("includeArchived",
			mcp.DefaultBool(false),
			mcp.Description("Include archived tasks."),
		),
		mcp.WithBoolean("currentContextOnly",
			mcp.DefaultBool(false),
			mcp.Description("Only tasks from the currently active project or tag context."),
		),
	)
}

func (t *ListTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("projectId", "")
	currentOnly := req.GetBool("currentContextOnly", false)

	var tasks []superprod.Task
	var err error
	if currentOnly {
		tasks, err = t.client.GetCurrentContextTasks(ctx)
	} else {
		tasks, err = t.client.GetTasks(ctx)
	}
	if err != nil {
		return errResult(err), nil
	}

	summaries := []taskSummary{}
	for _, task := range tasks {
		if projectID != "" && task.ProjectID != projectID {
			continue
		}
		summaries = append(summaries, taskSummary{
			ID:           task.ID,
			Title:        task.Title,
			IsDone:       task.IsDone,
			TimeEstimate: task.TimeEstimate,
			TimeSpent:    task.TimeSpent,
			ProjectID:    task.ProjectID,
			Notes:        task.Notes,
		})
	}

	return jsonResult(map[string]any{
		"count": len(summaries),
		"tasks": summaries,
	}), nil
}

// CreateTaskTool handles create_task.
type CreateTaskTool struct {
	client superprod.Client
}

func NewCreateTaskTool(client superprod.Client) *CreateTaskTool {
	return &CreateTaskTool{client: client}
}

func (t *CreateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription("Create a task in Super Productivity."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title"),
		),
		mcp.WithString("projectId",
			mcp.Description("Project ID to add the task to"),
		),
		mcp.WithString("notes",
			mcp.Description("Task notes/description"),
		),
		mcp.WithNumber("timeEstimate",
			mcp.Description("Time estimate in milliseconds"),
		),
		mcp.WithArray("tagIds",
			mcp.Description("Tag IDs to attach"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("parentId",
			mcp.Description("Parent task ID for subtasks"),
		),
	)
}

func (t *CreateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil || strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	task := superprod.NewTask{
		Title:        title,
		ProjectID:    req.GetString("projectId", ""),
		Notes:        req.GetString("notes", ""),
		TimeEstimate: int64(req.GetFloat("timeEstimate", 0)),
		TagIDs:       req.GetStringSlice("tagIds", nil),
		ParentID:     req.GetString("parentId", ""),
	}

	taskID, err := t.client.CreateTask(ctx, task)
	if err != nil {
		return errResult(err), nil
	}
	return jsonResult(map[string]any{
		"success": true,
		"taskId":  taskID,
		"message": fmt.Sprintf("Task created: %s", title),
	}), nil
}

// UpdateTaskTool handles update_task. Only provided fields end up in
// the update payload sent to the application.
type UpdateTaskTool struct {
	client superprod.Client
}

func NewUpdateTaskTool(client superprod.Client) *UpdateTaskTool {
	return &UpdateTaskTool{client: client}
}

func (t *UpdateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task",
		mcp.WithDescription("Update fields of an existing task."),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("Task ID to update"),
		),
		mcp.WithString("title"),
		mcp.WithString("notes"),
		mcp.WithNumber("timeEstimate"),
		mcp.WithBoolean("isDone"),
		mcp.WithString("projectId"),
	)
}

func (t *UpdateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := req.RequireString("taskId")
	if err != nil {
		return mcp.NewToolResultError("'taskId' is required"), nil
	}

	updates := map[string]any{}
	args := req.GetArguments()
	for _, field := range []string{"title", "notes", "timeEstimate", "isDone", "projectId"} {
		if v, ok := args[field]; ok {
			updates[field] = v
		}
	}
	if len(updates) == 0 {
		return mcp.NewToolResultError("nothing to update: provide at least one field"), nil
	}

	if err := t.client.UpdateTask(ctx, taskID, updates); err != nil {
		return errResult(err), nil
	}
	return jsonResult(map[string]any{
		"success": true,
		"message": "Task updated successfully",
	}), nil
}

// CompleteTaskTool handles complete_task, a shorthand for updating a
// task with isDone=true.
type CompleteTaskTool struct {
	client superprod.Client
}

func NewCompleteTaskTool(client superprod.Client) *CompleteTaskTool {
	return &CompleteTaskTool{client: client}
}

func (t *CompleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task as complete."),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("Task ID to complete"),
		),
	)
}

func (t *CompleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := req.RequireString("taskId")
	if err != nil {
		return mcp.NewToolResultError("'taskId' is required"), nil
	}
	if err := t.client.UpdateTask(ctx, taskID, map[string]any{"isDone": true}); err != nil {
		return errResult(err), nil
	}
	return jsonResult(map[string]any{
		"success": true,
		"message": "Task marked as complete",
	}), nil
}

// validBatchTypes are the operation kinds tasks:batch accepts.
var validBatchTypes = map[string]bool{
	"create":  true,
	"update":  true,
	"delete":  true,
	"reorder": true,
}

// BatchUpdateTasksTool handles batch_update_tasks.
type BatchUpdateTasksTool struct {
	client superprod.Client
}

func NewBatchUpdateTasksTool(client superprod.Client) *BatchUpdateTasksTool {
	return &BatchUpdateTasksTool{client: client}
}

func (t *BatchUpdateTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("batch_update_tasks",
		mcp.WithDescription("Run a batch of create/update/delete/reorder operations against one project's tasks."),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("Project ID the operations apply to"),
		),
		mcp.WithArray("operations",
			mcp.Required(),
			mcp.Description("Operations to perform. Each has a type (create, update, delete, reorder) plus taskId/tempId/data/updates/taskIds as applicable."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"type":    map[string]any{"type": "string", "enum": []string{"create", "update", "delete", "reorder"}},
					"taskId":  map[string]any{"type": "string"},
					"tempId":  map[string]any{"type": "string"},
					"data":    map[string]any{"type": "object"},
					"updates": map[string]any{"type": "object"},
					"taskIds": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"required": []string{"type"},
			}),
		),
	)
}

func (t *BatchUpdateTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("projectId")
	if err != nil {
		return mcp.NewToolResultError("'projectId' is required"), nil
	}

	rawOps, ok := req.GetArguments()["operations"]
	if !ok {
		return mcp.NewToolResultError("'operations' is required"), nil
	}
	// Round-trip through JSON to coerce the generic argument value
	// into typed operations.
	data, err := json.Marshal(rawOps)
	if err != nil {
		return mcp.NewToolResultError("invalid 'operations' value"), nil
	}
	var ops []superprod.BatchOperation
	if err := json.Unmarshal(data, &ops); err != nil {
		return mcp.NewToolResultError("invalid 'operations' value: " + err.Error()), nil
	}
	if len(ops) == 0 {
		return mcp.NewToolResultError("'operations' must not be empty"), nil
	}
	for i, op := range ops {
		if !validBatchTypes[op.Type] {
			return mcp.NewToolResultError(fmt.Sprintf(
				"operations[%d]: invalid type %q: must be one of: create, update, delete, reorder", i, op.Type,
			)), nil
		}
	}

	result, err := t.client.BatchUpdate(ctx, projectID, ops)
	if err != nil {
		return errResult(err), nil
	}
	if len(result) == 0 {
		return jsonResult(map[string]any{"success": true}), nil
	}
	return jsonResult(json.RawMessage(result)), nil
}
