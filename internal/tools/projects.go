package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rochadelon/super-productivity-mcp/internal/superprod"
)

// ListProjectsTool handles list_projects.
type ListProjectsTool struct {
	client superprod.Client
}

func NewListProjectsTool(client superprod.Client) *ListProjectsTool {
	return &ListProjectsTool{client: client}
}

func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects in Super Productivity."),
	)
}

func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.client.GetProjects(ctx)
	if err != nil {
		return errResult(err), nil
	}
	return jsonResult(map[string]any{
		"count":    len(projects),
		"projects": projects,
	}), nil
}

// CreateProjectTool handles create_project.
type CreateProjectTool struct {
	client superprod.Client
}

func NewCreateProjectTool(client superprod.Client) *CreateProjectTool {
	return &CreateProjectTool{client: client}
}

func (t *CreateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription("Create a project in Super Productivity."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Project title"),
		),
		mcp.WithObject("theme",
			mcp.Description("Project theme configuration"),
		),
		mcp.WithBoolean("isArchived",
			mcp.DefaultBool(false),
		),
	)
}

func (t *CreateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil || strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	project := superprod.NewProject{
		Title:      title,
		IsArchived: req.GetBool("isArchived", false),
	}
	if theme, ok := req.GetArguments()["theme"]; ok {
		data, err := json.Marshal(theme)
		if err != nil {
			return mcp.NewToolResultError("invalid 'theme' value"), nil
		}
		project.Theme = data
	}

	projectID, err := t.client.CreateProject(ctx, project)
	if err != nil {
		return errResult(err), nil
	}
	return jsonResult(map[string]any{
		"success":   true,
		"projectId": projectID,
		"message":   fmt.Sprintf("Project created: %s", title),
	}), nil
}
