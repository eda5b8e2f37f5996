package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rochadelon/super-productivity-mcp/internal/superprod"
)

// ListTagsTool handles list_tags.
type ListTagsTool struct {
	client superprod.Client
}

func NewListTagsTool(client superprod.Client) *ListTagsTool {
	return &ListTagsTool{client: client}
}

func (t *ListTagsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_tags",
		mcp.WithDescription("List all tags in Super Productivity."),
	)
}

func (t *ListTagsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := t.client.GetTags(ctx)
	if err != nil {
		return errResult(err), nil
	}
	return jsonResult(map[string]any{
		"count": len(tags),
		"tags":  tags,
	}), nil
}

// CreateTagTool handles create_tag.
type CreateTagTool struct {
	client superprod.Client
}

func NewCreateTagTool(client superprod.Client) *CreateTagTool {
	return &CreateTagTool{client: client}
}

func (t *CreateTagTool) Definition() mcp.Tool {
	return mcp.NewTool("create_tag",
		mcp.WithDescription("Create a tag in Super Productivity."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Tag title"),
		),
		mcp.WithString("color",
			mcp.Description("Tag color (hex)"),
		),
		mcp.WithString("icon",
			mcp.Description("Tag icon name"),
		),
	)
}

func (t *CreateTagTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil || strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	tagID, err := t.client.CreateTag(ctx, superprod.NewTag{
		Title: title,
		Color: req.GetString("color", ""),
		Icon:  req.GetString("icon", ""),
	})
	if err != nil {
		return errResult(err), nil
	}
	return jsonResult(map[string]any{
		"success": true,
		"tagId":   tagID,
		"message": fmt.Sprintf("Tag created: %s", title),
	}), nil
}

// UpdateTagTool handles update_tag.
type UpdateTagTool struct {
	client superprod.Client
}

func NewUpdateTagTool(client superprod.Client) *UpdateTagTool {
	return &UpdateTagTool{client: client}
}

func (t *UpdateTagTool) Definition() mcp.Tool {
	return mcp.NewTool("update_tag",
		mcp.WithDescription("Update fields of an existing tag."),
		mcp.WithString("tagId",
			mcp.Required(),
			mcp.Description("Tag ID to update"),
		),
		mcp.WithString("title"),
		mcp.WithString("color"),
		mcp.WithString("icon"),
	)
}

func (t *UpdateTagTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tagID, err := req.RequireString("tagId")
	if err != nil {
		return mcp.NewToolResultError("'tagId' is required"), nil
	}

	updates := map[string]any{}
	args := req.GetArguments()
	for _, field := range []string{"title", "color", "icon"} {
		if v, ok := args[field]; ok {
			updates[field] = v
		}
	}
	if len(updates) == 0 {
		return mcp.NewToolResultError("nothing to update: provide at least one field"), nil
	}

	if err := t.client.UpdateTag(ctx, tagID, updates); err != nil {
		return errResult(err), nil
	}
	return jsonResult(map[string]any{
		"success": true,
		"message": "Tag updated successfully",
	}), nil
}
