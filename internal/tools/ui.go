package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rochadelon/super-productivity-mcp/internal/superprod"
)

// UI tools. The content of each call passes to the application
// unchanged — these add no interpretation of their own.

// ShowNotificationTool handles show_notification.
type ShowNotificationTool struct {
	client superprod.Client
}

func NewShowNotificationTool(client superprod.Client) *ShowNotificationTool {
	return &ShowNotificationTool{client: client}
}

func (t *ShowNotificationTool) Definition() mcp.Tool {
	return mcp.NewTool("show_notification",
		mcp.WithDescription("Show a desktop notification in Super Productivity."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Notification message"),
		),
		mcp.WithString("type",
			mcp.Enum("SUCCESS", "ERROR", "INFO"),
			mcp.DefaultString("INFO"),
		),
		mcp.WithNumber("duration",
			mcp.Description("Duration in ms"),
		),
	)
}

func (t *ShowNotificationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("'message' is required"), nil
	}

	err = t.client.Notify(ctx, superprod.NotifyConfig{
		Message:  message,
		Type:     req.GetString("type", "INFO"),
		Duration: int64(req.GetFloat("duration", 0)),
	})
	if err != nil {
		return errResult(err), nil
	}
	return mcp.NewToolResultText("Notification sent"), nil
}

// ShowSnackTool handles show_snack.
type ShowSnackTool struct {
	client superprod.Client
}

func NewShowSnackTool(client superprod.Client) *ShowSnackTool {
	return &ShowSnackTool{client: client}
}

func (t *ShowSnackTool) Definition() mcp.Tool {
	return mcp.NewTool("show_snack",
		mcp.WithDescription("Show a transient snack bar message in Super Productivity."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Snack message"),
		),
		mcp.WithString("type",
			mcp.Enum("SUCCESS", "ERROR", "INFO"),
			mcp.DefaultString("INFO"),
		),
		mcp.WithObject("config",
			mcp.Description("Extra snack bar options, passed through unchanged"),
		),
	)
}

func (t *ShowSnackTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("'message' is required"), nil
	}

	snack := superprod.SnackConfig{
		Message: message,
		Type:    req.GetString("type", "INFO"),
	}
	if cfg, ok := req.GetArguments()["config"].(map[string]any); ok {
		snack.Config = cfg
	}

	if err := t.client.ShowSnack(ctx, snack); err != nil {
		return errResult(err), nil
	}
	return mcp.NewToolResultText("Snack shown"), nil
}

// OpenDialogTool handles open_dialog.
type OpenDialogTool struct {
	client superprod.Client
}

func NewOpenDialogTool(client superprod.Client) *OpenDialogTool {
	return &OpenDialogTool{client: client}
}

func (t *OpenDialogTool) Definition() mcp.Tool {
	return mcp.NewTool("open_dialog",
		mcp.WithDescription("Open a confirm or prompt dialog in Super Productivity and return the user's answer."),
		mcp.WithString("type",
			mcp.Enum("CONFIRM", "PROMPT"),
			mcp.DefaultString("CONFIRM"),
		),
		mcp.WithString("title"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Dialog message"),
		),
		mcp.WithString("confirmText"),
		mcp.WithString("cancelText"),
	)
}

func (t *OpenDialogTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("'message' is required"), nil
	}

	result, err := t.client.OpenDialog(ctx, superprod.DialogConfig{
		Type:        req.GetString("type", "CONFIRM"),
		Title:       req.GetString("title", ""),
		Message:     message,
		ConfirmText: req.GetString("confirmText", ""),
		CancelText:  req.GetString("cancelText", ""),
	})
	if err != nil {
		return errResult(err), nil
	}
	if len(result) == 0 {
		return jsonResult(map[string]any{"confirmed": true}), nil
	}
	return jsonResult(json.RawMessage(result)), nil
}
