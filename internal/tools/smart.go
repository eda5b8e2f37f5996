package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rochadelon/super-productivity-mcp/internal/plan"
	"github.com/rochadelon/super-productivity-mcp/internal/superprod"
)

// Smart action tools: each does one or two façade fetches and then runs
// a pure computation from the plan package. The clock is injectable so
// tests can pin it.

// AnalyzeProductivityTool handles analyze_productivity.
type AnalyzeProductivityTool struct {
	client superprod.Client
	now    func() time.Time
}

func NewAnalyzeProductivityTool(client superprod.Client) *AnalyzeProductivityTool {
	return &AnalyzeProductivityTool{client: client, now: time.Now}
}

func (t *AnalyzeProductivityTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_productivity",
		mcp.WithDescription("Analyze completion rate, time estimates, and time spent over the recent past."),
		mcp.WithNumber("days",
			mcp.DefaultNumber(7),
			mcp.Description("Number of days to analyze"),
		),
	)
}

func (t *AnalyzeProductivityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := int(req.GetFloat("days", 7))
	if days <= 0 {
		return mcp.NewToolResultError("'days' must be positive"), nil
	}

	tasks, err := t.client.GetTasks(ctx)
	if err != nil {
		return errResult(err), nil
	}
	return jsonResult(plan.Analyze(tasks, days, t.now())), nil
}

// SuggestPrioritiesTool handles suggest_priorities.
type SuggestPrioritiesTool struct {
	client superprod.Client
	now    func() time.Time
}

func NewSuggestPrioritiesTool(client superprod.Client) *SuggestPrioritiesTool {
	return &SuggestPrioritiesTool{client: client, now: time.Now}
}

func (t *SuggestPrioritiesTool) Definition() mcp.Tool {
	return mcp.NewTool("suggest_priorities",
		mcp.WithDescription("Rank pending tasks by urgency (deadlines, age, missing estimates, open subtasks)."),
		mcp.WithString("projectId",
			mcp.Description("Only consider tasks from this project"),
		),
		mcp.WithNumber("maxTasks",
			mcp.DefaultNumber(5),
			mcp.Description("Maximum number of suggestions"),
		),
	)
}

func (t *SuggestPrioritiesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("projectId", "")
	maxTasks := int(req.GetFloat("maxTasks", 5))
	if maxTasks <= 0 {
		return mcp.NewToolResultError("'maxTasks' must be positive"), nil
	}

	tasks, err := t.client.GetCurrentContextTasks(ctx)
	if err != nil {
		return errResult(err), nil
	}

	suggestions := plan.SuggestPriorities(tasks, projectID, maxTasks, t.now())
	return jsonResult(map[string]any{
		"suggestions": suggestions,
		"message":     fmt.Sprintf("Top %d priority tasks identified", len(suggestions)),
	}), nil
}

// CreateDailyPlanTool handles create_daily_plan.
type CreateDailyPlanTool struct {
	client superprod.Client
	now    func() time.Time
}

func NewCreateDailyPlanTool(client superprod.Client) *CreateDailyPlanTool {
	return &CreateDailyPlanTool{client: client, now: time.Now}
}

func (t *CreateDailyPlanTool) Definition() mcp.Tool {
	return mcp.NewTool("create_daily_plan",
		mcp.WithDescription("Pack pending tasks into the hours available today, reserving break time."),
		mcp.WithNumber("availableHours",
			mcp.DefaultNumber(8),
			mcp.Description("Hours available to work"),
		),
		mcp.WithBoolean("includeBreaks",
			mcp.DefaultBool(true),
		),
	)
}

func (t *CreateDailyPlanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	availableHours := req.GetFloat("availableHours", 8)
	if availableHours <= 0 {
		return mcp.NewToolResultError("'availableHours' must be positive"), nil
	}
	includeBreaks := req.GetBool("includeBreaks", true)

	tasks, err := t.client.GetCurrentContextTasks(ctx)
	if err != nil {
		return errResult(err), nil
	}
	return jsonResult(plan.BuildDailyPlan(tasks, availableHours, includeBreaks, t.now())), nil
}
