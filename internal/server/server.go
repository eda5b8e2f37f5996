// Package server wires the tool registry for one protocol session.
//
// This is the composition root: it creates the MCP server instance and
// registers every tool against the shared capability façade. No
// business logic lives here — only wiring. NewRegistry is called once
// per session, so each remote caller gets an independent registry bound
// to the same underlying application bridge.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/rochadelon/super-productivity-mcp/internal/superprod"
	"github.com/rochadelon/super-productivity-mcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRegistry builds a session's MCP server with all tools registered.
func NewRegistry(client superprod.Client) *server.MCPServer {
	s := server.NewMCPServer(
		"super-productivity",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// Task tools.
	listTasks := tools.NewListTasksTool(client)
	s.AddTool(listTasks.Definition(), listTasks.Handle)
	createTask := tools.NewCreateTaskTool(client)
	s.AddTool(createTask.Definition(), createTask.Handle)
	updateTask := tools.NewUpdateTaskTool(client)
	s.AddTool(updateTask.Definition(), updateTask.Handle)
	completeTask := tools.NewCompleteTaskTool(client)
	s.AddTool(completeTask.Definition(), completeTask.Handle)
	batchUpdate := tools.NewBatchUpdateTasksTool(client)
	s.AddTool(batchUpdate.Definition(), batchUpdate.Handle)

	// Project tools.
	listProjects := tools.NewListProjectsTool(client)
	s.AddTool(listProjects.Definition(), listProjects.Handle)
	createProject := tools.NewCreateProjectTool(client)
	s.AddTool(createProject.Definition(), createProject.Handle)

	// Tag tools.
	listTags := tools.NewListTagsTool(client)
	s.AddTool(listTags.Definition(), listTags.Handle)
	createTag := tools.NewCreateTagTool(client)
	s.AddTool(createTag.Definition(), createTag.Handle)
	updateTag := tools.NewUpdateTagTool(client)
	s.AddTool(updateTag.Definition(), updateTag.Handle)

	// UI tools.
	notify := tools.NewShowNotificationTool(client)
	s.AddTool(notify.Definition(), notify.Handle)
	snack := tools.NewShowSnackTool(client)
	s.AddTool(snack.Definition(), snack.Handle)
	dialog := tools.NewOpenDialogTool(client)
	s.AddTool(dialog.Definition(), dialog.Handle)

	// Smart actions.
	analyze := tools.NewAnalyzeProductivityTool(client)
	s.AddTool(analyze.Definition(), analyze.Handle)
	priorities := tools.NewSuggestPrioritiesTool(client)
	s.AddTool(priorities.Definition(), priorities.Handle)
	dailyPlan := tools.NewCreateDailyPlanTool(client)
	s.AddTool(dailyPlan.Definition(), dailyPlan.Handle)

	return s
}

func serverInstructions() string {
	return "Bridge to a running Super Productivity instance. " +
		"Use list_tasks/list_projects/list_tags to inspect state, " +
		"create_task/update_task/complete_task/batch_update_tasks to change it, " +
		"show_notification/show_snack/open_dialog for UI actions, and " +
		"analyze_productivity/suggest_priorities/create_daily_plan for planning help. " +
		"All calls require the Super Productivity plugin to be connected; " +
		"when it is not, tools fail fast with a clear message."
}
