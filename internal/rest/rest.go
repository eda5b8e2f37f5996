// Package rest is the companion HTTP surface: the same task, project,
// and tag CRUD the MCP tools expose, as plain REST routes. It talks to
// the same capability façade, so it works against whichever transport
// is behind it. Responses use the {success, data|error} envelope.
//
// These routes carry no bearer-token check: the configured token guards
// the MCP endpoint and the plugin socket only, and the bridge is meant
// to bind to localhost. Clients may still send a token; it is ignored
// here.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rochadelon/super-productivity-mcp/internal/bridge"
	"github.com/rochadelon/super-productivity-mcp/internal/superprod"
)

// Handler serves the /api routes and /health.
type Handler struct {
	client superprod.Client
	events *bridge.EventLog
	log    *slog.Logger
}

// NewHandler creates the REST surface. events may be nil, in which case
// /api/events reports an empty list.
func NewHandler(client superprod.Client, events *bridge.EventLog, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{client: client, events: events, log: log}
}

// Register mounts all routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /api/tasks", h.listTasks)
	mux.HandleFunc("GET /api/tasks/current", h.listCurrentTasks)
	mux.HandleFunc("POST /api/tasks", h.createTask)
	mux.HandleFunc("PATCH /api/tasks/{taskId}", h.updateTask)
	mux.HandleFunc("DELETE /api/tasks/{taskId}", h.deleteTask)
	mux.HandleFunc("POST /api/tasks/batch", h.batchUpdate)
	mux.HandleFunc("GET /api/projects", h.listProjects)
	mux.HandleFunc("POST /api/projects", h.createProject)
	mux.HandleFunc("GET /api/tags", h.listTags)
	mux.HandleFunc("GET /api/events", h.recentEvents)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "service": "sp-mcp"})
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.client.GetTasks(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": tasks})
}

func (h *Handler) listCurrentTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.client.GetCurrentContextTasks(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": tasks})
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var task superprod.NewTask
	if !decodeBody(w, r, &task) {
		return
	}
	if task.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "title is required"})
		return
	}
	taskID, err := h.client.CreateTask(r.Context(), task)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "taskId": taskID})
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	var updates map[string]any
	if !decodeBody(w, r, &updates) {
		return
	}
	if err := h.client.UpdateTask(r.Context(), r.PathValue("taskId"), updates); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteTask(r.Context(), r.PathValue("taskId")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) batchUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProjectID  string                     `json:"projectId"`
		Operations []superprod.BatchOperation `json:"operations"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	result, err := h.client.BatchUpdate(r.Context(), body.ProjectID, body.Operations)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": result})
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.client.GetProjects(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": projects})
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var project superprod.NewProject
	if !decodeBody(w, r, &project) {
		return
	}
	if project.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "title is required"})
		return
	}
	projectID, err := h.client.CreateProject(r.Context(), project)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "projectId": projectID})
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.client.GetTags(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": tags})
}

func (h *Handler) recentEvents(w http.ResponseWriter, r *http.Request) {
	var events []bridge.Event
	if h.events != nil {
		events = h.events.Recent(0)
	}
	if events == nil {
		events = []bridge.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": events})
}

// writeError maps façade failures onto the envelope. A disconnected
// plugin is the caller's problem to retry, not an internal fault, so it
// gets 503 instead of 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, bridge.ErrNotConnected) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
