package session

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// HeaderSessionID carries the protocol session identifier, per the MCP
// streamable HTTP transport.
const HeaderSessionID = "Mcp-Session-Id"

// maxBodyBytes caps inbound request bodies.
const maxBodyBytes = 4 << 20

// Handler is the single MCP endpoint. POST carries protocol requests
// (opening a session when no id is presented), GET and DELETE are
// session-scoped transport operations.
type Handler struct {
	manager *Manager
	token   string
	log     *slog.Logger
}

// NewHandler mounts the manager behind HTTP. token is an optional
// bearer token; empty disables authentication.
func NewHandler(manager *Manager, token string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{manager: manager, token: token, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet, http.MethodDelete:
		h.handleSessionRequest(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeRPCError(w, http.StatusBadRequest, -32700, "could not read request body")
		return
	}

	var sess *Session
	if id := r.Header.Get(HeaderSessionID); id != "" {
		// Continuation: the id must belong to a live session.
		sess = h.manager.Get(id)
		if sess == nil {
			writeRPCError(w, http.StatusBadRequest, -32600, "Bad Request: unknown session ID")
			return
		}
	} else {
		sess = h.manager.Open()
	}
	w.Header().Set(HeaderSessionID, sess.ID)

	resp := sess.Server.HandleMessage(r.Context(), body)
	if resp == nil {
		// Notification: nothing to send back.
		w.WriteHeader(http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("mcp: writing response", "session", sess.ID, "error", err)
	}
}

func (h *Handler) handleSessionRequest(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(HeaderSessionID)
	if id == "" || h.manager.Get(id) == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodDelete:
		h.manager.Terminate(id)
		w.WriteHeader(http.StatusNoContent)
	default:
		// No server-push stream: replies only travel on POST responses.
		w.Header().Set("Allow", "POST, DELETE")
		http.Error(w, "streaming is not supported", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.token == "" {
		return true
	}
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return false
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, prefix)) == h.token
}

func writeRPCError(w http.ResponseWriter, status, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"id":      nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
