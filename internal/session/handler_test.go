package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const initializeRequest = `{
	"jsonrpc": "2.0",
	"id": 1,
	"method": "initialize",
	"params": {
		"protocolVersion": "2025-03-26",
		"capabilities": {},
		"clientInfo": {"name": "test-client", "version": "0.0.0"}
	}
}`

func testHandler(token string) (*Handler, *Manager) {
	m := NewManager(func() *server.MCPServer {
		s := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(true))
		s.AddTool(
			mcp.NewTool("ping", mcp.WithDescription("replies pong")),
			func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return mcp.NewToolResultText("pong"), nil
			},
		)
		return s
	}, discardLogger())
	return NewHandler(m, token, discardLogger()), m
}

func post(h *Handler, sessionID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	if sessionID != "" {
		req.Header.Set(HeaderSessionID, sessionID)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type rpcResponse struct {
	ID     any             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeRPC(t *testing.T, w *httptest.ResponseRecorder) rpcResponse {
	t.Helper()
	var resp rpcResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHandler_PostWithoutIDOpensSession(t *testing.T) {
	h, m := testHandler("")

	w := post(h, "", initializeRequest)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	id := w.Header().Get(HeaderSessionID)
	if id == "" {
		t.Fatal("response missing session id header")
	}
	if m.Get(id) == nil {
		t.Errorf("session %s not registered in the manager", id)
	}

	resp := decodeRPC(t, w)
	if resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp.Error)
	}
	if len(resp.Result) == 0 {
		t.Error("initialize returned no result")
	}
}

func TestHandler_PostContinuesExistingSession(t *testing.T) {
	h, m := testHandler("")

	first := post(h, "", initializeRequest)
	id := first.Header().Get(HeaderSessionID)

	listBody := `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`
	second := post(h, id, listBody)
	if second.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", second.Code, second.Body.String())
	}
	if got := second.Header().Get(HeaderSessionID); got != id {
		t.Errorf("session id changed across requests: %s -> %s", id, got)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1 (continuation must not open a session)", m.Len())
	}

	resp := decodeRPC(t, second)
	if resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp.Error)
	}
	var result struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("decoding tools/list result: %v", err)
	}
	if len(result.Tools) != 1 || result.Tools[0].Name != "ping" {
		t.Errorf("tools = %v, want [ping]", result.Tools)
	}
}

func TestHandler_ToolCallRoundTrip(t *testing.T) {
	h, _ := testHandler("")

	first := post(h, "", initializeRequest)
	id := first.Header().Get(HeaderSessionID)

	callBody := `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"ping","arguments":{}}}`
	w := post(h, id, callBody)
	resp := decodeRPC(t, w)
	if resp.Error != nil {
		t.Fatalf("tools/call failed: %+v", resp.Error)
	}
	if !strings.Contains(string(resp.Result), "pong") {
		t.Errorf("result = %s, want it to carry the tool output", resp.Result)
	}
}

func TestHandler_PostUnknownSessionID(t *testing.T) {
	h, m := testHandler("")

	w := post(h, "no-such-session", initializeRequest)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeRPC(t, w)
	if resp.Error == nil || resp.Error.Code != -32600 {
		t.Errorf("error = %+v, want code -32600", resp.Error)
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0 (unknown id must not open a session)", m.Len())
	}
}

func TestHandler_NotificationReturnsAccepted(t *testing.T) {
	h, _ := testHandler("")

	first := post(h, "", initializeRequest)
	id := first.Header().Get(HeaderSessionID)

	w := post(h, id, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	if w.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202 for a notification", w.Code)
	}
}

func TestHandler_DeleteTerminatesSession(t *testing.T) {
	h, _ := testHandler("")

	first := post(h, "", initializeRequest)
	id := first.Header().Get(HeaderSessionID)

	req := httptest.NewRequest(http.MethodDelete, "/mcp", nil)
	req.Header.Set(HeaderSessionID, id)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", w.Code)
	}

	// The id is gone for good.
	after := post(h, id, initializeRequest)
	if after.Code != http.StatusBadRequest {
		t.Errorf("POST after DELETE status = %d, want 400", after.Code)
	}
}

func TestHandler_DeleteUnknownSession(t *testing.T) {
	h, _ := testHandler("")

	req := httptest.NewRequest(http.MethodDelete, "/mcp", nil)
	req.Header.Set(HeaderSessionID, "no-such-session")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHandler_GetIsNotSupported(t *testing.T) {
	h, _ := testHandler("")

	first := post(h, "", initializeRequest)
	id := first.Header().Get(HeaderSessionID)

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	req.Header.Set(HeaderSessionID, id)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", w.Code)
	}
}

func TestHandler_BearerToken(t *testing.T) {
	h, _ := testHandler("sekrit")

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(initializeRequest))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(initializeRequest))
	req.Header.Set("Authorization", "Bearer sekrit")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200: %s", w.Code, w.Body.String())
	}
}
