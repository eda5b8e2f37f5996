// Package bridge connects the MCP side of the server to the Super
// Productivity plugin over a single websocket.
//
// The plugin dials in and stays connected; commands flow out as frames
// carrying a correlation id, and the plugin acknowledges each one with a
// frame carrying the same id. Frames without an id are plugin-originated
// events (task updated, project list changed) and are handed to an
// EventSink. At most one plugin connection is live at a time — a new
// connection replaces the old one unconditionally.
package bridge

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
)

// frame is the wire envelope shared by both directions.
//
// Server → plugin: {id, command, payload}.
// Plugin → server acknowledgment: {id, result} or {id, error}.
// Plugin → server event: {event, payload} with no id.
type frame struct {
	ID      string          `json:"id,omitempty"`
	Command string          `json:"command,omitempty"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// frameWriter abstracts the outbound half of a plugin connection so the
// channel can be exercised without a real websocket.
type frameWriter interface {
	writeFrame(ctx context.Context, f frame) error
}

// wsFrameWriter writes frames to a live websocket as JSON.
type wsFrameWriter struct {
	ws *websocket.Conn
}

func (w wsFrameWriter) writeFrame(ctx context.Context, f frame) error {
	return wsjson.Write(ctx, w.ws, f)
}

// Conn is the handle for one live plugin connection. Writes are
// serialized through a mutex since concurrent in-flight requests share
// the single socket.
type Conn struct {
	id string

	mu sync.Mutex
	w  frameWriter
}

func newConn(ws *websocket.Conn) *Conn {
	return &Conn{id: uuid.NewString(), w: wsFrameWriter{ws}}
}

// ID returns the connection's identity token, assigned at accept time.
func (c *Conn) ID() string { return c.id }

func (c *Conn) writeFrame(ctx context.Context, f frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.writeFrame(ctx, f)
}
