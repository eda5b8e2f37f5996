package bridge

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// EventSink receives plugin-originated events (task updated, project
// list changed, ...). These are fire-and-forget from the plugin's side.
type EventSink interface {
	AppEvent(name string, payload json.RawMessage)
}

// Socket is the HTTP endpoint the plugin dials to establish the bridge
// connection. It upgrades to a websocket, registers the connection, and
// runs the read loop that routes acknowledgments and events.
type Socket struct {
	registry *Registry
	channel  *Channel
	sink     EventSink
	token    string
	log      *slog.Logger
}

// NewSocket creates the plugin endpoint. token is an optional bearer
// token; empty means no authentication. sink may be nil to discard
// plugin events.
func NewSocket(registry *Registry, channel *Channel, sink EventSink, token string, log *slog.Logger) *Socket {
	if log == nil {
		log = slog.Default()
	}
	return &Socket{registry: registry, channel: channel, sink: sink, token: token, log: log}
}

func (s *Socket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !authorized(r, s.token) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The plugin runs inside the Electron app and presents its
		// renderer origin, which is never same-origin with us.
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Error("plugin: websocket accept failed", "error", err)
		return
	}

	conn := newConn(ws)
	s.registry.Set(conn)
	s.log.Info("plugin connected", "conn", conn.ID())

	defer func() {
		// Guarded: if a newer connection already replaced this one,
		// the registry keeps it. Pending requests against this
		// connection resolve via their timeouts.
		s.registry.Clear(conn)
		s.log.Info("plugin disconnected", "conn", conn.ID())
		_ = ws.Close(websocket.StatusNormalClosure, "bye")
	}()

	for {
		var f frame
		if err := wsjson.Read(r.Context(), ws, &f); err != nil {
			s.log.Debug("plugin: read loop ended", "conn", conn.ID(), "error", err)
			return
		}
		switch {
		case f.ID != "":
			s.channel.resolve(f.ID, f.Result, f.Error)
		case f.Event != "":
			if s.sink != nil {
				s.sink.AppEvent(f.Event, f.Payload)
			}
		default:
			s.log.Warn("plugin: frame with neither id nor event", "conn", conn.ID())
		}
	}
}

// authorized checks the Authorization header against the configured
// bearer token. An empty configured token disables the check.
func authorized(r *http.Request, token string) bool {
	if token == "" {
		return true
	}
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return false
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, prefix)) == token
}
