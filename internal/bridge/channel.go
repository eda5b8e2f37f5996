package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is how long Invoke waits for the plugin to acknowledge
// a command before giving up.
const DefaultTimeout = 10 * time.Second

type reply struct {
	result json.RawMessage
	err    error
}

// Channel multiplexes named command/acknowledgment exchanges over the
// registry's single plugin connection. Any number of requests may be in
// flight concurrently; each is correlated by a generated request id.
type Channel struct {
	registry *Registry
	timeout  time.Duration

	mu      sync.Mutex
	pending map[string]chan reply
}

func NewChannel(registry *Registry) *Channel {
	return &Channel{
		registry: registry,
		timeout:  DefaultTimeout,
		pending:  make(map[string]chan reply),
	}
}

// Invoke sends a command to the plugin and waits for its acknowledgment.
// payload may be nil for commands that carry no data.
//
// If no plugin is connected, Invoke fails immediately with
// ErrNotConnected — it never queues. Otherwise exactly one of the reply,
// the timeout, or ctx cancellation resolves the call; a reply arriving
// after resolution is dropped. The timeout covers the whole exchange,
// transmit included: a peer that holds the connection open but stops
// reading cannot hang the caller.
func (ch *Channel) Invoke(ctx context.Context, command string, payload any) (json.RawMessage, error) {
	if command == "" {
		return nil, errors.New("empty command name")
	}

	conn := ch.registry.Current()
	if conn == nil {
		return nil, ErrNotConnected
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding payload for %q: %w", command, err)
		}
		raw = data
	}

	id := uuid.NewString()
	rc := make(chan reply, 1)
	ch.mu.Lock()
	ch.pending[id] = rc
	ch.mu.Unlock()
	defer ch.drop(id)

	timer := time.NewTimer(ch.timeout)
	defer timer.Stop()

	wctx, cancel := context.WithTimeout(ctx, ch.timeout)
	err := conn.writeFrame(wctx, frame{ID: id, Command: command, Payload: raw})
	cancel()
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case wctx.Err() == context.DeadlineExceeded:
			return nil, fmt.Errorf("%w to %q after %s", ErrTimeout, command, ch.timeout)
		}
		return nil, fmt.Errorf("sending %q to plugin: %w", command, err)
	}

	select {
	case r := <-rc:
		return r.result, r.err
	case <-timer.C:
		return nil, fmt.Errorf("%w to %q after %s", ErrTimeout, command, ch.timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// resolve delivers an acknowledgment to the pending request with the
// given id. The pending entry is removed before delivery, so whichever
// of resolve and the timeout runs first wins and the loser is a no-op.
// Unknown ids (late replies after timeout) are dropped silently.
func (ch *Channel) resolve(id string, result json.RawMessage, errMsg string) {
	ch.mu.Lock()
	rc, ok := ch.pending[id]
	if ok {
		delete(ch.pending, id)
	}
	ch.mu.Unlock()
	if !ok {
		return
	}
	if errMsg != "" {
		rc <- reply{err: &RemoteError{Message: errMsg}}
		return
	}
	rc <- reply{result: result}
}

func (ch *Channel) drop(id string) {
	ch.mu.Lock()
	delete(ch.pending, id)
	ch.mu.Unlock()
}
