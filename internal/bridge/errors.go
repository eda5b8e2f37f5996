package bridge

import (
	"errors"
)

// ErrNotConnected is returned when a command is issued while no
// application plugin connection is registered. The failure is
// synchronous — no request is queued and no timer is started.
var ErrNotConnected = errors.New("super productivity plugin is not connected")

// ErrTimeout is returned when the plugin does not acknowledge a command
// within the channel's timeout. Wrap sites attach the command name.
var ErrTimeout = errors.New("timed out waiting for plugin reply")

// RemoteError carries a failure the plugin itself reported in its
// acknowledgment. The message is surfaced verbatim.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }
