package cli

import "errors"

// ErrClient wraps a failure talking to the daemon over its Unix socket.
var ErrClient = errors.New("cli: daemon request failed")
