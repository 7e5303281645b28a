package server

import "errors"

// ErrServer wraps a failure starting or operating the daemon's socket.
var ErrServer = errors.New("server: daemon failed")
