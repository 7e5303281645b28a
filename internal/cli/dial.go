package cli

import (
	"bufio"
	"encoding/json"
	"net"
	"time"

	"github.com/cruciblehq/chariotd/internal/crex"
	"github.com/cruciblehq/chariotd/internal/protocol"
)

// dialTimeout bounds how long the client waits to connect to the daemon's
// socket before giving up.
const dialTimeout = 5 * time.Second

// request sends a single command to the daemon listening on socketPath and
// returns its response envelope and raw payload. One request per
// connection, matching the daemon's handling.
func request(socketPath string, cmd protocol.Command, payload any) (protocol.Envelope, json.RawMessage, error) {
	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return protocol.Envelope{}, nil, crex.Wrap(ErrClient, err)
	}
	defer conn.Close()

	data, err := protocol.Encode(cmd, payload)
	if err != nil {
		return protocol.Envelope{}, nil, err
	}
	data = append(data, '\n')

	if _, err := conn.Write(data); err != nil {
		return protocol.Envelope{}, nil, crex.Wrap(ErrClient, err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return protocol.Envelope{}, nil, crex.Wrap(ErrClient, err)
	}

	env, raw, err := protocol.Decode(line)
	return env, raw, err
}
