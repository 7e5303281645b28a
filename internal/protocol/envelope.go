package protocol

import (
	"encoding/json"

	"github.com/cruciblehq/chariotd/internal/crex"
)

// Envelope is the outer JSON object carried over the wire: a command name
// plus an opaque payload whose shape depends on the command.
type Envelope struct {
	Command Command         `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Encode marshals payload and wraps it in an Envelope for cmd.
func Encode(cmd Command, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, crex.Wrap(ErrEncode, err)
	}
	return json.Marshal(Envelope{Command: cmd, Payload: raw})
}

// Decode unmarshals a single envelope line, returning the command and its
// still-raw payload for dispatch.
func Decode(line []byte) (Envelope, json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return Envelope{}, nil, crex.Wrap(ErrDecode, err)
	}
	return env, env.Payload, nil
}

// DecodePayload unmarshals a command's payload into T.
func DecodePayload[T any](payload json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, crex.Wrap(ErrDecode, err)
	}
	return v, nil
}
