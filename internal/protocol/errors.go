package protocol

import "errors"

var (
	// ErrEncode wraps a failure marshaling an envelope or payload.
	ErrEncode = errors.New("protocol: encode failed")
	// ErrDecode wraps a failure unmarshaling an envelope or payload.
	ErrDecode = errors.New("protocol: decode failed")
)
