package transport

import "errors"

var (
	// ErrNoTransport 没有启用该协议的传输
	ErrNoTransport = errors.New("no transport for protocol")
)
