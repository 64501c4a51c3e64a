package session

import (
	"errors"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

var (
	// ErrTooManyStreams 流数量达到上限
	ErrTooManyStreams = errors.New("too many streams")

	// ErrStreamClosed 流已关闭（仍在墓碑中）
	ErrStreamClosed = errors.New("stream already closed")

	// ErrSessionClosed 会话已关闭
	ErrSessionClosed = interfaces.ErrSessionClosed

	// ErrUnknownStream 会话中不存在该流
	ErrUnknownStream = interfaces.ErrUnknownStream
)
