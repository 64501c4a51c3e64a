package streamio

import (
	"errors"

	"github.com/dep2p/go-streamio/internal/core/endpoint"
	"github.com/dep2p/go-streamio/internal/core/session"
	"github.com/dep2p/go-streamio/internal/core/transport"
	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 服务生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotStarted 服务未启动
	ErrNotStarted = errors.New("server not started")

	// ErrAlreadyStarted 服务已启动
	ErrAlreadyStarted = errors.New("server already started")

	// ErrServerClosed 服务已关闭
	ErrServerClosed = errors.New("server closed")

	// ────────────────────────────────────────────────────────────────────────
	// 端点错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrClosed 端点已关闭
	ErrClosed = endpoint.ErrClosed

	// ErrIdleTimeout 端点空闲超时
	ErrIdleTimeout = endpoint.ErrIdleTimeout

	// ErrInterestPending 已有待决的读兴趣
	ErrInterestPending = endpoint.ErrInterestPending

	// ErrWritePending 已有进行中的异步写
	ErrWritePending = endpoint.ErrWritePending

	// ────────────────────────────────────────────────────────────────────────
	// 会话与传输错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrStreamReset 流被对端或本端重置
	ErrStreamReset = interfaces.ErrStreamReset

	// ErrSessionClosed 会话已关闭
	ErrSessionClosed = interfaces.ErrSessionClosed

	// ErrOutputShutdown 输出已半关闭
	ErrOutputShutdown = interfaces.ErrOutputShutdown

	// ErrTooManyStreams 会话流数量达到上限
	ErrTooManyStreams = session.ErrTooManyStreams

	// ErrNoTransport 协议未启用
	ErrNoTransport = transport.ErrNoTransport
)
