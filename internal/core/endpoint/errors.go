package endpoint

import (
	"errors"
	"fmt"

	"github.com/dep2p/go-streamio/internal/core/readiness"
	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

var (
	// ErrClosed 端点已关闭
	ErrClosed = readiness.ErrClosed

	// ErrIdleTimeout 端点空闲超时
	ErrIdleTimeout = errors.New("endpoint idle timeout")

	// ErrInterestPending 已有待决的兴趣注册
	ErrInterestPending = readiness.ErrInterestPending

	// ErrWritePending 已有进行中的异步写
	ErrWritePending = readiness.ErrWritePending
)

// TransportError 数据路径上的传输错误（流重置、会话故障）
//
// 对该流是致命的，由 Fill/Flush 同步返回给调用方。
type TransportError struct {
	Op       string
	StreamID types.StreamID
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s stream %s: %v", e.Op, e.StreamID, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ShutdownError 半关闭或 FIN 发送失败
//
// 只记录日志，从不向调用方传播。
type ShutdownError struct {
	Op       string
	StreamID types.StreamID
	Err      error
}

func (e *ShutdownError) Error() string {
	return fmt.Sprintf("%s stream %s: %v", e.Op, e.StreamID, e.Err)
}

func (e *ShutdownError) Unwrap() error {
	return e.Err
}

// ClosedOperationError 在已关闭的端点上执行操作
type ClosedOperationError struct {
	Op       string
	StreamID types.StreamID
}

func (e *ClosedOperationError) Error() string {
	return fmt.Sprintf("%s stream %s: %v", e.Op, e.StreamID, ErrClosed)
}

func (e *ClosedOperationError) Unwrap() error {
	return ErrClosed
}

// IsReset 判断错误是否由流重置引起
func IsReset(err error) bool {
	return errors.Is(err, interfaces.ErrStreamReset)
}
