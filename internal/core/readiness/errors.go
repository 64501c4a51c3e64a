package readiness

import "errors"

var (
	// ErrClosed 端点已关闭
	ErrClosed = errors.New("endpoint closed")

	// ErrInterestPending 已有待决的兴趣注册
	ErrInterestPending = errors.New("interest already registered")

	// ErrWritePending 已有进行中的异步写
	ErrWritePending = errors.New("write already pending")

	// ErrNilCallback 回调为空
	ErrNilCallback = errors.New("nil callback")
)
