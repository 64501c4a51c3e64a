package readiness

import (
	"sync/atomic"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// interest 槽位中的值
//
// 等待者携带 cb；关闭标记携带 cause。
type interest struct {
	cb     interfaces.Callback
	closed bool
	cause  error
}

// pendingSignal 表示信号已到达但尚无等待者
var pendingSignal = &interest{}

// Coordinator 单槽位就绪协调器
//
// 零值可直接使用。所有方法并发安全。
type Coordinator struct {
	slot atomic.Pointer[interest]
}

// MarkReady 投递一次就绪信号
//
// 有等待者时清空槽位并调用其回调，返回 true；
// 否则记录待决信号（多次信号合并为一次），返回 false。
func (c *Coordinator) MarkReady() bool {
	for {
		p := c.slot.Load()
		switch {
		case p == nil:
			if c.slot.CompareAndSwap(nil, pendingSignal) {
				return false
			}
		case p == pendingSignal || p.closed:
			return false
		default:
			if c.slot.CompareAndSwap(p, nil) {
				p.cb(nil)
				return true
			}
		}
	}
}

// Register 注册就绪回调
//
// 若已有待决信号，消费该信号并在当前 goroutine 上立即调用 cb。
// 已有等待者时返回 ErrInterestPending；已关闭时返回 ErrClosed。
func (c *Coordinator) Register(cb interfaces.Callback) error {
	if cb == nil {
		return ErrNilCallback
	}
	var w *interest
	for {
		p := c.slot.Load()
		switch {
		case p == nil:
			if w == nil {
				w = &interest{cb: cb}
			}
			if c.slot.CompareAndSwap(nil, w) {
				return nil
			}
		case p == pendingSignal:
			if c.slot.CompareAndSwap(pendingSignal, nil) {
				cb(nil)
				return nil
			}
		case p.closed:
			return ErrClosed
		default:
			return ErrInterestPending
		}
	}
}

// TryRegister 仅在槽位空闲或有待决信号时注册
func (c *Coordinator) TryRegister(cb interfaces.Callback) bool {
	return c.Register(cb) == nil
}

// Fail 以 err 通知当前等待者（如空闲超时）
//
// 没有等待者时不做任何事，返回 false。
func (c *Coordinator) Fail(err error) bool {
	for {
		p := c.slot.Load()
		if p == nil || p == pendingSignal || p.closed {
			return false
		}
		if c.slot.CompareAndSwap(p, nil) {
			p.cb(err)
			return true
		}
	}
}

// Close 进入终态
//
// 仍在等待的回调会收到 cause（cause 为 nil 时收到 ErrClosed）。
// 首次关闭返回 true，重复关闭返回 false。
func (c *Coordinator) Close(cause error) bool {
	if cause == nil {
		cause = ErrClosed
	}
	marker := &interest{closed: true, cause: cause}
	for {
		p := c.slot.Load()
		if p != nil && p.closed {
			return false
		}
		if c.slot.CompareAndSwap(p, marker) {
			if p != nil && p != pendingSignal {
				p.cb(cause)
			}
			return true
		}
	}
}

// IsInterested 是否有等待者
func (c *Coordinator) IsInterested() bool {
	p := c.slot.Load()
	return p != nil && p != pendingSignal && !p.closed
}

// IsPending 是否有未消费的信号
func (c *Coordinator) IsPending() bool {
	return c.slot.Load() == pendingSignal
}

// IsClosed 是否已关闭
func (c *Coordinator) IsClosed() bool {
	p := c.slot.Load()
	return p != nil && p.closed
}
