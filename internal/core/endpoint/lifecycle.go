package endpoint

import (
	"time"

	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

// ============================================================================
//                              半关闭
// ============================================================================

// ShutdownInput 关闭输入方向（幂等）
//
// 通知会话停止交付输入；失败只记录。输出也已关闭时端点随之关闭。
func (e *StreamEndpoint) ShutdownInput() {
	prev, ok := e.setBits(bitInputShutdown)
	if !ok {
		return
	}
	e.teardown(opShutdownInput, func() error {
		return e.session.ShutdownInput(e.id)
	})
	// 等待中的读者重试 Fill 得到 0 并观察到输入关闭
	e.fill.MarkReady()

	if prev&bitOutputShutdown != 0 {
		e.Close(nil)
	}
}

// ShutdownOutput 关闭输出方向（幂等）
//
// 会话负责在已排队数据之后发送 FIN；失败只记录，由 Close 补发。
// 输入也已关闭时端点随之关闭。
func (e *StreamEndpoint) ShutdownOutput() {
	prev, ok := e.setBits(bitOutputShutdown)
	if !ok {
		return
	}
	e.teardown(opShutdownOutput, func() error {
		if err := e.session.ShutdownOutput(e.id); err != nil {
			return err
		}
		e.finSent = true
		return nil
	})
	e.write.Fail(&TransportError{Op: "write", StreamID: e.id, Err: interfaces.ErrOutputShutdown})

	if prev&bitInputShutdown != 0 {
		e.Close(nil)
	}
}

// setBits 原子地置位；已置位或已关闭时返回 false
func (e *StreamEndpoint) setBits(bits uint32) (uint32, bool) {
	for {
		s := e.state.Load()
		if s&bitClosed != 0 || s&bits == bits {
			return s, false
		}
		if e.state.CompareAndSwap(s, s|bits) {
			return s, true
		}
	}
}

// teardown 在 teardownMu 下执行半关闭的会话调用
//
// Close 已释放流时跳过，保证 Close 返回后不再调用会话。
func (e *StreamEndpoint) teardown(op string, fn func() error) {
	e.teardownMu.Lock()
	defer e.teardownMu.Unlock()
	if e.state.Load()&bitClosed != 0 {
		return
	}
	e.attempt(op, fn)
}

// ============================================================================
//                              关闭
// ============================================================================

// Close 关闭端点（幂等）
//
// FIN 尚未成功入队时尽力发送，然后释放会话的流记录，并以 cause
// 通知所有仍在等待的回调。cause 为 nil 表示正常关闭。
func (e *StreamEndpoint) Close(cause error) {
	for {
		prev := e.state.Load()
		if prev&bitClosed != 0 {
			return
		}
		if e.state.CompareAndSwap(prev, bitInputShutdown|bitOutputShutdown|bitClosed) {
			break
		}
	}

	// 等待进行中的半关闭调用结束
	e.teardownMu.Lock()
	if !e.finSent {
		e.attempt(opSendFinished, func() error {
			return e.session.SendFinished(e.id)
		})
		e.finSent = true
	}
	e.session.OnClose(e.id)
	e.teardownMu.Unlock()

	e.cancelIdleCheck()

	notify := cause
	if notify == nil {
		notify = ErrClosed
	}
	e.fill.Close(notify)
	e.write.Close(notify)

	e.reporter.StreamClosed(e.info.Protocol)
	logger.Debug("端点已关闭", "stream", e.id, "cause", cause)

	e.listenersMu.Lock()
	e.closeCause = cause
	e.notified = true
	listeners := e.listeners
	e.listeners = nil
	e.listenersMu.Unlock()

	for _, l := range listeners {
		l(cause)
	}
}

// OnClose 注册关闭监听器
//
// 端点已关闭时 fn 立即在当前 goroutine 上执行。
func (e *StreamEndpoint) OnClose(fn func(cause error)) {
	e.listenersMu.Lock()
	if !e.notified {
		e.listeners = append(e.listeners, fn)
		e.listenersMu.Unlock()
		return
	}
	cause := e.closeCause
	e.listenersMu.Unlock()
	fn(cause)
}

// attempt 执行尽力而为的关闭步骤，失败只记录不传播
func (e *StreamEndpoint) attempt(op string, fn func() error) {
	if err := fn(); err != nil {
		serr := &ShutdownError{Op: op, StreamID: e.id, Err: err}
		logger.Debug("关闭步骤失败", "stream", e.id, "err", serr)
		e.reporter.TeardownFailed(op)
	}
}

// ============================================================================
//                              状态查询
// ============================================================================

// IsOpen 端点未关闭
func (e *StreamEndpoint) IsOpen() bool {
	return e.state.Load()&bitClosed == 0
}

// IsInputShutdown 输入方向已关闭
func (e *StreamEndpoint) IsInputShutdown() bool {
	return e.state.Load()&(bitInputShutdown|bitClosed) != 0
}

// IsOutputShutdown 输出方向已关闭
func (e *StreamEndpoint) IsOutputShutdown() bool {
	return e.state.Load()&(bitOutputShutdown|bitClosed) != 0
}

// State 返回当前状态
func (e *StreamEndpoint) State() types.EndpointState {
	s := e.state.Load()
	switch {
	case s&bitClosed != 0:
		return types.StateClosed
	case s&bitInputShutdown != 0 && s&bitOutputShutdown != 0:
		// 两个半关闭都已完成，Close 正在进行
		return types.StateClosed
	case s&bitInputShutdown != 0:
		return types.StateInputShutdown
	case s&bitOutputShutdown != 0:
		return types.StateOutputShutdown
	default:
		return types.StateOpen
	}
}

// ============================================================================
//                              空闲超时
// ============================================================================

// notIdle 记录一次活动
func (e *StreamEndpoint) notIdle() {
	e.lastActive.Store(e.now().UnixNano())
}

// IdleFor 返回距上次活动的时长
func (e *StreamEndpoint) IdleFor() time.Duration {
	return e.now().Sub(time.Unix(0, e.lastActive.Load()))
}

func (e *StreamEndpoint) scheduleIdleCheck(d time.Duration) {
	e.timerMu.Lock()
	defer e.timerMu.Unlock()

	if !e.IsOpen() {
		return
	}
	e.timer = e.scheduler.Schedule(d, e.checkIdle)
}

func (e *StreamEndpoint) cancelIdleCheck() {
	e.timerMu.Lock()
	defer e.timerMu.Unlock()

	if e.timer != nil {
		e.timer.Cancel()
		e.timer = nil
	}
}

// checkIdle 定时器回调：未到期则按剩余时间重新调度
func (e *StreamEndpoint) checkIdle() {
	if !e.IsOpen() {
		return
	}
	if remaining := e.idleTimeout - e.IdleFor(); remaining > 0 {
		e.scheduleIdleCheck(remaining)
		return
	}
	e.onIdleExpired()
}

// onIdleExpired 空闲到期
//
// 有等待中的读/写时以 ErrIdleTimeout 通知它们，由消费者决定后续处理；
// 没有时直接关闭端点。
func (e *StreamEndpoint) onIdleExpired() {
	e.reporter.IdleExpired()
	logger.Debug("端点空闲超时", "stream", e.id, "timeout", e.idleTimeout)

	failedFill := e.fill.Fail(ErrIdleTimeout)
	failedWrite := e.write.Fail(ErrIdleTimeout)
	if !failedFill && !failedWrite {
		e.Close(ErrIdleTimeout)
		return
	}

	e.notIdle()
	e.scheduleIdleCheck(e.idleTimeout)
}
