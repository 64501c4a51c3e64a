package readiness

import (
	"net"
	"sync/atomic"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// FlushFunc 非阻塞写出函数，语义同 EndPoint.Flush
type FlushFunc func(bufs *net.Buffers) (bool, error)

// WriteFlusher 异步写
//
// Write 先尝试一次非阻塞写出；写不完时在可写 Coordinator 上注册，
// 由会话的 OnWritable 信号驱动重试，直到全部写出或失败。
// 同一时刻最多一个进行中的写。
type WriteFlusher struct {
	flush FlushFunc
	ready *Coordinator

	writing atomic.Bool

	// 以下字段由 writing 保护
	bufs *net.Buffers
	cb   interfaces.Callback
}

// NewWriteFlusher 创建 WriteFlusher
//
// ready 是端点的可写协调器，OnWritable 在其上 MarkReady。
func NewWriteFlusher(flush FlushFunc, ready *Coordinator) *WriteFlusher {
	return &WriteFlusher{flush: flush, ready: ready}
}

// Write 异步写出 bufs，完成或失败时调用一次 cb
func (w *WriteFlusher) Write(cb interfaces.Callback, bufs *net.Buffers) {
	if cb == nil {
		cb = func(error) {}
	}
	if !w.writing.CompareAndSwap(false, true) {
		cb(ErrWritePending)
		return
	}
	w.bufs = bufs
	w.cb = cb
	w.attempt(nil)
}

// attempt 写出一轮；同时作为可写回调
func (w *WriteFlusher) attempt(err error) {
	if err == nil {
		var done bool
		done, err = w.flush(w.bufs)
		if err == nil && !done {
			// 注册成功后由后续回调接手，这里不能再触碰任何字段
			if err = w.ready.Register(w.attempt); err == nil {
				return
			}
		}
	}

	cb := w.cb
	w.bufs = nil
	w.cb = nil
	w.writing.Store(false)
	cb(err)
}

// IsWriting 是否有进行中的写
func (w *WriteFlusher) IsWriting() bool {
	return w.writing.Load()
}
