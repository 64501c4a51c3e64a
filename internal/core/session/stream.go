package session

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-streamio/internal/core/endpoint"
	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

// ioChunk 单次读写底层流的上限
const ioChunk = 32 * 1024

// stream 会话内单个流的缓冲与状态
//
// recv/send 由 mu 保护；读、写 goroutine 分别通过 recvCond/sendCond 等待。
type stream struct {
	sess *Session
	id   types.StreamID
	raw  interfaces.MuxedStream
	dir  types.Direction

	epMu sync.Mutex
	ep   atomic.Pointer[endpoint.StreamEndpoint]

	mu       sync.Mutex
	recvCond *sync.Cond
	sendCond *sync.Cond

	recv      []byte
	eof       bool
	readErr   error
	inputShut bool

	send       []byte
	finQueued  bool
	finSent    bool
	outputShut bool
	writeErr   error
	blocked    bool

	released bool
}

func newStream(sess *Session, raw interfaces.MuxedStream, dir types.Direction) *stream {
	st := &stream{
		sess: sess,
		id:   raw.ID(),
		raw:  raw,
		dir:  dir,
	}
	st.recvCond = sync.NewCond(&st.mu)
	st.sendCond = sync.NewCond(&st.mu)
	return st
}

// endpoint 惰性创建端点
func (st *stream) endpoint() *endpoint.StreamEndpoint {
	if ep := st.ep.Load(); ep != nil {
		return ep
	}
	st.epMu.Lock()
	defer st.epMu.Unlock()
	if ep := st.ep.Load(); ep != nil {
		return ep
	}
	ep := st.sess.factory.New(st.id, st.sess, st.sess.info)
	st.ep.Store(ep)
	return ep
}

// existingEndpoint 返回已创建的端点，未创建时返回 nil
func (st *stream) existingEndpoint() *endpoint.StreamEndpoint {
	return st.ep.Load()
}

func (st *stream) isReleased() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.released
}

// ============================================================================
//                              读 goroutine
// ============================================================================

func (st *stream) readLoop() {
	buf := make([]byte, min(ioChunk, st.sess.cfg.ReceiveBufferSize))
	for {
		st.mu.Lock()
		for len(st.recv) >= st.sess.cfg.ReceiveBufferSize && !st.inputShut && !st.released && st.readErr == nil {
			st.recvCond.Wait()
		}
		if st.inputShut || st.released || st.readErr != nil {
			st.mu.Unlock()
			return
		}
		room := st.sess.cfg.ReceiveBufferSize - len(st.recv)
		st.mu.Unlock()

		n, err := st.raw.Read(buf[:min(room, len(buf))])

		st.mu.Lock()
		// abort 已设置 readErr 时由会话负责通知端点
		if st.inputShut || st.released || st.readErr != nil {
			st.mu.Unlock()
			return
		}
		if n > 0 {
			st.recv = append(st.recv, buf[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				st.eof = true
			} else {
				st.readErr = classify(err)
			}
		}
		st.mu.Unlock()

		if n > 0 || err != nil {
			st.sess.signalReadable(st)
		}
		if err != nil {
			return
		}
	}
}

// fill 把接收缓冲复制到 buf
func (st *stream) fill(buf []byte) (int, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.readErr != nil {
		return 0, st.readErr
	}
	if len(st.recv) == 0 {
		return 0, nil
	}
	n := copy(buf, st.recv)
	st.recv = append(st.recv[:0], st.recv[n:]...)
	st.recvCond.Signal()
	return n, nil
}

func (st *stream) isFinished() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.eof && len(st.recv) == 0
}

// shutdownInput 丢弃缓冲并停止读取
func (st *stream) shutdownInput() error {
	st.mu.Lock()
	if st.inputShut {
		st.mu.Unlock()
		return nil
	}
	st.inputShut = true
	st.recv = nil
	done := st.eof || st.readErr != nil
	st.mu.Unlock()
	st.recvCond.Broadcast()

	if done {
		return nil
	}
	return st.raw.CloseRead()
}

// ============================================================================
//                              写 goroutine
// ============================================================================

func (st *stream) writeLoop() {
	chunk := make([]byte, min(ioChunk, st.sess.cfg.SendBufferSize))
	for {
		st.mu.Lock()
		for len(st.send) == 0 && !st.finQueued && !st.released && st.writeErr == nil {
			st.sendCond.Wait()
		}
		if st.writeErr != nil || (len(st.send) == 0 && !st.finQueued) {
			st.mu.Unlock()
			return
		}
		if len(st.send) == 0 {
			st.mu.Unlock()
			err := st.raw.CloseWrite()

			st.mu.Lock()
			st.finSent = true
			if err != nil && st.writeErr == nil {
				st.writeErr = classify(err)
			}
			st.mu.Unlock()
			return
		}
		n := copy(chunk, st.send)
		st.mu.Unlock()

		w, err := st.raw.Write(chunk[:n])

		st.mu.Lock()
		if st.writeErr != nil {
			st.mu.Unlock()
			return
		}
		st.send = append(st.send[:0], st.send[w:]...)
		notify := st.blocked
		st.blocked = false
		if err != nil {
			st.writeErr = classify(err)
			notify = true
		}
		st.mu.Unlock()

		if notify {
			st.sess.signalWritable(st)
		}
	}
}

// flush 把 buf 能放下的前缀加入发送队列
func (st *stream) flush(buf []byte) (int, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.writeErr != nil {
		return 0, st.writeErr
	}
	if st.outputShut || st.finQueued {
		return 0, interfaces.ErrOutputShutdown
	}
	room := st.sess.cfg.SendBufferSize - len(st.send)
	n := min(max(room, 0), len(buf))
	st.send = append(st.send, buf[:n]...)
	if n < len(buf) {
		st.blocked = true
	}
	if n > 0 {
		st.sendCond.Signal()
	}
	return n, nil
}

// sendFinished 在已入队数据之后排队 FIN
func (st *stream) sendFinished() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.writeErr != nil {
		return st.writeErr
	}
	st.finQueued = true
	st.sendCond.Signal()
	return nil
}

func (st *stream) shutdownOutput() error {
	if err := st.sendFinished(); err != nil {
		return err
	}
	st.mu.Lock()
	st.outputShut = true
	st.mu.Unlock()
	return nil
}

// ============================================================================
//                              释放
// ============================================================================

// release 释放流；未读完的输入被取消，已入队的输出和 FIN 继续发送
func (st *stream) release() {
	st.mu.Lock()
	if st.released {
		st.mu.Unlock()
		return
	}
	st.released = true
	cancelRead := !st.inputShut && !st.eof && st.readErr == nil
	st.recv = nil
	st.mu.Unlock()
	st.recvCond.Broadcast()
	st.sendCond.Broadcast()

	if cancelRead {
		if err := st.raw.CloseRead(); err != nil {
			logger.Debug("取消读取失败", "stream", st.id, "err", err)
		}
	}
}

// abort 会话关闭时终止流
func (st *stream) abort(cause error) error {
	st.mu.Lock()
	if st.readErr == nil && !st.eof {
		st.readErr = cause
	}
	if st.writeErr == nil {
		st.writeErr = cause
	}
	st.mu.Unlock()
	st.recvCond.Broadcast()
	st.sendCond.Broadcast()

	return st.raw.Reset()
}

// classify 把底层错误归类为流重置或会话故障
func classify(err error) error {
	if errors.Is(err, interfaces.ErrStreamReset) || errors.Is(err, interfaces.ErrSessionClosed) {
		return err
	}
	return fmt.Errorf("%w: %v", interfaces.ErrStreamReset, err)
}
