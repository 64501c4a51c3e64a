package endpoint

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dep2p/go-streamio/internal/core/readiness"
	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/lib/log"
	"github.com/dep2p/go-streamio/pkg/types"
)

var logger = log.Logger("core/endpoint")

// 状态位
const (
	bitInputShutdown uint32 = 1 << iota
	bitOutputShutdown
	bitClosed
)

// 关闭步骤名（日志与指标标签）
const (
	opShutdownInput  = "shutdown_input"
	opShutdownOutput = "shutdown_output"
	opSendFinished   = "send_finished"
)

// ============================================================================
//                              StreamEndpoint
// ============================================================================

// StreamEndpoint 多路复用会话上的单流端点
//
// 端点持有会话引用但不拥有会话；一个流对应一个端点，端点不复用。
type StreamEndpoint struct {
	id      types.StreamID
	session interfaces.Session
	info    types.ConnInfo
	local   net.Addr
	remote  net.Addr
	created time.Time

	state atomic.Uint32

	// teardownMu 串行化对会话的关闭调用；finSent 仅在 FIN 入队成功后置位
	teardownMu sync.Mutex
	finSent    bool

	fill    readiness.Coordinator
	write   readiness.Coordinator
	flusher *readiness.WriteFlusher

	reporter interfaces.Reporter

	idleTimeout time.Duration
	scheduler   interfaces.Scheduler
	lastActive  atomic.Int64
	timerMu     sync.Mutex
	timer       interfaces.Cancelable

	listenersMu sync.Mutex
	listeners   []func(cause error)
	notified    bool
	closeCause  error
}

var _ interfaces.EndPoint = (*StreamEndpoint)(nil)

// New 为会话中的流 id 创建端点
func New(id types.StreamID, session interfaces.Session, opts ...Option) *StreamEndpoint {
	o := buildOptions(opts)

	e := &StreamEndpoint{
		id:          id,
		session:     session,
		info:        o.info,
		local:       session.LocalAddr(),
		remote:      session.RemoteAddr(),
		reporter:    o.reporter,
		idleTimeout: o.idleTimeout,
		scheduler:   o.scheduler,
	}
	e.flusher = readiness.NewWriteFlusher(e.Flush, &e.write)
	e.created = e.now()
	e.notIdle()

	e.reporter.StreamOpened(e.info.Protocol)
	if e.idleTimeout > 0 {
		e.scheduleIdleCheck(e.idleTimeout)
	}
	return e
}

// ID 返回流 ID
func (e *StreamEndpoint) ID() types.StreamID {
	return e.id
}

// ============================================================================
//                              数据路径
// ============================================================================

// Fill 非阻塞读取已缓冲的数据
//
// 无数据时返回 0。读完后若会话报告对端已 FIN，端点自动进入输入关闭状态；
// 输入关闭后 Fill 总是返回 (0, nil)。
func (e *StreamEndpoint) Fill(buf []byte) (int, error) {
	s := e.state.Load()
	if s&bitClosed != 0 {
		return 0, &ClosedOperationError{Op: "fill", StreamID: e.id}
	}
	if s&bitInputShutdown != 0 {
		return 0, nil
	}

	n, err := e.session.Fill(e.id, buf)
	if err != nil {
		return n, &TransportError{Op: "fill", StreamID: e.id, Err: err}
	}
	if n > 0 {
		e.notIdle()
		e.reporter.BytesFilled(n)
	}
	if e.session.IsFinished(e.id) {
		e.ShutdownInput()
	}
	return n, nil
}

// Flush 按顺序非阻塞写出 bufs
//
// 已写出的字节从 bufs 中移除：完整写出的缓冲被丢弃，部分写出的缓冲
// 只保留未写出的后缀，其后的缓冲不受影响。全部写出时返回 true。
func (e *StreamEndpoint) Flush(bufs *net.Buffers) (bool, error) {
	s := e.state.Load()
	if s&bitClosed != 0 {
		return false, &ClosedOperationError{Op: "flush", StreamID: e.id}
	}
	if s&bitOutputShutdown != 0 {
		return false, &TransportError{Op: "flush", StreamID: e.id, Err: interfaces.ErrOutputShutdown}
	}
	if bufs == nil {
		return true, nil
	}

	for len(*bufs) > 0 {
		b := (*bufs)[0]
		if len(b) == 0 {
			*bufs = (*bufs)[1:]
			continue
		}

		n, err := e.session.Flush(e.id, b)
		if n > 0 {
			e.notIdle()
			e.reporter.BytesFlushed(n)
		}
		if n < len(b) {
			(*bufs)[0] = b[n:]
			if err != nil {
				return false, &TransportError{Op: "flush", StreamID: e.id, Err: err}
			}
			e.reporter.IncompleteFlush()
			return false, nil
		}
		*bufs = (*bufs)[1:]
		if err != nil {
			return false, &TransportError{Op: "flush", StreamID: e.id, Err: err}
		}
	}
	return true, nil
}

// Write 异步写出 bufs，全部写出或失败时调用一次 cb
//
// 写不完时等待 OnWritable 再重试；同一时刻最多一个进行中的 Write。
func (e *StreamEndpoint) Write(cb interfaces.Callback, bufs *net.Buffers) {
	e.flusher.Write(cb, bufs)
}

// ============================================================================
//                              兴趣注册
// ============================================================================

// RegisterFillInterest 注册可读回调
//
// 已有未消费的可读信号或输入已关闭时，cb 在当前 goroutine 上立即执行。
func (e *StreamEndpoint) RegisterFillInterest(cb interfaces.Callback) error {
	if e.IsInputShutdown() && !e.fill.IsClosed() {
		if cb == nil {
			return readiness.ErrNilCallback
		}
		cb(nil)
		return nil
	}
	if err := e.fill.Register(cb); err != nil {
		return e.registerError("fill_interest", err)
	}
	return nil
}

// TryFillInterest 仅在没有待决注册时注册可读回调
func (e *StreamEndpoint) TryFillInterest(cb interfaces.Callback) bool {
	return e.RegisterFillInterest(cb) == nil
}

// RegisterWriteInterest 注册可写回调
//
// 与 Write 共用同一个可写协调器，Write 进行中时返回 ErrInterestPending。
func (e *StreamEndpoint) RegisterWriteInterest(cb interfaces.Callback) error {
	if err := e.write.Register(cb); err != nil {
		return e.registerError("write_interest", err)
	}
	return nil
}

func (e *StreamEndpoint) registerError(op string, err error) error {
	if err == readiness.ErrClosed {
		return &ClosedOperationError{Op: op, StreamID: e.id}
	}
	return err
}

// IsFillInterested 是否有等待中的可读回调
func (e *StreamEndpoint) IsFillInterested() bool {
	return e.fill.IsInterested()
}

// IsWriting 是否有进行中的异步写
func (e *StreamEndpoint) IsWriting() bool {
	return e.flusher.IsWriting()
}

// ============================================================================
//                              会话侧入口
// ============================================================================

// OnReadable 会话收到该流新数据时调用
//
// 返回的任务由调用方交给执行器运行，不在会话 goroutine 上内联执行。
// 任务运行时若已有等待者则立即回调，否则记录待决信号供下一次注册消费。
func (e *StreamEndpoint) OnReadable() func() {
	return func() {
		e.reporter.ReadinessSignal(interfaces.DirectionRead)
		e.fill.MarkReady()
	}
}

// OnWritable 会话发送缓冲腾出空间时调用
//
// 多个信号合并，每次迁移恰好完成一次待决的写重试。
func (e *StreamEndpoint) OnWritable() {
	e.reporter.ReadinessSignal(interfaces.DirectionWrite)
	e.write.MarkReady()
}

// ============================================================================
//                              元信息
// ============================================================================

// LocalAddr 返回本地地址
func (e *StreamEndpoint) LocalAddr() net.Addr {
	return e.local
}

// RemoteAddr 返回远端地址
func (e *StreamEndpoint) RemoteAddr() net.Addr {
	return e.remote
}

// Transport 返回底层会话，仅用于诊断
func (e *StreamEndpoint) Transport() any {
	return e.session
}

// Info 返回所属连接的元信息
func (e *StreamEndpoint) Info() types.ConnInfo {
	return e.info
}

// CreatedAt 返回端点创建时间
func (e *StreamEndpoint) CreatedAt() time.Time {
	return e.created
}

// IdleTimeout 返回空闲超时，0 表示未启用
func (e *StreamEndpoint) IdleTimeout() time.Duration {
	return e.idleTimeout
}

func (e *StreamEndpoint) now() time.Time {
	if e.scheduler != nil {
		return e.scheduler.Now()
	}
	return time.Now()
}
