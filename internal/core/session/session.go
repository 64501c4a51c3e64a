package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"github.com/dep2p/go-streamio/internal/core/endpoint"
	"github.com/dep2p/go-streamio/internal/core/metrics"
	"github.com/dep2p/go-streamio/internal/core/scheduler"
	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/lib/log"
	"github.com/dep2p/go-streamio/pkg/types"
)

var logger = log.Logger("core/session")

// StreamHandler 处理入站流的端点
//
// 在执行器上运行，不在会话的 goroutine 上。
type StreamHandler func(ep *endpoint.StreamEndpoint)

// Option 会话选项
type Option func(*Session)

// WithConfig 设置会话配置
//
// 非正的缓冲大小与墓碑容量在 New 中以默认值补齐。
func WithConfig(cfg Config) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithExecutor 设置回调执行器
func WithExecutor(e interfaces.Executor) Option {
	return func(s *Session) {
		s.executor = e
	}
}

// WithReporter 设置指标上报
func WithReporter(r interfaces.Reporter) Option {
	return func(s *Session) {
		s.reporter = r
	}
}

// ============================================================================
//                              Session
// ============================================================================

// Session 多路复用连接上的会话
type Session struct {
	conn     interfaces.MuxedConn
	info     types.ConnInfo
	cfg      Config
	factory  *endpoint.Factory
	executor interfaces.Executor
	reporter interfaces.Reporter
	limiter  *rate.Limiter

	mu         sync.Mutex
	streams    map[types.StreamID]*stream
	tombstones *lru.Cache[types.StreamID, time.Time]
	closed     bool

	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

var _ interfaces.Session = (*Session)(nil)

// New 在 conn 上创建会话
//
// factory 为 nil 时使用默认配置的端点工厂。
func New(conn interfaces.MuxedConn, dir types.Direction, factory *endpoint.Factory, opts ...Option) *Session {
	s := &Session{
		conn:    conn,
		cfg:     DefaultConfig(),
		factory: factory,
		streams: make(map[types.StreamID]*stream),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg = s.cfg.withDefaults()
	if s.executor == nil {
		s.executor = scheduler.Inline{}
	}
	s.reporter = metrics.OrNop(s.reporter)
	if s.factory == nil {
		s.factory = endpoint.NewFactory(endpoint.Config{}, nil, s.reporter)
	}
	if s.cfg.AcceptRate > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(s.cfg.AcceptRate), max(s.cfg.AcceptBurst, 1))
	}
	tombstones, err := lru.New[types.StreamID, time.Time](s.cfg.TombstoneSize)
	if err != nil {
		// 容量为正时不会出错
		panic(err)
	}
	s.tombstones = tombstones

	s.info = types.ConnInfo{
		ID:         uuid.NewString(),
		Protocol:   conn.Protocol(),
		Secure:     conn.Secure(),
		Direction:  dir,
		LocalAddr:  conn.LocalAddr(),
		RemoteAddr: conn.RemoteAddr(),
		Opened:     time.Now(),
	}
	logger.Debug("会话已建立", "id", s.info.ID, "protocol", s.info.Protocol, "remote", s.info.RemoteAddr)
	return s
}

// Info 返回连接元信息
func (s *Session) Info() types.ConnInfo {
	return s.info
}

// ID 返回会话 ID
func (s *Session) ID() string {
	return s.info.ID
}

// Done 会话关闭且所有读写 goroutine 退出后关闭
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// NumStreams 返回当前流数量
func (s *Session) NumStreams() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.streams)
}

// ============================================================================
//                              流管理
// ============================================================================

// Serve 接受入站流并交给 handler，直到 ctx 取消或连接关闭
func (s *Session) Serve(ctx context.Context, handler StreamHandler) error {
	for {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		raw, err := s.conn.AcceptStream(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if s.isClosed() {
				return ErrSessionClosed
			}
			logger.Warn("接受流失败，关闭会话", "id", s.info.ID, "err", err)
			_ = s.Close()
			return fmt.Errorf("accept stream: %w", err)
		}

		st, err := s.track(raw, types.DirInbound)
		if err != nil {
			logger.Warn("拒绝入站流", "id", s.info.ID, "stream", raw.ID(), "err", err)
			_ = raw.Reset()
			if errors.Is(err, ErrSessionClosed) {
				return err
			}
			continue
		}

		ep := st.endpoint()
		s.executor.Execute(func() {
			handler(ep)
		})
	}
}

// OpenStream 打开出站流并返回其端点
func (s *Session) OpenStream(ctx context.Context) (*endpoint.StreamEndpoint, error) {
	if s.isClosed() {
		return nil, ErrSessionClosed
	}
	raw, err := s.conn.OpenStream(ctx)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	st, err := s.track(raw, types.DirOutbound)
	if err != nil {
		_ = raw.Reset()
		return nil, err
	}
	return st.endpoint(), nil
}

// Endpoint 返回流的端点，首次访问时创建
func (s *Session) Endpoint(id types.StreamID) (*endpoint.StreamEndpoint, error) {
	st, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return st.endpoint(), nil
}

// track 登记新流并启动读写 goroutine
func (s *Session) track(raw interfaces.MuxedStream, dir types.Direction) (*stream, error) {
	st := newStream(s, raw, dir)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.cfg.MaxStreams > 0 && len(s.streams) >= s.cfg.MaxStreams {
		s.mu.Unlock()
		return nil, ErrTooManyStreams
	}
	s.streams[st.id] = st
	s.tombstones.Remove(st.id)
	s.wg.Add(2)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		st.readLoop()
	}()
	go func() {
		defer s.wg.Done()
		st.writeLoop()
	}()
	return st, nil
}

func (s *Session) lookup(id types.StreamID) (*stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.streams[id]; ok {
		return st, nil
	}
	if s.tombstones.Contains(id) {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnknownStream, id, ErrStreamClosed)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStream, id)
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// signalReadable 在执行器上运行端点的可读任务
func (s *Session) signalReadable(st *stream) {
	if st.isReleased() {
		return
	}
	s.executor.Execute(st.endpoint().OnReadable())
}

// signalWritable 在执行器上通知端点可写
func (s *Session) signalWritable(st *stream) {
	ep := st.existingEndpoint()
	if ep == nil || st.isReleased() {
		return
	}
	s.executor.Execute(ep.OnWritable)
}

// ============================================================================
//                              interfaces.Session
// ============================================================================

// Fill 实现 interfaces.Session
func (s *Session) Fill(id types.StreamID, buf []byte) (int, error) {
	st, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	return st.fill(buf)
}

// Flush 实现 interfaces.Session
func (s *Session) Flush(id types.StreamID, buf []byte) (int, error) {
	st, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	return st.flush(buf)
}

// ShutdownInput 实现 interfaces.Session
func (s *Session) ShutdownInput(id types.StreamID) error {
	st, err := s.lookup(id)
	if err != nil {
		return err
	}
	return st.shutdownInput()
}

// ShutdownOutput 实现 interfaces.Session
func (s *Session) ShutdownOutput(id types.StreamID) error {
	st, err := s.lookup(id)
	if err != nil {
		return err
	}
	return st.shutdownOutput()
}

// SendFinished 实现 interfaces.Session
func (s *Session) SendFinished(id types.StreamID) error {
	st, err := s.lookup(id)
	if err != nil {
		return err
	}
	return st.sendFinished()
}

// IsFinished 实现 interfaces.Session
func (s *Session) IsFinished(id types.StreamID) bool {
	st, err := s.lookup(id)
	if err != nil {
		return false
	}
	return st.isFinished()
}

// OnClose 实现 interfaces.Session
//
// 释放流记录并留下墓碑；已入队的输出与 FIN 由写 goroutine 继续发送。
func (s *Session) OnClose(id types.StreamID) {
	s.mu.Lock()
	st, ok := s.streams[id]
	if ok {
		delete(s.streams, id)
		s.tombstones.Add(id, time.Now())
	}
	s.mu.Unlock()

	if ok {
		st.release()
	}
}

// LocalAddr 实现 interfaces.Session
func (s *Session) LocalAddr() net.Addr {
	return s.info.LocalAddr
}

// RemoteAddr 实现 interfaces.Session
func (s *Session) RemoteAddr() net.Addr {
	return s.info.RemoteAddr
}

// ============================================================================
//                              关闭
// ============================================================================

// Close 关闭会话
//
// 所有端点以 ErrSessionClosed 关闭，底层流被重置，连接被关闭。
// 各步骤的错误合并后返回。
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		streams := make([]*stream, 0, len(s.streams))
		for _, st := range s.streams {
			streams = append(streams, st)
		}
		s.mu.Unlock()

		var err error
		for _, st := range streams {
			err = multierr.Append(err, st.abort(ErrSessionClosed))
			if ep := st.existingEndpoint(); ep != nil {
				ep.Close(ErrSessionClosed)
			} else {
				s.OnClose(st.id)
			}
		}
		err = multierr.Append(err, s.conn.Close())
		s.closeErr = err

		// 回调可能在读 goroutine 上调用 Close，这里不能同步等待
		go func() {
			s.wg.Wait()
			close(s.done)
		}()

		logger.Debug("会话已关闭", "id", s.info.ID, "streams", len(streams), "err", err)
	})
	return s.closeErr
}
