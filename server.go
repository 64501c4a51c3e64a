package streamio

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-streamio/internal/core/endpoint"
	"github.com/dep2p/go-streamio/internal/core/metrics"
	"github.com/dep2p/go-streamio/internal/core/session"
	"github.com/dep2p/go-streamio/internal/core/transport"
	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/lib/log"
	"github.com/dep2p/go-streamio/pkg/types"
)

var logger = log.Logger("streamio")

// 传输协议名
const (
	ProtocolQUIC  = interfaces.ProtocolQUIC
	ProtocolYamux = interfaces.ProtocolYamux
)

// ════════════════════════════════════════════════════════════════════════════
//                              服务状态
// ════════════════════════════════════════════════════════════════════════════

// ServerState 服务状态
type ServerState int

const (
	// StateIdle 空闲状态（已创建，未启动）
	StateIdle ServerState = iota

	// StateStarting 启动中（Fx App 启动、开始监听）
	StateStarting

	// StateRunning 运行中
	StateRunning

	// StateStopping 停止中
	StateStopping

	// StateStopped 已停止，不可重新启动
	StateStopped
)

// String 返回状态的字符串表示
func (s ServerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

const (
	// initializeTimeout 初始化超时（Fx App Start）
	initializeTimeout = 30 * time.Second

	// stopTimeout 停止超时（Fx App Stop）
	stopTimeout = 10 * time.Second
)

// ════════════════════════════════════════════════════════════════════════════
//                              Server
// ════════════════════════════════════════════════════════════════════════════

// boundListener 监听器及其协议
type boundListener struct {
	interfaces.Listener
	protocol string
}

// Server 流服务
//
// Server 是门面，聚合传输层、会话管理和端点工厂：
// 在配置的地址上监听，把每条入站连接包装为会话，
// 再把会话上的每个入站流以端点形式交给处理函数。
// 同一个 Server 也可以拨号，得到出站会话。
type Server struct {
	opts *options
	app  *fx.App

	// 由 Fx 注入
	sessions   *session.Manager
	transports *transport.TransportManager
	reporter   interfaces.Reporter

	mu        sync.Mutex
	state     ServerState
	listeners []boundListener

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New 创建服务
//
// 只构建组件，不监听。调用 Start 开始服务。
func New(_ context.Context, opts ...Option) (*Server, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	srv := &Server{opts: o}
	srv.ctx, srv.cancel = context.WithCancel(context.Background())

	app, err := buildFxApp(o, srv)
	if err != nil {
		srv.cancel()
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	if err := app.Err(); err != nil {
		srv.cancel()
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	srv.app = app
	return srv, nil
}

// Start 快捷启动函数
//
// 等价于 New() + Start()。
func Start(ctx context.Context, opts ...Option) (*Server, error) {
	srv, err := New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if err := srv.Start(ctx); err != nil {
		return nil, fmt.Errorf("start server: %w", err)
	}
	return srv, nil
}

// State 返回当前状态
func (s *Server) State() ServerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Config 返回服务使用的配置
func (s *Server) Config() Config {
	return *s.opts.config
}

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期管理
// ════════════════════════════════════════════════════════════════════════════

// Start 启动服务
//
//  1. Initialize: 启动 Fx App
//  2. Listen: 在配置的 QUIC / TCP 地址上监听
//  3. Running: 开始接受连接
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateIdle:
	case StateStopping, StateStopped:
		return ErrServerClosed
	default:
		return ErrAlreadyStarted
	}

	// ════════════════════════════════════════════════════════════════════════
	// Phase 1: Initialize - 启动 Fx App
	// ════════════════════════════════════════════════════════════════════════
	s.state = StateStarting
	logger.Info("正在启动服务")

	initCtx, initCancel := context.WithTimeout(ctx, initializeTimeout)
	defer initCancel()

	if err := s.app.Start(initCtx); err != nil {
		s.state = StateStopped
		s.cancel()
		logger.Error("服务初始化失败", "error", err)
		return fmt.Errorf("initialize failed: %w", err)
	}

	// ════════════════════════════════════════════════════════════════════════
	// Phase 2: Listen - 启动监听地址
	// ════════════════════════════════════════════════════════════════════════
	if err := s.listen(); err != nil {
		s.state = StateStopping
		logger.Error("监听地址失败", "error", err)
		_ = s.shutdown()
		s.state = StateStopped
		return fmt.Errorf("listen failed: %w", err)
	}

	// ════════════════════════════════════════════════════════════════════════
	// Phase 3: Running
	// ════════════════════════════════════════════════════════════════════════
	s.state = StateRunning
	for _, l := range s.listeners {
		s.wg.Add(1)
		go s.acceptLoop(l)
	}
	logger.Info("服务启动成功", "addrs", s.listenAddrsLocked())
	return nil
}

// listen 在配置的地址上监听，调用方持有 mu
func (s *Server) listen() error {
	tcfg := s.opts.config.Transport
	targets := []struct {
		enabled  bool
		protocol string
		addr     string
	}{
		{tcfg.EnableQUIC, ProtocolQUIC, tcfg.QUIC.ListenAddr},
		{tcfg.EnableTCP, ProtocolYamux, tcfg.TCP.ListenAddr},
	}

	for _, target := range targets {
		if !target.enabled || target.addr == "" {
			continue
		}
		t, err := s.transports.Transport(target.protocol)
		if err != nil {
			return err
		}
		l, err := t.Listen(target.addr)
		if err != nil {
			return fmt.Errorf("listen %s %s: %w", target.protocol, target.addr, err)
		}
		s.listeners = append(s.listeners, boundListener{Listener: l, protocol: target.protocol})
		logger.Debug("监听成功", "protocol", target.protocol, "addr", l.Addr())
	}
	return nil
}

// acceptLoop 接受入站连接并为每条连接启动会话
func (s *Server) acceptLoop(l interfaces.Listener) {
	defer s.wg.Done()
	for {
		conn, err := l.Accept(s.ctx)
		if err != nil {
			if s.ctx.Err() == nil {
				logger.Warn("监听器停止接受连接", "addr", l.Addr(), "error", err)
			}
			return
		}

		sess, err := s.sessions.Wrap(conn, types.DirInbound)
		if err != nil {
			logger.Debug("拒绝入站连接", "remote", conn.RemoteAddr(), "error", err)
			continue
		}
		s.serve(sess)
	}
}

// serve 在后台把会话的入站流交给处理函数
func (s *Server) serve(sess *session.Session) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := sess.Serve(s.ctx, s.handle)
		if err != nil && !errors.Is(err, ErrSessionClosed) && !errors.Is(err, context.Canceled) {
			logger.Debug("会话结束", "id", sess.ID(), "error", err)
		}
	}()
}

// handle 分发入站流；未设置处理函数时直接关闭端点
func (s *Server) handle(ep *endpoint.StreamEndpoint) {
	if s.opts.handler == nil {
		ep.Close(nil)
		return
	}
	s.opts.handler(ep)
}

// Stop 停止服务
//
// 停止顺序：
//  1. 关闭监听器，停止接受连接
//  2. 关闭所有会话，端点以 ErrSessionClosed 结束
//  3. 停止 Fx App（执行器、传输层）
//
// Stop 之后服务不可重新启动。
func (s *Server) Stop(_ context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateRunning:
	case StateIdle:
		s.state = StateStopped
		s.mu.Unlock()
		s.cancel()
		return nil
	default:
		s.mu.Unlock()
		return nil
	}
	s.state = StateStopping
	s.mu.Unlock()

	// 处理函数可能在停止期间调用 Dial，不持锁等待
	logger.Info("正在停止服务")
	err := s.shutdown()

	s.mu.Lock()
	s.state = StateStopped
	s.mu.Unlock()

	if err != nil {
		logger.Warn("停止服务时出现错误", "error", err)
	} else {
		logger.Info("服务已停止")
	}
	return err
}

// shutdown 释放所有资源
//
// 状态为 StateStopping 后 listeners 不再变化。
func (s *Server) shutdown() error {
	s.cancel()

	var err error
	for _, l := range s.listeners {
		if cerr := l.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = multierr.Append(err, cerr)
		}
	}
	err = multierr.Append(err, s.sessions.Close())
	s.wg.Wait()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	return multierr.Append(err, s.app.Stop(stopCtx))
}

// Close 关闭服务，等价于 Stop
func (s *Server) Close() error {
	return s.Stop(context.Background())
}

// ════════════════════════════════════════════════════════════════════════════
//                              连接
// ════════════════════════════════════════════════════════════════════════════

// Dial 用 protocol 连接 addr 并返回出站会话
//
// 对端在该会话上打开的流同样交给处理函数；未设置处理函数时直接关闭。
// 会话的接受循环始终运行，连接断开时会话随之关闭并从 Sessions 中移除。
func (s *Server) Dial(ctx context.Context, protocol, addr string) (*session.Session, error) {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	switch state {
	case StateRunning:
	case StateStopping, StateStopped:
		return nil, ErrServerClosed
	default:
		return nil, ErrNotStarted
	}

	conn, err := s.transports.Dial(ctx, protocol, addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s %s: %w", protocol, addr, err)
	}
	sess, err := s.sessions.Wrap(conn, types.DirOutbound)
	if err != nil {
		return nil, err
	}
	s.serve(sess)
	logger.Debug("出站会话已建立", "id", sess.ID(), "protocol", protocol, "remote", sess.RemoteAddr())
	return sess, nil
}

// ListenAddrs 返回实际监听地址
func (s *Server) ListenAddrs() []net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenAddrsLocked()
}

func (s *Server) listenAddrsLocked() []net.Addr {
	addrs := make([]net.Addr, 0, len(s.listeners))
	for _, l := range s.listeners {
		addrs = append(addrs, l.Addr())
	}
	return addrs
}

// ListenAddr 返回 protocol 的监听地址，未监听时返回 nil
func (s *Server) ListenAddr(protocol string) net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listeners {
		if l.protocol == protocol {
			return l.Addr()
		}
	}
	return nil
}

// Sessions 返回当前会话快照
func (s *Server) Sessions() []*session.Session {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.Sessions()
}

// Bandwidth 返回端点数据路径的带宽统计
//
// 指标被禁用时返回 false。
func (s *Server) Bandwidth() (metrics.Stats, bool) {
	c, ok := s.reporter.(*metrics.Collector)
	if !ok {
		return metrics.Stats{}, false
	}
	return c.Bandwidth().Totals(), true
}
