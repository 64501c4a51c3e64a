package muxer

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/libp2p/go-yamux/v5"
	"go.uber.org/multierr"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// Transport TCP 上的 yamux 传输
type Transport struct {
	config *yamux.Config
	dialer net.Dialer

	mu        sync.Mutex
	listeners map[*Listener]struct{}
	closed    bool
}

var _ interfaces.Transport = (*Transport)(nil)

// NewTransport 创建 yamux 传输
func NewTransport(cfg Config) *Transport {
	return &Transport{
		config:    cfg.yamuxConfig(),
		dialer:    net.Dialer{Timeout: cfg.DialTimeout},
		listeners: make(map[*Listener]struct{}),
	}
}

// Protocol 返回 "yamux"
func (t *Transport) Protocol() string {
	return interfaces.ProtocolYamux
}

// NewConn 在网络连接上创建多路复用连接
func (t *Transport) NewConn(conn net.Conn, isServer bool) (interfaces.MuxedConn, error) {
	var sess *yamux.Session
	var err error

	if isServer {
		sess, err = yamux.Server(conn, t.config, nil)
	} else {
		sess, err = yamux.Client(conn, t.config, nil)
	}

	if err != nil {
		return nil, err
	}

	return newMuxedConn(sess), nil
}

// Listen 在 addr 上监听 TCP
func (t *Transport) Listen(addr string) (interfaces.Listener, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, ErrTransportClosed
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen tcp: %w", err)
	}

	l := newListener(ln, t)
	t.listeners[l] = struct{}{}
	logger.Info("yamux 监听已启动", "addr", ln.Addr())
	return l, nil
}

// Dial 拨号 addr 并作为客户端建立 yamux 会话
func (t *Transport) Dial(ctx context.Context, addr string) (interfaces.MuxedConn, error) {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return nil, ErrTransportClosed
	}

	c, err := t.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	mc, err := t.NewConn(c, false)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("yamux client: %w", err)
	}
	return mc, nil
}

// Config 返回 yamux 配置（供测试使用）
func (t *Transport) Config() *yamux.Config {
	return t.config
}

func (t *Transport) removeListener(l *Listener) {
	t.mu.Lock()
	delete(t.listeners, l)
	t.mu.Unlock()
}

// Close 关闭所有监听器，已建立的连接由会话负责关闭
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	listeners := make([]*Listener, 0, len(t.listeners))
	for l := range t.listeners {
		listeners = append(listeners, l)
	}
	t.mu.Unlock()

	var err error
	for _, l := range listeners {
		err = multierr.Append(err, l.Close())
	}
	return err
}
