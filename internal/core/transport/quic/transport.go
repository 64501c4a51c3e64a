package quic

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/quic-go/quic-go"
	"go.uber.org/multierr"

	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/lib/log"
)

var logger = log.Logger("core/transport/quic")

// Transport QUIC 传输
//
// 监听时创建共享的 UDP socket，之后的拨号复用同一端口；
// 未监听时每次拨号使用独立的临时 socket，连接结束后释放。
type Transport struct {
	cfg       Config
	serverTLS *tls.Config
	clientTLS *tls.Config
	quicCfg   *quic.Config

	mu       sync.Mutex
	shared   *quic.Transport
	udpConn  *net.UDPConn
	listener *Listener
	closed   bool
}

var _ interfaces.Transport = (*Transport)(nil)

// New 创建 QUIC 传输
func New(cfg Config) (*Transport, error) {
	serverTLS := cfg.ServerTLS
	if serverTLS == nil {
		var err error
		serverTLS, err = GenerateServerTLS(cfg.ALPN, "localhost", "127.0.0.1", "::1")
		if err != nil {
			return nil, err
		}
	} else if len(serverTLS.NextProtos) == 0 {
		serverTLS = serverTLS.Clone()
		serverTLS.NextProtos = append([]string(nil), cfg.ALPN...)
	}

	return &Transport{
		cfg:       cfg,
		serverTLS: serverTLS,
		clientTLS: clientTLS(cfg.ALPN, cfg.InsecureSkipVerify),
		quicCfg:   cfg.quicConfig(),
	}, nil
}

// Protocol 返回 "quic"
func (t *Transport) Protocol() string {
	return interfaces.ProtocolQUIC
}

// Listen 在 addr 上监听
//
// 每个 Transport 只能有一个监听器。
func (t *Transport) Listen(addr string) (interfaces.Listener, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAddress, addr, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, ErrTransportClosed
	}
	if t.listener != nil {
		return nil, ErrAlreadyListening
	}

	if t.shared == nil {
		udpConn, err := net.ListenUDP("udp", udpAddr)
		if err != nil {
			return nil, fmt.Errorf("listen udp: %w", err)
		}
		t.udpConn = udpConn
		t.shared = &quic.Transport{Conn: udpConn}
	}

	ln, err := t.shared.Listen(t.serverTLS, t.quicCfg)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	t.listener = &Listener{
		ln:        ln,
		addr:      t.udpConn.LocalAddr(),
		transport: t,
	}
	logger.Info("QUIC 监听已启动", "addr", t.listener.addr)
	return t.listener, nil
}

// Dial 拨号 addr
func (t *Transport) Dial(ctx context.Context, addr string) (interfaces.MuxedConn, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAddress, addr, err)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, ErrTransportClosed
	}
	shared := t.shared
	t.mu.Unlock()

	if shared != nil {
		qc, err := shared.Dial(ctx, raddr, t.clientTLS, t.quicCfg)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", addr, err)
		}
		return &conn{qc: qc}, nil
	}
	return t.dialEphemeral(ctx, raddr)
}

// dialEphemeral 在临时 socket 上拨号，连接结束时关闭 socket
func (t *Transport) dialEphemeral(ctx context.Context, raddr *net.UDPAddr) (interfaces.MuxedConn, error) {
	udpConn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return nil, fmt.Errorf("listen udp for dial: %w", err)
	}
	tr := &quic.Transport{Conn: udpConn}

	qc, err := tr.Dial(ctx, raddr, t.clientTLS, t.quicCfg)
	if err != nil {
		_ = tr.Close()
		_ = udpConn.Close()
		return nil, fmt.Errorf("dial %s: %w", raddr, err)
	}

	go func() {
		<-qc.Context().Done()
		_ = tr.Close()
		_ = udpConn.Close()
	}()
	return &conn{qc: qc}, nil
}

// ListenAddr 返回监听地址，未监听时返回 nil
func (t *Transport) ListenAddr() net.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listener == nil {
		return nil
	}
	return t.listener.addr
}

func (t *Transport) removeListener(l *Listener) {
	t.mu.Lock()
	if t.listener == l {
		t.listener = nil
	}
	t.mu.Unlock()
}

// Close 关闭监听器和共享 socket 上的所有连接
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	l := t.listener
	shared, udpConn := t.shared, t.udpConn
	t.shared, t.udpConn = nil, nil
	t.mu.Unlock()

	var err error
	if l != nil {
		err = multierr.Append(err, l.Close())
	}
	if shared != nil {
		err = multierr.Append(err, shared.Close())
	}
	if udpConn != nil {
		if cerr := udpConn.Close(); !errors.Is(cerr, net.ErrClosed) {
			err = multierr.Append(err, cerr)
		}
	}
	return err
}
