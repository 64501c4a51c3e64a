package quic

import (
	"context"
	"net"
	"sync/atomic"

	"github.com/quic-go/quic-go"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// Listener QUIC 监听器
type Listener struct {
	ln        *quic.Listener
	addr      net.Addr
	transport *Transport
	closed    atomic.Bool
}

var _ interfaces.Listener = (*Listener)(nil)

// Accept 接受入站连接
func (l *Listener) Accept(ctx context.Context) (interfaces.MuxedConn, error) {
	qc, err := l.ln.Accept(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if l.closed.Load() {
			return nil, ErrListenerClosed
		}
		return nil, parseError(err)
	}
	logger.Debug("接受 QUIC 连接", "remote", qc.RemoteAddr(), "alpn", qc.ConnectionState().TLS.NegotiatedProtocol)
	return &conn{qc: qc}, nil
}

// Addr 返回实际监听地址
func (l *Listener) Addr() net.Addr {
	return l.addr
}

// Close 停止监听，已建立的连接不受影响
func (l *Listener) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	l.transport.removeListener(l)
	return l.ln.Close()
}
