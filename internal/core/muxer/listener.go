package muxer

import (
	"context"
	"errors"
	"net"
	"sync/atomic"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// Listener 接受 TCP 连接并作为服务端建立 yamux 会话
type Listener struct {
	ln        net.Listener
	transport *Transport

	incoming   chan interfaces.MuxedConn
	closing    chan struct{}
	acceptDone chan struct{}
	acceptErr  error
	closed     atomic.Bool
}

var _ interfaces.Listener = (*Listener)(nil)

func newListener(ln net.Listener, t *Transport) *Listener {
	l := &Listener{
		ln:         ln,
		transport:  t,
		incoming:   make(chan interfaces.MuxedConn),
		closing:    make(chan struct{}),
		acceptDone: make(chan struct{}),
	}
	go l.acceptLoop()
	return l
}

func (l *Listener) acceptLoop() {
	defer close(l.acceptDone)
	for {
		c, err := l.ln.Accept()
		if err != nil {
			if l.closed.Load() || errors.Is(err, net.ErrClosed) {
				l.acceptErr = ErrListenerClosed
			} else {
				l.acceptErr = err
			}
			return
		}

		mc, err := l.transport.NewConn(c, true)
		if err != nil {
			logger.Warn("建立 yamux 会话失败", "remote", c.RemoteAddr(), "error", err)
			_ = c.Close()
			continue
		}

		select {
		case l.incoming <- mc:
		case <-l.closing:
			_ = mc.Close()
			l.acceptErr = ErrListenerClosed
			return
		}
	}
}

// Accept 接受入站连接
func (l *Listener) Accept(ctx context.Context) (interfaces.MuxedConn, error) {
	select {
	case c := <-l.incoming:
		return c, nil
	case <-l.acceptDone:
		return nil, l.acceptErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Addr 返回实际监听地址
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Close 停止监听
func (l *Listener) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(l.closing)
	l.transport.removeListener(l)
	return l.ln.Close()
}
