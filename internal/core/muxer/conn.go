package muxer

import (
	"context"
	"net"

	"github.com/libp2p/go-yamux/v5"

	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/lib/log"
)

var logger = log.Logger("core/muxer")

// muxedConn 包装 yamux.Session，实现 MuxedConn 接口
//
// yamux 的 AcceptStream 不支持 context，由后台 goroutine 接受流并交给
// AcceptStream 的调用者，这样取消 ctx 不会丢失已接受的流。
type muxedConn struct {
	session *yamux.Session

	incoming   chan *yamux.Stream
	acceptDone chan struct{}
	acceptErr  error
}

// 确保实现接口
var _ interfaces.MuxedConn = (*muxedConn)(nil)

func newMuxedConn(session *yamux.Session) *muxedConn {
	c := &muxedConn{
		session:    session,
		incoming:   make(chan *yamux.Stream),
		acceptDone: make(chan struct{}),
	}
	go c.acceptLoop()
	return c
}

func (c *muxedConn) acceptLoop() {
	defer close(c.acceptDone)
	for {
		s, err := c.session.AcceptStream()
		if err != nil {
			c.acceptErr = sessionError(parseError(err))
			return
		}
		select {
		case c.incoming <- s:
		case <-c.session.CloseChan():
			_ = s.Reset()
			c.acceptErr = interfaces.ErrSessionClosed
			return
		}
	}
}

// OpenStream 打开新流
func (c *muxedConn) OpenStream(ctx context.Context) (interfaces.MuxedStream, error) {
	s, err := c.session.OpenStream(ctx)
	if err != nil {
		logger.Debug("打开流失败", "remote", c.RemoteAddr(), "error", err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if c.session.IsClosed() {
			return nil, sessionError(parseError(err))
		}
		return nil, parseError(err)
	}
	return &muxedStream{stream: s}, nil
}

// AcceptStream 接受新流
func (c *muxedConn) AcceptStream(ctx context.Context) (interfaces.MuxedStream, error) {
	select {
	case s := <-c.incoming:
		return &muxedStream{stream: s}, nil
	case <-c.acceptDone:
		return nil, c.acceptErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LocalAddr 返回本地地址
func (c *muxedConn) LocalAddr() net.Addr {
	return c.session.LocalAddr()
}

// RemoteAddr 返回远端地址
func (c *muxedConn) RemoteAddr() net.Addr {
	return c.session.RemoteAddr()
}

// Protocol 返回 "yamux"
func (c *muxedConn) Protocol() string {
	return interfaces.ProtocolYamux
}

// Secure 明文 TCP
func (c *muxedConn) Secure() bool {
	return false
}

// Close 关闭连接
func (c *muxedConn) Close() error {
	if err := c.session.Close(); err != nil {
		logger.Warn("关闭连接失败", "error", err)
		return err
	}
	return nil
}

// IsClosed 检查连接是否已关闭
func (c *muxedConn) IsClosed() bool {
	return c.session.IsClosed()
}
