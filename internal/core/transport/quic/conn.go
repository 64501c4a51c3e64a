package quic

import (
	"context"
	"net"

	"github.com/quic-go/quic-go"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// conn 把 *quic.Conn 适配为 interfaces.MuxedConn
type conn struct {
	qc *quic.Conn
}

var _ interfaces.MuxedConn = (*conn)(nil)

// OpenStream 打开双向流，流数达到对端上限时阻塞直到 ctx 结束
func (c *conn) OpenStream(ctx context.Context) (interfaces.MuxedStream, error) {
	qs, err := c.qc.OpenStreamSync(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, parseError(err)
	}
	return &stream{qs: qs}, nil
}

// AcceptStream 接受对端打开的双向流
//
// QUIC 流在首个数据帧到达对端之前对其不可见。
func (c *conn) AcceptStream(ctx context.Context) (interfaces.MuxedStream, error) {
	qs, err := c.qc.AcceptStream(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, parseError(err)
	}
	return &stream{qs: qs}, nil
}

// LocalAddr 返回本地地址
func (c *conn) LocalAddr() net.Addr {
	return c.qc.LocalAddr()
}

// RemoteAddr 返回远端地址
func (c *conn) RemoteAddr() net.Addr {
	return c.qc.RemoteAddr()
}

// Protocol 返回 "quic"
func (c *conn) Protocol() string {
	return interfaces.ProtocolQUIC
}

// Secure QUIC 总是加密
func (c *conn) Secure() bool {
	return true
}

// Close 以无错误码关闭连接
func (c *conn) Close() error {
	return c.qc.CloseWithError(codeNoError, "")
}

// ConnectionState 返回 TLS 与 QUIC 握手状态
func (c *conn) ConnectionState() quic.ConnectionState {
	return c.qc.ConnectionState()
}
