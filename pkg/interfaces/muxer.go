package interfaces

import (
	"context"
	"net"

	"github.com/dep2p/go-streamio/pkg/types"
)

// MuxedConn 底层多路复用连接
//
// 由 QUIC 连接或 yamux 会话实现，会话层在其上构建按流缓冲。
type MuxedConn interface {
	// OpenStream 打开新流
	OpenStream(ctx context.Context) (MuxedStream, error)

	// AcceptStream 接受对端打开的流
	AcceptStream(ctx context.Context) (MuxedStream, error)

	// LocalAddr 返回本地地址
	LocalAddr() net.Addr

	// RemoteAddr 返回远端地址
	RemoteAddr() net.Addr

	// Protocol 返回协议名
	Protocol() string

	// Secure 是否加密
	Secure() bool

	// Close 关闭连接
	Close() error
}

// MuxedStream 底层多路复用流
//
// Read/Write 是阻塞的，只由会话拥有的 goroutine 调用。
type MuxedStream interface {
	// ID 返回流 ID
	ID() types.StreamID

	// Read 读取数据；对端 FIN 后返回 io.EOF
	Read(p []byte) (int, error)

	// Write 写入数据
	Write(p []byte) (int, error)

	// CloseWrite 关闭写端（发送 FIN）
	CloseWrite() error

	// CloseRead 关闭读端（停止接收）
	CloseRead() error

	// Reset 重置流（双向异常关闭）
	Reset() error
}
