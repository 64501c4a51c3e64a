package interfaces

import (
	"context"
	"net"
)

// 协议名
const (
	// ProtocolQUIC QUIC 传输
	ProtocolQUIC = "quic"

	// ProtocolYamux TCP 上的 yamux 多路复用
	ProtocolYamux = "yamux"
)

// Transport 产生 MuxedConn 的传输
type Transport interface {
	// Protocol 返回协议名
	Protocol() string

	// Listen 在 addr（host:port）上监听
	Listen(addr string) (Listener, error)

	// Dial 拨号 addr（host:port）
	Dial(ctx context.Context, addr string) (MuxedConn, error)

	// Close 关闭传输及其所有监听器
	Close() error
}

// Listener 接受入站连接
type Listener interface {
	// Accept 阻塞直到有新连接或监听器关闭
	Accept(ctx context.Context) (MuxedConn, error)

	// Addr 返回实际监听地址
	Addr() net.Addr

	// Close 停止监听
	Close() error
}
