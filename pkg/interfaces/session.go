package interfaces

//go:generate mockgen -source=session.go -destination=../../tests/mocks/session_mock.go -package=mocks Session

import (
	"errors"
	"net"

	"github.com/dep2p/go-streamio/pkg/types"
)

var (
	// ErrStreamReset 流被对端或本端重置
	ErrStreamReset = errors.New("stream reset")

	// ErrSessionClosed 会话（物理连接）已关闭或发生传输错误
	ErrSessionClosed = errors.New("session closed")

	// ErrUnknownStream 会话中不存在该流
	ErrUnknownStream = errors.New("unknown stream")

	// ErrOutputShutdown 流的输出方向已关闭
	ErrOutputShutdown = errors.New("stream output shutdown")
)

// Session 多路复用会话契约
//
// Session 拥有物理连接，按流拆分入站字节并缓冲，跟踪每个流的
// 结束/错误状态。端点通过以下按流操作访问会话，从不直接触碰缓冲区。
//
// 所有方法都必须可以从任意 goroutine 调用，并发安全由 Session 自身负责。
type Session interface {
	// Fill 非阻塞地把已缓冲的入站数据复制到 buf
	//
	// 无数据时返回 0；流被重置或会话出错时返回错误。
	Fill(id types.StreamID, buf []byte) (int, error)

	// Flush 非阻塞地写入 buf 的前缀，返回被接受的字节数
	//
	// 发送缓冲已满时可能返回小于 len(buf) 的值（包括 0）。
	Flush(id types.StreamID, buf []byte) (int, error)

	// ShutdownInput 停止向该流交付输入
	ShutdownInput(id types.StreamID) error

	// ShutdownOutput 关闭该流的输出方向
	ShutdownOutput(id types.StreamID) error

	// SendFinished 发送协议级 FIN
	SendFinished(id types.StreamID) error

	// IsFinished 对端已发送 FIN 且所有字节均已被消费
	IsFinished(id types.StreamID) bool

	// OnClose 释放该流的会话级记录
	OnClose(id types.StreamID)

	// LocalAddr 返回连接本地地址
	LocalAddr() net.Addr

	// RemoteAddr 返回连接远端地址
	RemoteAddr() net.Addr
}
