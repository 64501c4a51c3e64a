package interfaces

import (
	"net"

	"github.com/dep2p/go-streamio/pkg/types"
)

// Callback 就绪/完成回调
//
// err 为 nil 表示就绪或成功；非 nil 表示失败（关闭、超时、传输错误）。
type Callback func(err error)

// EndPoint 非阻塞、边沿触发的字节流端点
//
// 上层协议（HTTP 帧、WebSocket 等）通过此接口读写单个逻辑流。
// 所有操作都不阻塞调用方；"等待就绪"总是表示为注册回调。
type EndPoint interface {
	// ID 返回流 ID
	ID() types.StreamID

	// Fill 读取当前可用的数据，无数据时返回 0
	Fill(buf []byte) (int, error)

	// Flush 按顺序写出 bufs，已写出的字节从 bufs 中移除
	//
	// 全部写出时返回 true；遇到发送缓冲已满时返回 false。
	Flush(bufs *net.Buffers) (bool, error)

	// Write 异步写出 bufs，完成或失败时调用 cb
	Write(cb Callback, bufs *net.Buffers)

	// RegisterFillInterest 注册可读回调
	RegisterFillInterest(cb Callback) error

	// TryFillInterest 仅在没有待决注册时注册可读回调
	TryFillInterest(cb Callback) bool

	// RegisterWriteInterest 注册可写回调
	RegisterWriteInterest(cb Callback) error

	// ShutdownInput 关闭输入方向（幂等）
	ShutdownInput()

	// ShutdownOutput 关闭输出方向（幂等）
	ShutdownOutput()

	// Close 关闭端点（幂等），cause 会传递给仍在等待的回调
	Close(cause error)

	// IsOpen 端点未关闭
	IsOpen() bool

	// IsInputShutdown 输入方向已关闭
	IsInputShutdown() bool

	// IsOutputShutdown 输出方向已关闭
	IsOutputShutdown() bool

	// State 返回当前状态
	State() types.EndpointState

	// LocalAddr 返回本地地址
	LocalAddr() net.Addr

	// RemoteAddr 返回远端地址
	RemoteAddr() net.Addr

	// Transport 返回底层会话，仅用于诊断
	Transport() any
}
