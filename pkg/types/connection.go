package types

import (
	"net"
	"time"
)

// ConnInfo 连接元信息
//
// 由会话在建立时生成，供端点和上层协议做诊断使用。
type ConnInfo struct {
	// ID 连接唯一标识
	ID string

	// Protocol 底层协议（"quic" / "yamux"）
	Protocol string

	// Secure 是否加密传输
	Secure bool

	// Direction 连接方向
	Direction Direction

	// LocalAddr 本地地址
	LocalAddr net.Addr

	// RemoteAddr 远端地址
	RemoteAddr net.Addr

	// Opened 建立时间
	Opened time.Time
}
