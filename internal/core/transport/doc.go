// Package transport 管理 QUIC 与 yamux 两种传输
//
// TransportManager 按统一配置创建启用的传输，按协议名查找，
// 并在应用停止时统一关闭。
//
// # 支持的协议
//
//   - quic：UDP 上的 QUIC，原生多路复用（默认）
//   - yamux：TCP 上的 yamux 多路复用
//
// # Fx 模块集成
//
//	app := fx.New(
//	    transport.Module(),
//	    fx.Invoke(func(tm *transport.TransportManager) {
//	        conn, err := tm.Dial(ctx, "quic", "127.0.0.1:4433")
//	    }),
//	)
package transport
