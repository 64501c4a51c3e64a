// Package muxer 实现 TCP 上的 yamux 多路复用传输
//
// Transport 监听和拨号 TCP，在每条连接上建立 yamux 会话，
// 适配为 interfaces.MuxedConn；yamux 流支持真正的半关闭：
//
//	CloseWrite → 发送 FIN
//	CloseRead  → 停止接收，之后到达的数据被丢弃
//	Reset      → 发送 RST
//
// # yamux 配置
//
//   - MaxStreamWindowSize: 16MB（高吞吐量）
//   - KeepAliveInterval: 30s
//   - MaxIncomingStreams: 不限制，由会话的 MaxStreams 控制
//   - ReadBufSize: 0
//
// # 并发安全
//
// OpenStream/AcceptStream 可以并发调用；单个流的读和写可以分别在
// 不同 goroutine 上进行。
package muxer
