// Package quic 实现基于 quic-go 的传输
//
// Transport 在一个共享的 UDP socket 上监听和拨号，每条 QUIC 连接
// 适配为 interfaces.MuxedConn，每个双向 QUIC 流适配为 interfaces.MuxedStream。
//
// # 半关闭映射
//
//	CloseWrite → Stream.Close（发送 FIN）
//	CloseRead  → Stream.CancelRead（STOP_SENDING）
//	Reset      → CancelRead + CancelWrite（RESET_STREAM）
//
// 流级错误（*quic.StreamError）映射为 interfaces.ErrStreamReset，
// 连接级错误映射为 interfaces.ErrSessionClosed。
//
// # TLS
//
// 服务端未配置证书时使用自签名 ECDSA P-256 证书；ALPN 来自配置。
// 客户端默认校验证书，InsecureSkipVerify 仅用于测试和内网。
package quic
