// Package interfaces 定义 streamio 的公共接口
//
// 一个接口文件对应一组协作者：
//
//   - session.go   - Session 契约（由传输层实现，端点消费）
//   - endpoint.go  - EndPoint 契约（端点实现，上层协议消费）
//   - muxer.go     - MuxedConn / MuxedStream（底层多路复用连接抽象）
//   - transport.go - Transport / Listener（QUIC 与 yamux 传输）
//   - scheduler.go - Scheduler / Executor（定时器与任务执行）
//   - metrics.go   - Reporter（指标上报）
//
// 依赖关系：interfaces 只依赖 pkg/types，不依赖任何 internal 包。
package interfaces
