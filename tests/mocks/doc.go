// Package mocks 提供统一的测试 Mock 实现
//
// # 核心 Mock
//
//   - MockSession: gomock 生成的 interfaces.Session，用于精确断言端点对会话的调用
//   - MockMuxedStream: 模拟 interfaces.MuxedStream，支持读写数据模拟
//   - MockMuxedConn: 模拟 interfaces.MuxedConn，支持注入入站流
//
// # 设计原则
//
// 1. 函数式注入: 手写 Mock 支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 关键 Mock 记录调用历史，便于验证测试行为
// 3. 生成代码: 需要严格调用断言的接口使用 mockgen 生成
//
// # 使用示例
//
//	ctrl := gomock.NewController(t)
//	sess := mocks.NewMockSession(ctrl)
//	sess.EXPECT().LocalAddr().Return(addr)
//	sess.EXPECT().Fill(gomock.Any(), gomock.Any()).Times(0)
//
//	stream := mocks.NewMockMuxedStreamWithData(1, []byte("hello"))
//	conn := mocks.NewMockMuxedConn("yamux")
//	conn.Inbound <- stream
package mocks
