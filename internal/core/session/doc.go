// Package session 在多路复用连接上实现 interfaces.Session
//
// Session 拥有一条 MuxedConn（QUIC 连接或 yamux 会话），为每个流维护：
//   - 有界接收缓冲：读 goroutine 从底层流读取并追加，随后把端点的
//     OnReadable 任务交给执行器
//   - 有界发送队列：Flush 只接受放得下的前缀，写 goroutine 排空队列，
//     队列曾经写满时在腾出空间后触发 OnWritable
//   - FIN：排在已入队数据之后发送
//
// 端点在首次使用时惰性创建。关闭的流 ID 以墓碑形式保留在 LRU 中，
// 用于区分"已关闭"和"从未存在"。
//
// # 使用示例
//
//	sess := session.New(conn, types.DirInbound, factory, session.WithExecutor(exec))
//	go sess.Serve(ctx, func(ep *endpoint.StreamEndpoint) {
//	    ...
//	})
//	defer sess.Close()
package session
