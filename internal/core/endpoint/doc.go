// Package endpoint 实现多路复用会话上的单流端点
//
// StreamEndpoint 把会话的按流操作（Fill/Flush/ShutdownInput/ShutdownOutput/
// SendFinished/IsFinished/OnClose）适配为统一的非阻塞、边沿触发字节流接口，
// 供上层协议（HTTP 帧、WebSocket 等）使用。
//
// # 状态机
//
//	OPEN ──ShutdownInput──▶ INPUT_SHUTDOWN ──ShutdownOutput──▶ CLOSED
//	OPEN ──ShutdownOutput─▶ OUTPUT_SHUTDOWN ──ShutdownInput──▶ CLOSED
//	任意状态 ──Close──▶ CLOSED
//
// 状态保存在一个原子位图中，半关闭幂等且可交换顺序。
// CLOSED 之后的 Fill/Flush 直接返回 ErrClosed，不再访问会话。
//
// # 就绪通知
//
// 会话在收到新数据时调用 OnReadable，返回的任务交给执行器异步运行；
// 发送缓冲腾出空间时调用 OnWritable。两个方向各有一个 readiness.Coordinator，
// 信号与注册任意交错都恰好投递一次。
//
// # 使用示例
//
//	ep := endpoint.New(id, session)
//
//	var onReadable func(error)
//	onReadable = func(err error) {
//	    if err != nil {
//	        ep.Close(err)
//	        return
//	    }
//	    buf := make([]byte, 4096)
//	    for {
//	        n, err := ep.Fill(buf)
//	        if err != nil { ... }
//	        if n == 0 {
//	            break
//	        }
//	        handle(buf[:n])
//	    }
//	    if !ep.IsInputShutdown() {
//	        _ = ep.RegisterFillInterest(onReadable)
//	    }
//	}
//	_ = ep.RegisterFillInterest(onReadable)
package endpoint
