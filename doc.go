// Package streamio 多路复用流端点
//
// streamio 在 QUIC 或 TCP+yamux 连接之上为每个流提供非阻塞端点：
// Fill/Flush 立即返回，数据不足或缓冲已满时通过 RegisterFillInterest
// 和 Write 回调等待就绪。端点支持半关闭、FIN 与空闲超时。
//
// 快速开始：
//
//	srv, err := streamio.New(ctx,
//	    streamio.WithQUICListenAddr("127.0.0.1:4433"),
//	    streamio.WithHandler(func(ep *endpoint.StreamEndpoint) {
//	        // 以回调方式读取 ep
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//
//	sess, err := srv.Dial(ctx, streamio.ProtocolQUIC, "127.0.0.1:4433")
//	ep, err := sess.OpenStream(ctx)
//
// 架构层次：
//   - API Layer: Server（本包）
//   - Session Layer: session.Manager, session.Session
//   - Endpoint Layer: endpoint.StreamEndpoint, readiness.Coordinator
//   - Transport Layer: QUIC, yamux over TCP
package streamio
