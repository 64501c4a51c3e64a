package streamio

import (
	"net"

	"github.com/dep2p/go-streamio/internal/core/endpoint"
)

// Echo 把端点的输入原样写回，输入结束后发送 FIN
//
// 全程非阻塞：无数据时注册读兴趣，发送队列满时改用异步 Write，
// 写完成后继续读取。可直接作为 WithHandler 的处理函数。
func Echo(ep *endpoint.StreamEndpoint) {
	buf := make([]byte, 32*1024)

	var onReadable func(error)
	onReadable = func(err error) {
		if err != nil {
			ep.Close(err)
			return
		}
		for {
			n, err := ep.Fill(buf)
			if err != nil {
				ep.Close(err)
				return
			}
			if n == 0 {
				break
			}
			bufs := net.Buffers{append([]byte(nil), buf[:n]...)}
			done, err := ep.Flush(&bufs)
			if err != nil {
				ep.Close(err)
				return
			}
			if !done {
				ep.Write(onReadable, &bufs)
				return
			}
		}
		if ep.IsInputShutdown() {
			ep.ShutdownOutput()
			return
		}
		if err := ep.RegisterFillInterest(onReadable); err != nil {
			logger.Debug("注册读兴趣失败", "stream", ep.ID(), "error", err)
		}
	}

	if err := ep.RegisterFillInterest(onReadable); err != nil {
		logger.Debug("注册读兴趣失败", "stream", ep.ID(), "error", err)
	}
}
