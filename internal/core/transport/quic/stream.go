package quic

import (
	"github.com/quic-go/quic-go"

	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

// stream 把 *quic.Stream 适配为 interfaces.MuxedStream
type stream struct {
	qs *quic.Stream
}

var _ interfaces.MuxedStream = (*stream)(nil)

// ID 返回 QUIC 流 ID
func (s *stream) ID() types.StreamID {
	return types.StreamID(s.qs.StreamID())
}

// Read 读取数据；对端 FIN 后返回 io.EOF
func (s *stream) Read(p []byte) (int, error) {
	n, err := s.qs.Read(p)
	return n, parseError(err)
}

// Write 写入数据
func (s *stream) Write(p []byte) (int, error) {
	n, err := s.qs.Write(p)
	return n, parseError(err)
}

// CloseWrite 发送 FIN
func (s *stream) CloseWrite() error {
	return parseError(s.qs.Close())
}

// CloseRead 请求对端停止发送
func (s *stream) CloseRead() error {
	s.qs.CancelRead(codeStreamStop)
	return nil
}

// Reset 中止两个方向
func (s *stream) Reset() error {
	s.qs.CancelRead(codeStreamStop)
	s.qs.CancelWrite(codeStreamStop)
	return nil
}
