package muxer

import (
	"github.com/libp2p/go-yamux/v5"

	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

// muxedStream 包装 yamux.Stream，实现 MuxedStream 接口
type muxedStream struct {
	stream *yamux.Stream
}

// 确保实现接口
var _ interfaces.MuxedStream = (*muxedStream)(nil)

// ID 返回 yamux 流 ID
func (s *muxedStream) ID() types.StreamID {
	return types.StreamID(s.stream.StreamID())
}

// Read 从流中读取数据
func (s *muxedStream) Read(p []byte) (n int, err error) {
	n, err = s.stream.Read(p)
	return n, parseError(err)
}

// Write 向流中写入数据
func (s *muxedStream) Write(p []byte) (n int, err error) {
	n, err = s.stream.Write(p)
	return n, parseError(err)
}

// CloseWrite 关闭写端
func (s *muxedStream) CloseWrite() error {
	return parseError(s.stream.CloseWrite())
}

// CloseRead 关闭读端
func (s *muxedStream) CloseRead() error {
	return parseError(s.stream.CloseRead())
}

// Reset 重置流（异常关闭）
func (s *muxedStream) Reset() error {
	return parseError(s.stream.Reset())
}
