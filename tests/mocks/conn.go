package mocks

import (
	"context"
	"net"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

// MockMuxedConn 模拟 MuxedConn 接口实现
//
// 入站流通过 Inbound 通道注入；OpenStream 默认创建新的 MockMuxedStream。
type MockMuxedConn struct {
	ProtocolValue string
	SecureValue   bool
	Local         net.Addr
	Remote        net.Addr

	Inbound chan interfaces.MuxedStream

	mu       sync.Mutex
	Opened   []*MockMuxedStream
	nextID   atomic.Uint64
	closed   chan struct{}
	closeOne sync.Once

	// 可覆盖的方法
	OpenStreamFunc func(ctx context.Context) (interfaces.MuxedStream, error)
	CloseFunc      func() error
}

var _ interfaces.MuxedConn = (*MockMuxedConn)(nil)

// NewMockMuxedConn 创建 MockMuxedConn
func NewMockMuxedConn(protocol string) *MockMuxedConn {
	return &MockMuxedConn{
		ProtocolValue: protocol,
		Local:         &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4433},
		Remote:        &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50001},
		Inbound:       make(chan interfaces.MuxedStream, 16),
		closed:        make(chan struct{}),
	}
}

// OpenStream 打开新流
func (m *MockMuxedConn) OpenStream(ctx context.Context) (interfaces.MuxedStream, error) {
	if m.OpenStreamFunc != nil {
		return m.OpenStreamFunc(ctx)
	}
	select {
	case <-m.closed:
		return nil, interfaces.ErrSessionClosed
	default:
	}
	s := NewMockMuxedStream(types.StreamID(m.nextID.Add(1)*2 - 1))
	m.mu.Lock()
	m.Opened = append(m.Opened, s)
	m.mu.Unlock()
	return s, nil
}

// AcceptStream 接受入站流
func (m *MockMuxedConn) AcceptStream(ctx context.Context) (interfaces.MuxedStream, error) {
	select {
	case s := <-m.Inbound:
		return s, nil
	case <-m.closed:
		return nil, interfaces.ErrSessionClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LocalAddr 返回本地地址
func (m *MockMuxedConn) LocalAddr() net.Addr {
	return m.Local
}

// RemoteAddr 返回远端地址
func (m *MockMuxedConn) RemoteAddr() net.Addr {
	return m.Remote
}

// Protocol 返回协议名
func (m *MockMuxedConn) Protocol() string {
	return m.ProtocolValue
}

// Secure 是否加密
func (m *MockMuxedConn) Secure() bool {
	return m.SecureValue
}

// Close 关闭连接
func (m *MockMuxedConn) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	m.closeOne.Do(func() { close(m.closed) })
	return nil
}

// IsClosed 连接是否已关闭
func (m *MockMuxedConn) IsClosed() bool {
	select {
	case <-m.closed:
		return true
	default:
		return false
	}
}
