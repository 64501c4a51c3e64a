package mocks

import (
	"io"
	"sync"

	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

// MockMuxedStream 模拟 MuxedStream 接口实现
//
// Read 在预设数据读完后阻塞，直到 CloseRemote、Reset 或 CloseRead。
type MockMuxedStream struct {
	IDValue types.StreamID

	mu        sync.Mutex
	cond      *sync.Cond
	readData  []byte
	remoteFin bool
	WriteData []byte

	// 状态
	WriteClosed bool
	ReadClosed  bool
	ResetCalled bool

	// 可覆盖的方法
	ReadFunc       func(p []byte) (int, error)
	WriteFunc      func(p []byte) (int, error)
	CloseWriteFunc func() error
	CloseReadFunc  func() error
	ResetFunc      func() error
}

var _ interfaces.MuxedStream = (*MockMuxedStream)(nil)

// NewMockMuxedStream 创建 MockMuxedStream
func NewMockMuxedStream(id types.StreamID) *MockMuxedStream {
	s := &MockMuxedStream{IDValue: id}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// NewMockMuxedStreamWithData 创建带有预设读取数据的 MockMuxedStream
func NewMockMuxedStreamWithData(id types.StreamID, data []byte) *MockMuxedStream {
	s := NewMockMuxedStream(id)
	s.readData = append(s.readData, data...)
	return s
}

// Feed 追加对端数据
func (m *MockMuxedStream) Feed(data []byte) {
	m.mu.Lock()
	m.readData = append(m.readData, data...)
	m.mu.Unlock()
	m.cond.Broadcast()
}

// CloseRemote 模拟对端 FIN
func (m *MockMuxedStream) CloseRemote() {
	m.mu.Lock()
	m.remoteFin = true
	m.mu.Unlock()
	m.cond.Broadcast()
}

// Written 返回已写入的数据
func (m *MockMuxedStream) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.WriteData...)
}

// IsWriteClosed 是否已 CloseWrite
func (m *MockMuxedStream) IsWriteClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.WriteClosed
}

// IsReset 是否已 Reset
func (m *MockMuxedStream) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ResetCalled
}

// ID 返回流 ID
func (m *MockMuxedStream) ID() types.StreamID {
	return m.IDValue
}

// Read 读取数据
func (m *MockMuxedStream) Read(p []byte) (int, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.readData) == 0 && !m.remoteFin && !m.ResetCalled && !m.ReadClosed {
		m.cond.Wait()
	}
	if m.ResetCalled || m.ReadClosed {
		return 0, interfaces.ErrStreamReset
	}
	if len(m.readData) == 0 {
		return 0, io.EOF
	}
	n := copy(p, m.readData)
	m.readData = m.readData[n:]
	return n, nil
}

// Write 写入数据
func (m *MockMuxedStream) Write(p []byte) (int, error) {
	if m.WriteFunc != nil {
		return m.WriteFunc(p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ResetCalled {
		return 0, interfaces.ErrStreamReset
	}
	if m.WriteClosed {
		return 0, io.ErrClosedPipe
	}
	m.WriteData = append(m.WriteData, p...)
	return len(p), nil
}

// CloseWrite 关闭写端
func (m *MockMuxedStream) CloseWrite() error {
	if m.CloseWriteFunc != nil {
		return m.CloseWriteFunc()
	}
	m.mu.Lock()
	m.WriteClosed = true
	m.mu.Unlock()
	return nil
}

// CloseRead 关闭读端
func (m *MockMuxedStream) CloseRead() error {
	if m.CloseReadFunc != nil {
		return m.CloseReadFunc()
	}
	m.mu.Lock()
	m.ReadClosed = true
	m.mu.Unlock()
	m.cond.Broadcast()
	return nil
}

// Reset 重置流
func (m *MockMuxedStream) Reset() error {
	if m.ResetFunc != nil {
		return m.ResetFunc()
	}
	m.mu.Lock()
	m.ResetCalled = true
	m.mu.Unlock()
	m.cond.Broadcast()
	return nil
}
