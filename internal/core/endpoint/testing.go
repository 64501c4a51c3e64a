package endpoint

import (
	"net"
	"sync"

	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

// FakeSession 内存会话，用于测试端点状态机与数据路径
//
// 每个流维护接收缓冲和已写出字节；SendCapacity 限制单次 Flush 接受的字节数。
type FakeSession struct {
	mu      sync.Mutex
	streams map[types.StreamID]*fakeStream

	Local  net.Addr
	Remote net.Addr

	// 注入的关闭步骤错误
	ShutdownInputErr  error
	ShutdownOutputErr error
	SendFinishedErr   error

	calls []string
}

type fakeStream struct {
	in       []byte
	fin      bool
	err      error
	out      []byte
	capacity int // -1 不限
	finSent  bool
	inShut   bool
	outShut  bool
	released bool
}

var _ interfaces.Session = (*FakeSession)(nil)

// NewFakeSession 创建内存会话
func NewFakeSession() *FakeSession {
	return &FakeSession{
		streams: make(map[types.StreamID]*fakeStream),
		Local:   &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4433},
		Remote:  &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50000},
	}
}

func (s *FakeSession) stream(id types.StreamID) *fakeStream {
	st, ok := s.streams[id]
	if !ok {
		st = &fakeStream{capacity: -1}
		s.streams[id] = st
	}
	return st
}

func (s *FakeSession) record(call string) {
	s.calls = append(s.calls, call)
}

// ============================================================================
//                              测试控制
// ============================================================================

// Deliver 向流追加入站数据
func (s *FakeSession) Deliver(id types.StreamID, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stream(id)
	st.in = append(st.in, data...)
}

// Finish 模拟对端 FIN
func (s *FakeSession) Finish(id types.StreamID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stream(id).fin = true
}

// Fail 让流后续的 Fill/Flush 返回 err
func (s *FakeSession) Fail(id types.StreamID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stream(id).err = err
}

// SetSendCapacity 设置流剩余发送容量，-1 表示不限
func (s *FakeSession) SetSendCapacity(id types.StreamID, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stream(id).capacity = n
}

// Written 返回流已写出的字节
func (s *FakeSession) Written(id types.StreamID) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.stream(id).out...)
}

// FinSent 流是否已发送 FIN
func (s *FakeSession) FinSent(id types.StreamID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream(id).finSent
}

// Released 流是否已通过 OnClose 释放
func (s *FakeSession) Released(id types.StreamID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream(id).released
}

// Calls 返回按顺序记录的会话调用
func (s *FakeSession) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CountCalls 返回指定调用的次数
func (s *FakeSession) CountCalls(call string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == call {
			n++
		}
	}
	return n
}

// ============================================================================
//                              interfaces.Session
// ============================================================================

// Fill 实现 interfaces.Session
func (s *FakeSession) Fill(id types.StreamID, buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Fill")

	st := s.stream(id)
	if st.err != nil {
		return 0, st.err
	}
	n := copy(buf, st.in)
	st.in = st.in[n:]
	return n, nil
}

// Flush 实现 interfaces.Session
func (s *FakeSession) Flush(id types.StreamID, buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Flush")

	st := s.stream(id)
	if st.err != nil {
		return 0, st.err
	}
	if st.outShut {
		return 0, interfaces.ErrOutputShutdown
	}
	n := len(buf)
	if st.capacity >= 0 {
		n = min(n, st.capacity)
		st.capacity -= n
	}
	st.out = append(st.out, buf[:n]...)
	return n, nil
}

// ShutdownInput 实现 interfaces.Session
func (s *FakeSession) ShutdownInput(id types.StreamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("ShutdownInput")

	if s.ShutdownInputErr != nil {
		return s.ShutdownInputErr
	}
	st := s.stream(id)
	st.inShut = true
	st.in = nil
	return nil
}

// ShutdownOutput 实现 interfaces.Session
func (s *FakeSession) ShutdownOutput(id types.StreamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("ShutdownOutput")

	if s.ShutdownOutputErr != nil {
		return s.ShutdownOutputErr
	}
	st := s.stream(id)
	st.outShut = true
	st.finSent = true
	return nil
}

// SendFinished 实现 interfaces.Session
func (s *FakeSession) SendFinished(id types.StreamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("SendFinished")

	if s.SendFinishedErr != nil {
		return s.SendFinishedErr
	}
	s.stream(id).finSent = true
	return nil
}

// IsFinished 实现 interfaces.Session
func (s *FakeSession) IsFinished(id types.StreamID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("IsFinished")

	st := s.stream(id)
	return st.fin && len(st.in) == 0
}

// OnClose 实现 interfaces.Session
func (s *FakeSession) OnClose(id types.StreamID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("OnClose")
	s.stream(id).released = true
}

// LocalAddr 实现 interfaces.Session
func (s *FakeSession) LocalAddr() net.Addr {
	return s.Local
}

// RemoteAddr 实现 interfaces.Session
func (s *FakeSession) RemoteAddr() net.Addr {
	return s.Remote
}
