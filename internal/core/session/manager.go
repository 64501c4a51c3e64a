package session

import (
	"sync"

	"go.uber.org/multierr"

	"github.com/dep2p/go-streamio/internal/core/endpoint"
	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

// Manager 创建并跟踪会话
//
// 传输层每建立一条连接就通过 Manager.Wrap 得到会话；
// 会话关闭后自动移除，Manager.Close 关闭所有仍存活的会话。
type Manager struct {
	cfg      Config
	factory  *endpoint.Factory
	executor interfaces.Executor
	reporter interfaces.Reporter

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewManager 创建会话管理器
func NewManager(cfg Config, factory *endpoint.Factory, executor interfaces.Executor, reporter interfaces.Reporter) *Manager {
	return &Manager{
		cfg:      cfg,
		factory:  factory,
		executor: executor,
		reporter: reporter,
		sessions: make(map[string]*Session),
	}
}

// Wrap 在 conn 上创建会话并登记
func (m *Manager) Wrap(conn interfaces.MuxedConn, dir types.Direction) (*Session, error) {
	s := New(conn, dir, m.factory,
		WithConfig(m.cfg),
		WithExecutor(m.executor),
		WithReporter(m.reporter),
	)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, multierr.Append(ErrSessionClosed, s.Close())
	}
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	go func() {
		<-s.Done()
		m.mu.Lock()
		delete(m.sessions, s.ID())
		m.mu.Unlock()
	}()
	return s, nil
}

// Sessions 返回当前会话快照
func (m *Manager) Sessions() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Close 关闭所有会话，错误合并返回
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	var err error
	for _, s := range sessions {
		err = multierr.Append(err, s.Close())
	}
	return err
}
