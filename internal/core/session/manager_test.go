package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-streamio/config"
	"github.com/dep2p/go-streamio/internal/core/endpoint"
	"github.com/dep2p/go-streamio/internal/core/metrics"
	"github.com/dep2p/go-streamio/internal/core/scheduler"
	"github.com/dep2p/go-streamio/pkg/types"
	"github.com/dep2p/go-streamio/tests/mocks"
)

func TestManager_WrapAndRemove(t *testing.T) {
	m := NewManager(DefaultConfig(), endpoint.NewFactory(endpoint.Config{}, nil, nil), nil, nil)

	conn := mocks.NewMockMuxedConn("yamux")
	s, err := m.Wrap(conn, types.DirInbound)
	require.NoError(t, err)
	assert.Equal(t, types.DirInbound, s.Info().Direction)
	require.Len(t, m.Sessions(), 1)

	require.NoError(t, s.Close())
	assert.Eventually(t, func() bool { return len(m.Sessions()) == 0 }, waitFor, time.Millisecond)
}

func TestManager_CloseRejectsNewSessions(t *testing.T) {
	m := NewManager(DefaultConfig(), endpoint.NewFactory(endpoint.Config{}, nil, nil), nil, nil)

	first := mocks.NewMockMuxedConn("quic")
	s, err := m.Wrap(first, types.DirOutbound)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	assert.True(t, first.IsClosed())
	<-s.Done()

	late := mocks.NewMockMuxedConn("quic")
	_, err = m.Wrap(late, types.DirOutbound)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.True(t, late.IsClosed(), "拒绝的连接须被关闭")
}

func TestModule_ProvidesManager(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Session.MaxStreams = 2
	cfg.Metrics.Enabled = false

	var m *Manager
	app := fxtest.New(t,
		endpoint.Module,
		metrics.Module,
		scheduler.Module,
		Module,
		fx.Supply(cfg),
		fx.Populate(&m),
	)
	app.RequireStart()

	require.NotNil(t, m)
	assert.Equal(t, 2, m.cfg.MaxStreams)

	conn := mocks.NewMockMuxedConn("yamux")
	s, err := m.Wrap(conn, types.DirOutbound)
	require.NoError(t, err)

	ep, err := s.OpenStream(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "yamux", ep.Info().Protocol)

	app.RequireStop()
	assert.True(t, conn.IsClosed(), "停止应用时关闭所有会话")
	assert.False(t, ep.IsOpen())
}

func TestConfigFromUnified(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigFromUnified(nil))

	cfg := config.NewConfig()
	cfg.Session.AcceptRate = 50
	cfg.Session.AcceptBurst = 5
	got := ConfigFromUnified(cfg)
	assert.Equal(t, 50.0, got.AcceptRate)
	assert.Equal(t, 5, got.AcceptBurst)
	assert.Equal(t, cfg.Session.TombstoneSize, got.TombstoneSize)
}
