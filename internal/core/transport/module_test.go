package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-streamio/config"
	"github.com/dep2p/go-streamio/pkg/interfaces"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	assert.True(t, cfg.EnableQUIC, "QUIC 应该默认启用")
	assert.False(t, cfg.EnableTCP, "TCP 应该默认禁用")
	assert.Equal(t, 10*time.Second, cfg.DialTimeout)
	assert.Equal(t, []string{"streamio"}, cfg.QUIC.ALPN)

	assert.Equal(t, cfg, ConfigFromUnified(nil))
}

func TestTransportManager_Lookup(t *testing.T) {
	cfg := NewConfig()
	cfg.EnableTCP = true

	tm, err := NewTransportManager(cfg)
	require.NoError(t, err)
	defer tm.Close()

	all := tm.GetTransports()
	require.Len(t, all, 2)
	assert.Equal(t, interfaces.ProtocolQUIC, all[0].Protocol())
	assert.Equal(t, interfaces.ProtocolYamux, all[1].Protocol())

	tr, err := tm.Transport(interfaces.ProtocolYamux)
	require.NoError(t, err)
	assert.Same(t, all[1], tr)

	_, err = tm.Transport("ws")
	assert.ErrorIs(t, err, ErrNoTransport)
	_, err = tm.Dial(context.Background(), "ws", "127.0.0.1:1")
	assert.ErrorIs(t, err, ErrNoTransport)
}

func TestTransportManager_DialYamux(t *testing.T) {
	cfg := NewConfig()
	cfg.EnableQUIC = false
	cfg.EnableTCP = true

	tm, err := NewTransportManager(cfg)
	require.NoError(t, err)
	defer tm.Close()

	tr, err := tm.Transport(interfaces.ProtocolYamux)
	require.NoError(t, err)
	ln, err := tr.Listen("127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := tm.Dial(ctx, interfaces.ProtocolYamux, ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	server, err := ln.Accept(ctx)
	require.NoError(t, err)
	defer server.Close()
	assert.Equal(t, conn.LocalAddr().String(), server.RemoteAddr().String())
}

func TestModule_ProvidesTransports(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Transport.EnableTCP = true

	var tm *TransportManager
	var transports []interfaces.Transport
	app := fxtest.New(t,
		Module(),
		fx.Supply(cfg),
		fx.Populate(&tm),
		fx.Invoke(func(in struct {
			fx.In
			Transports []interfaces.Transport `group:"transports"`
		}) {
			transports = in.Transports
		}),
	)
	app.RequireStart()

	require.NotNil(t, tm)
	assert.Len(t, transports, 2)

	tr, err := tm.Transport(interfaces.ProtocolQUIC)
	require.NoError(t, err)
	_, err = tr.Listen("127.0.0.1:0")
	require.NoError(t, err)

	app.RequireStop()
	_, err = tr.Listen("127.0.0.1:0")
	assert.Error(t, err, "停止后传输已关闭")
}
