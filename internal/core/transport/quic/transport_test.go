package quic

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-streamio/config"
	"github.com/dep2p/go-streamio/pkg/interfaces"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.InsecureSkipVerify = true
	return cfg
}

// listenPair 启动监听并拨号，返回两端连接
func listenPair(t *testing.T) (client, server interfaces.MuxedConn) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	srv, err := New(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	ln, err := srv.Listen("127.0.0.1:0")
	require.NoError(t, err)

	cli, err := New(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cli.Close() })

	accepted := make(chan interfaces.MuxedConn, 1)
	go func() {
		c, err := ln.Accept(ctx)
		if err == nil {
			accepted <- c
		}
	}()

	client, err = cli.Dial(ctx, ln.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case server = <-accepted:
	case <-ctx.Done():
		t.Fatal("未接受连接")
	}
	t.Cleanup(func() { _ = server.Close() })
	return client, server
}

func TestTransport_StreamRoundTrip(t *testing.T) {
	client, server := listenPair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Equal(t, interfaces.ProtocolQUIC, client.Protocol())
	assert.True(t, client.Secure())
	assert.Equal(t, server.LocalAddr().String(), client.RemoteAddr().String())

	cs, err := client.OpenStream(ctx)
	require.NoError(t, err)
	_, err = cs.Write([]byte("ping"))
	require.NoError(t, err)
	require.NoError(t, cs.CloseWrite())

	ss, err := server.AcceptStream(ctx)
	require.NoError(t, err)
	assert.Equal(t, cs.ID(), ss.ID())

	got, err := io.ReadAll(ss)
	require.NoError(t, err, "FIN 应表现为 io.EOF")
	assert.Equal(t, "ping", string(got))

	_, err = ss.Write([]byte("pong"))
	require.NoError(t, err)
	require.NoError(t, ss.CloseWrite())

	got, err = io.ReadAll(cs)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(got))
}

func TestTransport_ResetSurfacesAsStreamReset(t *testing.T) {
	client, server := listenPair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cs, err := client.OpenStream(ctx)
	require.NoError(t, err)
	_, err = cs.Write([]byte("x"))
	require.NoError(t, err)

	ss, err := server.AcceptStream(ctx)
	require.NoError(t, err)
	require.NoError(t, ss.Reset())

	buf := make([]byte, 8)
	for {
		_, err = cs.Read(buf)
		if err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, interfaces.ErrStreamReset)
}

func TestTransport_ConnCloseSurfacesAsSessionClosed(t *testing.T) {
	client, server := listenPair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, client.Close())

	_, err := server.AcceptStream(ctx)
	assert.ErrorIs(t, err, interfaces.ErrSessionClosed)
}

func TestTransport_AcceptHonorsContext(t *testing.T) {
	_, server := listenPair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := server.AcceptStream(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTransport_ListenOnce(t *testing.T) {
	tr, err := New(testConfig())
	require.NoError(t, err)
	defer tr.Close()

	assert.Nil(t, tr.ListenAddr())
	ln, err := tr.Listen("127.0.0.1:0")
	require.NoError(t, err)
	assert.Equal(t, ln.Addr(), tr.ListenAddr())

	_, err = tr.Listen("127.0.0.1:0")
	assert.ErrorIs(t, err, ErrAlreadyListening)
}

func TestTransport_ListenerClose(t *testing.T) {
	tr, err := New(testConfig())
	require.NoError(t, err)
	defer tr.Close()

	ln, err := tr.Listen("127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())
	require.NoError(t, ln.Close())

	_, err = ln.Accept(context.Background())
	assert.ErrorIs(t, err, ErrListenerClosed)
	assert.Nil(t, tr.ListenAddr())
}

func TestTransport_Closed(t *testing.T) {
	tr, err := New(testConfig())
	require.NoError(t, err)
	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())

	_, err = tr.Listen("127.0.0.1:0")
	assert.ErrorIs(t, err, ErrTransportClosed)
	_, err = tr.Dial(context.Background(), "127.0.0.1:1")
	assert.ErrorIs(t, err, ErrTransportClosed)
}

func TestTransport_InvalidAddress(t *testing.T) {
	tr, err := New(testConfig())
	require.NoError(t, err)
	defer tr.Close()

	_, err = tr.Listen("not-an-address")
	assert.ErrorIs(t, err, ErrInvalidAddress)
	_, err = tr.Dial(context.Background(), "::::")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestTransport_VerifiesServerByDefault(t *testing.T) {
	srv, err := New(testConfig())
	require.NoError(t, err)
	defer srv.Close()
	ln, err := srv.Listen("127.0.0.1:0")
	require.NoError(t, err)

	cli, err := New(DefaultConfig())
	require.NoError(t, err)
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = cli.Dial(ctx, ln.Addr().String())
	assert.Error(t, err, "自签名证书不应通过默认校验")
}

func TestConfigFromUnified(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigFromUnified(nil))

	cfg := config.NewConfig()
	cfg.Transport.QUIC.ALPN = []string{"echo"}
	cfg.Transport.QUIC.MaxIncomingStreams = 8
	got := ConfigFromUnified(cfg)
	assert.Equal(t, []string{"echo"}, got.ALPN)
	assert.Equal(t, int64(8), got.quicConfig().MaxIncomingStreams)
	assert.Equal(t, int64(-1), got.quicConfig().MaxIncomingUniStreams)
}
