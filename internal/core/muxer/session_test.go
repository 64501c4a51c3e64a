package muxer

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-streamio/internal/core/endpoint"
	"github.com/dep2p/go-streamio/internal/core/session"
	"github.com/dep2p/go-streamio/pkg/types"
)

// echo 以非阻塞方式把输入原样写回，输入结束后发送 FIN
func echo(ep *endpoint.StreamEndpoint) {
	buf := make([]byte, 4096)
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
				ep.Write(func(err error) { onReadable(err) }, &bufs)
				return
			}
		}
		if ep.IsInputShutdown() {
			ep.ShutdownOutput()
			return
		}
		_ = ep.RegisterFillInterest(onReadable)
	}
	_ = ep.RegisterFillInterest(onReadable)
}

// collect 读取端点直到输入关闭
func collect(ep *endpoint.StreamEndpoint) <-chan []byte {
	out := make(chan []byte, 1)
	var got bytes.Buffer
	buf := make([]byte, 4096)
	var onReadable func(error)
	onReadable = func(err error) {
		if err != nil {
			out <- got.Bytes()
			return
		}
		for {
			n, err := ep.Fill(buf)
			if err != nil {
				out <- got.Bytes()
				return
			}
			if n == 0 {
				break
			}
			got.Write(buf[:n])
		}
		if ep.IsInputShutdown() {
			out <- got.Bytes()
			return
		}
		_ = ep.RegisterFillInterest(onReadable)
	}
	_ = ep.RegisterFillInterest(onReadable)
	return out
}

func TestSessionOverYamux_Echo(t *testing.T) {
	client, server := testMuxedPair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv := session.New(server, types.DirInbound, nil)
	cli := session.New(client, types.DirOutbound, nil)
	defer srv.Close()
	defer cli.Close()
	go func() { _ = srv.Serve(ctx, echo) }()

	ep, err := cli.OpenStream(ctx)
	require.NoError(t, err)
	assert.Equal(t, "yamux", ep.Info().Protocol)
	got := collect(ep)

	// 超过发送队列容量，必须经过部分写和 OnWritable
	payload := bytes.Repeat([]byte("streamio"), 64*1024)
	bufs := net.Buffers{payload}
	written := make(chan error, 1)
	ep.Write(func(err error) {
		if err == nil {
			ep.ShutdownOutput()
		}
		written <- err
	}, &bufs)

	select {
	case err := <-written:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("写未完成")
	}

	select {
	case data := <-got:
		assert.Equal(t, len(payload), len(data))
		assert.True(t, bytes.Equal(payload, data))
	case <-ctx.Done():
		t.Fatal("未收到回显")
	}
	assert.Eventually(t, func() bool { return !ep.IsOpen() }, time.Second, time.Millisecond,
		"两个方向都关闭后端点自动关闭")
}

func TestSessionOverYamux_PeerCloseFailsSession(t *testing.T) {
	client, server := testMuxedPair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := session.New(server, types.DirInbound, nil)
	defer srv.Close()
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ctx, echo) }()

	require.NoError(t, client.Close())

	select {
	case err := <-serveErr:
		assert.Error(t, err)
	case <-ctx.Done():
		t.Fatal("Serve 未退出")
	}
	select {
	case <-srv.Done():
	case <-ctx.Done():
		t.Fatal("会话未关闭")
	}
}
