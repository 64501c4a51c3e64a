package muxer

import (
	"net"
	"testing"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// testConnPair 创建测试用的 TCP 连接对
func testConnPair(t *testing.T) (net.Conn, net.Conn) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	var serverConn net.Conn
	done := make(chan struct{})
	go func() {
		serverConn, _ = ln.Accept()
		close(done)
	}()

	clientConn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	<-done

	return clientConn, serverConn
}

// testMuxedPair 在 TCP 连接对上建立 yamux 会话，测试结束时关闭
func testMuxedPair(t *testing.T) (client, server interfaces.MuxedConn) {
	t.Helper()
	cc, sc := testConnPair(t)
	tr := NewTransport(DefaultConfig())

	client, err := tr.NewConn(cc, false)
	if err != nil {
		t.Fatal(err)
	}
	server, err = tr.NewConn(sc, true)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})
	return client, server
}
