package endpoint

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dep2p/go-streamio/pkg/types"
	"github.com/dep2p/go-streamio/tests/mocks"
)

func newMockEndpoint(t *testing.T) (*StreamEndpoint, *mocks.MockSession) {
	t.Helper()
	ctrl := gomock.NewController(t)
	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().LocalAddr().Return(&net.TCPAddr{Port: 1})
	sess.EXPECT().RemoteAddr().Return(&net.TCPAddr{Port: 2})
	return New(testID, sess), sess
}

// Close 之后任何操作都不再访问会话
func TestPostCloseFencing(t *testing.T) {
	ep, sess := newMockEndpoint(t)

	gomock.InOrder(
		sess.EXPECT().SendFinished(testID).Return(nil),
		sess.EXPECT().OnClose(testID),
	)
	ep.Close(nil)

	_, err := ep.Fill(make([]byte, 8))
	assert.ErrorIs(t, err, ErrClosed)

	bufs := net.Buffers{[]byte("data")}
	done, err := ep.Flush(&bufs)
	assert.False(t, done)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, net.Buffers{[]byte("data")}, bufs)

	ep.ShutdownInput()
	ep.ShutdownOutput()
	ep.Close(errors.New("again"))
	ep.OnReadable()()
	ep.OnWritable()
}

func TestFill_AutoShutdownOnFin(t *testing.T) {
	ep, sess := newMockEndpoint(t)

	gomock.InOrder(
		sess.EXPECT().Fill(testID, gomock.Any()).DoAndReturn(func(_ types.StreamID, buf []byte) (int, error) {
			return copy(buf, "ab"), nil
		}),
		sess.EXPECT().IsFinished(testID).Return(true),
		sess.EXPECT().ShutdownInput(testID).Return(nil),
	)

	n, err := ep.Fill(make([]byte, 8))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, ep.IsInputShutdown())

	// 输入已关闭，不再访问会话
	n, err = ep.Fill(make([]byte, 8))
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestShutdownOutput_FailureSwallowed(t *testing.T) {
	ep, sess := newMockEndpoint(t)

	sess.EXPECT().ShutdownOutput(testID).Return(errors.New("stream gone"))
	ep.ShutdownOutput()
	assert.True(t, ep.IsOutputShutdown())
	assert.True(t, ep.IsOpen())

	// ShutdownOutput 未能排队 FIN，Close 补发后再释放记录
	gomock.InOrder(
		sess.EXPECT().SendFinished(testID).Return(nil),
		sess.EXPECT().OnClose(testID),
	)
	ep.Close(nil)
}

// Close 与进行中的 ShutdownOutput 并发：Close 等待其完成，且返回后不再访问会话
func TestClose_WaitsForInflightShutdownOutput(t *testing.T) {
	ep, sess := newMockEndpoint(t)

	entered := make(chan struct{})
	proceed := make(chan struct{})
	closed := make(chan struct{})
	shutdownDone := make(chan struct{})

	gomock.InOrder(
		sess.EXPECT().ShutdownOutput(testID).DoAndReturn(func(types.StreamID) error {
			close(entered)
			<-proceed
			return nil
		}),
		sess.EXPECT().OnClose(testID),
	)

	go func() {
		defer close(shutdownDone)
		ep.ShutdownOutput()
	}()
	<-entered

	go func() {
		defer close(closed)
		ep.Close(nil)
	}()

	select {
	case <-closed:
		t.Fatal("Close 未等待进行中的 ShutdownOutput")
	case <-time.After(20 * time.Millisecond):
	}

	close(proceed)
	<-closed
	<-shutdownDone
	assert.False(t, ep.IsOpen())
}

// ShutdownOutput 失败与 Close 并发时 FIN 仍由 Close 发出
func TestClose_SendsFinWhenInflightShutdownOutputFails(t *testing.T) {
	ep, sess := newMockEndpoint(t)

	entered := make(chan struct{})
	proceed := make(chan struct{})
	closed := make(chan struct{})

	gomock.InOrder(
		sess.EXPECT().ShutdownOutput(testID).DoAndReturn(func(types.StreamID) error {
			close(entered)
			<-proceed
			return errors.New("stream gone")
		}),
		sess.EXPECT().SendFinished(testID).Return(nil),
		sess.EXPECT().OnClose(testID),
	)

	go ep.ShutdownOutput()
	<-entered
	go func() {
		defer close(closed)
		ep.Close(nil)
	}()
	close(proceed)
	<-closed
}

// Close 先释放流时，随后到达的半关闭不再调用会话
func TestShutdown_AfterCloseSkipsSession(t *testing.T) {
	ep, sess := newMockEndpoint(t)

	gomock.InOrder(
		sess.EXPECT().SendFinished(testID).Return(nil),
		sess.EXPECT().OnClose(testID),
	)
	ep.Close(nil)
	ep.ShutdownOutput()
	ep.ShutdownInput()
}

func TestFlush_StopsAtFirstShortBuffer(t *testing.T) {
	ep, sess := newMockEndpoint(t)

	gomock.InOrder(
		sess.EXPECT().Flush(testID, []byte("first")).Return(5, nil),
		sess.EXPECT().Flush(testID, []byte("second")).Return(2, nil),
	)

	bufs := net.Buffers{[]byte("first"), []byte("second"), []byte("third")}
	done, err := ep.Flush(&bufs)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, net.Buffers{[]byte("cond"), []byte("third")}, bufs)
}
