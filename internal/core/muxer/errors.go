package muxer

import (
	"errors"
	"fmt"
	"io"

	"github.com/libp2p/go-yamux/v5"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

var (
	// ErrTransportClosed 传输已关闭
	ErrTransportClosed = errors.New("yamux transport closed")

	// ErrListenerClosed 监听器已关闭
	ErrListenerClosed = errors.New("yamux listener closed")
)

// parseError 转换 yamux 错误为会话可识别的错误
func parseError(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}

	// 检查流重置错误
	if errors.Is(err, yamux.ErrStreamReset) {
		return fmt.Errorf("%w: %v", interfaces.ErrStreamReset, err)
	}

	// 检查会话关闭错误
	if errors.Is(err, yamux.ErrSessionShutdown) {
		return fmt.Errorf("%w: %v", interfaces.ErrSessionClosed, err)
	}

	return err
}

// sessionError 把会话级操作的失败归为会话关闭
func sessionError(err error) error {
	if errors.Is(err, interfaces.ErrSessionClosed) {
		return err
	}
	return fmt.Errorf("%w: %v", interfaces.ErrSessionClosed, err)
}
