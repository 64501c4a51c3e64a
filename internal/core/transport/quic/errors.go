package quic

import (
	"errors"
	"fmt"
	"io"

	"github.com/quic-go/quic-go"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

var (
	// ErrTransportClosed 传输已关闭
	ErrTransportClosed = errors.New("quic transport closed")

	// ErrListenerClosed 监听器已关闭
	ErrListenerClosed = errors.New("quic listener closed")

	// ErrAlreadyListening 传输已在监听
	ErrAlreadyListening = errors.New("quic transport already listening")

	// ErrInvalidAddress 无效地址
	ErrInvalidAddress = errors.New("invalid address")
)

// 应用层错误码
const (
	codeNoError    quic.ApplicationErrorCode = 0
	codeStreamStop quic.StreamErrorCode      = 0
)

// parseError 把 quic-go 错误转换为会话可识别的错误
//
// io.EOF 原样返回；流级错误归为流重置，其余归为连接故障。
func parseError(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}

	var streamErr *quic.StreamError
	if errors.As(err, &streamErr) {
		return fmt.Errorf("%w: %v", interfaces.ErrStreamReset, err)
	}
	return fmt.Errorf("%w: %v", interfaces.ErrSessionClosed, err)
}
