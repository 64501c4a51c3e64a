package quic

import (
	"errors"
	"io"
	"testing"

	"github.com/quic-go/quic-go"
	"github.com/stretchr/testify/assert"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

func TestParseError(t *testing.T) {
	assert.NoError(t, parseError(nil))
	assert.Same(t, io.EOF, parseError(io.EOF))

	streamErr := &quic.StreamError{StreamID: 4, ErrorCode: 7, Remote: true}
	err := parseError(streamErr)
	assert.ErrorIs(t, err, interfaces.ErrStreamReset)
	assert.NotErrorIs(t, err, interfaces.ErrSessionClosed)

	appErr := &quic.ApplicationError{Remote: true, ErrorCode: 0, ErrorMessage: "bye"}
	err = parseError(appErr)
	assert.ErrorIs(t, err, interfaces.ErrSessionClosed)
	assert.Contains(t, err.Error(), "bye")

	err = parseError(&quic.IdleTimeoutError{})
	assert.ErrorIs(t, err, interfaces.ErrSessionClosed)

	err = parseError(errors.New("other"))
	assert.ErrorIs(t, err, interfaces.ErrSessionClosed)
}
