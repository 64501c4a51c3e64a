package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamID_String(t *testing.T) {
	assert.Equal(t, "0", StreamID(0).String())
	assert.Equal(t, "42", StreamID(42).String())
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "inbound", DirInbound.String())
	assert.Equal(t, "outbound", DirOutbound.String())
	assert.Equal(t, "unknown", DirUnknown.String())
	assert.Equal(t, "unknown", Direction(99).String())
}

func TestEndpointState_String(t *testing.T) {
	tests := []struct {
		state EndpointState
		want  string
	}{
		{StateOpen, "open"},
		{StateInputShutdown, "input-shutdown"},
		{StateOutputShutdown, "output-shutdown"},
		{StateClosed, "closed"},
		{EndpointState(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
