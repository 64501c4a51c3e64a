package metrics

import (
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := newCollector("test", reg, clock.NewMock())
	require.NoError(t, err)

	c.StreamOpened("quic")
	c.StreamOpened("quic")
	c.StreamClosed("quic")
	c.BytesFilled(10)
	c.BytesFilled(0)
	c.BytesFlushed(7)
	c.IncompleteFlush()
	c.ReadinessSignal(interfaces.DirectionRead)
	c.ReadinessSignal(interfaces.DirectionRead)
	c.ReadinessSignal(interfaces.DirectionWrite)
	c.IdleExpired()
	c.TeardownFailed("send_finished")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.streamsOpened.WithLabelValues("quic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.streamsClosed.WithLabelValues("quic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.streamsActive.WithLabelValues("quic")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.bytesFilled))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.bytesFlushed))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.incomplete))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.signals.WithLabelValues(interfaces.DirectionRead)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.signals.WithLabelValues(interfaces.DirectionWrite)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.idleExpirations))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.teardownFailed.WithLabelValues("send_finished")))

	s := c.Bandwidth().Totals()
	assert.Equal(t, int64(10), s.TotalIn)
	assert.Equal(t, int64(7), s.TotalOut)
}

func TestCollector_Registered(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector("test", reg)
	require.NoError(t, err)

	c.StreamOpened("yamux")
	n, err := testutil.GatherAndCount(reg, "test_streams_opened_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector("dup", reg)
	require.NoError(t, err)

	_, err = NewCollector("dup", reg)
	assert.Error(t, err)
}

func TestCollector_NilRegisterer(t *testing.T) {
	c, err := NewCollector("test", nil)
	require.NoError(t, err)
	c.BytesFlushed(1)
	assert.Equal(t, int64(1), c.Bandwidth().Totals().TotalOut)
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, Nop{}, OrNop(nil))

	c, err := NewCollector("test", nil)
	require.NoError(t, err)
	assert.Same(t, c, OrNop(c))
}
