package metrics

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// Collector Prometheus 指标收集器
type Collector struct {
	streamsOpened   *prometheus.CounterVec
	streamsClosed   *prometheus.CounterVec
	streamsActive   *prometheus.GaugeVec
	bytesFilled     prometheus.Counter
	bytesFlushed    prometheus.Counter
	incomplete      prometheus.Counter
	signals         *prometheus.CounterVec
	idleExpirations prometheus.Counter
	teardownFailed  *prometheus.CounterVec

	bandwidth *BandwidthCounter
}

var _ interfaces.Reporter = (*Collector)(nil)

// NewCollector 创建收集器并注册到 reg
//
// reg 为 nil 时不注册（仅内存统计）。
func NewCollector(namespace string, reg prometheus.Registerer) (*Collector, error) {
	return newCollector(namespace, reg, clock.New())
}

func newCollector(namespace string, reg prometheus.Registerer, clk clock.Clock) (*Collector, error) {
	c := &Collector{
		streamsOpened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "streams_opened_total",
			Help:      "Number of stream endpoints opened.",
		}, []string{"protocol"}),
		streamsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "streams_closed_total",
			Help:      "Number of stream endpoints closed.",
		}, []string{"protocol"}),
		streamsActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "streams_active",
			Help:      "Number of currently open stream endpoints.",
		}, []string{"protocol"}),
		bytesFilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_filled_total",
			Help:      "Bytes delivered to consumers by Fill.",
		}),
		bytesFlushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_flushed_total",
			Help:      "Bytes accepted by the transport on Flush.",
		}),
		incomplete: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incomplete_flushes_total",
			Help:      "Flush calls that could not drain all buffers.",
		}),
		signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readiness_signals_total",
			Help:      "Readiness signals raised by the session.",
		}, []string{"direction"}),
		idleExpirations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idle_expirations_total",
			Help:      "Idle timeouts that fired on an endpoint.",
		}),
		teardownFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "teardown_failures_total",
			Help:      "Close steps that failed and were suppressed.",
		}, []string{"op"}),
		bandwidth: NewBandwidthCounter(clk),
	}

	if reg != nil {
		for _, col := range c.collectors() {
			if err := reg.Register(col); err != nil {
				return nil, fmt.Errorf("register metrics: %w", err)
			}
		}
	}
	return c, nil
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.streamsOpened,
		c.streamsClosed,
		c.streamsActive,
		c.bytesFilled,
		c.bytesFlushed,
		c.incomplete,
		c.signals,
		c.idleExpirations,
		c.teardownFailed,
	}
}

// Bandwidth 返回内存带宽统计
func (c *Collector) Bandwidth() *BandwidthCounter {
	return c.bandwidth
}

// StreamOpened 实现 interfaces.Reporter
func (c *Collector) StreamOpened(protocol string) {
	c.streamsOpened.WithLabelValues(protocol).Inc()
	c.streamsActive.WithLabelValues(protocol).Inc()
}

// StreamClosed 实现 interfaces.Reporter
func (c *Collector) StreamClosed(protocol string) {
	c.streamsClosed.WithLabelValues(protocol).Inc()
	c.streamsActive.WithLabelValues(protocol).Dec()
}

// BytesFilled 实现 interfaces.Reporter
func (c *Collector) BytesFilled(n int) {
	if n <= 0 {
		return
	}
	c.bytesFilled.Add(float64(n))
	c.bandwidth.LogRecv(int64(n))
}

// BytesFlushed 实现 interfaces.Reporter
func (c *Collector) BytesFlushed(n int) {
	if n <= 0 {
		return
	}
	c.bytesFlushed.Add(float64(n))
	c.bandwidth.LogSent(int64(n))
}

// IncompleteFlush 实现 interfaces.Reporter
func (c *Collector) IncompleteFlush() {
	c.incomplete.Inc()
}

// ReadinessSignal 实现 interfaces.Reporter
func (c *Collector) ReadinessSignal(direction string) {
	c.signals.WithLabelValues(direction).Inc()
}

// IdleExpired 实现 interfaces.Reporter
func (c *Collector) IdleExpired() {
	c.idleExpirations.Inc()
}

// TeardownFailed 实现 interfaces.Reporter
func (c *Collector) TeardownFailed(op string) {
	c.teardownFailed.WithLabelValues(op).Inc()
}
