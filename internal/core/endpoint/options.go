package endpoint

import (
	"time"

	"github.com/dep2p/go-streamio/internal/core/metrics"
	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

// Option 端点选项
type Option func(*options)

type options struct {
	idleTimeout time.Duration
	scheduler   interfaces.Scheduler
	reporter    interfaces.Reporter
	info        types.ConnInfo
}

// WithIdleTimeout 启用空闲超时，d 为 0 或 scheduler 为 nil 时不启用
func WithIdleTimeout(d time.Duration, scheduler interfaces.Scheduler) Option {
	return func(o *options) {
		o.idleTimeout = d
		o.scheduler = scheduler
	}
}

// WithReporter 设置指标上报
func WithReporter(r interfaces.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithConnInfo 设置所属连接的元信息
func WithConnInfo(info types.ConnInfo) Option {
	return func(o *options) {
		o.info = info
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.reporter = metrics.OrNop(o.reporter)
	if o.scheduler == nil {
		o.idleTimeout = 0
	}
	return o
}
