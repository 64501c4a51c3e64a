package endpoint

import (
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-streamio/config"
	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

// Config 端点配置
type Config struct {
	// IdleTimeout 空闲超时，0 表示禁用
	IdleTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		IdleTimeout: config.DefaultEndpointConfig().IdleTimeout.Duration(),
	}
}

// ConfigFromUnified 从统一配置创建端点配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		IdleTimeout: cfg.Endpoint.IdleTimeout.Duration(),
	}
}

// ============================================================================
//                              Factory
// ============================================================================

// Factory 按统一配置创建端点
//
// 会话通过 Factory 为每个流创建端点，端点共享定时器服务和指标上报。
type Factory struct {
	cfg       Config
	scheduler interfaces.Scheduler
	reporter  interfaces.Reporter
}

// NewFactory 创建端点工厂
func NewFactory(cfg Config, scheduler interfaces.Scheduler, reporter interfaces.Reporter) *Factory {
	return &Factory{
		cfg:       cfg,
		scheduler: scheduler,
		reporter:  reporter,
	}
}

// New 为会话中的流创建端点
func (f *Factory) New(id types.StreamID, session interfaces.Session, info types.ConnInfo) *StreamEndpoint {
	return New(id, session,
		WithIdleTimeout(f.cfg.IdleTimeout, f.scheduler),
		WithReporter(f.reporter),
		WithConnInfo(info),
	)
}

// Config 返回工厂配置
func (f *Factory) Config() Config {
	return f.cfg
}

// Params Endpoint 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config       `optional:"true"`
	Scheduler  interfaces.Scheduler `optional:"true"`
	Reporter   interfaces.Reporter  `optional:"true"`
}

// Module 是 endpoint 的 Fx 模块
var Module = fx.Module("endpoint",
	fx.Provide(NewFactoryFromParams),
)

// NewFactoryFromParams 从参数创建 Factory
func NewFactoryFromParams(p Params) *Factory {
	return NewFactory(ConfigFromUnified(p.UnifiedCfg), p.Scheduler, p.Reporter)
}
