package scheduler

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-streamio/config"
	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// Config 执行器配置
type Config struct {
	MaxConcurrency int64
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: config.DefaultExecutorConfig().MaxConcurrency,
	}
}

// ConfigFromUnified 从统一配置创建执行器配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		MaxConcurrency: cfg.Executor.MaxConcurrency,
	}
}

// Params Scheduler 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Clock      clock.Clock    `optional:"true"`
}

// Result Scheduler 模块导出
type Result struct {
	fx.Out

	Scheduler interfaces.Scheduler
	Executor  interfaces.Executor
}

// Module 是 scheduler 的 Fx 模块
var Module = fx.Module("scheduler",
	fx.Provide(ProvideServices),
)

// ProvideServices 创建定时器服务和执行器，并在停止时关闭执行器
func ProvideServices(p Params, lc fx.Lifecycle) Result {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	exec := NewExecutor(cfg.MaxConcurrency)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return exec.Close()
		},
	})

	return Result{
		Scheduler: New(p.Clock),
		Executor:  exec,
	}
}
