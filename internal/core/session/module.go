package session

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-streamio/config"
	"github.com/dep2p/go-streamio/internal/core/endpoint"
	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// Params Session 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Factory    *endpoint.Factory
	Executor   interfaces.Executor `optional:"true"`
	Reporter   interfaces.Reporter `optional:"true"`
}

// Module 是 session 的 Fx 模块
var Module = fx.Module("session",
	fx.Provide(NewManagerFromParams),
)

// NewManagerFromParams 从参数创建 Manager，并在停止时关闭所有会话
func NewManagerFromParams(p Params, lc fx.Lifecycle) *Manager {
	m := NewManager(ConfigFromUnified(p.UnifiedCfg), p.Factory, p.Executor, p.Reporter)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return m.Close()
		},
	})
	return m
}
