package streamio

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-streamio/internal/core/endpoint"
	"github.com/dep2p/go-streamio/internal/core/metrics"
	"github.com/dep2p/go-streamio/internal/core/scheduler"
	"github.com/dep2p/go-streamio/internal/core/session"
	"github.com/dep2p/go-streamio/internal/core/transport"
	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// buildFxApp 构建 Fx 应用
//
// 模块加载顺序：
//  1. 配置
//  2. 基础服务（指标、定时器与执行器）
//  3. 端点工厂
//  4. 会话管理
//  5. 传输层
//  6. 用户扩展
//  7. Server 组件注入
func buildFxApp(o *options, srv *Server) (*fx.App, error) {
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var modules []fx.Option

	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, fx.Supply(o.config))

	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 基础服务
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		metrics.Module,
		scheduler.Module,
	)

	// ════════════════════════════════════════════════════════════════════════
	// 3-5. 端点、会话与传输
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		endpoint.Module,
		session.Module,
		transport.Module(),
	)

	// ════════════════════════════════════════════════════════════════════════
	// 6. 用户扩展（Fx Options）
	// ════════════════════════════════════════════════════════════════════════
	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 7. Server 组件注入
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, fx.Invoke(injectServerComponents(srv)))

	modules = append(modules,
		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	return fx.New(modules...), nil
}

// serverInjectParams Server 组件注入参数
type serverInjectParams struct {
	fx.In

	Sessions   *session.Manager
	Transports *transport.TransportManager
	Reporter   interfaces.Reporter `optional:"true"`
}

// injectServerComponents 把 Fx 构建的组件注入 Server
func injectServerComponents(srv *Server) func(serverInjectParams) {
	return func(p serverInjectParams) {
		srv.sessions = p.Sessions
		srv.transports = p.Transports
		srv.reporter = p.Reporter
	}
}
