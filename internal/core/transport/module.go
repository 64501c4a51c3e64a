package transport

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-streamio/config"
	"github.com/dep2p/go-streamio/internal/core/muxer"
	"github.com/dep2p/go-streamio/internal/core/transport/quic"
	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/lib/log"
)

var logger = log.Logger("core/transport")

// Config 传输层配置
type Config struct {
	// 协议开关
	EnableQUIC bool
	EnableTCP  bool

	// 各协议配置
	QUIC  quic.Config
	Yamux muxer.Config

	// 通用配置
	DialTimeout time.Duration
}

// ConfigFromUnified 从统一配置创建传输配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return NewConfig()
	}
	return Config{
		EnableQUIC:  cfg.Transport.EnableQUIC,
		EnableTCP:   cfg.Transport.EnableTCP,
		QUIC:        quic.ConfigFromUnified(cfg),
		Yamux:       muxer.ConfigFromUnified(cfg),
		DialTimeout: cfg.Transport.DialTimeout.Duration(),
	}
}

// NewConfig 创建默认配置
func NewConfig() Config {
	def := config.DefaultTransportConfig()
	return Config{
		EnableQUIC:  def.EnableQUIC,
		EnableTCP:   def.EnableTCP,
		QUIC:        quic.DefaultConfig(),
		Yamux:       muxer.DefaultConfig(),
		DialTimeout: def.DialTimeout.Duration(),
	}
}

// TransportManager 传输管理器
type TransportManager struct {
	config     Config
	transports map[string]interfaces.Transport
	order      []string
}

// NewTransportManager 创建传输管理器
func NewTransportManager(cfg Config) (*TransportManager, error) {
	logger.Debug("创建传输管理器", "enableQUIC", cfg.EnableQUIC, "enableTCP", cfg.EnableTCP)

	tm := &TransportManager{
		config:     cfg,
		transports: make(map[string]interfaces.Transport),
	}

	if cfg.EnableQUIC {
		qt, err := quic.New(cfg.QUIC)
		if err != nil {
			return nil, fmt.Errorf("create quic transport: %w", err)
		}
		tm.add(qt)
	}

	if cfg.EnableTCP {
		tm.add(muxer.NewTransport(cfg.Yamux))
	}

	logger.Info("传输管理器创建成功", "transportCount", len(tm.transports))
	return tm, nil
}

func (tm *TransportManager) add(t interfaces.Transport) {
	tm.transports[t.Protocol()] = t
	tm.order = append(tm.order, t.Protocol())
}

// Transport 按协议名查找传输
func (tm *TransportManager) Transport(protocol string) (interfaces.Transport, error) {
	t, ok := tm.transports[protocol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoTransport, protocol)
	}
	return t, nil
}

// GetTransports 按创建顺序返回所有传输
func (tm *TransportManager) GetTransports() []interfaces.Transport {
	out := make([]interfaces.Transport, 0, len(tm.order))
	for _, p := range tm.order {
		out = append(out, tm.transports[p])
	}
	return out
}

// Dial 用指定协议拨号，受 DialTimeout 约束
func (tm *TransportManager) Dial(ctx context.Context, protocol, addr string) (interfaces.MuxedConn, error) {
	t, err := tm.Transport(protocol)
	if err != nil {
		return nil, err
	}
	if tm.config.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tm.config.DialTimeout)
		defer cancel()
	}
	return t.Dial(ctx, addr)
}

// Close 关闭所有传输
func (tm *TransportManager) Close() error {
	var err error
	for _, t := range tm.GetTransports() {
		err = multierr.Append(err, t.Close())
	}
	return err
}

// Params Transport 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// TransportOutput Fx 输出
type TransportOutput struct {
	fx.Out

	TransportManager *TransportManager
	Transports       []interfaces.Transport `group:"transports,flatten"` // 提供到 group
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("transport",
		fx.Provide(ProvideTransports),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideTransports 提供 TransportManager 和 Transport 列表
func ProvideTransports(p Params) (TransportOutput, error) {
	tm, err := NewTransportManager(ConfigFromUnified(p.UnifiedCfg))
	if err != nil {
		return TransportOutput{}, err
	}
	return TransportOutput{
		TransportManager: tm,
		Transports:       tm.GetTransports(),
	}, nil
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(lc fx.Lifecycle, tm *TransportManager) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return tm.Close()
		},
	})
}
