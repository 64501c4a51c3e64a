package streamio

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-streamio/config"
	"github.com/dep2p/go-streamio/internal/core/session"
)

// Config 统一配置
type Config = config.Config

// NewConfig 创建默认配置
func NewConfig() *Config {
	return config.NewConfig()
}

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 统一配置
	config *config.Config

	// 入站流处理
	handler session.StreamHandler

	// 指标注册表
	registerer prometheus.Registerer

	// 用户扩展
	userFxOptions []fx.Option
}

func newOptions() *options {
	return &options{
		config: config.NewConfig(),
	}
}

// WithConfig 替换完整配置
//
// 应放在其他选项之前，否则会覆盖它们的修改。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		o.config = cfg
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		o.config = cfg
		return nil
	}
}

// WithHandler 设置入站流处理函数
//
// 未设置时入站流被立即关闭。
func WithHandler(h session.StreamHandler) Option {
	return func(o *options) error {
		o.handler = h
		return nil
	}
}

// WithQUICListenAddr 启用 QUIC 并监听 addr
func WithQUICListenAddr(addr string) Option {
	return func(o *options) error {
		o.config.Transport.EnableQUIC = true
		o.config.Transport.QUIC.ListenAddr = addr
		return nil
	}
}

// WithTCPListenAddr 启用 TCP+yamux 并监听 addr
func WithTCPListenAddr(addr string) Option {
	return func(o *options) error {
		o.config.Transport.EnableTCP = true
		o.config.Transport.TCP.ListenAddr = addr
		return nil
	}
}

// WithTransports 设置启用的传输协议
func WithTransports(quic, tcp bool) Option {
	return func(o *options) error {
		o.config.Transport = o.config.Transport.WithQUIC(quic).WithTCP(tcp)
		return nil
	}
}

// WithInsecureSkipVerify 拨号 QUIC 时跳过证书校验
//
// 仅用于测试或自签名证书的内网环境。
func WithInsecureSkipVerify() Option {
	return func(o *options) error {
		o.config.Transport.QUIC.InsecureSkipVerify = true
		return nil
	}
}

// WithIdleTimeout 设置端点空闲超时，0 表示禁用
func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("invalid idle timeout %s", d)
		}
		o.config.Endpoint = o.config.Endpoint.WithIdleTimeout(d)
		return nil
	}
}

// WithMetricsRegisterer 把指标注册到 reg
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		o.config.Metrics.Enabled = true
		o.registerer = reg
		return nil
	}
}

// WithoutMetrics 禁用指标收集
func WithoutMetrics() Option {
	return func(o *options) error {
		o.config.Metrics.Enabled = false
		return nil
	}
}

// WithFxOption 追加 Fx 选项，用于替换或装饰内部组件
func WithFxOption(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
