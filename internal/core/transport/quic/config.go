package quic

import (
	"crypto/tls"
	"time"

	"github.com/quic-go/quic-go"

	"github.com/dep2p/go-streamio/config"
)

// Config QUIC 传输配置
type Config struct {
	// ALPN 应用层协议协商标识
	ALPN []string

	// MaxIdleTimeout 连接空闲超时
	MaxIdleTimeout time.Duration

	// KeepAlivePeriod 心跳间隔，0 表示禁用
	KeepAlivePeriod time.Duration

	// MaxIncomingStreams 对端可同时打开的双向流数量
	MaxIncomingStreams int64

	// InsecureSkipVerify 客户端跳过证书校验
	InsecureSkipVerify bool

	// ServerTLS 服务端 TLS 配置，为 nil 时生成自签名证书
	ServerTLS *tls.Config
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return fromSection(config.DefaultTransportConfig().QUIC)
}

// ConfigFromUnified 从统一配置创建 QUIC 配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return fromSection(cfg.Transport.QUIC)
}

func fromSection(c config.QUICConfig) Config {
	return Config{
		ALPN:               append([]string(nil), c.ALPN...),
		MaxIdleTimeout:     c.MaxIdleTimeout.Duration(),
		KeepAlivePeriod:    c.KeepAlivePeriod.Duration(),
		MaxIncomingStreams: c.MaxIncomingStreams,
		InsecureSkipVerify: c.InsecureSkipVerify,
	}
}

// quicConfig 转换为 quic-go 配置
func (c Config) quicConfig() *quic.Config {
	return &quic.Config{
		MaxIdleTimeout:        c.MaxIdleTimeout,
		KeepAlivePeriod:       c.KeepAlivePeriod,
		MaxIncomingStreams:    c.MaxIncomingStreams,
		MaxIncomingUniStreams: -1, // 只使用双向流
	}
}
