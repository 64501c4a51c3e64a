package config

import (
	"errors"
	"time"
)

// TransportConfig 传输层配置
//
// 配置支持的传输协议及其参数：
//   - QUIC: 基于 UDP，原生多路复用（推荐）
//   - TCP: TCP 连接上使用 yamux 多路复用
type TransportConfig struct {
	// QUIC 配置
	EnableQUIC bool       `json:"enable_quic"`
	QUIC       QUICConfig `json:"quic,omitempty"`

	// TCP 配置
	EnableTCP bool      `json:"enable_tcp"`
	TCP       TCPConfig `json:"tcp,omitempty"`

	// DialTimeout 拨号超时
	DialTimeout Duration `json:"dial_timeout"`
}

// QUICConfig QUIC 传输配置
type QUICConfig struct {
	// ListenAddr 监听地址（host:port），为空则不监听
	ListenAddr string `json:"listen_addr,omitempty"`

	// ALPN 应用层协议协商标识
	ALPN []string `json:"alpn"`

	// MaxIdleTimeout 最大空闲超时
	MaxIdleTimeout Duration `json:"max_idle_timeout"`

	// KeepAlivePeriod KeepAlive 周期，0 表示禁用
	KeepAlivePeriod Duration `json:"keep_alive_period"`

	// MaxIncomingStreams 对端可打开的最大双向流数量
	MaxIncomingStreams int64 `json:"max_incoming_streams"`

	// InsecureSkipVerify 客户端跳过证书校验（仅用于测试和内网）
	InsecureSkipVerify bool `json:"insecure_skip_verify,omitempty"`
}

// TCPConfig TCP + yamux 传输配置
type TCPConfig struct {
	// ListenAddr 监听地址（host:port），为空则不监听
	ListenAddr string `json:"listen_addr,omitempty"`

	// MaxStreamWindowSize yamux 流窗口大小
	MaxStreamWindowSize uint32 `json:"max_stream_window_size"`

	// KeepAliveInterval yamux 心跳间隔
	KeepAliveInterval Duration `json:"keep_alive_interval"`
}

// DefaultTransportConfig 返回默认传输配置
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		EnableQUIC: true,
		QUIC: QUICConfig{
			ALPN:               []string{"streamio"},
			MaxIdleTimeout:     Duration(30 * time.Second), // 空闲超时：30 秒
			KeepAlivePeriod:    Duration(15 * time.Second), // KeepAlive 间隔：15 秒
			MaxIncomingStreams: 1024,
		},

		EnableTCP: false,
		TCP: TCPConfig{
			MaxStreamWindowSize: 16 * 1024 * 1024, // 16 MB
			KeepAliveInterval:   Duration(30 * time.Second),
		},

		DialTimeout: Duration(10 * time.Second),
	}
}

// Validate 验证传输配置
func (c TransportConfig) Validate() error {
	if !c.EnableQUIC && !c.EnableTCP {
		return errors.New("at least one transport must be enabled")
	}

	if c.EnableQUIC {
		if len(c.QUIC.ALPN) == 0 {
			return errors.New("QUIC ALPN must not be empty")
		}
		if c.QUIC.MaxIdleTimeout <= 0 {
			return errors.New("QUIC max idle timeout must be positive")
		}
		if c.QUIC.KeepAlivePeriod < 0 {
			return errors.New("QUIC keep alive period must not be negative")
		}
		if c.QUIC.MaxIncomingStreams <= 0 {
			return errors.New("QUIC max incoming streams must be positive")
		}
	}

	if c.EnableTCP {
		if c.TCP.MaxStreamWindowSize < 256*1024 {
			return errors.New("TCP yamux stream window must be at least 256 KB")
		}
		if c.TCP.KeepAliveInterval <= 0 {
			return errors.New("TCP yamux keep alive interval must be positive")
		}
	}

	if c.DialTimeout <= 0 {
		return errors.New("dial timeout must be positive")
	}
	return nil
}

// WithQUIC 设置是否启用 QUIC
func (c TransportConfig) WithQUIC(enabled bool) TransportConfig {
	c.EnableQUIC = enabled
	return c
}

// WithTCP 设置是否启用 TCP
func (c TransportConfig) WithTCP(enabled bool) TransportConfig {
	c.EnableTCP = enabled
	return c
}

// WithDialTimeout 设置拨号超时
func (c TransportConfig) WithDialTimeout(timeout time.Duration) TransportConfig {
	c.DialTimeout = Duration(timeout)
	return c
}
