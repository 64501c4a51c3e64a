package session

import (
	"github.com/dep2p/go-streamio/config"
)

// Config 会话配置
type Config struct {
	// ReceiveBufferSize 每个流的接收缓冲上限
	ReceiveBufferSize int

	// SendBufferSize 每个流的发送队列上限
	SendBufferSize int

	// MaxStreams 单个会话同时存在的流上限
	MaxStreams int

	// AcceptRate 每秒接受的入站流，0 表示不限
	AcceptRate float64

	// AcceptBurst 接受速率的突发量
	AcceptBurst int

	// TombstoneSize 记住的已关闭流 ID 数量
	TombstoneSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return fromSection(config.DefaultSessionConfig())
}

// ConfigFromUnified 从统一配置创建会话配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return fromSection(cfg.Session)
}

func fromSection(c config.SessionConfig) Config {
	return Config{
		ReceiveBufferSize: c.ReceiveBufferSize,
		SendBufferSize:    c.SendBufferSize,
		MaxStreams:        c.MaxStreams,
		AcceptRate:        c.AcceptRate,
		AcceptBurst:       c.AcceptBurst,
		TombstoneSize:     c.TombstoneSize,
	}
}

// withDefaults 用默认值补齐非正的缓冲与墓碑容量
//
// MaxStreams、AcceptRate 为 0 表示不限，保持原值。
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ReceiveBufferSize <= 0 {
		c.ReceiveBufferSize = def.ReceiveBufferSize
	}
	if c.SendBufferSize <= 0 {
		c.SendBufferSize = def.SendBufferSize
	}
	if c.TombstoneSize <= 0 {
		c.TombstoneSize = def.TombstoneSize
	}
	return c
}
