package config

import "errors"

// SessionConfig 会话配置
//
// 控制每个流的收发缓冲大小以及会话可同时承载的流数量。
type SessionConfig struct {
	// ReceiveBufferSize 每个流的接收缓冲上限（字节）
	ReceiveBufferSize int `json:"receive_buffer_size"`

	// SendBufferSize 每个流的发送缓冲上限（字节）
	SendBufferSize int `json:"send_buffer_size"`

	// MaxStreams 单个会话的最大并发流数量
	MaxStreams int `json:"max_streams"`

	// AcceptRate 每秒最多接受的入站流数量，0 表示不限制
	AcceptRate float64 `json:"accept_rate,omitempty"`

	// AcceptBurst 入站流速率限制的突发量
	AcceptBurst int `json:"accept_burst,omitempty"`

	// TombstoneSize 记住的最近关闭流 ID 数量
	TombstoneSize int `json:"tombstone_size"`
}

// DefaultSessionConfig 返回默认会话配置
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		ReceiveBufferSize: 64 * 1024, // 64 KB
		SendBufferSize:    64 * 1024, // 64 KB
		MaxStreams:        1024,
		AcceptRate:        0,
		AcceptBurst:       64,
		TombstoneSize:     256,
	}
}

// Validate 验证会话配置
func (c SessionConfig) Validate() error {
	if c.ReceiveBufferSize <= 0 {
		return errors.New("session receive buffer size must be positive")
	}
	if c.SendBufferSize <= 0 {
		return errors.New("session send buffer size must be positive")
	}
	if c.MaxStreams <= 0 {
		return errors.New("session max streams must be positive")
	}
	if c.AcceptRate < 0 {
		return errors.New("session accept rate must not be negative")
	}
	if c.AcceptRate > 0 && c.AcceptBurst <= 0 {
		return errors.New("session accept burst must be positive when rate is limited")
	}
	if c.TombstoneSize <= 0 {
		return errors.New("session tombstone size must be positive")
	}
	return nil
}
