package config

import (
	"errors"
	"time"
)

// EndpointConfig 流端点配置
type EndpointConfig struct {
	// IdleTimeout 空闲超时，0 表示禁用
	//
	// 超时后若有待决的读/写注册则以超时错误通知，否则关闭端点。
	IdleTimeout Duration `json:"idle_timeout"`
}

// DefaultEndpointConfig 返回默认端点配置
func DefaultEndpointConfig() EndpointConfig {
	return EndpointConfig{
		IdleTimeout: Duration(30 * time.Second),
	}
}

// Validate 验证端点配置
func (c EndpointConfig) Validate() error {
	if c.IdleTimeout < 0 {
		return errors.New("endpoint idle timeout must not be negative")
	}
	return nil
}

// WithIdleTimeout 设置空闲超时
func (c EndpointConfig) WithIdleTimeout(d time.Duration) EndpointConfig {
	c.IdleTimeout = Duration(d)
	return c
}
