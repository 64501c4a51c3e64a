package config

import "errors"

// ExecutorConfig 回调执行器配置
type ExecutorConfig struct {
	// MaxConcurrency 同时执行的回调任务上限
	MaxConcurrency int64 `json:"max_concurrency"`
}

// DefaultExecutorConfig 返回默认执行器配置
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxConcurrency: 256,
	}
}

// Validate 验证执行器配置
func (c ExecutorConfig) Validate() error {
	if c.MaxConcurrency <= 0 {
		return errors.New("executor max concurrency must be positive")
	}
	return nil
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用 Prometheus 指标
	Enabled bool `json:"enabled"`

	// Namespace 指标命名空间
	Namespace string `json:"namespace"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "streamio",
	}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if c.Enabled && c.Namespace == "" {
		return errors.New("metrics namespace must not be empty when enabled")
	}
	return nil
}
