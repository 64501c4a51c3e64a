// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载和保存配置
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.Endpoint.IdleTimeout = config.Duration(time.Minute)
//
//	// 从 JSON 文件加载
//	cfg, err := config.LoadFile("streamio.json")
package config

// Config 是 streamio 的完整配置结构
//
// 配置按照功能模块组织：
//   - Endpoint: 流端点（空闲超时）
//   - Session: 会话缓冲与流数量限制
//   - Transport: 传输协议（QUIC / yamux over TCP）
//   - Executor: 回调任务执行器
//   - Metrics: 指标收集
type Config struct {
	// Endpoint 端点配置
	Endpoint EndpointConfig `json:"endpoint"`

	// Session 会话配置
	Session SessionConfig `json:"session"`

	// Transport 传输层配置
	Transport TransportConfig `json:"transport"`

	// Executor 执行器配置
	Executor ExecutorConfig `json:"executor"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Endpoint:  DefaultEndpointConfig(),
		Session:   DefaultSessionConfig(),
		Transport: DefaultTransportConfig(),
		Executor:  DefaultExecutorConfig(),
		Metrics:   DefaultMetricsConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if err := c.Endpoint.Validate(); err != nil {
		return err
	}
	if err := c.Session.Validate(); err != nil {
		return err
	}
	if err := c.Transport.Validate(); err != nil {
		return err
	}
	if err := c.Executor.Validate(); err != nil {
		return err
	}
	return c.Metrics.Validate()
}
