package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, 30*time.Second, cfg.Endpoint.IdleTimeout.Duration())
	assert.Equal(t, 64*1024, cfg.Session.ReceiveBufferSize)
	assert.True(t, cfg.Transport.EnableQUIC)
	assert.False(t, cfg.Transport.EnableTCP)
}

// TestConfig_ValidateErrors 测试各子配置的验证错误
func TestConfig_ValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative idle timeout", func(c *Config) { c.Endpoint.IdleTimeout = -1 }},
		{"zero receive buffer", func(c *Config) { c.Session.ReceiveBufferSize = 0 }},
		{"zero send buffer", func(c *Config) { c.Session.SendBufferSize = 0 }},
		{"zero max streams", func(c *Config) { c.Session.MaxStreams = 0 }},
		{"negative accept rate", func(c *Config) { c.Session.AcceptRate = -1 }},
		{"rate without burst", func(c *Config) { c.Session.AcceptRate = 10; c.Session.AcceptBurst = 0 }},
		{"zero tombstones", func(c *Config) { c.Session.TombstoneSize = 0 }},
		{"no transport", func(c *Config) { c.Transport.EnableQUIC = false; c.Transport.EnableTCP = false }},
		{"empty alpn", func(c *Config) { c.Transport.QUIC.ALPN = nil }},
		{"zero quic idle", func(c *Config) { c.Transport.QUIC.MaxIdleTimeout = 0 }},
		{"zero quic streams", func(c *Config) { c.Transport.QUIC.MaxIncomingStreams = 0 }},
		{"small yamux window", func(c *Config) { c.Transport.EnableTCP = true; c.Transport.TCP.MaxStreamWindowSize = 1024 }},
		{"zero dial timeout", func(c *Config) { c.Transport.DialTimeout = 0 }},
		{"zero concurrency", func(c *Config) { c.Executor.MaxConcurrency = 0 }},
		{"empty namespace", func(c *Config) { c.Metrics.Namespace = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// TestConfig_DisabledIdleTimeout 0 表示禁用空闲超时
func TestConfig_DisabledIdleTimeout(t *testing.T) {
	cfg := NewConfig()
	cfg.Endpoint = cfg.Endpoint.WithIdleTimeout(0)
	assert.NoError(t, cfg.Validate())
}

// TestFromJSON 测试从 JSON 加载，未出现字段保留默认值
func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"endpoint": {"idle_timeout": "1m"},
		"session": {"max_streams": 16},
		"transport": {"enable_tcp": true, "tcp": {"listen_addr": "127.0.0.1:9000", "max_stream_window_size": 1048576, "keep_alive_interval": "10s"}}
	}`)

	cfg, err := FromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.Endpoint.IdleTimeout.Duration())
	assert.Equal(t, 16, cfg.Session.MaxStreams)
	assert.Equal(t, 64*1024, cfg.Session.SendBufferSize)
	assert.True(t, cfg.Transport.EnableTCP)
	assert.True(t, cfg.Transport.EnableQUIC)
	assert.Equal(t, "127.0.0.1:9000", cfg.Transport.TCP.ListenAddr)
	assert.NoError(t, cfg.Validate())
}

// TestFromJSON_Invalid 测试非法 JSON
func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON([]byte(`{"endpoint": {"idle_timeout": "soon"}}`))
	assert.Error(t, err)

	_, err = FromJSON([]byte(`not json`))
	assert.Error(t, err)
}

// TestLoadFile 测试从文件加载
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"executor": {"max_concurrency": 8}}`), 0o600))
	cfg, err := LoadFile(good)
	require.NoError(t, err)
	assert.Equal(t, int64(8), cfg.Executor.MaxConcurrency)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"executor": {"max_concurrency": 0}}`), 0o600))
	_, err = LoadFile(bad)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

// TestToJSON_RoundTrip 序列化后能原样加载
func TestToJSON_RoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.Transport = cfg.Transport.WithTCP(true).WithDialTimeout(3 * time.Second)

	data, err := cfg.ToJSON()
	require.NoError(t, err)

	loaded, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

// TestDuration_JSON 测试 Duration 的两种 JSON 格式
func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"250ms"`), &d))
	assert.Equal(t, 250*time.Millisecond, d.Duration())

	require.NoError(t, json.Unmarshal([]byte(`1000`), &d))
	assert.Equal(t, time.Microsecond, d.Duration())

	assert.Error(t, json.Unmarshal([]byte(`true`), &d))

	out, err := json.Marshal(Duration(2 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"2s"`, string(out))
	assert.Equal(t, "2s", Duration(2*time.Second).String())
}
