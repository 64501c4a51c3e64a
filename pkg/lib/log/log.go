// Package log 提供 streamio 统一日志接口
//
// 基于 Go 标准库 log/slog 封装，按组件输出结构化日志。
//
// 环境变量：
//   - STREAMIO_LOG_LEVEL: debug | info | warn | error（默认 info）
//   - STREAMIO_LOG_FORMAT: text | json（默认 text）
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	mu       sync.RWMutex
	output   io.Writer = os.Stderr
	level              = new(slog.LevelVar)
	useJSON  bool
	instance *slog.Logger
)

// SetOutput 设置日志输出目标
//
// 已创建的 LazyLogger 在下一次调用时自动使用新的输出。
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	instance = newLogger()
	mu.Unlock()
}

// SetLevel 设置日志级别
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Discard 丢弃所有日志输出，主要用于测试
func Discard() {
	SetOutput(io.Discard)
}

// Default 返回当前的根 logger
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}
	if useJSON {
		return slog.New(slog.NewJSONHandler(output, opts))
	}
	return slog.New(slog.NewTextHandler(output, opts))
}

// parseLevel 解析级别字符串，无法识别时返回 Info
func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次日志调用时获取当前根 logger，支持在运行时切换输出目标。
//
// 使用方式：
//
//	var logger = log.Logger("core/endpoint")
//	logger.Debug("流已关闭", "stream", id)
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

func (l *LazyLogger) logger() *slog.Logger {
	return Default().With("component", l.component)
}

// Enabled 检查指定级别是否会输出
func (l *LazyLogger) Enabled(lvl slog.Level) bool {
	return Default().Enabled(context.Background(), lvl)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	if !l.Enabled(LevelDebug) {
		return
	}
	l.logger().Debug(msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	l.logger().Info(msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	l.logger().Warn(msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	l.logger().Error(msg, args...)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return l.logger().With(args...)
}

func init() {
	level.Set(parseLevel(os.Getenv("STREAMIO_LOG_LEVEL")))
	useJSON = strings.EqualFold(os.Getenv("STREAMIO_LOG_FORMAT"), "json")
	instance = newLogger()
}
