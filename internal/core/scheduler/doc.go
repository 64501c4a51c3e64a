// Package scheduler 提供端点使用的定时器服务与回调执行器
//
// Scheduler 基于 benbjohnson/clock，测试中可以替换为 clock.Mock 精确推进时间。
// Executor 用加权信号量限制同时执行的回调数量。
package scheduler
