package interfaces

import "time"

// Cancelable 可取消的定时任务
type Cancelable interface {
	// Cancel 取消任务，任务尚未执行时返回 true
	Cancel() bool
}

// Scheduler 定时器服务
//
// 端点只依赖此接口提供空闲超时回调，不关心定时器实现。
type Scheduler interface {
	// Schedule 在 d 之后执行 task
	Schedule(d time.Duration, task func()) Cancelable

	// Now 返回调度器时钟的当前时间
	Now() time.Time
}

// Executor 任务执行器
//
// 会话把 OnReadable 返回的延迟任务交给 Executor 执行，
// 从不在会话自己的 goroutine 上内联执行消费者回调。
type Executor interface {
	// Execute 异步执行 task
	Execute(task func())
}
