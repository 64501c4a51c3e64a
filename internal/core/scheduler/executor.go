package scheduler

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/lib/log"
)

var logger = log.Logger("core/scheduler")

// Executor 有界回调执行器
//
// 每个任务在独立 goroutine 上运行，同时运行的任务数不超过 MaxConcurrency。
// 超出上限的任务排队等待信号量，不会在提交者的 goroutine 上执行。
type Executor struct {
	sem *semaphore.Weighted

	// mu 保证关闭后不再 wg.Add
	mu     sync.Mutex
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ interfaces.Executor = (*Executor)(nil)

// NewExecutor 创建执行器
func NewExecutor(maxConcurrency int64) *Executor {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Executor{
		sem:    semaphore.NewWeighted(maxConcurrency),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Execute 异步执行 task
//
// 执行器关闭后提交的任务被丢弃。
func (e *Executor) Execute(task func()) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		logger.Debug("执行器已关闭，丢弃任务")
		return
	}
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		if err := e.sem.Acquire(e.ctx, 1); err != nil {
			return
		}
		defer e.sem.Release(1)
		e.run(task)
	}()
}

func (e *Executor) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("回调任务 panic", "panic", r)
		}
	}()
	task()
}

// Close 停止接收新任务并等待运行中的任务结束
//
// 仍在等待信号量的任务被丢弃。
func (e *Executor) Close() error {
	e.mu.Lock()
	e.closed = true
	e.cancel()
	e.mu.Unlock()

	e.wg.Wait()
	return nil
}

// Inline 在调用者 goroutine 上直接执行任务，仅用于测试
type Inline struct{}

var _ interfaces.Executor = Inline{}

// Execute 同步执行 task
func (Inline) Execute(task func()) {
	task()
}
