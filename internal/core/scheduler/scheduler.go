package scheduler

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// Scheduler 基于 clock.Clock 的定时器服务
type Scheduler struct {
	clock clock.Clock
}

var _ interfaces.Scheduler = (*Scheduler)(nil)

// New 创建 Scheduler，clk 为 nil 时使用系统时钟
func New(clk clock.Clock) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}
	return &Scheduler{clock: clk}
}

// Schedule 在 d 之后于独立 goroutine 上执行 task
func (s *Scheduler) Schedule(d time.Duration, task func()) interfaces.Cancelable {
	return timerTask{s.clock.AfterFunc(d, task)}
}

// Now 返回调度器时钟的当前时间
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Clock 返回底层时钟
func (s *Scheduler) Clock() clock.Clock {
	return s.clock
}

type timerTask struct {
	t *clock.Timer
}

func (t timerTask) Cancel() bool {
	return t.t.Stop()
}
