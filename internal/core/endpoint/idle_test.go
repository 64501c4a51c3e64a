package endpoint

import (
	"net"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-streamio/internal/core/scheduler"
	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// manualScheduler 在 Advance 时于调用者 goroutine 上同步执行到期任务
type manualScheduler struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*manualTask
}

type manualTask struct {
	at       time.Time
	fn       func()
	canceled bool
	fired    bool
}

func (t *manualTask) Cancel() bool {
	if t.fired || t.canceled {
		return false
	}
	t.canceled = true
	return true
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{now: time.Unix(1700000000, 0)}
}

func (s *manualScheduler) Schedule(d time.Duration, fn func()) interfaces.Cancelable {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{at: s.now.Add(d), fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

func (s *manualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		sort.Slice(s.tasks, func(i, j int) bool { return s.tasks[i].at.Before(s.tasks[j].at) })
		var next *manualTask
		for i, t := range s.tasks {
			if !t.at.After(target) {
				next = t
				s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
				break
			}
		}
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		s.mu.Unlock()

		if !next.canceled {
			next.fired = true
			next.fn()
		}
	}
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

// ============================================================================
//                              空闲超时
// ============================================================================

func TestIdleTimeout_ClosesIdleEndpoint(t *testing.T) {
	sched := newManualScheduler()
	rep := &recordingReporter{}
	ep, sess := newTestEndpoint(t, WithIdleTimeout(time.Second, sched), WithReporter(rep))
	assert.Equal(t, time.Second, ep.IdleTimeout())

	var cause error
	ep.OnClose(func(err error) { cause = err })

	sched.Advance(999 * time.Millisecond)
	assert.True(t, ep.IsOpen())

	sched.Advance(time.Millisecond)
	assert.False(t, ep.IsOpen())
	assert.ErrorIs(t, cause, ErrIdleTimeout)
	assert.True(t, sess.FinSent(testID))
	assert.Equal(t, 1, rep.idle)
}

func TestIdleTimeout_ActivityDefersExpiry(t *testing.T) {
	sched := newManualScheduler()
	ep, sess := newTestEndpoint(t, WithIdleTimeout(time.Second, sched))

	sched.Advance(500 * time.Millisecond)
	sess.Deliver(testID, []byte("x"))
	n, err := ep.Fill(make([]byte, 1))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	sched.Advance(600 * time.Millisecond)
	assert.True(t, ep.IsOpen(), "活动后应按剩余时间重新调度")
	assert.Equal(t, 600*time.Millisecond, ep.IdleFor())

	sched.Advance(400 * time.Millisecond)
	assert.False(t, ep.IsOpen())
}

func TestIdleTimeout_FailsPendingFill(t *testing.T) {
	sched := newManualScheduler()
	ep, _ := newTestEndpoint(t, WithIdleTimeout(time.Second, sched))

	var got error
	require.NoError(t, ep.RegisterFillInterest(func(err error) { got = err }))

	sched.Advance(time.Second)
	assert.ErrorIs(t, got, ErrIdleTimeout)
	assert.True(t, ep.IsOpen(), "有等待者时由消费者决定是否关闭")
	assert.False(t, ep.IsFillInterested())

	// 之后仍然空闲且无等待者则关闭
	sched.Advance(time.Second)
	assert.False(t, ep.IsOpen())
}

func TestIdleTimeout_FailsPendingWrite(t *testing.T) {
	sched := newManualScheduler()
	ep, sess := newTestEndpoint(t, WithIdleTimeout(time.Second, sched))
	sess.SetSendCapacity(testID, 0)

	var got error
	bufs := net.Buffers{[]byte("blocked")}
	ep.Write(func(err error) { got = err }, &bufs)

	sched.Advance(time.Second)
	assert.ErrorIs(t, got, ErrIdleTimeout)
	assert.False(t, ep.IsWriting())
}

func TestIdleTimeout_CanceledOnClose(t *testing.T) {
	sched := newManualScheduler()
	ep, _ := newTestEndpoint(t, WithIdleTimeout(time.Second, sched))
	require.Equal(t, 1, sched.Pending())

	ep.Close(nil)
	assert.Zero(t, sched.Pending())
}

func TestIdleTimeout_DisabledWithoutScheduler(t *testing.T) {
	ep, _ := newTestEndpoint(t, WithIdleTimeout(time.Second, nil))
	assert.Zero(t, ep.IdleTimeout())
}

func TestIdleTimeout_MockClock(t *testing.T) {
	clk := clock.NewMock()
	ep, _ := newTestEndpoint(t, WithIdleTimeout(time.Minute, scheduler.New(clk)))

	var closed atomic.Bool
	ep.OnClose(func(error) { closed.Store(true) })

	clk.Add(time.Minute)
	assert.Eventually(t, closed.Load, time.Second, time.Millisecond)
	assert.False(t, ep.IsOpen())
}
