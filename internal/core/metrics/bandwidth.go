package metrics

import (
	"sync/atomic"

	"github.com/benbjohnson/clock"
)

// Stats 带宽统计快照
type Stats struct {
	TotalIn  int64   // 总读取字节
	TotalOut int64   // 总写出字节
	RateIn   float64 // 读取速率（字节/秒）
	RateOut  float64 // 写出速率（字节/秒）
}

// BandwidthCounter 带宽计数器
//
// 累计值用原子计数，速率用滑动窗口。
type BandwidthCounter struct {
	totalIn  atomic.Int64
	totalOut atomic.Int64

	inRate  *RateMeter
	outRate *RateMeter
}

// NewBandwidthCounter 创建带宽计数器
func NewBandwidthCounter(clk clock.Clock) *BandwidthCounter {
	return &BandwidthCounter{
		inRate:  NewRateMeter(clk),
		outRate: NewRateMeter(clk),
	}
}

// LogRecv 记录读取字节
func (b *BandwidthCounter) LogRecv(n int64) {
	b.totalIn.Add(n)
	b.inRate.Add(n)
}

// LogSent 记录写出字节
func (b *BandwidthCounter) LogSent(n int64) {
	b.totalOut.Add(n)
	b.outRate.Add(n)
}

// Totals 返回当前快照
func (b *BandwidthCounter) Totals() Stats {
	return Stats{
		TotalIn:  b.totalIn.Load(),
		TotalOut: b.totalOut.Load(),
		RateIn:   b.inRate.Rate(),
		RateOut:  b.outRate.Rate(),
	}
}

// Reset 重置所有统计
func (b *BandwidthCounter) Reset() {
	b.totalIn.Store(0)
	b.totalOut.Store(0)
	b.inRate.Reset()
	b.outRate.Reset()
}
