// Package metrics 提供端点与会话的指标收集
//
// 指标通过 interfaces.Reporter 上报，提供两种实现：
//   - Collector：Prometheus 计数器 + 内存带宽统计
//   - Nop：丢弃所有指标
//
// # 快速开始
//
//	reg := prometheus.NewRegistry()
//	c, err := metrics.NewCollector("streamio", reg)
//	if err != nil {
//	    return err
//	}
//
//	c.StreamOpened("quic")
//	c.BytesFilled(1024)
//
//	stats := c.Bandwidth().Totals()
//	fmt.Printf("In: %d, RateIn: %.2f B/s\n", stats.TotalIn, stats.RateIn)
//
// # 导出的指标
//
//	<ns>_streams_opened_total{protocol}
//	<ns>_streams_closed_total{protocol}
//	<ns>_streams_active{protocol}
//	<ns>_bytes_filled_total
//	<ns>_bytes_flushed_total
//	<ns>_incomplete_flushes_total
//	<ns>_readiness_signals_total{direction}
//	<ns>_idle_expirations_total
//	<ns>_teardown_failures_total{op}
package metrics
