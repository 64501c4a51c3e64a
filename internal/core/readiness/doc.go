// Package readiness 实现无竞态的边沿触发就绪通知
//
// Coordinator 把传输层推送的就绪信号（会话 goroutine，任意时刻到达）
// 与消费者拉取式的兴趣注册（任意消费者 goroutine）桥接起来。
//
// # 状态
//
// 每个方向只有一个原子槽位，同时编码状态和等待中的回调：
//
//	nil            IDLE             无信号、无等待者
//	pendingSignal  PENDING_SIGNAL   信号先到，尚无等待者
//	*interest      CONSUMER_WAITING 等待者已注册
//	closed         CLOSED           终态
//
// 每次状态迁移都是一次 CompareAndSwap，信号与注册交错时不会丢失唤醒，
// 也不会重复投递。
//
// # 使用示例
//
//	var c readiness.Coordinator
//
//	// 消费者
//	c.Register(func(err error) { ... 重试 Fill ... })
//
//	// 会话
//	c.MarkReady()
//
// WriteFlusher 在 Coordinator 之上实现"写不完就等可写再重试"的异步写。
package readiness
