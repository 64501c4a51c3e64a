package interfaces

// 就绪方向（用于指标标签）
const (
	DirectionRead  = "read"
	DirectionWrite = "write"
)

// Reporter 端点与会话的指标上报接口
//
// 实现必须并发安全；所有方法都应当是廉价的计数操作。
type Reporter interface {
	// StreamOpened 记录一个新流
	StreamOpened(protocol string)

	// StreamClosed 记录一个关闭的流
	StreamClosed(protocol string)

	// BytesFilled 记录读取的字节数
	BytesFilled(n int)

	// BytesFlushed 记录写出的字节数
	BytesFlushed(n int)

	// IncompleteFlush 记录一次未完成的写出
	IncompleteFlush()

	// ReadinessSignal 记录一次就绪信号
	ReadinessSignal(direction string)

	// IdleExpired 记录一次空闲超时
	IdleExpired()

	// TeardownFailed 记录一次被吞掉的关闭失败
	TeardownFailed(op string)
}
