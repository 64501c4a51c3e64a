package types

// ============================================================================
//                              Direction - 流方向
// ============================================================================

// Direction 流方向
type Direction int

const (
	// DirUnknown 未知方向
	DirUnknown Direction = iota
	// DirInbound 入站（对端打开）
	DirInbound
	// DirOutbound 出站（本端打开）
	DirOutbound
)

// String 返回方向的字符串表示
func (d Direction) String() string {
	switch d {
	case DirInbound:
		return "inbound"
	case DirOutbound:
		return "outbound"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              EndpointState - 端点状态
// ============================================================================

// EndpointState 流端点的半关闭状态
//
// 合法迁移：
//
//	OPEN → INPUT_SHUTDOWN → CLOSED
//	OPEN → OUTPUT_SHUTDOWN → CLOSED
//	任意状态 → CLOSED（Close）
type EndpointState uint32

const (
	// StateOpen 双向打开
	StateOpen EndpointState = iota
	// StateInputShutdown 输入端已关闭
	StateInputShutdown
	// StateOutputShutdown 输出端已关闭
	StateOutputShutdown
	// StateClosed 已关闭（终态）
	StateClosed
)

// String 返回状态的字符串表示
func (s EndpointState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateInputShutdown:
		return "input-shutdown"
	case StateOutputShutdown:
		return "output-shutdown"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
